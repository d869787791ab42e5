package nlp

import (
	"context"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// LocalParser interprets capture text without any network call: a natural
// language date ("tomorrow 5pm") becomes the due date and #words become
// tags. It is the offline stand-in for the model-backed parser.
type LocalParser struct {
	w *when.Parser

	// now is a test seam for date resolution.
	now func() time.Time
}

func NewLocalParser() *LocalParser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &LocalParser{w: w, now: time.Now}
}

func (p *LocalParser) Parse(ctx context.Context, text string) (*ParseResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	res := &ParseResult{}

	words := strings.Fields(text)
	title := make([]string, 0, len(words))
	for _, word := range words {
		if len(word) > 1 && strings.HasPrefix(word, "#") {
			res.Tags = append(res.Tags, strings.ToLower(strings.TrimPrefix(word, "#")))
			continue
		}
		title = append(title, word)
	}
	res.Title = strings.Join(title, " ")

	if match, err := p.w.Parse(res.Title, p.now()); err == nil && match != nil {
		due := match.Time
		res.DueDate = &due
		// drop the date phrase from the title
		trimmed := strings.TrimSpace(res.Title[:match.Index] + res.Title[match.Index+len(match.Text):])
		if trimmed != "" {
			res.Title = trimmed
		}
	}

	if res.Title == "" {
		res.Title = text
	}
	return res, nil
}
