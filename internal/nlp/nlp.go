// Package nlp turns free-form capture text into structured task fields and
// suggests subtasks for a task title. The sync core is indifferent to which
// implementation produced a record.
package nlp

import (
	"context"
	"time"

	"github.com/focusflow/focusflow/internal/models"
)

// ParseResult is the structured interpretation of one capture line.
// Only Title is guaranteed; everything else is best-effort.
type ParseResult struct {
	Title       string          `json:"title"`
	DueDate     *time.Time      `json:"-"`
	Priority    models.Priority `json:"priority,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	ProjectName string          `json:"projectName,omitempty"`
}

// Parser extracts task fields from raw text. A nil result with a nil error
// means the parser had nothing useful to say.
type Parser interface {
	Parse(ctx context.Context, text string) (*ParseResult, error)
}

// Suggester proposes subtask titles for a task. An empty slice is a valid
// answer.
type Suggester interface {
	Suggest(ctx context.Context, taskTitle string) ([]string, error)
}

// ParseOrFallback runs the parser and degrades to "raw text is the title"
// on any failure or empty result. Callers never see a parse error.
func ParseOrFallback(ctx context.Context, p Parser, text string) *ParseResult {
	if p != nil {
		res, err := p.Parse(ctx, text)
		if err == nil && res != nil && res.Title != "" {
			return res
		}
	}
	return &ParseResult{Title: text}
}
