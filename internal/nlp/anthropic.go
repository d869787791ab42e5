package nlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sethvargo/go-retry"

	"github.com/focusflow/focusflow/internal/models"
)

var createMessage = func(client *anthropic.Client, ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	return client.Messages.New(ctx, params)
}

// ModelParser calls an LLM to interpret capture text and to expand tasks
// into subtasks. Rate limits and overload responses are retried with
// exponential backoff, matching the product's capture behavior; every other
// failure surfaces immediately so the caller can fall back.
type ModelParser struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewModelParser builds a parser bound to the given API key and model name.
func NewModelParser(apiKey, model string) *ModelParser {
	return &ModelParser{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.Model(model),
	}
}

const maxAttempts = 3

// complete sends one prompt and returns the concatenated text blocks.
func (p *ModelParser) complete(ctx context.Context, prompt string) (string, error) {
	var out string

	backoff := retry.WithMaxRetries(maxAttempts, retry.NewExponential(time.Second))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		msg, err := createMessage(&p.client, ctx, anthropic.MessageNewParams{
			Model:     p.model,
			MaxTokens: 1024,
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
			},
		})
		if err != nil {
			var apierr *anthropic.Error
			if errors.As(err, &apierr) {
				switch apierr.StatusCode {
				case 429, 503, 529:
					return retry.RetryableError(err)
				}
			}
			return err
		}

		var sb strings.Builder
		for _, block := range msg.Content {
			if block.Type == "text" {
				sb.WriteString(block.Text)
			}
		}
		out = sb.String()
		return nil
	})
	return out, err
}

// parsePayload is the JSON shape the model is asked to return for Parse.
type parsePayload struct {
	Title       string   `json:"title"`
	DueDate     string   `json:"dueDate"`
	Priority    string   `json:"priority"`
	Tags        []string `json:"tags"`
	ProjectName string   `json:"projectName"`
}

func (p *ModelParser) Parse(ctx context.Context, text string) (*ParseResult, error) {
	prompt := fmt.Sprintf(
		`Task: %q. Current time: %s.`+"\n"+
			`Return only JSON: {"title":string,"dueDate":ISO-8601 string or "","priority":"LOW"|"MEDIUM"|"HIGH" or "","tags":[string],"projectName":string}.`,
		text, time.Now().Format(time.RFC3339))

	raw, err := p.complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("parse request failed: %w", err)
	}

	var payload parsePayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &payload); err != nil {
		return nil, fmt.Errorf("unexpected parser response: %w", err)
	}
	if payload.Title == "" {
		return nil, nil
	}

	res := &ParseResult{
		Title:       payload.Title,
		Tags:        payload.Tags,
		ProjectName: payload.ProjectName,
	}
	if pr := models.Priority(payload.Priority); pr.Valid() {
		res.Priority = pr
	}
	if payload.DueDate != "" {
		if due, err := time.Parse(time.RFC3339, payload.DueDate); err == nil {
			res.DueDate = &due
		}
	}
	return res, nil
}

func (p *ModelParser) Suggest(ctx context.Context, taskTitle string) ([]string, error) {
	prompt := fmt.Sprintf(`Generate 3-5 subtasks for: %q. Return only a JSON array of strings.`, taskTitle)

	raw, err := p.complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("suggest request failed: %w", err)
	}

	var titles []string
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &titles); err != nil {
		return nil, fmt.Errorf("unexpected suggester response: %w", err)
	}
	return titles, nil
}
