package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cynq/cynq-backend/internal/llm"
)

// Engine is a deterministic llm.Engine for tests and offline development.
// When Deltas is set, StreamText replays them verbatim; otherwise the
// generated text is chunked.
type Engine struct {
	Deltas []string
	Err    error
}

func New() *Engine {
	return &Engine{}
}

func (e *Engine) GenerateText(ctx context.Context, model string, messages []llm.Message, opts llm.GenerateOptions) (string, error) {
	_ = ctx
	_ = model

	if e.Err != nil {
		return "", e.Err
	}

	if opts.JSONSchema != nil {
		obj := map[string]any{
			"ok":     true,
			"schema": opts.JSONSchema.Name,
		}
		b, _ := json.Marshal(obj)
		return string(b), nil
	}

	var user string
	for i := len(messages) - 1; i >= 0; i-- {
		if strings.EqualFold(messages[i].Role, "user") {
			user = messages[i].Content
			break
		}
	}
	if strings.TrimSpace(user) == "" {
		return "mock: ok", nil
	}
	return fmt.Sprintf("mock: %s", user), nil
}

func (e *Engine) StreamText(ctx context.Context, model string, messages []llm.Message, opts llm.GenerateOptions, onDelta func(delta string)) (string, error) {
	if len(e.Deltas) > 0 {
		var full strings.Builder
		for _, d := range e.Deltas {
			select {
			case <-ctx.Done():
				return full.String(), ctx.Err()
			default:
			}
			full.WriteString(d)
			if onDelta != nil {
				onDelta(d)
			}
		}
		if e.Err != nil {
			return full.String(), e.Err
		}
		return full.String(), nil
	}

	full, err := e.GenerateText(ctx, model, messages, opts)
	if err != nil {
		return "", err
	}
	if onDelta == nil {
		return full, nil
	}
	const chunk = 16
	for i := 0; i < len(full); i += chunk {
		select {
		case <-ctx.Done():
			return full[:i], ctx.Err()
		default:
		}
		end := i + chunk
		if end > len(full) {
			end = len(full)
		}
		onDelta(full[i:end])
	}
	return full, nil
}
