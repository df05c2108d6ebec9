package llm

import "context"

type Message struct {
	Role    string
	Content string
}

type JSONSchema struct {
	Name   string
	Schema map[string]any
	Strict bool
}

type GenerateOptions struct {
	Temperature float64
	JSONSchema  *JSONSchema
}

// Engine is the completion provider boundary. Implementations talk to an
// OpenAI-compatible chat completions endpoint; the mock implementation
// keeps tests hermetic.
type Engine interface {
	GenerateText(ctx context.Context, model string, messages []Message, opts GenerateOptions) (string, error)
	StreamText(ctx context.Context, model string, messages []Message, opts GenerateOptions, onDelta func(delta string)) (full string, err error)
}
