package oaihttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cynq/cynq-backend/internal/llm"
)

type Config struct {
	BaseURL             string
	APIKey              string
	ChatCompletionsPath string

	Timeout       time.Duration
	StreamTimeout time.Duration

	JSONSchemaMaxRetries     int
	JSONSchemaMaxPromptBytes int
}

type Engine struct {
	baseURL string
	apiKey  string

	chatCompletionsPath string

	timeout       time.Duration
	streamTimeout time.Duration

	jsonSchemaMaxRetries     int
	jsonSchemaMaxPromptBytes int

	httpClient *http.Client
}

func New(cfg Config) (*Engine, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("oai_http: base_url required")
	}

	chatPath := strings.TrimSpace(cfg.ChatCompletionsPath)
	if chatPath == "" {
		chatPath = "/v1/chat/completions"
	}

	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	maxRetries := cfg.JSONSchemaMaxRetries
	if maxRetries <= 0 {
		maxRetries = 2
	}

	maxPromptBytes := cfg.JSONSchemaMaxPromptBytes
	if maxPromptBytes <= 0 {
		maxPromptBytes = 64 << 10
	}

	return &Engine{
		baseURL:                  baseURL,
		apiKey:                   strings.TrimSpace(cfg.APIKey),
		chatCompletionsPath:      chatPath,
		timeout:                  timeout,
		streamTimeout:            cfg.StreamTimeout,
		jsonSchemaMaxRetries:     maxRetries,
		jsonSchemaMaxPromptBytes: maxPromptBytes,
		httpClient:               &http.Client{Transport: tr},
	}, nil
}

// NewWithHTTPClient is intended for tests; it avoids network access by using a custom RoundTripper.
func NewWithHTTPClient(cfg Config, httpClient *http.Client) (*Engine, error) {
	e, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if httpClient != nil {
		e.httpClient = httpClient
	}
	return e, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	Stream      bool          `json:"stream,omitempty"`

	ResponseFormat map[string]any `json:"response_format,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content,omitempty"`
		} `json:"message,omitempty"`
		Text string `json:"text,omitempty"`
	} `json:"choices"`
}

type chatCompletionStreamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content,omitempty"`
		} `json:"delta,omitempty"`
		Text string `json:"text,omitempty"`
	} `json:"choices"`
	Error any `json:"error,omitempty"`
}

func (e *Engine) GenerateText(ctx context.Context, model string, messages []llm.Message, opts llm.GenerateOptions) (string, error) {
	chatMsgs := toChatMessages(messages)
	if len(chatMsgs) == 0 {
		return "", errors.New("no messages")
	}

	attempts := 1
	if opts.JSONSchema != nil && opts.JSONSchema.Strict {
		attempts = 1 + e.jsonSchemaMaxRetries
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		reqBody := e.buildChatRequest(model, chatMsgs, opts, false)

		var resp chatCompletionResponse
		err := e.doJSON(ctx, e.timeout, "POST", e.chatCompletionsPath, reqBody, &resp, "application/json")
		if err != nil {
			lastErr = err
			continue
		}

		text := extractChatText(resp)
		if strings.TrimSpace(text) == "" {
			lastErr = errors.New("empty upstream completion")
			continue
		}

		if opts.JSONSchema != nil && opts.JSONSchema.Strict {
			clean := sanitizeJSONText(text)
			if err := validateJSON(clean); err != nil {
				lastErr = err
				continue
			}
			return clean, nil
		}

		return text, nil
	}

	if lastErr == nil {
		lastErr = errors.New("generation failed")
	}
	return "", lastErr
}

func (e *Engine) StreamText(ctx context.Context, model string, messages []llm.Message, opts llm.GenerateOptions, onDelta func(delta string)) (string, error) {
	chatMsgs := toChatMessages(messages)
	if len(chatMsgs) == 0 {
		return "", errors.New("no messages")
	}

	reqBody := e.buildChatRequest(model, chatMsgs, opts, true)

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
		return "", err
	}

	ctx2 := ctx
	var cancel context.CancelFunc
	if e.streamTimeout > 0 {
		ctx2, cancel = context.WithTimeout(ctx, e.streamTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx2, "POST", e.baseURL+e.chatCompletionsPath, &buf)
	if err != nil {
		return "", err
	}
	e.setHeaders(req, "application/json", "text/event-stream")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return "", &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var full strings.Builder
	err = streamSSE(resp.Body, func(_ string, data string) error {
		if strings.TrimSpace(data) == "" {
			return nil
		}
		if strings.TrimSpace(data) == "[DONE]" {
			return nil
		}

		var chunk chatCompletionStreamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return nil
		}
		if chunk.Error != nil {
			b, _ := json.Marshal(chunk.Error)
			return fmt.Errorf("upstream stream error: %s", string(b))
		}

		for _, c := range chunk.Choices {
			delta := c.Delta.Content
			if delta == "" {
				delta = c.Text
			}
			if delta == "" {
				continue
			}
			full.WriteString(delta)
			if onDelta != nil {
				onDelta(delta)
			}
		}
		return nil
	})
	if err != nil {
		// Partial output is still useful to the caller; it decides what
		// to persist.
		return full.String(), err
	}
	return full.String(), nil
}

func (e *Engine) buildChatRequest(model string, messages []chatMessage, opts llm.GenerateOptions, stream bool) chatCompletionRequest {
	req := chatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: opts.Temperature,
		Stream:      stream,
	}

	if opts.JSONSchema == nil {
		return req
	}

	req.ResponseFormat = map[string]any{"type": "json_object"}
	req.Messages = append(req.Messages, chatMessage{
		Role:    "system",
		Content: e.jsonSchemaPrompt(opts.JSONSchema),
	})
	return req
}

func (e *Engine) jsonSchemaPrompt(s *llm.JSONSchema) string {
	if s == nil {
		return "Return ONLY valid JSON. Do not include markdown or commentary."
	}
	name := strings.TrimSpace(s.Name)

	var schemaText string
	if s.Schema != nil {
		if b, err := json.Marshal(s.Schema); err == nil {
			if len(b) <= e.jsonSchemaMaxPromptBytes {
				schemaText = string(b)
			}
		}
	}

	var b strings.Builder
	b.WriteString("Return ONLY a valid JSON value that conforms to the provided JSON Schema. Do not include markdown or commentary.\n")
	if name != "" {
		b.WriteString("Schema name: ")
		b.WriteString(name)
		b.WriteString("\n")
	}
	if schemaText != "" {
		b.WriteString("Schema:\n")
		b.WriteString(schemaText)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func toChatMessages(messages []llm.Message) []chatMessage {
	out := make([]chatMessage, 0, len(messages))
	for _, m := range messages {
		role := strings.TrimSpace(m.Role)
		content := strings.TrimSpace(m.Content)
		if role == "" || content == "" {
			continue
		}
		out = append(out, chatMessage{Role: role, Content: content})
	}
	return out
}

func extractChatText(resp chatCompletionResponse) string {
	for _, c := range resp.Choices {
		if strings.TrimSpace(c.Message.Content) != "" {
			return c.Message.Content
		}
		if strings.TrimSpace(c.Text) != "" {
			return c.Text
		}
	}
	return ""
}

func sanitizeJSONText(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	// Strip leading ```lang and trailing ```
	firstNL := strings.IndexByte(s, '\n')
	if firstNL == -1 {
		return strings.TrimSpace(strings.Trim(s, "`"))
	}
	s = s[firstNL+1:]

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

func validateJSON(s string) error {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

func (e *Engine) setHeaders(req *http.Request, contentType string, accept string) {
	if strings.TrimSpace(contentType) != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if strings.TrimSpace(accept) != "" {
		req.Header.Set("Accept", accept)
	}
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}
}

func (e *Engine) doJSON(ctx context.Context, timeout time.Duration, method string, path string, body any, out any, accept string) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	ctx2 := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		ctx2, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx2, method, e.baseURL+path, &buf)
	if err != nil {
		return err
	}
	e.setHeaders(req, "application/json", accept)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
