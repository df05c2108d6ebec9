package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	types "github.com/cynq/cynq-backend/internal/domain"
	"github.com/cynq/cynq-backend/internal/llm"
)

type fakeEcosystem struct {
	EcosystemService
	snap Snapshot
}

func (f *fakeEcosystem) Snapshot(ctx context.Context, ownerID uuid.UUID) (*Snapshot, error) {
	return &f.snap, nil
}

type scriptedEngine struct {
	reply  string
	err    error
	prompt string
}

func (e *scriptedEngine) GenerateText(ctx context.Context, model string, messages []llm.Message, opts llm.GenerateOptions) (string, error) {
	for _, m := range messages {
		if m.Role == "user" {
			e.prompt = m.Content
		}
	}
	return e.reply, e.err
}

func (e *scriptedEngine) StreamText(ctx context.Context, model string, messages []llm.Message, opts llm.GenerateOptions, onDelta func(delta string)) (string, error) {
	return e.GenerateText(ctx, model, messages, opts)
}

func newSuggestionFixture(t *testing.T, engine llm.Engine, snap Snapshot) (SuggestionService, *types.ChatSession) {
	t.Helper()
	owner := uuid.New()
	session := &types.ChatSession{ID: uuid.New(), UserID: owner, Model: "gemini-2.5-pro"}
	sessions := newFakeSessionRepo(session)
	svc := NewSuggestionService(nil, testLogger(t), sessions, &fakeEcosystem{snap: snap}, engine)
	return svc, session
}

func TestSuggestRelationships_ParsesEngineOutput(t *testing.T) {
	engine := &scriptedEngine{
		reply: `{"suggestions":[{"sourceName":"Ann","targetName":"MedTech Lab","type":"collaborator","reason":"shared project"}]}`,
	}
	snap := Snapshot{
		Contacts:      []*types.Contact{{Name: "Ann"}},
		Organizations: []*types.Organization{{Name: "MedTech Lab"}},
	}
	svc, session := newSuggestionFixture(t, engine, snap)

	out, err := svc.SuggestRelationships(context.Background(), session.UserID, session.ID, "early stage founder")
	if err != nil {
		t.Fatalf("SuggestRelationships: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(out))
	}
	if out[0].SourceName != "Ann" || out[0].TargetName != "MedTech Lab" {
		t.Fatalf("unexpected suggestion: %+v", out[0])
	}

	// The prompt enumerates the caller's items so the engine cannot
	// invent names.
	if !strings.Contains(engine.prompt, "Ann") || !strings.Contains(engine.prompt, "MedTech Lab") {
		t.Fatalf("prompt missing item names: %q", engine.prompt)
	}
	if !strings.Contains(engine.prompt, "early stage founder") {
		t.Fatalf("prompt missing profile context: %q", engine.prompt)
	}
}

func TestSuggestRelationships_MalformedPayloadIsUpstreamError(t *testing.T) {
	engine := &scriptedEngine{reply: "not json"}
	svc, session := newSuggestionFixture(t, engine, Snapshot{})

	_, err := svc.SuggestRelationships(context.Background(), session.UserID, session.ID, "")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream got %v", err)
	}
}

func TestSuggestRelationships_EngineFailureIsUpstreamError(t *testing.T) {
	engine := &scriptedEngine{err: errors.New("rate limited")}
	svc, session := newSuggestionFixture(t, engine, Snapshot{})

	_, err := svc.SuggestRelationships(context.Background(), session.UserID, session.ID, "")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream got %v", err)
	}
}

func TestSuggestRelationships_ForeignSessionIsNotFound(t *testing.T) {
	svc, session := newSuggestionFixture(t, &scriptedEngine{reply: `{"suggestions":[]}`}, Snapshot{})

	_, err := svc.SuggestRelationships(context.Background(), uuid.New(), session.ID, "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
}

func TestSuggestRelationships_NullSuggestionsBecomeEmptySlice(t *testing.T) {
	svc, session := newSuggestionFixture(t, &scriptedEngine{reply: `{"suggestions":null}`}, Snapshot{})

	out, err := svc.SuggestRelationships(context.Background(), session.UserID, session.ID, "")
	if err != nil {
		t.Fatalf("SuggestRelationships: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty slice, got %#v", out)
	}
}
