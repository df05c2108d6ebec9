package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/cynq/cynq-backend/internal/domain/chat"
)

func TestSessionCreate_AppliesDefaults(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(nil, testLogger(t), repo)
	owner := uuid.New()

	session, err := svc.Create(context.Background(), owner, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if session.Title != chat.DefaultTitle {
		t.Fatalf("expected default title, got %q", session.Title)
	}
	if session.Model != chat.DefaultModel {
		t.Fatalf("expected default model, got %q", session.Model)
	}
	if session.UserID != owner {
		t.Fatalf("owner not stamped")
	}
}

func TestSessionCreate_RequiresAuthentication(t *testing.T) {
	svc := NewSessionService(nil, testLogger(t), newFakeSessionRepo())
	_, err := svc.Create(context.Background(), uuid.Nil, "")
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated got %v", err)
	}
}

func TestSessionRename_RejectsEmptyTitle(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(nil, testLogger(t), repo)
	owner := uuid.New()
	session, _ := svc.Create(context.Background(), owner, "")

	if _, err := svc.Rename(context.Background(), owner, session.ID, "  "); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation got %v", err)
	}

	renamed, err := svc.Rename(context.Background(), owner, session.ID, "Grant strategy")
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if renamed.Title != "Grant strategy" {
		t.Fatalf("title not updated: %q", renamed.Title)
	}
}

func TestSessionRetargetModel_StoresNameUntranslated(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(nil, testLogger(t), repo)
	owner := uuid.New()
	session, _ := svc.Create(context.Background(), owner, "")

	updated, err := svc.RetargetModel(context.Background(), owner, session.ID, "gemini-2.5-pro")
	if err != nil {
		t.Fatalf("RetargetModel: %v", err)
	}
	// Provider translation happens at dispatch, never at storage.
	if updated.Model != "gemini-2.5-pro" {
		t.Fatalf("model stored translated: %q", updated.Model)
	}
}

func TestSessionGet_ForeignSessionIsNotFound(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(nil, testLogger(t), repo)
	session, _ := svc.Create(context.Background(), uuid.New(), "")

	if _, err := svc.Get(context.Background(), uuid.New(), session.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
}

func TestSessionDelete_UnknownIsNotFound(t *testing.T) {
	svc := NewSessionService(nil, testLogger(t), newFakeSessionRepo())
	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
}

func TestSessionDelete_RemovesSession(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(nil, testLogger(t), repo)
	owner := uuid.New()
	session, _ := svc.Create(context.Background(), owner, "")

	if err := svc.Delete(context.Background(), owner, session.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), owner, session.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("session still reachable after delete")
	}
}
