package chat

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cynq/cynq-backend/internal/data/repos/testutil"
	"github.com/cynq/cynq-backend/internal/domain/chat"
	"github.com/cynq/cynq-backend/internal/pkg/dbctx"
)

func TestChatMessageRepo_ListBySessionOldestFirst(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewChatMessageRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	owner := testutil.SeedUser(t, ctx, tx, "msg@example.com")
	session := testutil.SeedSession(t, ctx, tx, owner.ID)
	base := time.Now().UTC().Add(-time.Minute)

	for i := 0; i < 3; i++ {
		testutil.SeedMessage(t, ctx, tx, session.ID, chat.RoleUser, fmt.Sprintf("m%d", i), base.Add(time.Duration(i)*time.Second))
	}

	got, err := repo.ListBySession(dbc, session.ID, 0)
	if err != nil {
		t.Fatalf("ListBySession: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(got))
	}
	for i, m := range got {
		if m.Content != fmt.Sprintf("m%d", i) {
			t.Fatalf("position %d has %q", i, m.Content)
		}
	}
}

func TestChatMessageRepo_ListBySessionZeroLimitReturnsAll(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewChatMessageRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	owner := testutil.SeedUser(t, ctx, tx, "long@example.com")
	session := testutil.SeedSession(t, ctx, tx, owner.ID)
	base := time.Now().UTC().Add(-time.Hour)

	const total = 520
	for i := 0; i < total; i++ {
		testutil.SeedMessage(t, ctx, tx, session.ID, chat.RoleUser, fmt.Sprintf("m%d", i), base.Add(time.Duration(i)*time.Second))
	}

	got, err := repo.ListBySession(dbc, session.ID, 0)
	if err != nil {
		t.Fatalf("ListBySession: %v", err)
	}
	if len(got) != total {
		t.Fatalf("expected the full transcript of %d messages, got %d", total, len(got))
	}

	got, err = repo.ListBySession(dbc, session.ID, 2)
	if err != nil {
		t.Fatalf("ListBySession with limit: %v", err)
	}
	if len(got) != 2 || got[0].Content != "m0" || got[1].Content != "m1" {
		t.Fatalf("explicit limit wrong: %d rows", len(got))
	}
}

func TestChatMessageRepo_ListRecentWindowsOldestFirst(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewChatMessageRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	owner := testutil.SeedUser(t, ctx, tx, "recent@example.com")
	session := testutil.SeedSession(t, ctx, tx, owner.ID)
	base := time.Now().UTC().Add(-time.Minute)

	for i := 0; i < 5; i++ {
		testutil.SeedMessage(t, ctx, tx, session.ID, chat.RoleUser, fmt.Sprintf("m%d", i), base.Add(time.Duration(i)*time.Second))
	}

	got, err := repo.ListRecent(dbc, session.ID, 2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected window of 2, got %d", len(got))
	}
	// The window holds the newest messages but stays oldest-first for
	// prompt assembly.
	if got[0].Content != "m3" || got[1].Content != "m4" {
		t.Fatalf("window wrong: %q, %q", got[0].Content, got[1].Content)
	}
}

func TestChatMessageRepo_DeleteBySession(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewChatMessageRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	owner := testutil.SeedUser(t, ctx, tx, "clear@example.com")
	session := testutil.SeedSession(t, ctx, tx, owner.ID)
	testutil.SeedMessage(t, ctx, tx, session.ID, chat.RoleUser, "hi", time.Now().UTC())

	n, err := repo.DeleteBySession(dbc, session.ID)
	if err != nil {
		t.Fatalf("DeleteBySession: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 deleted, got %d", n)
	}

	n, err = repo.DeleteBySession(dbc, session.ID)
	if err != nil {
		t.Fatalf("repeat DeleteBySession: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 on empty session, got %d", n)
	}
}
