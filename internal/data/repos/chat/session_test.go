package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/cynq/cynq-backend/internal/domain"
	"github.com/cynq/cynq-backend/internal/data/repos/testutil"
	"github.com/cynq/cynq-backend/internal/pkg/dbctx"
)

func TestChatSessionRepo_GetByIDForUserEnforcesOwnership(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewChatSessionRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	owner := testutil.SeedUser(t, ctx, tx, "owner@example.com")
	other := testutil.SeedUser(t, ctx, tx, "other@example.com")
	session := testutil.SeedSession(t, ctx, tx, owner.ID)

	got, err := repo.GetByIDForUser(dbc, session.ID, owner.ID)
	if err != nil {
		t.Fatalf("GetByIDForUser: %v", err)
	}
	if got.ID != session.ID {
		t.Fatalf("wrong session: %s", got.ID)
	}

	if _, err := repo.GetByIDForUser(dbc, session.ID, other.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("foreign owner must look like a missing row, got %v", err)
	}
}

func TestChatSessionRepo_ListByUserOrdersByLastActive(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewChatSessionRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	owner := testutil.SeedUser(t, ctx, tx, "list@example.com")
	base := time.Now().UTC().Add(-time.Hour)

	old := testutil.SeedSession(t, ctx, tx, owner.ID)
	fresh := testutil.SeedSession(t, ctx, tx, owner.ID)
	if err := tx.Model(&types.ChatSession{}).Where("id = ?", old.ID).Update("last_active", base).Error; err != nil {
		t.Fatalf("age session: %v", err)
	}
	if err := tx.Model(&types.ChatSession{}).Where("id = ?", fresh.ID).Update("last_active", base.Add(30*time.Minute)).Error; err != nil {
		t.Fatalf("bump session: %v", err)
	}

	got, err := repo.ListByUser(dbc, owner.ID, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(got))
	}
	if got[0].ID != fresh.ID {
		t.Fatalf("most recently active must come first")
	}
}

func TestChatSessionRepo_DeleteReportsRowsAffected(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewChatSessionRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	owner := testutil.SeedUser(t, ctx, tx, "del@example.com")
	session := testutil.SeedSession(t, ctx, tx, owner.ID)

	n, err := repo.Delete(dbc, session.ID, owner.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row, got %d", n)
	}

	n, err = repo.Delete(dbc, session.ID, owner.ID)
	if err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 rows on repeat delete, got %d", n)
	}

	if _, err := repo.Delete(dbc, uuid.New(), owner.ID); err != nil {
		t.Fatalf("unknown id must not error: %v", err)
	}
}
