package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cynq/cynq-backend/internal/data/repos/testutil"
	types "github.com/cynq/cynq-backend/internal/domain"
	"github.com/cynq/cynq-backend/internal/pkg/dbctx"
)

func TestUserRepo_GetByEmailIsCaseInsensitive(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewUserRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	seeded := testutil.SeedUser(t, ctx, tx, "case@example.com")

	got, err := repo.GetByEmail(dbc, "CASE@Example.COM")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != seeded.ID {
		t.Fatalf("wrong user: %s", got.ID)
	}

	exists, err := repo.EmailExists(dbc, "Case@example.com")
	if err != nil {
		t.Fatalf("EmailExists: %v", err)
	}
	if !exists {
		t.Fatalf("EmailExists must match case-insensitively")
	}
}

func TestUserTokenRepo_RefreshLifecycle(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewUserTokenRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	owner := testutil.SeedUser(t, ctx, tx, "token@example.com")
	token := &types.UserToken{
		ID:           uuid.New(),
		UserID:       owner.ID,
		RefreshToken: uuid.NewString(),
		ExpiresAt:    time.Now().UTC().Add(time.Hour),
	}
	if _, err := repo.Create(dbc, []*types.UserToken{token}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByRefreshToken(dbc, token.RefreshToken)
	if err != nil {
		t.Fatalf("GetByRefreshToken: %v", err)
	}
	if got.UserID != owner.ID {
		t.Fatalf("wrong owner: %s", got.UserID)
	}

	if err := repo.DeleteByRefreshToken(dbc, token.RefreshToken); err != nil {
		t.Fatalf("DeleteByRefreshToken: %v", err)
	}
	if _, err := repo.GetByRefreshToken(dbc, token.RefreshToken); err == nil {
		t.Fatalf("token must be gone after delete")
	}
}

func TestUserTokenRepo_DeleteExpiredSweeps(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewUserTokenRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	owner := testutil.SeedUser(t, ctx, tx, "expired@example.com")
	now := time.Now().UTC()

	rows := []*types.UserToken{
		{ID: uuid.New(), UserID: owner.ID, RefreshToken: uuid.NewString(), ExpiresAt: now.Add(-time.Hour)},
		{ID: uuid.New(), UserID: owner.ID, RefreshToken: uuid.NewString(), ExpiresAt: now.Add(time.Hour)},
	}
	if _, err := repo.Create(dbc, rows); err != nil {
		t.Fatalf("Create: %v", err)
	}

	n, err := repo.DeleteExpired(dbc, now)
	if err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 expired token removed, got %d", n)
	}
	if _, err := repo.GetByRefreshToken(dbc, rows[1].RefreshToken); err != nil {
		t.Fatalf("live token must survive sweep: %v", err)
	}
}
