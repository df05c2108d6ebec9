package ecosystem

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/cynq/cynq-backend/internal/data/repos/testutil"
	types "github.com/cynq/cynq-backend/internal/domain"
	eco "github.com/cynq/cynq-backend/internal/domain/ecosystem"
	"github.com/cynq/cynq-backend/internal/pkg/dbctx"
)

func TestEntityRepo_CreateAndListScopedToOwner(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewEntityRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	owner := testutil.SeedUser(t, ctx, tx, "eco@example.com")
	other := testutil.SeedUser(t, ctx, tx, "eco-other@example.com")

	rows := []*types.Contact{
		{ID: uuid.New(), UserID: owner.ID, Name: "Ann"},
		{ID: uuid.New(), UserID: other.ID, Name: "Stranger"},
	}
	if err := repo.CreateContacts(dbc, rows); err != nil {
		t.Fatalf("CreateContacts: %v", err)
	}

	got, err := repo.ListContacts(dbc, owner.ID)
	if err != nil {
		t.Fatalf("ListContacts: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Ann" {
		t.Fatalf("expected only the owner's contact, got %+v", got)
	}
}

func TestEntityRepo_DeleteByCategoryEnforcesOwnership(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewEntityRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	owner := testutil.SeedUser(t, ctx, tx, "del-eco@example.com")
	contact := testutil.SeedContact(t, ctx, tx, owner.ID, "Ann")

	n, err := repo.Delete(dbc, eco.CategoryContacts, uuid.New(), contact.ID)
	if err != nil {
		t.Fatalf("Delete foreign: %v", err)
	}
	if n != 0 {
		t.Fatalf("foreign caller deleted a row")
	}

	n, err = repo.Delete(dbc, eco.CategoryContacts, owner.ID, contact.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row deleted, got %d", n)
	}
}

func TestEntityRepo_DeleteUnknownCategoryFails(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewEntityRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	if _, err := repo.Delete(dbc, eco.Category("bogus"), uuid.New(), uuid.New()); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

func TestEntityRepo_CountsPerCategory(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewEntityRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	owner := testutil.SeedUser(t, ctx, tx, "counts@example.com")
	testutil.SeedContact(t, ctx, tx, owner.ID, "Ann")
	testutil.SeedContact(t, ctx, tx, owner.ID, "Bob")
	if err := repo.CreateSkills(dbc, []*types.Skill{{ID: uuid.New(), UserID: owner.ID, Name: "Writing"}}); err != nil {
		t.Fatalf("CreateSkills: %v", err)
	}

	counts, err := repo.Counts(dbc, owner.ID)
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if counts[eco.CategoryContacts] != 2 {
		t.Fatalf("contacts=%d", counts[eco.CategoryContacts])
	}
	if counts[eco.CategorySkills] != 1 {
		t.Fatalf("skills=%d", counts[eco.CategorySkills])
	}
	if counts[eco.CategoryEvents] != 0 {
		t.Fatalf("events=%d", counts[eco.CategoryEvents])
	}
}

func TestRelationshipRepo_LinkExistsIsUndirected(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewRelationshipRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	owner := testutil.SeedUser(t, ctx, tx, "rel@example.com")
	a := uuid.New()
	b := uuid.New()

	if _, err := repo.Create(dbc, []*types.Relationship{{
		ID:               uuid.New(),
		UserID:           owner.ID,
		SourceID:         a,
		SourceType:       "contact",
		TargetID:         b,
		TargetType:       "organization",
		RelationshipType: "collaborator",
		Strength:         0.5,
	}}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, pair := range [][2]uuid.UUID{{a, b}, {b, a}} {
		exists, err := repo.LinkExists(dbc, owner.ID, pair[0], pair[1])
		if err != nil {
			t.Fatalf("LinkExists: %v", err)
		}
		if !exists {
			t.Fatalf("link %s->%s must exist in both directions", pair[0], pair[1])
		}
	}

	exists, err := repo.LinkExists(dbc, owner.ID, a, uuid.New())
	if err != nil {
		t.Fatalf("LinkExists: %v", err)
	}
	if exists {
		t.Fatalf("unrelated pair reported as linked")
	}
}

func TestRelationshipRepo_UpdateFieldsEnforcesOwnership(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewRelationshipRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	owner := testutil.SeedUser(t, ctx, tx, "rel-upd@example.com")
	other := testutil.SeedUser(t, ctx, tx, "rel-upd-other@example.com")

	row := &types.Relationship{
		ID:               uuid.New(),
		UserID:           owner.ID,
		SourceID:         uuid.New(),
		SourceType:       "contact",
		TargetID:         uuid.New(),
		TargetType:       "project",
		RelationshipType: "works_on",
		Strength:         0.5,
	}
	if _, err := repo.Create(dbc, []*types.Relationship{row}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	n, err := repo.UpdateFields(dbc, other.ID, row.ID, map[string]interface{}{"strength": 0.9})
	if err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if n != 0 {
		t.Fatalf("foreign owner must not update, affected %d", n)
	}

	n, err = repo.UpdateFields(dbc, owner.ID, row.ID, map[string]interface{}{
		"strength":          0.9,
		"relationship_type": "mentor",
	})
	if err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row affected, got %d", n)
	}

	got, err := repo.GetByID(dbc, owner.ID, row.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Strength != 0.9 || got.RelationshipType != "mentor" {
		t.Fatalf("update not persisted: %+v", got)
	}
}

func TestRelationshipRepo_DeleteByItemRemovesBothEndpoints(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewRelationshipRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	owner := testutil.SeedUser(t, ctx, tx, "rel-del@example.com")
	item := uuid.New()

	rows := []*types.Relationship{
		{ID: uuid.New(), UserID: owner.ID, SourceID: item, SourceType: "contact", TargetID: uuid.New(), TargetType: "project", RelationshipType: "works_on", Strength: 0.5},
		{ID: uuid.New(), UserID: owner.ID, SourceID: uuid.New(), SourceType: "skill", TargetID: item, TargetType: "contact", RelationshipType: "has", Strength: 0.5},
		{ID: uuid.New(), UserID: owner.ID, SourceID: uuid.New(), SourceType: "skill", TargetID: uuid.New(), TargetType: "project", RelationshipType: "used_in", Strength: 0.5},
	}
	if _, err := repo.Create(dbc, rows); err != nil {
		t.Fatalf("Create: %v", err)
	}

	n, err := repo.DeleteByItem(dbc, owner.ID, item)
	if err != nil {
		t.Fatalf("DeleteByItem: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 rows removed, got %d", n)
	}

	remaining, err := repo.ListByUser(dbc, owner.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("expected 1 survivor, got %d", len(remaining))
	}
}
