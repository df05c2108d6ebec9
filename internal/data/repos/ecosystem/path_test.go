package ecosystem

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cynq/cynq-backend/internal/data/repos/testutil"
	types "github.com/cynq/cynq-backend/internal/domain"
	"github.com/cynq/cynq-backend/internal/pkg/dbctx"
)

func seedPathTree(owner uuid.UUID) *types.CriticalPath {
	path := &types.CriticalPath{
		ID:     uuid.New(),
		UserID: owner,
		Title:  "Regulatory path",
	}
	for p := 0; p < 2; p++ {
		phase := types.CriticalPathPhase{
			ID:         uuid.New(),
			Name:       "Phase",
			PhaseOrder: p,
		}
		for tk := 0; tk < 3; tk++ {
			phase.KeyTasks = append(phase.KeyTasks, types.CriticalPathTask{
				ID:        uuid.New(),
				Text:      "task",
				TaskOrder: tk,
			})
		}
		path.Phases = append(path.Phases, phase)
	}
	return path
}

func TestCriticalPathRepo_CreateTreeRoundTrips(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewCriticalPathRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	owner := testutil.SeedUser(t, ctx, tx, "path@example.com")
	seed := seedPathTree(owner.ID)

	if _, err := repo.CreateTree(dbc, seed); err != nil {
		t.Fatalf("CreateTree: %v", err)
	}

	got, err := repo.GetTreeForUser(dbc, seed.ID, owner.ID)
	if err != nil {
		t.Fatalf("GetTreeForUser: %v", err)
	}
	if len(got.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(got.Phases))
	}
	for i, phase := range got.Phases {
		if phase.PhaseOrder != i {
			t.Fatalf("phase %d out of order: %d", i, phase.PhaseOrder)
		}
		if len(phase.KeyTasks) != 3 {
			t.Fatalf("phase %d expected 3 tasks, got %d", i, len(phase.KeyTasks))
		}
		for j, task := range phase.KeyTasks {
			if task.TaskOrder != j {
				t.Fatalf("phase %d task %d out of order: %d", i, j, task.TaskOrder)
			}
		}
	}
}

func TestCriticalPathRepo_GetTreeForUserEnforcesOwnership(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewCriticalPathRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	owner := testutil.SeedUser(t, ctx, tx, "path-own@example.com")
	seed := seedPathTree(owner.ID)
	if _, err := repo.CreateTree(dbc, seed); err != nil {
		t.Fatalf("CreateTree: %v", err)
	}

	if _, err := repo.GetTreeForUser(dbc, seed.ID, uuid.New()); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("foreign owner must look like a missing row, got %v", err)
	}
}

func TestCriticalPathRepo_EmptyTreeHasEmptyPhaseSlice(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewCriticalPathRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	owner := testutil.SeedUser(t, ctx, tx, "path-empty@example.com")
	seed := &types.CriticalPath{ID: uuid.New(), UserID: owner.ID, Title: "Bare"}
	if _, err := repo.CreateTree(dbc, seed); err != nil {
		t.Fatalf("CreateTree: %v", err)
	}

	got, err := repo.GetTreeForUser(dbc, seed.ID, owner.ID)
	if err != nil {
		t.Fatalf("GetTreeForUser: %v", err)
	}
	if got.Phases == nil {
		t.Fatalf("phases must be an empty slice, not nil")
	}
	if len(got.Phases) != 0 {
		t.Fatalf("expected no phases, got %d", len(got.Phases))
	}
}

func TestCriticalPathRepo_UpdateTaskFields(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewCriticalPathRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	owner := testutil.SeedUser(t, ctx, tx, "path-task@example.com")
	seed := seedPathTree(owner.ID)
	if _, err := repo.CreateTree(dbc, seed); err != nil {
		t.Fatalf("CreateTree: %v", err)
	}

	phase := seed.Phases[0]
	task := phase.KeyTasks[1]
	if err := repo.UpdateTaskFields(dbc, task.ID, map[string]interface{}{"completed": true}); err != nil {
		t.Fatalf("UpdateTaskFields: %v", err)
	}

	got, err := repo.GetTask(dbc, phase.ID, task.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if !got.Completed {
		t.Fatalf("completed flag not persisted")
	}
}
