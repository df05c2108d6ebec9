package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cynq/cynq-backend/internal/data/repos"
	types "github.com/cynq/cynq-backend/internal/domain"
	"github.com/cynq/cynq-backend/internal/pkg/ctxutil"
	"github.com/cynq/cynq-backend/internal/pkg/dbctx"
	"github.com/cynq/cynq-backend/internal/pkg/logger"
	"github.com/cynq/cynq-backend/internal/services/pathseed"
)

type CreatePathInput struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	OverallTimeline string `json:"overall_timeline"`
}

// UpdateTaskInput carries a partial task update. Unassign clears the
// org assignment; it wins over AssignedToOrgID when both are set.
type UpdateTaskInput struct {
	Completed       *bool      `json:"completed,omitempty"`
	AssignedToOrgID *uuid.UUID `json:"assigned_to_org_id,omitempty"`
	Unassign        bool       `json:"unassign,omitempty"`
}

type CriticalPathService interface {
	Create(ctx context.Context, ownerID uuid.UUID, in CreatePathInput) (*types.CriticalPath, error)
	CreateFromTemplate(ctx context.Context, ownerID uuid.UUID, templateKey string) (*types.CriticalPath, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*types.CriticalPath, error)
	Get(ctx context.Context, ownerID, pathID uuid.UUID) (*types.CriticalPath, error)
	Delete(ctx context.Context, ownerID, pathID uuid.UUID) error

	// UpdateTask applies a partial update after a three-level ownership
	// walk (path, phase, task). A miss at any level is a no-op, not an
	// error: stale ids from a client that raced a delete are expected.
	UpdateTask(ctx context.Context, ownerID, pathID, phaseID, taskID uuid.UUID, in UpdateTaskInput) error

	TemplateKeys() ([]string, error)
}

type criticalPathService struct {
	db       *gorm.DB
	log      *logger.Logger
	pathRepo repos.CriticalPathRepo
}

func NewCriticalPathService(db *gorm.DB, log *logger.Logger, pathRepo repos.CriticalPathRepo) CriticalPathService {
	return &criticalPathService{
		db:       db,
		log:      log.With("service", "CriticalPathService"),
		pathRepo: pathRepo,
	}
}

func (s *criticalPathService) Create(ctx context.Context, ownerID uuid.UUID, in CreatePathInput) (*types.CriticalPath, error) {
	ctx = ctxutil.Default(ctx)
	if ownerID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	path := &types.CriticalPath{
		ID:              uuid.New(),
		UserID:          ownerID,
		Title:           title,
		Description:     strings.TrimSpace(in.Description),
		OverallTimeline: strings.TrimSpace(in.OverallTimeline),
		Phases:          []types.CriticalPathPhase{},
	}
	return s.createTree(ctx, path)
}

func (s *criticalPathService) CreateFromTemplate(ctx context.Context, ownerID uuid.UUID, templateKey string) (*types.CriticalPath, error) {
	ctx = ctxutil.Default(ctx)
	if ownerID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	tpl, err := pathseed.Get(strings.TrimSpace(templateKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	path := &types.CriticalPath{
		ID:              uuid.New(),
		UserID:          ownerID,
		Title:           tpl.Title,
		Description:     tpl.Description,
		OverallTimeline: tpl.OverallTimeline,
	}
	for pi, p := range tpl.Phases {
		phase := types.CriticalPathPhase{
			ID:          uuid.New(),
			Name:        p.Name,
			Duration:    p.Duration,
			Objective:   p.Objective,
			Deliverable: p.Deliverable,
			PhaseOrder:  pi,
		}
		for ti, text := range p.KeyTasks {
			phase.KeyTasks = append(phase.KeyTasks, types.CriticalPathTask{
				ID:        uuid.New(),
				Text:      text,
				TaskOrder: ti,
			})
		}
		path.Phases = append(path.Phases, phase)
	}
	return s.createTree(ctx, path)
}

// createTree persists the tree row by row and compensates by deleting
// the path if a later row fails.
func (s *criticalPathService) createTree(ctx context.Context, path *types.CriticalPath) (*types.CriticalPath, error) {
	dbc := dbctx.Context{Ctx: ctx}
	created, err := s.pathRepo.CreateTree(dbc, path)
	if err != nil {
		if _, delErr := s.pathRepo.Delete(dbc, path.ID, path.UserID); delErr != nil {
			s.log.Error("failed to clean up partial path", "path_id", path.ID.String(), "error", delErr)
		}
		return nil, fmt.Errorf("create path: %w", err)
	}
	s.log.Info("critical path created", "path_id", created.ID.String(), "user_id", created.UserID.String())
	return created, nil
}

func (s *criticalPathService) List(ctx context.Context, ownerID uuid.UUID) ([]*types.CriticalPath, error) {
	ctx = ctxutil.Default(ctx)
	if ownerID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}
	out, err := s.pathRepo.ListTreesByUser(dbctx.Context{Ctx: ctx}, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list paths: %w", err)
	}
	return out, nil
}

func (s *criticalPathService) Get(ctx context.Context, ownerID, pathID uuid.UUID) (*types.CriticalPath, error) {
	ctx = ctxutil.Default(ctx)
	if ownerID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}
	path, err := s.pathRepo.GetTreeForUser(dbctx.Context{Ctx: ctx}, pathID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load path: %w", err)
	}
	return path, nil
}

func (s *criticalPathService) Delete(ctx context.Context, ownerID, pathID uuid.UUID) error {
	ctx = ctxutil.Default(ctx)
	if ownerID == uuid.Nil {
		return ErrNotAuthenticated
	}
	n, err := s.pathRepo.Delete(dbctx.Context{Ctx: ctx}, pathID, ownerID)
	if err != nil {
		return fmt.Errorf("delete path: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *criticalPathService) UpdateTask(ctx context.Context, ownerID, pathID, phaseID, taskID uuid.UUID, in UpdateTaskInput) error {
	ctx = ctxutil.Default(ctx)
	if ownerID == uuid.Nil {
		return ErrNotAuthenticated
	}
	dbc := dbctx.Context{Ctx: ctx}

	if _, err := s.pathRepo.GetPathForUser(dbc, pathID, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("load path: %w", err)
	}
	if _, err := s.pathRepo.GetPhase(dbc, pathID, phaseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("load phase: %w", err)
	}
	if _, err := s.pathRepo.GetTask(dbc, phaseID, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("load task: %w", err)
	}

	updates := map[string]interface{}{}
	if in.Completed != nil {
		updates["completed"] = *in.Completed
	}
	switch {
	case in.Unassign:
		updates["assigned_to_org_id"] = nil
	case in.AssignedToOrgID != nil:
		updates["assigned_to_org_id"] = *in.AssignedToOrgID
	}
	if len(updates) == 0 {
		return nil
	}
	if err := s.pathRepo.UpdateTaskFields(dbc, taskID, updates); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

func (s *criticalPathService) TemplateKeys() ([]string, error) {
	return pathseed.Keys()
}
