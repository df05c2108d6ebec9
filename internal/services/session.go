package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cynq/cynq-backend/internal/data/repos"
	types "github.com/cynq/cynq-backend/internal/domain"
	"github.com/cynq/cynq-backend/internal/domain/chat"
	"github.com/cynq/cynq-backend/internal/pkg/ctxutil"
	"github.com/cynq/cynq-backend/internal/pkg/dbctx"
	"github.com/cynq/cynq-backend/internal/pkg/logger"
)

// SessionService owns chat session lifecycle. Every operation takes the
// owner id explicitly; a session belonging to someone else is
// indistinguishable from one that does not exist.
type SessionService interface {
	Create(ctx context.Context, ownerID uuid.UUID, model string) (*types.ChatSession, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*types.ChatSession, error)
	Get(ctx context.Context, ownerID, sessionID uuid.UUID) (*types.ChatSession, error)
	Rename(ctx context.Context, ownerID, sessionID uuid.UUID, title string) (*types.ChatSession, error)
	RetargetModel(ctx context.Context, ownerID, sessionID uuid.UUID, model string) (*types.ChatSession, error)
	Delete(ctx context.Context, ownerID, sessionID uuid.UUID) error
}

type sessionService struct {
	db          *gorm.DB
	log         *logger.Logger
	sessionRepo repos.ChatSessionRepo
}

func NewSessionService(db *gorm.DB, log *logger.Logger, sessionRepo repos.ChatSessionRepo) SessionService {
	return &sessionService{
		db:          db,
		log:         log.With("service", "SessionService"),
		sessionRepo: sessionRepo,
	}
}

func (s *sessionService) Create(ctx context.Context, ownerID uuid.UUID, model string) (*types.ChatSession, error) {
	ctx = ctxutil.Default(ctx)
	if ownerID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	model = strings.TrimSpace(model)
	if model == "" {
		model = chat.DefaultModel
	}

	row := &types.ChatSession{
		ID:           uuid.New(),
		UserID:       ownerID,
		Title:        chat.DefaultTitle,
		Model:        model,
		LastActiveAt: time.Now().UTC(),
	}
	if _, err := s.sessionRepo.Create(dbctx.Context{Ctx: ctx}, []*types.ChatSession{row}); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	s.log.Info("session created", "session_id", row.ID.String(), "user_id", ownerID.String())
	return row, nil
}

func (s *sessionService) List(ctx context.Context, ownerID uuid.UUID) ([]*types.ChatSession, error) {
	ctx = ctxutil.Default(ctx)
	if ownerID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}
	out, err := s.sessionRepo.ListByUser(dbctx.Context{Ctx: ctx}, ownerID, 0)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return out, nil
}

func (s *sessionService) Get(ctx context.Context, ownerID, sessionID uuid.UUID) (*types.ChatSession, error) {
	ctx = ctxutil.Default(ctx)
	if ownerID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}
	row, err := s.sessionRepo.GetByIDForUser(dbctx.Context{Ctx: ctx}, sessionID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return row, nil
}

func (s *sessionService) Rename(ctx context.Context, ownerID, sessionID uuid.UUID, title string) (*types.ChatSession, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	return s.updateOwned(ctx, ownerID, sessionID, map[string]interface{}{"title": title})
}

// RetargetModel stores the requested model name untranslated; provider
// mapping happens at dispatch time.
func (s *sessionService) RetargetModel(ctx context.Context, ownerID, sessionID uuid.UUID, model string) (*types.ChatSession, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, fmt.Errorf("%w: model is required", ErrValidation)
	}
	return s.updateOwned(ctx, ownerID, sessionID, map[string]interface{}{"model": model})
}

func (s *sessionService) updateOwned(ctx context.Context, ownerID, sessionID uuid.UUID, updates map[string]interface{}) (*types.ChatSession, error) {
	ctx = ctxutil.Default(ctx)

	row, err := s.Get(ctx, ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.sessionRepo.UpdateFields(dbctx.Context{Ctx: ctx}, row.ID, updates); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	return s.Get(ctx, ownerID, sessionID)
}

func (s *sessionService) Delete(ctx context.Context, ownerID, sessionID uuid.UUID) error {
	ctx = ctxutil.Default(ctx)
	if ownerID == uuid.Nil {
		return ErrNotAuthenticated
	}
	n, err := s.sessionRepo.Delete(dbctx.Context{Ctx: ctx}, sessionID, ownerID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
