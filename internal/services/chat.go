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
	"github.com/cynq/cynq-backend/internal/llm"
	"github.com/cynq/cynq-backend/internal/pkg/ctxutil"
	"github.com/cynq/cynq-backend/internal/pkg/dbctx"
	"github.com/cynq/cynq-backend/internal/pkg/logger"
)

// promptWindow bounds how much transcript is replayed to the provider
// per turn.
const promptWindow = 50

const systemPrompt = "You are an assistant helping the user track and grow " +
	"their personal ecosystem: contacts, events, communities, organizations, " +
	"skills, projects and knowledge. Be concise and concrete."

// EventPublisher decouples services from the realtime hub.
type EventPublisher interface {
	Publish(channel, event string, payload any)
}

// NopPublisher drops every event. Used when realtime is disabled and in
// tests.
type NopPublisher struct{}

func (NopPublisher) Publish(channel, event string, payload any) {}

type ChatService interface {
	// SendMessage runs one relay turn. Fragments are forwarded to
	// onFragment in arrival order; the returned message is the persisted
	// assistant reply. A nil error means the stream completed naturally.
	SendMessage(ctx context.Context, ownerID, sessionID uuid.UUID, text string, onFragment func(delta string)) (*types.ChatMessage, error)
	GetMessages(ctx context.Context, ownerID, sessionID uuid.UUID) ([]*types.ChatMessage, error)
	ClearMessages(ctx context.Context, ownerID, sessionID uuid.UUID) error
}

type chatService struct {
	db          *gorm.DB
	log         *logger.Logger
	sessionRepo repos.ChatSessionRepo
	messageRepo repos.ChatMessageRepo
	engine      llm.Engine
	events      EventPublisher
}

func NewChatService(
	db *gorm.DB,
	log *logger.Logger,
	sessionRepo repos.ChatSessionRepo,
	messageRepo repos.ChatMessageRepo,
	engine llm.Engine,
	events EventPublisher,
) ChatService {
	if events == nil {
		events = NopPublisher{}
	}
	return &chatService{
		db:          db,
		log:         log.With("service", "ChatService"),
		sessionRepo: sessionRepo,
		messageRepo: messageRepo,
		engine:      engine,
		events:      events,
	}
}

func (s *chatService) SendMessage(ctx context.Context, ownerID, sessionID uuid.UUID, text string, onFragment func(delta string)) (*types.ChatMessage, error) {
	ctx = ctxutil.Default(ctx)
	if ownerID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message is required", ErrValidation)
	}

	dbc := dbctx.Context{Ctx: ctx}

	session, err := s.sessionRepo.GetByIDForUser(dbc, sessionID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	// The user turn is durable before any provider work starts.
	now := time.Now().UTC()
	userMsg := &types.ChatMessage{
		ID:        uuid.New(),
		SessionID: session.ID,
		Role:      chat.RoleUser,
		Content:   text,
		Timestamp: now,
	}
	if _, err := s.messageRepo.Create(dbc, []*types.ChatMessage{userMsg}); err != nil {
		return nil, fmt.Errorf("persist user message: %w", err)
	}
	if err := s.sessionRepo.UpdateFields(dbc, session.ID, map[string]interface{}{"last_active": now}); err != nil {
		s.log.Warn("failed to bump last_active", "session_id", session.ID.String(), "error", err)
	}

	history, err := s.messageRepo.ListRecent(dbc, session.ID, promptWindow)
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}

	prompt := make([]llm.Message, 0, len(history)+1)
	prompt = append(prompt, llm.Message{Role: chat.RoleSystem, Content: systemPrompt})
	for _, m := range history {
		prompt = append(prompt, llm.Message{Role: m.Role, Content: m.Content})
	}

	model := llm.ResolveModel(session.Model)

	var full strings.Builder
	_, streamErr := s.engine.StreamText(ctx, model, prompt, llm.GenerateOptions{}, func(delta string) {
		full.WriteString(delta)
		if onFragment != nil {
			onFragment(delta)
		}
	})

	if streamErr != nil {
		if errors.Is(streamErr, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
			// The caller went away; nothing assistant-side is persisted.
			return nil, streamErr
		}
		if full.Len() == 0 {
			return nil, fmt.Errorf("%w: %v", ErrUpstream, streamErr)
		}
		// Mid-stream failure with partial content: the fragments already
		// reached the caller, so the transcript keeps them too.
		if _, err := s.persistAssistant(dbc, session.ID, full.String()); err != nil {
			s.log.Error("failed to persist partial reply", "session_id", session.ID.String(), "error", err)
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, streamErr)
	}

	assistantMsg, err := s.persistAssistant(dbc, session.ID, full.String())
	if err != nil {
		return nil, err
	}

	s.events.Publish(ownerID.String(), "session.updated", map[string]any{
		"session_id": session.ID.String(),
	})
	return assistantMsg, nil
}

func (s *chatService) persistAssistant(dbc dbctx.Context, sessionID uuid.UUID, content string) (*types.ChatMessage, error) {
	now := time.Now().UTC()
	msg := &types.ChatMessage{
		ID:        uuid.New(),
		SessionID: sessionID,
		Role:      chat.RoleAssistant,
		Content:   content,
		Timestamp: now,
	}
	if _, err := s.messageRepo.Create(dbc, []*types.ChatMessage{msg}); err != nil {
		return nil, fmt.Errorf("persist assistant message: %w", err)
	}
	if err := s.sessionRepo.UpdateFields(dbc, sessionID, map[string]interface{}{"last_active": now}); err != nil {
		s.log.Warn("failed to bump last_active", "session_id", sessionID.String(), "error", err)
	}
	return msg, nil
}

func (s *chatService) GetMessages(ctx context.Context, ownerID, sessionID uuid.UUID) ([]*types.ChatMessage, error) {
	ctx = ctxutil.Default(ctx)
	if ownerID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}
	dbc := dbctx.Context{Ctx: ctx}

	if _, err := s.sessionRepo.GetByIDForUser(dbc, sessionID, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	out, err := s.messageRepo.ListBySession(dbc, sessionID, 0)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return out, nil
}

// ClearMessages empties the transcript but keeps the session row. It is
// idempotent: clearing an already empty session succeeds.
func (s *chatService) ClearMessages(ctx context.Context, ownerID, sessionID uuid.UUID) error {
	ctx = ctxutil.Default(ctx)
	if ownerID == uuid.Nil {
		return ErrNotAuthenticated
	}
	dbc := dbctx.Context{Ctx: ctx}

	if _, err := s.sessionRepo.GetByIDForUser(dbc, sessionID, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load session: %w", err)
	}
	if _, err := s.messageRepo.DeleteBySession(dbc, sessionID); err != nil {
		return fmt.Errorf("clear messages: %w", err)
	}
	return nil
}
