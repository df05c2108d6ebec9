package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/cynq/cynq-backend/internal/domain"
	"github.com/cynq/cynq-backend/internal/domain/chat"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedSession(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID) *types.ChatSession {
	tb.Helper()
	s := &types.ChatSession{
		ID:           uuid.New(),
		UserID:       userID,
		Title:        chat.DefaultTitle,
		Model:        chat.DefaultModel,
		LastActiveAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed session: %v", err)
	}
	return s
}

func SeedMessage(tb testing.TB, ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, role, content string, at time.Time) *types.ChatMessage {
	tb.Helper()
	m := &types.ChatMessage{
		ID:        uuid.New(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Timestamp: at,
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed message: %v", err)
	}
	return m
}

func SeedContact(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, name string) *types.Contact {
	tb.Helper()
	c := &types.Contact{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed contact: %v", err)
	}
	return c
}
