package chat

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultTitle = "New Chat"
	DefaultModel = "gemini-2.5-flash"
)

// ChatSession is one conversation thread. The stored model name is
// provider-agnostic; translation to a concrete provider model happens at
// dispatch time, never at storage time.
type ChatSession struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Title string `gorm:"type:text;not null;default:'New Chat'" json:"title"`
	Model string `gorm:"type:text;not null;default:'gemini-2.5-flash'" json:"model"`

	// LastActiveAt is bumped on every message append; it is never older
	// than the latest message's timestamp.
	LastActiveAt time.Time `gorm:"column:last_active;not null;default:now();index" json:"last_active"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (ChatSession) TableName() string { return "chat_session" }
