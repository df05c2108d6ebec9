package chat

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

type ChatMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index" json:"session_id"`

	Role    string `gorm:"column:role;not null;index" json:"role"`
	Content string `gorm:"column:content;type:text;not null;default:''" json:"content"`

	// Timestamp ascending is the only ordering guarantee for a session's
	// messages.
	Timestamp time.Time `gorm:"column:timestamp;not null;default:now();index" json:"timestamp"`

	ToolCalls datatypes.JSON `gorm:"type:jsonb;column:tool_calls" json:"tool_calls,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (ChatMessage) TableName() string { return "chat_message" }
