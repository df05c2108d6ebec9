package community

import (
	"time"

	"github.com/google/uuid"
)

// CommunityResource and AnonymizedInsight are shared data: they are not
// scoped to an owning user.
type CommunityResource struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	URL         string    `gorm:"type:text;not null;default:''" json:"url"`
	Description string    `gorm:"type:text;not null;default:''" json:"description"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (CommunityResource) TableName() string { return "community_resources" }

type AnonymizedInsight struct {
	ID   uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Text string    `gorm:"type:text;not null" json:"text"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (AnonymizedInsight) TableName() string { return "anonymized_insights" }
