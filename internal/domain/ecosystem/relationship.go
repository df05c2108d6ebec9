package ecosystem

import (
	"time"

	"github.com/google/uuid"
)

// Relationship is an undirected edge between two ecosystem items.
// (source,target) and (target,source) are the same link for duplicate
// checks.
type Relationship struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	SourceID   uuid.UUID `gorm:"type:uuid;column:source_id;not null;index" json:"source_id"`
	SourceType string    `gorm:"type:text;column:source_type;not null" json:"source_type"`
	TargetID   uuid.UUID `gorm:"type:uuid;column:target_id;not null;index" json:"target_id"`
	TargetType string    `gorm:"type:text;column:target_type;not null" json:"target_type"`

	RelationshipType string  `gorm:"type:text;column:relationship_type;not null;default:''" json:"relationship_type"`
	Strength         float64 `gorm:"not null;default:0.5" json:"strength"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (Relationship) TableName() string { return "relationships" }

// SameLink reports whether the edge connects the same pair of items,
// ignoring direction.
func (r *Relationship) SameLink(sourceID, targetID uuid.UUID) bool {
	if r.SourceID == sourceID && r.TargetID == targetID {
		return true
	}
	return r.SourceID == targetID && r.TargetID == sourceID
}
