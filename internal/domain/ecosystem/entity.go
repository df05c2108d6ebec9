package ecosystem

import (
	"time"

	"github.com/google/uuid"
)

// Category names match the import payload keys used by the client.
type Category string

const (
	CategoryContacts      Category = "contacts"
	CategoryEvents        Category = "events"
	CategoryCommunities   Category = "communities"
	CategoryOrganizations Category = "organizations"
	CategorySkills        Category = "skills"
	CategoryProjects      Category = "projects"
	CategoryKnowledge     Category = "knowledge"
)

// Categories lists every entity category in a stable order.
func Categories() []Category {
	return []Category{
		CategoryContacts,
		CategoryEvents,
		CategoryCommunities,
		CategoryOrganizations,
		CategorySkills,
		CategoryProjects,
		CategoryKnowledge,
	}
}

// ParseCategory maps a route or payload segment to a known category.
func ParseCategory(s string) (Category, bool) {
	for _, cat := range Categories() {
		if string(cat) == s {
			return cat, true
		}
	}
	return "", false
}

type Contact struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string    `gorm:"type:text;not null" json:"name"`
	Email  string    `gorm:"type:text;not null;default:''" json:"email,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (Contact) TableName() string { return "contacts" }

type Event struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string    `gorm:"type:text;not null" json:"name"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (Event) TableName() string { return "events" }

type Community struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string    `gorm:"type:text;not null" json:"name"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (Community) TableName() string { return "communities" }

type Organization struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string    `gorm:"type:text;not null" json:"name"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (Organization) TableName() string { return "organizations" }

type Skill struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string    `gorm:"type:text;not null" json:"name"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (Skill) TableName() string { return "skills" }

type Project struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string    `gorm:"type:text;not null" json:"name"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (Project) TableName() string { return "projects" }

type KnowledgeItem struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string    `gorm:"type:text;not null" json:"name"`
	URL    string    `gorm:"type:text;not null;default:''" json:"url,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (KnowledgeItem) TableName() string { return "knowledge_items" }
