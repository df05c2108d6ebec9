package ecosystem

import (
	"time"

	"github.com/google/uuid"
)

type CriticalPath struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Title           string `gorm:"type:text;not null" json:"title"`
	Description     string `gorm:"type:text;not null;default:''" json:"description"`
	OverallTimeline string `gorm:"type:text;column:overall_timeline;not null;default:''" json:"overall_timeline"`

	Phases []CriticalPathPhase `gorm:"-" json:"phases"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (CriticalPath) TableName() string { return "critical_paths" }

type CriticalPathPhase struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CriticalPathID uuid.UUID `gorm:"type:uuid;column:critical_path_id;not null;index" json:"critical_path_id"`

	Name        string `gorm:"type:text;not null" json:"name"`
	Duration    string `gorm:"type:text;not null;default:''" json:"duration"`
	Objective   string `gorm:"type:text;not null;default:''" json:"objective"`
	Deliverable string `gorm:"type:text;not null;default:''" json:"deliverable"`
	PhaseOrder  int    `gorm:"column:phase_order;not null;default:0;index" json:"phase_order"`

	KeyTasks []CriticalPathTask `gorm:"-" json:"key_tasks"`
}

func (CriticalPathPhase) TableName() string { return "critical_path_phases" }

type CriticalPathTask struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PhaseID uuid.UUID `gorm:"type:uuid;column:phase_id;not null;index" json:"phase_id"`

	Text      string `gorm:"type:text;not null" json:"text"`
	Completed bool   `gorm:"not null;default:false" json:"completed"`

	AssignedToOrgID *uuid.UUID `gorm:"type:uuid;column:assigned_to_org_id" json:"assigned_to_org_id,omitempty"`

	TaskOrder int `gorm:"column:task_order;not null;default:0;index" json:"task_order"`
}

func (CriticalPathTask) TableName() string { return "critical_path_tasks" }
