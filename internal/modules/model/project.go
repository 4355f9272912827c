package model

import (
	"time"

	"github.com/google/uuid"
)

// Project types select which progress-counting rule applies to the
// project's datasets.
const (
	ProjectTypeLabel    = "label"
	ProjectTypeAnnotate = "annotate"
)

type Project struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name string    `gorm:"type:text;not null" json:"name"`
	Type string    `gorm:"type:text;not null;default:'annotate';check:type IN ('label','annotate')" json:"type"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Project <-> Dataset
	Datasets []Dataset `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Project <-> User (annotators attached to the project)
	Users []User `gorm:"constraint:OnDelete:SET NULL,OnUpdate:CASCADE;" json:"-"`
}

func (Project) TableName() string { return "projects" }
