package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Dataset struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID *uuid.UUID `gorm:"type:uuid;index" json:"project_id"`
	Name      string     `gorm:"type:text;not null" json:"name"`

	// Two independent vocabularies: Classes for item-level labels,
	// Classes2 for image-level labels. Stored as JSON arrays; updates
	// replace the whole array.
	Classes  datatypes.JSON `gorm:"type:jsonb" swaggertype:"array,string" json:"classes"`
	Classes2 datatypes.JSON `gorm:"type:jsonb" swaggertype:"array,string" json:"classes2"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Dataset <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Deleting a dataset cascades through everything it owns.
	Items       []Item       `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	Images      []Image      `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	Assignments []Assignment `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	Annotations []Annotation `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Dataset) TableName() string { return "datasets" }
