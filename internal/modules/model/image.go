package model

import (
	"time"

	"github.com/google/uuid"
)

type Image struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	ItemID uuid.UUID `gorm:"type:uuid;not null;index" json:"item_id"`
	// DatasetID duplicates the parent item's dataset for query convenience.
	// It is always set from the item at creation time, never from a client.
	DatasetID uuid.UUID `gorm:"type:uuid;not null;index" json:"dataset_id"`

	Name string `gorm:"type:text;not null" json:"name"`
	URL  string `gorm:"type:text;not null" json:"image"`

	Label string `gorm:"type:text" json:"label"`

	// Serialized bounding-box region. The column keeps the historical
	// wire name so stored exports keep lining up.
	BoundingBox string `gorm:"column:cervical_area;type:text" json:"bounding_box"`
	HasBox      bool   `gorm:"not null;default:false" json:"has_box"`

	FolderLabelled bool       `gorm:"not null;default:false" json:"folder_labelled"`
	Labelled       bool       `gorm:"not null;default:false" json:"labelled"`
	LabelledBy     *uuid.UUID `gorm:"type:uuid" json:"labelled_by"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Image <-> Item
	Item *Item `gorm:"foreignKey:ItemID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Image <-> Dataset
	Dataset *Dataset `gorm:"foreignKey:DatasetID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Image <-> Annotation
	Annotations []Annotation `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Image) TableName() string { return "images" }
