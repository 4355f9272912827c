package model

import (
	"time"

	"github.com/google/uuid"
)

// Item is a named case/folder grouping one or more images under a dataset.
// The (dataset_id, name) unique index makes bulk-upload get-or-create safe
// under concurrent requests.
type Item struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DatasetID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_dataset_item_name,priority:1" json:"dataset_id"`
	Name      string    `gorm:"type:text;not null;uniqueIndex:idx_dataset_item_name,priority:2" json:"name"`

	Label   string `gorm:"type:text" json:"label"`
	Comment string `gorm:"type:text" json:"comment"`

	// Labelled is re-derived from the child images whenever one of them
	// changes; see ItemRepo.RecomputeLabelled.
	Labelled   bool       `gorm:"not null;default:false" json:"labelled"`
	LabelledBy *uuid.UUID `gorm:"type:uuid" json:"labelled_by"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Item <-> Dataset
	Dataset *Dataset `gorm:"foreignKey:DatasetID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Item <-> Image
	Images []Image `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Item) TableName() string { return "items" }
