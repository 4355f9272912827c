package model

import (
	"time"

	"github.com/google/uuid"
)

// Assignment grants an annotator visibility into a dataset. The unique
// index enforces the at-most-one-row-per-pair invariant.
type Assignment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_user_dataset,priority:1" json:"user_id"`
	DatasetID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_user_dataset,priority:2" json:"dataset_id"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	User    *User    `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	Dataset *Dataset `gorm:"foreignKey:DatasetID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Assignment) TableName() string { return "assignments" }
