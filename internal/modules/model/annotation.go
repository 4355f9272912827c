package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Annotation is one user's recorded judgement on one image: a JSON-encoded
// multi-question answer set. Rows are append-only; resubmitting keeps the
// earlier rows as history, and progress queries count distinct image ids.
type Annotation struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID *uuid.UUID `gorm:"type:uuid;index" json:"project_id"`
	DatasetID uuid.UUID `gorm:"type:uuid;not null;index:idx_annotation_dataset_user,priority:1" json:"dataset_id"`
	ImageID   uuid.UUID `gorm:"type:uuid;not null;index" json:"image_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_annotation_dataset_user,priority:2" json:"user_id"`

	Answers datatypes.JSON `gorm:"type:jsonb;not null" swaggertype:"object" json:"annotations"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	Dataset *Dataset `gorm:"foreignKey:DatasetID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	Image   *Image   `gorm:"foreignKey:ImageID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	User    *User    `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Annotation) TableName() string { return "annotations" }
