package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"`
	Username     string    `gorm:"type:text;not null" json:"username"`

	IsAdmin    bool `gorm:"not null;default:false" json:"is_admin"`
	IsVerified bool `gorm:"not null;default:false" json:"is_verified"`

	// Profile fields collected at registration.
	FirstName   string `gorm:"type:text" json:"firstname"`
	LastName    string `gorm:"type:text" json:"lastname"`
	Age         int    `json:"age"`
	Gender      string `gorm:"type:text" json:"gender"`
	Country     string `gorm:"type:text" json:"country"`
	City        string `gorm:"type:text" json:"city"`
	Street      string `gorm:"type:text" json:"street"`
	Description string `gorm:"type:text" json:"description"`
	Experience  string `gorm:"type:text" json:"experience"`
	Site        string `gorm:"type:text" json:"site"`

	// Home project; attaching/detaching cascades assignment fan-out in the
	// service layer, not here.
	ProjectID *uuid.UUID `gorm:"type:uuid;index" json:"project_id"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// User <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:SET NULL,OnUpdate:CASCADE;" json:"-"`

	// User <-> Assignment
	Assignments []Assignment `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// User <-> Annotation
	Annotations []Annotation `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (User) TableName() string { return "users" }
