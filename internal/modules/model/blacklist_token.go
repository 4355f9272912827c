package model

import (
	"time"

	"github.com/google/uuid"
)

// BlackListToken invalidates a bearer token for all future requests. Rows
// are never pruned here; expired entries are garbage-collected by an
// external job since the token signature stops verifying anyway.
type BlackListToken struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Token         string    `gorm:"type:text;not null;uniqueIndex" json:"token"`
	BlacklistedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"blacklisted_at"`
}

func (BlackListToken) TableName() string { return "blacklist_tokens" }
