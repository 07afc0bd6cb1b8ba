package model

import "time"

// SessionToken is the server-side record of an issued session token. At most
// one row per user has Active=true; issuing a new token deactivates the rest.
// Rows are never deleted, only deactivated, so the table doubles as a login
// audit trail.
type SessionToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Token     string    `json:"-" gorm:"uniqueIndex;size:512;not null"`
	Active    bool      `json:"active" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
}
