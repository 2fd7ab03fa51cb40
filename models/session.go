package models

import (
	"time"
)

// Session is a DB-backed login session. The cookie carries only the token;
// the actor row is re-resolved on every request so display fields never go
// stale.
type Session struct {
	ID        string    `gorm:"primarykey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Token     string    `gorm:"uniqueIndex;not null;type:varchar(128)" json:"-"`
	ActorKind ActorKind `gorm:"not null;index:idx_session_actor" json:"actor_kind"`
	ActorID   uint      `gorm:"not null;index:idx_session_actor" json:"actor_id"`

	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	IPAddress string    `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent string    `gorm:"type:text" json:"user_agent"`
}

// TableName specifies the table name for Session model
func (Session) TableName() string {
	return "sessions"
}

func (s *Session) Actor() ActorRef {
	return ActorRef{Kind: s.ActorKind, ID: s.ActorID}
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
