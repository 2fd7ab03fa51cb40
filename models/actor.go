package models

import (
	"gorm.io/gorm"
)

// ActorKind identifies which identity table an actor reference points at.
type ActorKind string

const (
	ActorKindResident ActorKind = "resident"
	ActorKindStaff    ActorKind = "staff"
	ActorKindAdmin    ActorKind = "admin"
)

// ValidActorKind reports whether k is one of the three known kinds.
func ValidActorKind(k ActorKind) bool {
	return k == ActorKindResident || k == ActorKindStaff || k == ActorKindAdmin
}

// Actor is any row that can send or receive notifications and appear in the
// activity log. Residents and staff/admin accounts live in disjoint tables,
// so callers address them through ActorRef instead of a shared foreign key.
type Actor interface {
	Ref() ActorRef
	DisplayName() string
	ContactEmail() string
}

// ActorRef is a tagged reference into either the resident table or the
// staff/admin table, depending on Kind. The zero value means "no actor"
// (system-originated notifications use it as the sender).
type ActorRef struct {
	Kind ActorKind `json:"kind"`
	ID   uint      `json:"id"`
}

func (r ActorRef) IsZero() bool {
	return r.Kind == "" && r.ID == 0
}

// Resolve loads the referenced row. Vanished or malformed references resolve
// to nil rather than an error; callers render a placeholder for those.
func (r ActorRef) Resolve(tx *gorm.DB) Actor {
	if r.IsZero() {
		return nil
	}
	switch r.Kind {
	case ActorKindResident:
		var resident Resident
		if err := tx.First(&resident, r.ID).Error; err != nil {
			return nil
		}
		return &resident
	case ActorKindStaff, ActorKindAdmin:
		var account StaffAdmin
		if err := tx.First(&account, r.ID).Error; err != nil {
			return nil
		}
		return &account
	default:
		return nil
	}
}
