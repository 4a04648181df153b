package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the subset of the resident directory record this subsystem
// reads and narrowly updates. The directory itself (registration,
// approval, profile editing) is owned elsewhere.
type User struct {
	ID         uuid.UUID
	Name       string
	Email      string
	NationalID string
	Role       UserRole
	Status     UserStatus

	// ChatID is the opaque chat-platform handle, present only once the
	// account has been linked via /vincular.
	ChatID *string

	Preference NotificationPreference

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the account may link a chat identity or
// receive broadcasts.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// IsLinked reports whether the user has a chat identity attached.
func (u *User) IsLinked() bool {
	return u.ChatID != nil && *u.ChatID != ""
}

// AudienceFilter selects the recipients of a broadcast. Zero-valued
// fields are unconstrained.
type AudienceFilter struct {
	Role    UserRole
	Channel NotificationChannel
}
