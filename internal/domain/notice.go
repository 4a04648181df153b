package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notice is an official community announcement with a priority and an
// active window. Active notices are visible to residents and eligible
// for broadcast.
type Notice struct {
	ID        uuid.UUID
	Title     string
	Message   string
	Priority  NoticePriority
	Status    NoticeStatus
	AuthorID  uuid.UUID
	StartsAt  time.Time
	EndsAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the notice is currently in effect.
func (n *Notice) IsActive(now time.Time) bool {
	if n.Status != NoticeStatusActive {
		return false
	}
	if n.StartsAt.After(now) {
		return false
	}
	return n.EndsAt == nil || n.EndsAt.After(now)
}
