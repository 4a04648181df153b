package domain

import (
	"time"

	"github.com/google/uuid"
)

// NewsItem is a community news entry. Only published items are visible
// to residents and eligible for broadcast.
type NewsItem struct {
	ID          uuid.UUID
	Title       string
	Summary     string
	Body        string
	Category    NewsCategory
	Status      NewsStatus
	AuthorID    uuid.UUID
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsPublished reports whether the item is live.
func (n *NewsItem) IsPublished() bool {
	return n.Status == NewsStatusPublished && n.PublishedAt != nil
}
