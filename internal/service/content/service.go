// Package content creates news items and notices and hands the
// published result to the broadcast dispatcher. Delivery problems never
// fail the publication: the content is committed first and the fan-out
// result is reported alongside it.
package content

import (
	"context"
	"log/slog"

	"github.com/vecindario/backend/internal/domain"
	"github.com/vecindario/backend/internal/service/broadcast"
)

type newsStore interface {
	Create(ctx context.Context, n *domain.NewsItem) (*domain.NewsItem, error)
}

type noticeStore interface {
	Create(ctx context.Context, n *domain.Notice) (*domain.Notice, error)
}

// broadcaster fans published content out to linked chats.
type broadcaster interface {
	BroadcastNews(ctx context.Context, item *domain.NewsItem) (broadcast.Result, error)
	BroadcastNotice(ctx context.Context, n *domain.Notice) (broadcast.Result, error)
}

// Service publishes community content.
type Service struct {
	log        *slog.Logger
	news       newsStore
	notices    noticeStore
	dispatcher broadcaster
}

// NewService creates the content service.
func NewService(logger *slog.Logger, news newsStore, notices noticeStore, dispatcher broadcaster) *Service {
	return &Service{
		log:        logger.With("service", "content"),
		news:       news,
		notices:    notices,
		dispatcher: dispatcher,
	}
}
