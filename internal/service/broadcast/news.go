package broadcast

import (
	"context"

	"github.com/vecindario/backend/internal/domain"
)

// BroadcastNews pushes a published news item to every opted-in chat.
func (s *Service) BroadcastNews(ctx context.Context, item *domain.NewsItem) (Result, error) {
	return s.dispatch(ctx, "news", s.renderNews(item))
}
