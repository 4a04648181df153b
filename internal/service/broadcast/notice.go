package broadcast

import (
	"context"

	"github.com/vecindario/backend/internal/domain"
)

// BroadcastNotice pushes a newly activated notice to every opted-in chat.
func (s *Service) BroadcastNotice(ctx context.Context, n *domain.Notice) (Result, error) {
	return s.dispatch(ctx, "notice", s.renderNotice(n))
}
