package content

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vecindario/backend/internal/domain"
	"github.com/vecindario/backend/internal/service/broadcast"
)

// PublishNotice creates an active notice and broadcasts it. A failed
// broadcast does not fail the publication.
func (s *Service) PublishNotice(ctx context.Context, authorID uuid.UUID, in PublishNoticeInput) (*domain.Notice, broadcast.Result, error) {
	if err := in.Validate(); err != nil {
		return nil, broadcast.Result{}, err
	}

	priority := in.Priority
	if priority == "" {
		priority = domain.NoticePriorityMedium
	}

	startsAt := in.StartsAt
	if startsAt.IsZero() {
		startsAt = time.Now().UTC()
	}

	n := &domain.Notice{
		ID:       uuid.New(),
		Title:    in.Title,
		Message:  in.Message,
		Priority: priority,
		Status:   domain.NoticeStatusActive,
		AuthorID: authorID,
		StartsAt: startsAt,
		EndsAt:   in.EndsAt,
	}

	created, err := s.notices.Create(ctx, n)
	if err != nil {
		return nil, broadcast.Result{}, fmt.Errorf("create notice: %w", err)
	}

	s.log.InfoContext(ctx, "notice published",
		slog.String("notice_id", created.ID.String()),
		slog.String("priority", string(created.Priority)),
		slog.String("author_id", authorID.String()),
	)

	res, err := s.dispatcher.BroadcastNotice(ctx, created)
	if err != nil {
		s.log.WarnContext(ctx, "notice broadcast incomplete",
			slog.String("notice_id", created.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	return created, res, nil
}
