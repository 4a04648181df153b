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

// PublishNews creates a published news item and broadcasts it. A failed
// broadcast does not fail the publication; it shows up in the returned
// Result.
func (s *Service) PublishNews(ctx context.Context, authorID uuid.UUID, in PublishNewsInput) (*domain.NewsItem, broadcast.Result, error) {
	if err := in.Validate(); err != nil {
		return nil, broadcast.Result{}, err
	}

	category := in.Category
	if category == "" {
		category = domain.NewsCategoryGeneral
	}

	now := time.Now().UTC()
	item := &domain.NewsItem{
		ID:          uuid.New(),
		Title:       in.Title,
		Summary:     in.Summary,
		Body:        in.Body,
		Category:    category,
		Status:      domain.NewsStatusPublished,
		AuthorID:    authorID,
		PublishedAt: &now,
	}

	created, err := s.news.Create(ctx, item)
	if err != nil {
		return nil, broadcast.Result{}, fmt.Errorf("create news: %w", err)
	}

	s.log.InfoContext(ctx, "news published",
		slog.String("news_id", created.ID.String()),
		slog.String("author_id", authorID.String()),
	)

	res, err := s.dispatcher.BroadcastNews(ctx, created)
	if err != nil {
		s.log.WarnContext(ctx, "news broadcast incomplete",
			slog.String("news_id", created.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	return created, res, nil
}
