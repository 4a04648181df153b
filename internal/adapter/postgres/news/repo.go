// Package news implements the news repository using PostgreSQL.
package news

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/vecindario/backend/internal/adapter/postgres"
	"github.com/vecindario/backend/internal/domain"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const newsColumns = "id, title, summary, body, category, status, author_id, published_at, created_at, updated_at"

// Repo provides news persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new news repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a news item by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.NewsItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `SELECT `+newsColumns+` FROM news WHERE id = $1`, id)

	n, err := scanNews(row)
	if err != nil {
		return nil, mapError(err, "news", id)
	}
	return n, nil
}

// ListPublished returns published items, newest publication first,
// capped at limit.
func (r *Repo) ListPublished(ctx context.Context, limit int) ([]*domain.NewsItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query := builder.
		Select(newsColumns).
		From("news").
		Where(sq.Eq{"status": domain.NewsStatusPublished}).
		OrderBy("published_at DESC").
		Limit(uint64(limit))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build news query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err, "news", uuid.Nil)
	}
	defer rows.Close()

	var items []*domain.NewsItem
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, mapError(err, "news", uuid.Nil)
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "news", uuid.Nil)
	}

	return items, nil
}

// Create inserts a news item and returns the persisted row.
func (r *Repo) Create(ctx context.Context, n *domain.NewsItem) (*domain.NewsItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`INSERT INTO news (id, title, summary, body, category, status, author_id, published_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		 RETURNING `+newsColumns,
		n.ID, n.Title, n.Summary, n.Body, n.Category, n.Status, n.AuthorID, n.PublishedAt)

	created, err := scanNews(row)
	if err != nil {
		return nil, mapError(err, "news", n.ID)
	}
	return created, nil
}

func scanNews(row pgx.Row) (*domain.NewsItem, error) {
	var n domain.NewsItem
	err := row.Scan(
		&n.ID, &n.Title, &n.Summary, &n.Body, &n.Category, &n.Status,
		&n.AuthorID, &n.PublishedAt, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
