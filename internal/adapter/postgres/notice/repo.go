// Package notice implements the community notice repository using
// PostgreSQL.
package notice

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

const noticeColumns = "id, title, message, priority, status, author_id, starts_at, ends_at, created_at, updated_at"

// Repo provides notice persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new notice repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a notice by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notice, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, `SELECT `+noticeColumns+` FROM notices WHERE id = $1`, id)

	n, err := scanNotice(row)
	if err != nil {
		return nil, mapError(err, "notice", id)
	}
	return n, nil
}

// ListActive returns active notices ordered by priority rank descending,
// then start date descending, capped at limit. A critica notice always
// precedes a baja one regardless of date.
func (r *Repo) ListActive(ctx context.Context, limit int) ([]*domain.Notice, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query := builder.
		Select(noticeColumns).
		From("notices").
		Where(sq.Eq{"status": domain.NoticeStatusActive}).
		OrderBy(priorityRankSQL+" DESC", "starts_at DESC").
		Limit(uint64(limit))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build notices query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err, "notices", uuid.Nil)
	}
	defer rows.Close()

	var notices []*domain.Notice
	for rows.Next() {
		n, err := scanNotice(rows)
		if err != nil {
			return nil, mapError(err, "notices", uuid.Nil)
		}
		notices = append(notices, n)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "notices", uuid.Nil)
	}

	return notices, nil
}

// Create inserts a notice and returns the persisted row.
func (r *Repo) Create(ctx context.Context, n *domain.Notice) (*domain.Notice, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`INSERT INTO notices (id, title, message, priority, status, author_id, starts_at, ends_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		 RETURNING `+noticeColumns,
		n.ID, n.Title, n.Message, n.Priority, n.Status, n.AuthorID, n.StartsAt, n.EndsAt)

	created, err := scanNotice(row)
	if err != nil {
		return nil, mapError(err, "notice", n.ID)
	}
	return created, nil
}

// priorityRankSQL mirrors domain.NoticePriority.Rank for SQL ordering.
const priorityRankSQL = `CASE priority
	WHEN 'critica' THEN 4
	WHEN 'alta' THEN 3
	WHEN 'media' THEN 2
	WHEN 'baja' THEN 1
	ELSE 0 END`

func scanNotice(row pgx.Row) (*domain.Notice, error) {
	var n domain.Notice
	err := row.Scan(
		&n.ID, &n.Title, &n.Message, &n.Priority, &n.Status,
		&n.AuthorID, &n.StartsAt, &n.EndsAt, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
