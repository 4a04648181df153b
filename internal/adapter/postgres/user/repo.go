// Package user implements the resident directory repository using
// PostgreSQL. The gateway only reads directory rows and performs the
// narrow chat-identity and preference updates owned by the linking flow.
package user

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

const userColumns = "id, name, email, national_id, role, status, chat_id, notification_preference, created_at, updated_at"

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	u, err := scanUser(row)
	if err != nil {
		return nil, mapError(err, "user", id)
	}
	return u, nil
}

// GetByChatID returns the user currently holding the given chat identity.
func (r *Repo) GetByChatID(ctx context.Context, chatID string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE chat_id = $1`, chatID)

	u, err := scanUser(row)
	if err != nil {
		return nil, mapError(err, "user", uuid.Nil)
	}
	return u, nil
}

// FindActiveByNationalID returns the single active user with the given
// national ID. An inactive, pending or rejected match behaves exactly
// like no match: domain.ErrNotFound. Callers must not distinguish the
// two cases in user-facing replies.
func (r *Repo) FindActiveByNationalID(ctx context.Context, nationalID string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE national_id = $1 AND status = $2`,
		nationalID, domain.UserStatusActive)

	u, err := scanUser(row)
	if err != nil {
		return nil, mapError(err, "user", uuid.Nil)
	}
	return u, nil
}

// SetChatIdentity records the chat handle and preference on a user row.
// The update is keyed by user ID, so re-linking the same national ID from
// a new chat handle overwrites the previous one (last link wins).
func (r *Repo) SetChatIdentity(ctx context.Context, id uuid.UUID, chatID string, pref domain.NotificationPreference) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`UPDATE users SET chat_id = $1, notification_preference = $2, updated_at = now() WHERE id = $3`,
		chatID, string(pref), id)
	if err != nil {
		return mapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ClearChatIdentity removes the chat handle and stores the updated
// preference on a user row.
func (r *Repo) ClearChatIdentity(ctx context.Context, id uuid.UUID, pref domain.NotificationPreference) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`UPDATE users SET chat_id = NULL, notification_preference = $1, updated_at = now() WHERE id = $2`,
		string(pref), id)
	if err != nil {
		return mapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ReleaseChatIdentity clears the chat handle from every user other than
// keep that currently holds it, dropping their chat channel opt-in as
// well. Returns the number of rows released.
func (r *Repo) ReleaseChatIdentity(ctx context.Context, chatID string, keep uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT id, notification_preference FROM users WHERE chat_id = $1 AND id <> $2`,
		chatID, keep)
	if err != nil {
		return 0, mapError(err, "user", keep)
	}

	type holder struct {
		id   uuid.UUID
		pref string
	}
	var holders []holder
	for rows.Next() {
		var h holder
		if err := rows.Scan(&h.id, &h.pref); err != nil {
			rows.Close()
			return 0, mapError(err, "user", keep)
		}
		holders = append(holders, h)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, mapError(err, "user", keep)
	}

	for _, h := range holders {
		pref := domain.NotificationPreference(h.pref).Without(domain.ChannelChat)
		if _, err := q.Exec(ctx,
			`UPDATE users SET chat_id = NULL, notification_preference = $1, updated_at = now() WHERE id = $2`,
			string(pref), h.id); err != nil {
			return 0, mapError(err, "user", h.id)
		}
	}

	return len(holders), nil
}

// ListAudience returns active users of the given role that have a chat
// identity. Channel opt-in is re-checked in the service layer against
// the parsed preference; the SQL filter is a coarse pre-selection.
func (r *Repo) ListAudience(ctx context.Context, f domain.AudienceFilter) ([]*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query := builder.
		Select(userColumns).
		From("users").
		Where(sq.Eq{"status": domain.UserStatusActive}).
		Where("chat_id IS NOT NULL").
		OrderBy("created_at ASC")

	if f.Role != "" {
		query = query.Where(sq.Eq{"role": f.Role})
	}
	if f.Channel != "" {
		// Coarse match on the serialized set; exact membership is decided
		// by NotificationPreference.Wants on the scanned value.
		query = query.Where(sq.Like{"notification_preference": "%" + string(f.Channel) + "%"})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build audience query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err, "users", uuid.Nil)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, mapError(err, "users", uuid.Nil)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "users", uuid.Nil)
	}

	return users, nil
}

// scanUser reads one user row in userColumns order.
func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u    domain.User
		pref string
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.NationalID, &u.Role, &u.Status,
		&u.ChatID, &pref, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Preference = domain.NotificationPreference(pref)
	return &u, nil
}
