package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vecindario/backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// UserOpt mutates a seeded user before insertion.
type UserOpt func(*domain.User)

// WithStatus sets the user status.
func WithStatus(s domain.UserStatus) UserOpt {
	return func(u *domain.User) { u.Status = s }
}

// WithRole sets the user role.
func WithRole(r domain.UserRole) UserOpt {
	return func(u *domain.User) { u.Role = r }
}

// WithChatID links the user to a chat handle.
func WithChatID(chatID string) UserOpt {
	return func(u *domain.User) { u.ChatID = &chatID }
}

// WithPreference sets the serialized notification preference.
func WithPreference(p domain.NotificationPreference) UserOpt {
	return func(u *domain.User) { u.Preference = p }
}

// SeedUser creates an active resident with a unique national ID.
// Options override defaults before insertion.
func SeedUser(t *testing.T, pool *pgxpool.Pool, opts ...UserOpt) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:         uuid.New(),
		Name:       "Vecino " + suffix,
		Email:      "vecino-" + suffix + "@example.com",
		NationalID: "X" + suffix,
		Role:       domain.UserRoleResident,
		Status:     domain.UserStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(&user)
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, name, email, national_id, role, status, chat_id, notification_preference, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		user.ID, user.Name, user.Email, user.NationalID, user.Role, user.Status,
		user.ChatID, string(user.Preference), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert: %v", err)
	}

	return user
}

// SeedNews creates a published news item authored by authorID.
// publishedAt controls the ordering in ListPublished.
func SeedNews(t *testing.T, pool *pgxpool.Pool, authorID uuid.UUID, title string, publishedAt time.Time) domain.NewsItem {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	item := domain.NewsItem{
		ID:          uuid.New(),
		Title:       title,
		Summary:     "Resumen de " + title,
		Body:        "Cuerpo de " + title,
		Category:    domain.NewsCategoryGeneral,
		Status:      domain.NewsStatusPublished,
		AuthorID:    authorID,
		PublishedAt: &publishedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO news (id, title, summary, body, category, status, author_id, published_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		item.ID, item.Title, item.Summary, item.Body, item.Category, item.Status,
		item.AuthorID, item.PublishedAt, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedNews insert: %v", err)
	}

	return item
}

// SeedNotice creates an active notice authored by authorID.
func SeedNotice(t *testing.T, pool *pgxpool.Pool, authorID uuid.UUID, title string, priority domain.NoticePriority, startsAt time.Time) domain.Notice {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	notice := domain.Notice{
		ID:        uuid.New(),
		Title:     title,
		Message:   "Mensaje de " + title,
		Priority:  priority,
		Status:    domain.NoticeStatusActive,
		AuthorID:  authorID,
		StartsAt:  startsAt,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO notices (id, title, message, priority, status, author_id, starts_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		notice.ID, notice.Title, notice.Message, notice.Priority, notice.Status,
		notice.AuthorID, notice.StartsAt, notice.CreatedAt, notice.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedNotice insert: %v", err)
	}

	return notice
}
