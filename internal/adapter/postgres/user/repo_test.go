package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vecindario/backend/internal/adapter/postgres/testhelper"
	"github.com/vecindario/backend/internal/adapter/postgres/user"
	"github.com/vecindario/backend/internal/domain"
)

// newRepo is a test helper that sets up the DB and returns a ready Repo.
func newRepo(t *testing.T) (*user.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return user.New(pool), pool
}

func TestFindActiveByNationalID_Active(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedUser(t, pool)

	got, err := repo.FindActiveByNationalID(ctx, seeded.NationalID)
	if err != nil {
		t.Fatalf("FindActiveByNationalID: unexpected error: %v", err)
	}
	if got.ID != seeded.ID {
		t.Errorf("ID: got %v, want %v", got.ID, seeded.ID)
	}
}

func TestFindActiveByNationalID_NonActiveBehavesLikeMissing(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	// Pending, rejected and inactive matches must be indistinguishable
	// from no match at all.
	for _, status := range []domain.UserStatus{
		domain.UserStatusPending,
		domain.UserStatusRejected,
		domain.UserStatusInactive,
	} {
		seeded := testhelper.SeedUser(t, pool, testhelper.WithStatus(status))

		_, err := repo.FindActiveByNationalID(ctx, seeded.NationalID)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("status %s: got %v, want ErrNotFound", status, err)
		}
	}

	_, err := repo.FindActiveByNationalID(ctx, "no-such-id")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing id: got %v, want ErrNotFound", err)
	}
}

func TestSetChatIdentity(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedUser(t, pool, testhelper.WithPreference("email"))

	pref := seeded.Preference.With(domain.ChannelChat)
	if err := repo.SetChatIdentity(ctx, seeded.ID, "chat-123", pref); err != nil {
		t.Fatalf("SetChatIdentity: %v", err)
	}

	got, err := repo.GetByChatID(ctx, "chat-123")
	if err != nil {
		t.Fatalf("GetByChatID: %v", err)
	}
	if got.ID != seeded.ID {
		t.Errorf("ID: got %v, want %v", got.ID, seeded.ID)
	}
	if got.Preference != "email,chat" {
		t.Errorf("preference: got %q, want %q", got.Preference, "email,chat")
	}
}

func TestClearChatIdentity(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedUser(t, pool,
		testhelper.WithChatID("chat-clear-1"),
		testhelper.WithPreference("email,chat"),
	)

	pref := seeded.Preference.Without(domain.ChannelChat)
	if err := repo.ClearChatIdentity(ctx, seeded.ID, pref); err != nil {
		t.Fatalf("ClearChatIdentity: %v", err)
	}

	_, err := repo.GetByChatID(ctx, "chat-clear-1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetByChatID after clear: got %v, want ErrNotFound", err)
	}

	got, err := repo.GetByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Preference != "email" {
		t.Errorf("preference: got %q, want %q", got.Preference, "email")
	}
}

func TestReleaseChatIdentity(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	holder := testhelper.SeedUser(t, pool,
		testhelper.WithChatID("chat-shared"),
		testhelper.WithPreference("email,chat"),
	)
	claimer := testhelper.SeedUser(t, pool)

	released, err := repo.ReleaseChatIdentity(ctx, "chat-shared", claimer.ID)
	if err != nil {
		t.Fatalf("ReleaseChatIdentity: %v", err)
	}
	if released != 1 {
		t.Errorf("released: got %d, want 1", released)
	}

	got, err := repo.GetByID(ctx, holder.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ChatID != nil {
		t.Errorf("chat_id: got %v, want nil", *got.ChatID)
	}
	if got.Preference != "email" {
		t.Errorf("preference: got %q, want %q", got.Preference, "email")
	}
}

func TestListAudience(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	suffix := uuid.New().String()[:8]
	wanted := testhelper.SeedUser(t, pool,
		testhelper.WithChatID("aud-1-"+suffix),
		testhelper.WithPreference("email,chat"),
	)
	// Opted out of chat: pre-selected out by the LIKE filter.
	testhelper.SeedUser(t, pool, testhelper.WithChatID("aud-2-"+suffix), testhelper.WithPreference("email"))
	// No chat identity.
	testhelper.SeedUser(t, pool, testhelper.WithPreference("email,chat"))
	// Inactive.
	testhelper.SeedUser(t, pool,
		testhelper.WithChatID("aud-3-"+suffix),
		testhelper.WithPreference("chat"),
		testhelper.WithStatus(domain.UserStatusInactive),
	)
	// Linked and opted-in staff: excluded by the role filter.
	staff := testhelper.SeedUser(t, pool,
		testhelper.WithChatID("aud-4-"+suffix),
		testhelper.WithPreference("chat"),
		testhelper.WithRole(domain.UserRoleStaff),
	)

	users, err := repo.ListAudience(ctx, domain.AudienceFilter{
		Role:    domain.UserRoleResident,
		Channel: domain.ChannelChat,
	})
	if err != nil {
		t.Fatalf("ListAudience: %v", err)
	}

	found := false
	for _, u := range users {
		if u.ID == wanted.ID {
			found = true
		}
		if u.ID == staff.ID {
			t.Errorf("audience contains staff user %v", u.ID)
		}
		if !u.IsActive() || !u.IsLinked() || u.Role != domain.UserRoleResident {
			t.Errorf("audience contains non-eligible user %v", u.ID)
		}
	}
	if !found {
		t.Error("expected seeded opted-in user in audience")
	}
}
