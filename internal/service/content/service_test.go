package content

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vecindario/backend/internal/domain"
	"github.com/vecindario/backend/internal/service/broadcast"
)

type newsStoreMock struct {
	CreateFunc func(ctx context.Context, n *domain.NewsItem) (*domain.NewsItem, error)
}

func (m *newsStoreMock) Create(ctx context.Context, n *domain.NewsItem) (*domain.NewsItem, error) {
	return m.CreateFunc(ctx, n)
}

type noticeStoreMock struct {
	CreateFunc func(ctx context.Context, n *domain.Notice) (*domain.Notice, error)
}

func (m *noticeStoreMock) Create(ctx context.Context, n *domain.Notice) (*domain.Notice, error) {
	return m.CreateFunc(ctx, n)
}

type broadcasterMock struct {
	BroadcastNewsFunc   func(ctx context.Context, item *domain.NewsItem) (broadcast.Result, error)
	BroadcastNoticeFunc func(ctx context.Context, n *domain.Notice) (broadcast.Result, error)
}

func (m *broadcasterMock) BroadcastNews(ctx context.Context, item *domain.NewsItem) (broadcast.Result, error) {
	return m.BroadcastNewsFunc(ctx, item)
}

func (m *broadcasterMock) BroadcastNotice(ctx context.Context, n *domain.Notice) (broadcast.Result, error) {
	return m.BroadcastNoticeFunc(ctx, n)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublishNews(t *testing.T) {
	news := &newsStoreMock{
		CreateFunc: func(ctx context.Context, n *domain.NewsItem) (*domain.NewsItem, error) {
			if n.Status != domain.NewsStatusPublished {
				t.Errorf("status = %q, want published", n.Status)
			}
			if n.PublishedAt == nil {
				t.Error("expected publication timestamp")
			}
			if n.Category != domain.NewsCategoryGeneral {
				t.Errorf("category = %q, want default general", n.Category)
			}
			return n, nil
		},
	}

	var broadcasted *domain.NewsItem
	dispatcher := &broadcasterMock{
		BroadcastNewsFunc: func(ctx context.Context, item *domain.NewsItem) (broadcast.Result, error) {
			broadcasted = item
			return broadcast.Result{Total: 4, Sent: 4}, nil
		},
	}

	svc := NewService(testLogger(), news, &noticeStoreMock{}, dispatcher)
	author := uuid.New()

	created, res, err := svc.PublishNews(context.Background(), author, PublishNewsInput{
		Title:   "Nueva zona infantil",
		Summary: "Abrimos la zona infantil renovada este sábado.",
	})
	if err != nil {
		t.Fatalf("PublishNews: %v", err)
	}

	if created.AuthorID != author {
		t.Errorf("author = %s, want %s", created.AuthorID, author)
	}
	if broadcasted == nil || broadcasted.ID != created.ID {
		t.Error("broadcast did not receive the created item")
	}
	if res.Sent != 4 {
		t.Errorf("broadcast result = %+v, want 4 sent", res)
	}
}

func TestPublishNews_InvalidInputSkipsStore(t *testing.T) {
	news := &newsStoreMock{
		CreateFunc: func(ctx context.Context, n *domain.NewsItem) (*domain.NewsItem, error) {
			t.Error("store must not be called for invalid input")
			return n, nil
		},
	}
	dispatcher := &broadcasterMock{
		BroadcastNewsFunc: func(ctx context.Context, item *domain.NewsItem) (broadcast.Result, error) {
			t.Error("broadcast must not be called for invalid input")
			return broadcast.Result{}, nil
		},
	}

	svc := NewService(testLogger(), news, &noticeStoreMock{}, dispatcher)

	_, _, err := svc.PublishNews(context.Background(), uuid.New(), PublishNewsInput{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestPublishNews_BroadcastFailureDoesNotFailPublish(t *testing.T) {
	news := &newsStoreMock{
		CreateFunc: func(ctx context.Context, n *domain.NewsItem) (*domain.NewsItem, error) {
			return n, nil
		},
	}
	dispatcher := &broadcasterMock{
		BroadcastNewsFunc: func(ctx context.Context, item *domain.NewsItem) (broadcast.Result, error) {
			return broadcast.Result{Total: 2, Sent: 1, Errors: 1}, errors.New("audience query failed")
		},
	}

	svc := NewService(testLogger(), news, &noticeStoreMock{}, dispatcher)

	created, res, err := svc.PublishNews(context.Background(), uuid.New(), PublishNewsInput{
		Title:   "Título",
		Summary: "Resumen",
	})
	if err != nil {
		t.Fatalf("PublishNews: %v", err)
	}
	if created == nil {
		t.Fatal("expected created item despite broadcast failure")
	}
	if res.Errors != 1 {
		t.Errorf("broadcast result = %+v, want the partial accounting", res)
	}
}

func TestPublishNotice(t *testing.T) {
	notices := &noticeStoreMock{
		CreateFunc: func(ctx context.Context, n *domain.Notice) (*domain.Notice, error) {
			if n.Status != domain.NoticeStatusActive {
				t.Errorf("status = %q, want active", n.Status)
			}
			if n.Priority != domain.NoticePriorityMedium {
				t.Errorf("priority = %q, want default media", n.Priority)
			}
			if n.StartsAt.IsZero() {
				t.Error("expected a start timestamp")
			}
			return n, nil
		},
	}
	dispatcher := &broadcasterMock{
		BroadcastNoticeFunc: func(ctx context.Context, n *domain.Notice) (broadcast.Result, error) {
			return broadcast.Result{Total: 1, Sent: 1}, nil
		},
	}

	svc := NewService(testLogger(), &newsStoreMock{}, notices, dispatcher)

	created, res, err := svc.PublishNotice(context.Background(), uuid.New(), PublishNoticeInput{
		Title:   "Corte de agua",
		Message: "El martes no habrá agua de 9 a 14.",
	})
	if err != nil {
		t.Fatalf("PublishNotice: %v", err)
	}
	if created.EndsAt != nil {
		t.Errorf("ends at = %v, want open-ended", created.EndsAt)
	}
	if res.Sent != 1 {
		t.Errorf("broadcast result = %+v, want 1 sent", res)
	}
}

func TestPublishNotice_KeepsExplicitWindow(t *testing.T) {
	starts := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	ends := starts.Add(48 * time.Hour)

	notices := &noticeStoreMock{
		CreateFunc: func(ctx context.Context, n *domain.Notice) (*domain.Notice, error) {
			return n, nil
		},
	}
	dispatcher := &broadcasterMock{
		BroadcastNoticeFunc: func(ctx context.Context, n *domain.Notice) (broadcast.Result, error) {
			return broadcast.Result{}, nil
		},
	}

	svc := NewService(testLogger(), &newsStoreMock{}, notices, dispatcher)

	created, _, err := svc.PublishNotice(context.Background(), uuid.New(), PublishNoticeInput{
		Title:    "Obras en el garaje",
		Message:  "Acceso cerrado durante las obras.",
		Priority: domain.NoticePriorityCritical,
		StartsAt: starts,
		EndsAt:   &ends,
	})
	if err != nil {
		t.Fatalf("PublishNotice: %v", err)
	}
	if !created.StartsAt.Equal(starts) {
		t.Errorf("starts at = %v, want %v", created.StartsAt, starts)
	}
	if created.EndsAt == nil || !created.EndsAt.Equal(ends) {
		t.Errorf("ends at = %v, want %v", created.EndsAt, ends)
	}
	if created.Priority != domain.NoticePriorityCritical {
		t.Errorf("priority = %q, want critica", created.Priority)
	}
}
