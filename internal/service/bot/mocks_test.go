package bot

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/vecindario/backend/internal/adapter/telegram"
	"github.com/vecindario/backend/internal/domain"
)

var _ userDirectory = &userDirectoryMock{}

type userDirectoryMock struct {
	FindActiveByNationalIDFunc func(ctx context.Context, nationalID string) (*domain.User, error)
	GetByChatIDFunc            func(ctx context.Context, chatID string) (*domain.User, error)
	SetChatIdentityFunc        func(ctx context.Context, id uuid.UUID, chatID string, pref domain.NotificationPreference) error
	ClearChatIdentityFunc      func(ctx context.Context, id uuid.UUID, pref domain.NotificationPreference) error
	ReleaseChatIdentityFunc    func(ctx context.Context, chatID string, keep uuid.UUID) (int, error)

	mu       sync.Mutex
	setCalls []setChatIdentityCall
}

type setChatIdentityCall struct {
	ID     uuid.UUID
	ChatID string
	Pref   domain.NotificationPreference
}

func (m *userDirectoryMock) FindActiveByNationalID(ctx context.Context, nationalID string) (*domain.User, error) {
	return m.FindActiveByNationalIDFunc(ctx, nationalID)
}

func (m *userDirectoryMock) GetByChatID(ctx context.Context, chatID string) (*domain.User, error) {
	return m.GetByChatIDFunc(ctx, chatID)
}

func (m *userDirectoryMock) SetChatIdentity(ctx context.Context, id uuid.UUID, chatID string, pref domain.NotificationPreference) error {
	m.mu.Lock()
	m.setCalls = append(m.setCalls, setChatIdentityCall{ID: id, ChatID: chatID, Pref: pref})
	m.mu.Unlock()
	if m.SetChatIdentityFunc == nil {
		return nil
	}
	return m.SetChatIdentityFunc(ctx, id, chatID, pref)
}

func (m *userDirectoryMock) SetChatIdentityCalls() []setChatIdentityCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setCalls
}

func (m *userDirectoryMock) ClearChatIdentity(ctx context.Context, id uuid.UUID, pref domain.NotificationPreference) error {
	if m.ClearChatIdentityFunc == nil {
		return nil
	}
	return m.ClearChatIdentityFunc(ctx, id, pref)
}

func (m *userDirectoryMock) ReleaseChatIdentity(ctx context.Context, chatID string, keep uuid.UUID) (int, error) {
	if m.ReleaseChatIdentityFunc == nil {
		return 0, nil
	}
	return m.ReleaseChatIdentityFunc(ctx, chatID, keep)
}

var _ newsStore = &newsStoreMock{}

type newsStoreMock struct {
	ListPublishedFunc func(ctx context.Context, limit int) ([]*domain.NewsItem, error)
}

func (m *newsStoreMock) ListPublished(ctx context.Context, limit int) ([]*domain.NewsItem, error) {
	return m.ListPublishedFunc(ctx, limit)
}

var _ noticeStore = &noticeStoreMock{}

type noticeStoreMock struct {
	ListActiveFunc func(ctx context.Context, limit int) ([]*domain.Notice, error)
}

func (m *noticeStoreMock) ListActive(ctx context.Context, limit int) ([]*domain.Notice, error) {
	return m.ListActiveFunc(ctx, limit)
}

var _ messageSender = &senderMock{}

type senderMock struct {
	SendMessageFunc func(ctx context.Context, chatID string, text string, opts *telegram.SendOptions) (*telegram.Message, error)

	mu    sync.Mutex
	calls []sendCall
}

type sendCall struct {
	ChatID string
	Text   string
	Opts   *telegram.SendOptions
}

func (m *senderMock) SendMessage(ctx context.Context, chatID string, text string, opts *telegram.SendOptions) (*telegram.Message, error) {
	m.mu.Lock()
	m.calls = append(m.calls, sendCall{ChatID: chatID, Text: text, Opts: opts})
	m.mu.Unlock()
	if m.SendMessageFunc == nil {
		return &telegram.Message{MessageID: 1}, nil
	}
	return m.SendMessageFunc(ctx, chatID, text, opts)
}

func (m *senderMock) SendMessageCalls() []sendCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

var _ txManager = &txManagerMock{}

// txManagerMock runs the callback directly; the linking flow's
// transactional wrapper is exercised in the repo integration tests.
type txManagerMock struct{}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
