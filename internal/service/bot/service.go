// Package bot routes inbound chat updates to their handlers: account
// linking, profile and content queries. Every user-initiated command
// receives a reply; internal failures become a generic message plus a
// log entry and never escape to the webhook response.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/vecindario/backend/internal/adapter/telegram"
	"github.com/vecindario/backend/internal/config"
	"github.com/vecindario/backend/internal/domain"
)

// userDirectory is the directory access the gateway needs.
type userDirectory interface {
	FindActiveByNationalID(ctx context.Context, nationalID string) (*domain.User, error)
	GetByChatID(ctx context.Context, chatID string) (*domain.User, error)
	SetChatIdentity(ctx context.Context, id uuid.UUID, chatID string, pref domain.NotificationPreference) error
	ClearChatIdentity(ctx context.Context, id uuid.UUID, pref domain.NotificationPreference) error
	ReleaseChatIdentity(ctx context.Context, chatID string, keep uuid.UUID) (int, error)
}

// newsStore reads published news for the /noticias reply.
type newsStore interface {
	ListPublished(ctx context.Context, limit int) ([]*domain.NewsItem, error)
}

// noticeStore reads active notices for the /avisos reply.
type noticeStore interface {
	ListActive(ctx context.Context, limit int) ([]*domain.Notice, error)
}

// messageSender sends replies through the chat platform.
type messageSender interface {
	SendMessage(ctx context.Context, chatID string, text string, opts *telegram.SendOptions) (*telegram.Message, error)
}

// txManager wraps the linking flow's multi-row update in a transaction.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// handlerFunc handles one parsed command for one chat.
type handlerFunc func(ctx context.Context, chatID string, cmd Command) error

// Service dispatches inbound updates to command handlers.
type Service struct {
	log      *slog.Logger
	users    userDirectory
	news     newsStore
	notices  noticeStore
	sender   messageSender
	tx       txManager
	telegram config.TelegramConfig

	// handlers is the static dispatch table, built once at construction.
	handlers map[CommandKind]handlerFunc
}

// NewService creates the command gateway service.
func NewService(
	logger *slog.Logger,
	users userDirectory,
	news newsStore,
	notices noticeStore,
	sender messageSender,
	tx txManager,
	telegramCfg config.TelegramConfig,
) *Service {
	s := &Service{
		log:      logger.With("service", "bot"),
		users:    users,
		news:     news,
		notices:  notices,
		sender:   sender,
		tx:       tx,
		telegram: telegramCfg,
	}

	s.handlers = map[CommandKind]handlerFunc{
		CmdStart:         s.handleStart,
		CmdHelp:          s.handleHelp,
		CmdLink:          s.handleLink,
		CmdProfile:       s.handleProfile,
		CmdListNews:      s.handleListNews,
		CmdListNotices:   s.handleListNotices,
		CmdUnlink:        s.handleUnlink,
		CmdUnlinkConfirm: s.handleUnlinkConfirm,
		CmdCancel:        s.handleCancel,
		CmdUnrecognized:  s.handleUnrecognized,
	}

	return s
}

// HandleUpdate processes one webhook delivery. It never returns an
// error: failures are logged and answered with a generic reply so the
// platform always sees a successful webhook response and does not
// retry-storm the endpoint.
func (s *Service) HandleUpdate(ctx context.Context, upd telegram.Update) {
	chatID, cmd, ok := classify(upd)
	if !ok {
		s.log.DebugContext(ctx, "update without usable payload", slog.Int64("update_id", upd.UpdateID))
		return
	}

	s.log.InfoContext(ctx, "inbound command",
		slog.String("command", string(cmd.Kind)),
		slog.String("chat_id", chatID),
	)

	handler := s.handlers[cmd.Kind]
	if err := handler(ctx, chatID, cmd); err != nil {
		s.log.ErrorContext(ctx, "command handler failed",
			slog.String("command", string(cmd.Kind)),
			slog.String("chat_id", chatID),
			slog.String("error", err.Error()),
		)
		s.replyGenericFailure(ctx, chatID)
	}
}

// classify extracts the chat handle and parsed command from an update.
func classify(upd telegram.Update) (chatID string, cmd Command, ok bool) {
	switch {
	case upd.Message != nil:
		return strconv.FormatInt(upd.Message.Chat.ID, 10), parseText(upd.Message.Text), true
	case upd.CallbackQuery != nil && upd.CallbackQuery.Message != nil:
		return strconv.FormatInt(upd.CallbackQuery.Message.Chat.ID, 10), parseCallback(upd.CallbackQuery.Data), true
	}
	return "", Command{}, false
}

// linkedUser resolves the account bound to the chat handle, mapping a
// missing binding to ErrNotLinked.
func (s *Service) linkedUser(ctx context.Context, chatID string) (*domain.User, error) {
	user, err := s.users.GetByChatID(ctx, chatID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotLinked
		}
		return nil, fmt.Errorf("get by chat id: %w", err)
	}
	return user, nil
}

// reply sends an HTML-formatted message to the chat.
func (s *Service) reply(ctx context.Context, chatID, text string, markup *telegram.InlineKeyboardMarkup) error {
	opts := &telegram.SendOptions{ParseMode: "HTML"}
	if markup != nil {
		opts.ReplyMarkup = markup
	}
	_, err := s.sender.SendMessage(ctx, chatID, text, opts)
	return err
}

// replyGenericFailure is the last-resort reply; its own failure is only
// logged.
func (s *Service) replyGenericFailure(ctx context.Context, chatID string) {
	if err := s.reply(ctx, chatID, msgGenericFailure, nil); err != nil {
		s.log.WarnContext(ctx, "failure reply not delivered",
			slog.String("chat_id", chatID),
			slog.String("error", err.Error()),
		)
	}
}
