// Package broadcast fans a content item out to every opted-in linked
// resident, one recipient at a time. Sequential delivery with a fixed
// pause between sends is the rate-limiting strategy; there is no
// concurrent fan-out.
package broadcast

import (
	"context"
	"log/slog"
	"time"

	"github.com/vecindario/backend/internal/adapter/telegram"
	"github.com/vecindario/backend/internal/config"
	"github.com/vecindario/backend/internal/domain"
)

// audienceLister resolves broadcast recipients from the directory.
type audienceLister interface {
	ListAudience(ctx context.Context, f domain.AudienceFilter) ([]*domain.User, error)
}

// messageSender delivers one message to one chat.
type messageSender interface {
	SendMessage(ctx context.Context, chatID string, text string, opts *telegram.SendOptions) (*telegram.Message, error)
}

// Result is the delivery accounting for one broadcast run.
// Total = Sent + Errors always holds; a failed recipient is counted and
// skipped, never retried and never aborting the run.
type Result struct {
	Total  int `json:"total"`
	Sent   int `json:"sent"`
	Errors int `json:"errors"`
}

// Service delivers broadcasts.
type Service struct {
	log      *slog.Logger
	users    audienceLister
	sender   messageSender
	delay    time.Duration
	telegram config.TelegramConfig
}

// NewService creates the broadcast dispatcher.
func NewService(
	logger *slog.Logger,
	users audienceLister,
	sender messageSender,
	broadcastCfg config.BroadcastConfig,
	telegramCfg config.TelegramConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "broadcast"),
		users:    users,
		sender:   sender,
		delay:    broadcastCfg.SendDelay,
		telegram: telegramCfg,
	}
}

// dispatch resolves the audience and sends text to each recipient in
// turn. With the bot unconfigured it logs and reports an empty result
// instead of failing: content publication must not depend on chat
// delivery being available.
func (s *Service) dispatch(ctx context.Context, kind, text string) (Result, error) {
	if !s.telegram.Configured() {
		s.log.WarnContext(ctx, "bot not configured, broadcast skipped", slog.String("kind", kind))
		return Result{}, nil
	}

	audience, err := s.users.ListAudience(ctx, domain.AudienceFilter{
		Role:    domain.UserRoleResident,
		Channel: domain.ChannelChat,
	})
	if err != nil {
		return Result{}, err
	}

	recipients := make([]*domain.User, 0, len(audience))
	for _, u := range audience {
		// The SQL filter is a coarse pre-selection; opt-in and linkage
		// are decided here on the parsed preference.
		if u.IsLinked() && u.Preference.Wants(domain.ChannelChat) {
			recipients = append(recipients, u)
		}
	}

	res := Result{Total: len(recipients)}
	if res.Total == 0 {
		s.log.InfoContext(ctx, "broadcast has no recipients", slog.String("kind", kind))
		return res, nil
	}

	s.log.InfoContext(ctx, "broadcast started",
		slog.String("kind", kind),
		slog.Int("recipients", res.Total),
	)

	for i, u := range recipients {
		if err := s.sendOne(ctx, u, text); err != nil {
			res.Errors++
			s.log.WarnContext(ctx, "broadcast send failed",
				slog.String("kind", kind),
				slog.String("user_id", u.ID.String()),
				slog.String("error", err.Error()),
			)
		} else {
			res.Sent++
		}

		if i < res.Total-1 {
			if err := s.pause(ctx); err != nil {
				// Shutdown mid-run: report what was delivered so far.
				return res, err
			}
		}
	}

	s.log.InfoContext(ctx, "broadcast finished",
		slog.String("kind", kind),
		slog.Int("sent", res.Sent),
		slog.Int("errors", res.Errors),
	)

	return res, nil
}

func (s *Service) sendOne(ctx context.Context, u *domain.User, text string) error {
	_, err := s.sender.SendMessage(ctx, *u.ChatID, text, &telegram.SendOptions{ParseMode: "HTML"})
	return err
}

// pause waits the configured inter-send delay, bailing out early when
// the context is cancelled.
func (s *Service) pause(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
