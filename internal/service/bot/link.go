package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"

	"github.com/vecindario/backend/internal/domain"
)

// handleLink binds the chat handle to the resident account whose
// national ID matches the command argument.
//
// A missing account and an ineligible (pending/rejected/inactive) one
// produce the same reply: the handler must not leak which case occurred.
// The update is keyed by user ID, so re-linking from a new chat handle
// overwrites the old one; any other row holding this handle is released
// inside the same transaction.
func (s *Service) handleLink(ctx context.Context, chatID string, cmd Command) error {
	nationalID := cmd.Arg
	if nationalID == "" {
		return s.reply(ctx, chatID, msgLinkUsage, nil)
	}

	user, err := s.users.FindActiveByNationalID(ctx, nationalID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.reply(ctx, chatID, msgLinkNotFound, nil)
		}
		return fmt.Errorf("find by national id: %w", err)
	}

	pref := user.Preference.With(domain.ChannelChat)

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		released, err := s.users.ReleaseChatIdentity(ctx, chatID, user.ID)
		if err != nil {
			return fmt.Errorf("release chat identity: %w", err)
		}
		if released > 0 {
			s.log.WarnContext(ctx, "chat handle reassigned",
				slog.String("chat_id", chatID),
				slog.Int("released", released),
			)
		}
		if err := s.users.SetChatIdentity(ctx, user.ID, chatID, pref); err != nil {
			return fmt.Errorf("set chat identity: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "account linked",
		slog.String("user_id", user.ID.String()),
		slog.String("chat_id", chatID),
	)

	text := fmt.Sprintf(
		"✅ Cuenta vinculada.\n\n<b>%s</b>\nPreferencias: %s\n\nYa recibirás avisos y noticias por este chat.",
		html.EscapeString(user.Name), pref.Label(),
	)
	return s.reply(ctx, chatID, text, nil)
}

// handleUnlink asks for confirmation via inline buttons. The pending
// state lives entirely in the chat UI; a cancel press simply means no
// unlink handler ever runs.
func (s *Service) handleUnlink(ctx context.Context, chatID string, _ Command) error {
	if _, err := s.linkedUser(ctx, chatID); err != nil {
		if errors.Is(err, domain.ErrNotLinked) {
			return s.reply(ctx, chatID, msgNotLinked, nil)
		}
		return err
	}

	return s.reply(ctx, chatID, msgUnlinkPrompt, confirmKeyboard())
}

// handleUnlinkConfirm clears the chat identity and drops the chat
// channel opt-in.
func (s *Service) handleUnlinkConfirm(ctx context.Context, chatID string, _ Command) error {
	user, err := s.linkedUser(ctx, chatID)
	if err != nil {
		if errors.Is(err, domain.ErrNotLinked) {
			return s.reply(ctx, chatID, msgNotLinked, nil)
		}
		return err
	}

	pref := user.Preference.Without(domain.ChannelChat)
	if err := s.users.ClearChatIdentity(ctx, user.ID, pref); err != nil {
		return fmt.Errorf("clear chat identity: %w", err)
	}

	s.log.InfoContext(ctx, "account unlinked",
		slog.String("user_id", user.ID.String()),
		slog.String("chat_id", chatID),
	)

	return s.reply(ctx, chatID, msgUnlinkDone, nil)
}

func (s *Service) handleCancel(ctx context.Context, chatID string, _ Command) error {
	return s.reply(ctx, chatID, msgCancelled, nil)
}
