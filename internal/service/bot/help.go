package bot

import "context"

func (s *Service) handleStart(ctx context.Context, chatID string, _ Command) error {
	return s.reply(ctx, chatID, msgWelcome, startKeyboard())
}

func (s *Service) handleHelp(ctx context.Context, chatID string, _ Command) error {
	return s.reply(ctx, chatID, msgHelp, nil)
}

func (s *Service) handleUnrecognized(ctx context.Context, chatID string, _ Command) error {
	return s.reply(ctx, chatID, msgUnrecognized, nil)
}
