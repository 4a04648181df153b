package bot

import (
	"context"
	"fmt"
	"html"
	"strings"
)

// handleListNotices replies with up to five active notices, most urgent
// first.
func (s *Service) handleListNotices(ctx context.Context, chatID string, _ Command) error {
	notices, err := s.notices.ListActive(ctx, noticeReplyLimit)
	if err != nil {
		return fmt.Errorf("list active notices: %w", err)
	}

	if len(notices) == 0 {
		return s.reply(ctx, chatID, msgNoNotices, nil)
	}

	var b strings.Builder
	b.WriteString("<b>Avisos activos</b>\n")
	for _, n := range notices {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s <b>%s</b>\n", priorityTag(n.Priority), html.EscapeString(n.Title))
		fmt.Fprintf(&b, "%s\n", html.EscapeString(truncate(n.Message, messageBudget)))
		fmt.Fprintf(&b, "<i>%s · %s</i>\n", strings.ToUpper(string(n.Priority)), formatDate(n.StartsAt))
		if link := s.deepLink("/avisos/" + n.ID.String()); link != "" {
			fmt.Fprintf(&b, "%s\n", link)
		}
	}
	if !s.telegram.PublicURLUsable() {
		b.WriteString("\nConsulta el portal de la comunidad para ver todos los avisos.")
	}

	return s.reply(ctx, chatID, b.String(), nil)
}
