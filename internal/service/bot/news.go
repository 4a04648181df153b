package bot

import (
	"context"
	"fmt"
	"html"
	"strings"
)

// handleListNews replies with the two most recent published news items.
func (s *Service) handleListNews(ctx context.Context, chatID string, _ Command) error {
	items, err := s.news.ListPublished(ctx, newsReplyLimit)
	if err != nil {
		return fmt.Errorf("list published news: %w", err)
	}

	if len(items) == 0 {
		return s.reply(ctx, chatID, msgNoNews, nil)
	}

	var b strings.Builder
	b.WriteString("<b>Últimas noticias</b>\n")
	for _, item := range items {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s <b>%s</b>\n", categoryTag(item.Category), html.EscapeString(item.Title))
		fmt.Fprintf(&b, "%s\n", html.EscapeString(truncate(item.Summary, summaryBudget)))
		if item.PublishedAt != nil {
			fmt.Fprintf(&b, "<i>%s</i>\n", formatDate(*item.PublishedAt))
		}
		if link := s.deepLink("/noticias/" + item.ID.String()); link != "" {
			fmt.Fprintf(&b, "%s\n", link)
		}
	}
	if !s.telegram.PublicURLUsable() {
		b.WriteString("\nConsulta el portal de la comunidad para leer la noticia completa.")
	}

	return s.reply(ctx, chatID, b.String(), nil)
}
