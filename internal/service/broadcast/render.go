package broadcast

import (
	"fmt"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vecindario/backend/internal/domain"
)

const (
	summaryBudget = 100
	messageBudget = 120
)

// renderNews builds the push message for a freshly published news item.
func (s *Service) renderNews(item *domain.NewsItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s <b>Nueva noticia</b>\n\n", categoryTag(item.Category))
	fmt.Fprintf(&b, "<b>%s</b>\n", html.EscapeString(item.Title))
	fmt.Fprintf(&b, "%s\n", html.EscapeString(truncate(item.Summary, summaryBudget)))
	if item.PublishedAt != nil {
		fmt.Fprintf(&b, "<i>%s</i>\n", formatDate(*item.PublishedAt))
	}
	s.appendLink(&b, "/noticias/"+item.ID.String())
	return b.String()
}

// renderNotice builds the push message for a newly active notice.
func (s *Service) renderNotice(n *domain.Notice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s <b>Nuevo aviso · %s</b>\n\n", priorityTag(n.Priority), strings.ToUpper(string(n.Priority)))
	fmt.Fprintf(&b, "<b>%s</b>\n", html.EscapeString(n.Title))
	fmt.Fprintf(&b, "%s\n", html.EscapeString(truncate(n.Message, messageBudget)))
	fmt.Fprintf(&b, "<i>Desde el %s</i>\n", formatDate(n.StartsAt))
	s.appendLink(&b, "/avisos/"+n.ID.String())
	return b.String()
}

func (s *Service) appendLink(b *strings.Builder, path string) {
	if s.telegram.PublicURLUsable() {
		fmt.Fprintf(b, "%s%s\n", s.telegram.PublicBaseURL, path)
	} else {
		b.WriteString("Más información en el portal de la comunidad.\n")
	}
}

func truncate(s string, budget int) string {
	if utf8.RuneCountInString(s) <= budget {
		return s
	}
	runes := []rune(s)
	return string(runes[:budget]) + "…"
}

func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

func categoryTag(c domain.NewsCategory) string {
	switch c {
	case domain.NewsCategoryEvents:
		return "🎉"
	case domain.NewsCategoryMaintenance:
		return "🔧"
	case domain.NewsCategoryCommunity:
		return "🏘"
	}
	return "📰"
}

func priorityTag(p domain.NoticePriority) string {
	switch p {
	case domain.NoticePriorityCritical:
		return "🚨"
	case domain.NoticePriorityHigh:
		return "⚠️"
	case domain.NoticePriorityMedium:
		return "📌"
	}
	return "ℹ️"
}
