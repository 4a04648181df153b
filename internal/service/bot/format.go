package bot

import (
	"time"
	"unicode/utf8"

	"github.com/vecindario/backend/internal/adapter/telegram"
	"github.com/vecindario/backend/internal/domain"
)

// Reply caps. The item counts are deliberate design constants: a chat
// message competes for attention, so the reply shows only the freshest
// slice and points at the portal for the rest.
const (
	newsReplyLimit   = 2
	noticeReplyLimit = 5

	summaryBudget = 100
	messageBudget = 80
)

// truncate shortens s to at most budget runes, appending an ellipsis
// when anything was cut.
func truncate(s string, budget int) string {
	if utf8.RuneCountInString(s) <= budget {
		return s
	}
	runes := []rune(s)
	return string(runes[:budget]) + "…"
}

// formatDate renders a timestamp the way the community portal does.
func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// deepLink builds a portal URL for a content page, or "" when the
// public base URL is unset or a local placeholder. Callers append a
// plain-text hint instead of an unreachable link.
func (s *Service) deepLink(path string) string {
	if !s.telegram.PublicURLUsable() {
		return ""
	}
	return s.telegram.PublicBaseURL + path
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

func confirmKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{{
			{Text: "Sí, desvincular", CallbackData: "unlink_confirm"},
			{Text: "Cancelar", CallbackData: "cancel"},
		}},
	}
}

func startKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{
				{Text: "¿Cómo vinculo mi cuenta?", CallbackData: "link_info"},
			},
			{
				{Text: "Noticias", CallbackData: "show_news"},
				{Text: "Avisos", CallbackData: "show_notices"},
			},
		},
	}
}
