package rest

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/vecindario/backend/internal/adapter/telegram"
	"github.com/vecindario/backend/internal/config"
)

// updateHandler consumes parsed inbound updates.
type updateHandler interface {
	HandleUpdate(ctx context.Context, upd telegram.Update)
}

// WebhookHandler receives Telegram webhook deliveries.
//
// It answers 200 for every authenticated request, malformed or failing
// alike: any other status makes the platform re-deliver the update and
// a poisoned payload would then block the queue.
type WebhookHandler struct {
	bot    updateHandler
	secret string
	log    *slog.Logger
}

// NewWebhookHandler creates a WebhookHandler.
func NewWebhookHandler(bot updateHandler, cfg config.TelegramConfig, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		bot:    bot,
		secret: cfg.WebhookSecret,
		log:    logger.With("handler", "webhook"),
	}
}

// Receive handles POST /telegram/webhook.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	if !h.authenticated(r) {
		// The one non-200 case: a request that is not from the platform
		// at all.
		h.log.WarnContext(r.Context(), "webhook secret mismatch")
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var upd telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.log.WarnContext(r.Context(), "undecodable webhook payload", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusOK)
		return
	}

	h.bot.HandleUpdate(r.Context(), upd)
	w.WriteHeader(http.StatusOK)
}

// authenticated checks the secret token header Telegram echoes back on
// every delivery. With no secret configured every request passes.
func (h *WebhookHandler) authenticated(r *http.Request) bool {
	if h.secret == "" {
		return true
	}
	got := r.Header.Get("X-Telegram-Bot-Api-Secret-Token")
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) == 1
}
