package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/vecindario/backend/internal/adapter/telegram"
	"github.com/vecindario/backend/internal/config"
	"github.com/vecindario/backend/internal/transport/middleware"
)

// webhookManager is the Bot API surface for webhook registration.
type webhookManager interface {
	SetWebhook(ctx context.Context, webhookURL, secret string) error
	DeleteWebhook(ctx context.Context, dropPending bool) error
	GetWebhookInfo(ctx context.Context) (*telegram.WebhookInfo, error)
}

// WebhookAdminHandler manages the bot's webhook registration. All
// operations are admin-only.
type WebhookAdminHandler struct {
	client   webhookManager
	telegram config.TelegramConfig
	log      *slog.Logger
}

// NewWebhookAdminHandler creates a WebhookAdminHandler.
func NewWebhookAdminHandler(client webhookManager, cfg config.TelegramConfig, logger *slog.Logger) *WebhookAdminHandler {
	return &WebhookAdminHandler{
		client:   client,
		telegram: cfg,
		log:      logger.With("handler", "webhook_admin"),
	}
}

type webhookStatusResponse struct {
	URL                string `json:"url"`
	PendingUpdateCount int    `json:"pendingUpdateCount"`
	LastErrorDate      int64  `json:"lastErrorDate,omitempty"`
	LastErrorMessage   string `json:"lastErrorMessage,omitempty"`
}

// Register handles PUT /admin/telegram/webhook. The webhook URL is
// derived from the configured public base URL, never taken from the
// request.
func (h *WebhookAdminHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequireAdmin(r.Context()); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if !h.telegram.PublicURLUsable() {
		writeError(w, http.StatusConflict, "public base URL is not set to a reachable address")
		return
	}

	url := h.telegram.PublicBaseURL + "/telegram/webhook"
	if err := h.client.SetWebhook(r.Context(), url, h.telegram.WebhookSecret); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	h.log.InfoContext(r.Context(), "webhook registered", slog.String("url", url))
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "url": url})
}

// Unregister handles DELETE /admin/telegram/webhook.
func (h *WebhookAdminHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequireAdmin(r.Context()); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.client.DeleteWebhook(r.Context(), false); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	h.log.InfoContext(r.Context(), "webhook unregistered")
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Status handles GET /admin/telegram/webhook.
func (h *WebhookAdminHandler) Status(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequireAdmin(r.Context()); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	info, err := h.client.GetWebhookInfo(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, webhookStatusResponse{
		URL:                info.URL,
		PendingUpdateCount: info.PendingUpdateCount,
		LastErrorDate:      info.LastErrorDate,
		LastErrorMessage:   info.LastErrorMessage,
	})
}
