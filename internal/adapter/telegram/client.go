// Package telegram is a thin client for the Telegram Bot API. Every call
// is one synchronous HTTPS round-trip; there is no caching, queuing or
// retrying — failure handling belongs to the caller.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vecindario/backend/internal/config"
	"github.com/vecindario/backend/internal/domain"
)

// APIError is a non-success response from the Bot API, carrying the
// platform's own description.
type APIError struct {
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram api error %d: %s", e.Code, e.Description)
}

// Client talks to the Telegram Bot API for a single bot token. It is
// constructed once by the process entry point and injected everywhere a
// transport is needed; there is deliberately no package-level instance.
type Client struct {
	token      string
	apiBase    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client from TelegramConfig. An empty bot token is
// allowed at construction time; calls will then fail with
// domain.ErrConfigMissing before any network I/O.
func NewClient(cfg config.TelegramConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		token:      cfg.BotToken,
		apiBase:    strings.TrimRight(cfg.APIBaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "telegram"),
	}
}

// Configured reports whether the client has a bot token.
func (c *Client) Configured() bool { return c.token != "" }

// SendMessage sends a text message to the given chat.
func (c *Client) SendMessage(ctx context.Context, chatID string, text string, opts *SendOptions) (*Message, error) {
	payload := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}
	if opts != nil {
		if opts.ParseMode != "" {
			payload["parse_mode"] = opts.ParseMode
		}
		if opts.DisableNotification {
			payload["disable_notification"] = true
		}
		if opts.ReplyMarkup != nil {
			payload["reply_markup"] = opts.ReplyMarkup
		}
	}

	var msg Message
	if err := c.call(ctx, "sendMessage", payload, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// GetMe returns the bot's own identity. Useful as a credential check.
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	var me User
	if err := c.call(ctx, "getMe", nil, &me); err != nil {
		return nil, err
	}
	return &me, nil
}

// SetWebhook registers webhookURL for update delivery. The URL must be
// HTTPS; anything else is rejected before any network call. secret, when
// non-empty, is echoed back by Telegram in the
// X-Telegram-Bot-Api-Secret-Token header of every delivery.
func (c *Client) SetWebhook(ctx context.Context, webhookURL, secret string) error {
	u, err := url.Parse(webhookURL)
	if err != nil {
		return fmt.Errorf("telegram: webhook url: %w", err)
	}
	if u.Scheme != "https" {
		return fmt.Errorf("telegram: webhook url must be https, got %q: %w", webhookURL, domain.ErrValidation)
	}

	payload := map[string]any{
		"url":             webhookURL,
		"allowed_updates": []string{"message", "callback_query"},
	}
	if secret != "" {
		payload["secret_token"] = secret
	}

	return c.call(ctx, "setWebhook", payload, nil)
}

// DeleteWebhook removes the webhook registration. With dropPending set,
// updates queued on Telegram's side are discarded as well.
func (c *Client) DeleteWebhook(ctx context.Context, dropPending bool) error {
	payload := map[string]any{
		"drop_pending_updates": dropPending,
	}
	return c.call(ctx, "deleteWebhook", payload, nil)
}

// GetWebhookInfo returns the current webhook registration state.
func (c *Client) GetWebhookInfo(ctx context.Context) (*WebhookInfo, error) {
	var info WebhookInfo
	if err := c.call(ctx, "getWebhookInfo", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// apiResponse is the uniform Bot API envelope.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
	Description string          `json:"description,omitempty"`
}

// call executes one Bot API method. result may be nil when the caller
// does not need the response payload.
func (c *Client) call(ctx context.Context, method string, payload map[string]any, result any) error {
	if c.token == "" {
		return fmt.Errorf("telegram: %s: bot token not set: %w", method, domain.ErrConfigMissing)
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("telegram: %s: encode payload: %w", method, err)
		}
		body = bytes.NewReader(data)
	}

	reqURL := fmt.Sprintf("%s/bot%s/%s", c.apiBase, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, body)
	if err != nil {
		return fmt.Errorf("telegram: %s: create request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.DebugContext(ctx, "telegram request", slog.String("method", method))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: %s: request failed: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("telegram: %s: read body: %w", method, err)
	}

	var envelope apiResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("telegram: %s: decode response (status %d): %w", method, resp.StatusCode, err)
	}

	if !envelope.OK {
		code := envelope.ErrorCode
		if code == 0 {
			code = resp.StatusCode
		}
		return fmt.Errorf("telegram: %s: %w", method, &APIError{Code: code, Description: envelope.Description})
	}

	if result != nil && len(envelope.Result) > 0 {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return fmt.Errorf("telegram: %s: decode result: %w", method, err)
		}
	}

	return nil
}
