//go:build e2e

// End-to-end flows against a real PostgreSQL container and a fake
// Telegram Bot API: webhook delivery, account linking, and admin
// publication with broadcast fan-out.
//
// Run with: go test -tags e2e ./tests/e2e/
package e2e_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecindario/backend/internal/adapter/postgres"
	newsrepo "github.com/vecindario/backend/internal/adapter/postgres/news"
	noticerepo "github.com/vecindario/backend/internal/adapter/postgres/notice"
	"github.com/vecindario/backend/internal/adapter/postgres/testhelper"
	userrepo "github.com/vecindario/backend/internal/adapter/postgres/user"
	"github.com/vecindario/backend/internal/adapter/telegram"
	"github.com/vecindario/backend/internal/auth"
	"github.com/vecindario/backend/internal/config"
	"github.com/vecindario/backend/internal/domain"
	"github.com/vecindario/backend/internal/service/bot"
	"github.com/vecindario/backend/internal/service/broadcast"
	"github.com/vecindario/backend/internal/service/content"
	"github.com/vecindario/backend/internal/transport/middleware"
	"github.com/vecindario/backend/internal/transport/rest"
)

const botToken = "e2e-token"

// fakeBotAPI records sendMessage calls the way api.telegram.org would
// receive them.
type fakeBotAPI struct {
	srv *httptest.Server

	mu    sync.Mutex
	sends []sentMessage
}

type sentMessage struct {
	ChatID string
	Text   string
}

func newFakeBotAPI(t *testing.T) *fakeBotAPI {
	t.Helper()
	f := &fakeBotAPI{}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/sendMessage") {
			var req struct {
				ChatID string `json:"chat_id"`
				Text   string `json:"text"`
			}
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &req))

			f.mu.Lock()
			f.sends = append(f.sends, sentMessage{ChatID: req.ChatID, Text: req.Text})
			f.mu.Unlock()
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"ok":true,"result":{"message_id":1}}`)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeBotAPI) Sends() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sends...)
}

type gateway struct {
	handler    http.Handler
	jwtManager *auth.JWTManager
	pool       *pgxpool.Pool
	users      *userrepo.Repo
	botAPI     *fakeBotAPI
}

func newGateway(t *testing.T) *gateway {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	botAPI := newFakeBotAPI(t)

	telegramCfg := config.TelegramConfig{
		BotToken:      botToken,
		WebhookSecret: "e2e-secret",
		APIBaseURL:    botAPI.srv.URL,
		PublicBaseURL: "https://comunidad.example.org",
		Timeout:       5 * time.Second,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := userrepo.New(pool)
	news := newsrepo.New(pool)
	notices := noticerepo.New(pool)
	txManager := postgres.NewTxManager(pool)
	client := telegram.NewClient(telegramCfg, logger)

	botSvc := bot.NewService(logger, users, news, notices, client, txManager, telegramCfg)
	broadcastSvc := broadcast.NewService(logger, users, client,
		config.BroadcastConfig{SendDelay: time.Millisecond}, telegramCfg)
	contentSvc := content.NewService(logger, news, notices, broadcastSvc)

	jwtManager := auth.NewJWTManager(
		"e2e-secret-at-least-32-chars-long-000", "vecindario-e2e", time.Hour)

	webhookHandler := rest.NewWebhookHandler(botSvc, telegramCfg, logger)
	adminHandler := rest.NewAdminHandler(contentSvc, logger)

	authed := middleware.Auth(jwtManager)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /telegram/webhook", webhookHandler.Receive)
	mux.Handle("POST /admin/news", authed(http.HandlerFunc(adminHandler.PublishNews)))
	mux.Handle("POST /admin/notices", authed(http.HandlerFunc(adminHandler.PublishNotice)))

	return &gateway{
		handler:    mux,
		jwtManager: jwtManager,
		pool:       pool,
		users:      users,
		botAPI:     botAPI,
	}
}

func (g *gateway) deliverUpdate(t *testing.T, chatID int64, text string) *httptest.ResponseRecorder {
	t.Helper()
	body := fmt.Sprintf(
		`{"update_id":1,"message":{"message_id":1,"chat":{"id":%d,"type":"private"},"text":%q}}`,
		chatID, text,
	)
	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader(body))
	req.Header.Set("X-Telegram-Bot-Api-Secret-Token", "e2e-secret")
	rec := httptest.NewRecorder()
	g.handler.ServeHTTP(rec, req)
	return rec
}

func TestLinkFlow(t *testing.T) {
	g := newGateway(t)

	seeded := testhelper.SeedUser(t, g.pool)

	rec := g.deliverUpdate(t, 1042, "/vincular "+seeded.NationalID)
	require.Equal(t, http.StatusOK, rec.Code)

	linked, err := g.users.GetByChatID(context.Background(), "1042")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, linked.ID)
	assert.True(t, linked.Preference.Wants(domain.ChannelChat))

	sends := g.botAPI.Sends()
	require.NotEmpty(t, sends)
	assert.Contains(t, sends[len(sends)-1].Text, "Cuenta vinculada")
}

func TestLinkFlow_UnknownIdentifier(t *testing.T) {
	g := newGateway(t)

	rec := g.deliverUpdate(t, 1043, "/vincular 00000000Z")
	require.Equal(t, http.StatusOK, rec.Code)

	sends := g.botAPI.Sends()
	require.NotEmpty(t, sends)
	assert.Contains(t, sends[len(sends)-1].Text, "No se encontró")
}

func TestPublishNoticeBroadcasts(t *testing.T) {
	g := newGateway(t)

	testhelper.SeedUser(t, g.pool,
		testhelper.WithChatID("2042"),
		testhelper.WithPreference("email,chat"),
	)
	// Opted out: must not receive the broadcast.
	testhelper.SeedUser(t, g.pool,
		testhelper.WithChatID("2043"),
		testhelper.WithPreference("email"),
	)

	admin := testhelper.SeedUser(t, g.pool, testhelper.WithRole(domain.UserRoleAdmin))
	token, err := g.jwtManager.GenerateAccessToken(admin.ID, string(domain.UserRoleAdmin))
	require.NoError(t, err)

	body := `{"title":"Corte de agua","message":"El martes sin agua de 9 a 14.","priority":"critica"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/notices", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	g.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Broadcast broadcast.Result `json:"broadcast"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Broadcast.Sent)
	assert.Zero(t, resp.Broadcast.Errors)

	var chatIDs []string
	for _, s := range g.botAPI.Sends() {
		chatIDs = append(chatIDs, s.ChatID)
	}
	assert.Contains(t, chatIDs, "2042")
	assert.NotContains(t, chatIDs, "2043")
}

func TestPublishNews_RequiresAuth(t *testing.T) {
	g := newGateway(t)

	body := `{"title":"x","summary":"y"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/news", strings.NewReader(body))
	rec := httptest.NewRecorder()
	g.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
