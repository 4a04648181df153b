// Package app assembles the notification gateway: configuration,
// logging, database, Telegram client, services, and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vecindario/backend/internal/adapter/postgres"
	newsrepo "github.com/vecindario/backend/internal/adapter/postgres/news"
	noticerepo "github.com/vecindario/backend/internal/adapter/postgres/notice"
	userrepo "github.com/vecindario/backend/internal/adapter/postgres/user"
	"github.com/vecindario/backend/internal/adapter/telegram"
	"github.com/vecindario/backend/internal/auth"
	"github.com/vecindario/backend/internal/config"
	"github.com/vecindario/backend/internal/service/bot"
	"github.com/vecindario/backend/internal/service/broadcast"
	"github.com/vecindario/backend/internal/service/content"
	"github.com/vecindario/backend/internal/transport/middleware"
	"github.com/vecindario/backend/internal/transport/rest"
)

const adminRequestsPerMinute = 60

// Run is the application entry point. It wires everything together,
// starts the HTTP server, and blocks until the context is cancelled,
// then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting gateway",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.Bool("bot_configured", cfg.BotConfigured()),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	users := userrepo.New(pool)
	news := newsrepo.New(pool)
	notices := noticerepo.New(pool)
	txManager := postgres.NewTxManager(pool)

	tgClient := telegram.NewClient(cfg.Telegram, logger)

	botSvc := bot.NewService(logger, users, news, notices, tgClient, txManager, cfg.Telegram)
	broadcastSvc := broadcast.NewService(logger, users, tgClient, cfg.Broadcast, cfg.Telegram)
	contentSvc := content.NewService(logger, news, notices, broadcastSvc)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := newRouter(cfg, logger, pool, jwtManager, limiter, botSvc, contentSvc, tgClient)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("stopped")
	return nil
}

// newRouter builds the HTTP routing table. The webhook endpoint carries
// its own secret check instead of bearer auth; the admin surface sits
// behind JWT auth and a per-IP rate limit.
func newRouter(
	cfg *config.Config,
	logger *slog.Logger,
	pool *pgxpool.Pool,
	jwtManager *auth.JWTManager,
	limiter *middleware.RateLimiter,
	botSvc *bot.Service,
	contentSvc *content.Service,
	tgClient *telegram.Client,
) http.Handler {
	healthHandler := rest.NewHealthHandler(pool, BuildVersion())
	webhookHandler := rest.NewWebhookHandler(botSvc, cfg.Telegram, logger)
	adminHandler := rest.NewAdminHandler(contentSvc, logger)
	webhookAdmin := rest.NewWebhookAdminHandler(tgClient, cfg.Telegram, logger)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /health/live", healthHandler.Live)
	mux.HandleFunc("GET /health/ready", healthHandler.Ready)

	mux.HandleFunc("POST /telegram/webhook", webhookHandler.Receive)

	adminChain := middleware.Chain(
		limiter.Limit(adminRequestsPerMinute),
		middleware.Auth(jwtManager),
	)
	mux.Handle("POST /admin/news", adminChain(http.HandlerFunc(adminHandler.PublishNews)))
	mux.Handle("POST /admin/notices", adminChain(http.HandlerFunc(adminHandler.PublishNotice)))
	mux.Handle("PUT /admin/telegram/webhook", adminChain(http.HandlerFunc(webhookAdmin.Register)))
	mux.Handle("DELETE /admin/telegram/webhook", adminChain(http.HandlerFunc(webhookAdmin.Unregister)))
	mux.Handle("GET /admin/telegram/webhook", adminChain(http.HandlerFunc(webhookAdmin.Status)))

	return middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(mux)
}
