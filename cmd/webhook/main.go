// Command webhook manages the bot's webhook registration from the
// command line, for deploy scripts and local debugging.
//
// Usage:
//
//	webhook --action=register
//	webhook --action=status
//	webhook --action=unregister [--drop-pending]
//
// Requires TELEGRAM_BOT_TOKEN; register also needs PUBLIC_BASE_URL set
// to a public HTTPS address.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/vecindario/backend/internal/adapter/telegram"
	"github.com/vecindario/backend/internal/app"
	"github.com/vecindario/backend/internal/config"
)

func main() {
	action := flag.String("action", "status", "register | unregister | status")
	dropPending := flag.Bool("drop-pending", false, "drop queued updates when unregistering")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)
	client := telegram.NewClient(cfg.Telegram, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch *action {
	case "register":
		if !cfg.Telegram.PublicURLUsable() {
			log.Fatal("PUBLIC_BASE_URL must be a publicly reachable HTTPS address")
		}
		url := cfg.Telegram.PublicBaseURL + "/telegram/webhook"
		if err := client.SetWebhook(ctx, url, cfg.Telegram.WebhookSecret); err != nil {
			log.Fatalf("set webhook: %v", err)
		}
		fmt.Printf("webhook registered: %s\n", url)

	case "unregister":
		if err := client.DeleteWebhook(ctx, *dropPending); err != nil {
			log.Fatalf("delete webhook: %v", err)
		}
		fmt.Println("webhook unregistered")

	case "status":
		info, err := client.GetWebhookInfo(ctx)
		if err != nil {
			log.Fatalf("get webhook info: %v", err)
		}
		fmt.Printf("url: %s\npending updates: %d\n", info.URL, info.PendingUpdateCount)
		if info.LastErrorMessage != "" {
			fmt.Printf("last error: %s (%s)\n",
				info.LastErrorMessage,
				time.Unix(info.LastErrorDate, 0).Format(time.RFC3339),
			)
		}

	default:
		fmt.Fprintf(os.Stderr, "unknown action %q\n", *action)
		os.Exit(1)
	}
}
