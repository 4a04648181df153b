package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Broadcast.SendDelay < 100*time.Millisecond {
		return fmt.Errorf("broadcast.send_delay must be at least 100ms (got %v)", c.Broadcast.SendDelay)
	}

	if err := c.Telegram.validate(); err != nil {
		return fmt.Errorf("telegram: %w", err)
	}

	return nil
}

func (t *TelegramConfig) validate() error {
	if t.APIBaseURL == "" {
		return fmt.Errorf("api_base_url is required")
	}
	if _, err := url.Parse(t.APIBaseURL); err != nil {
		return fmt.Errorf("api_base_url: %w", err)
	}

	if t.PublicBaseURL != "" {
		u, err := url.Parse(t.PublicBaseURL)
		if err != nil {
			return fmt.Errorf("public_base_url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("public_base_url must be http(s), got %q", t.PublicBaseURL)
		}
	}

	return nil
}

// PublicURLUsable reports whether the public base URL can be embedded in
// outbound messages. Local development placeholders are excluded so replies
// never carry links that are unreachable from a recipient's device.
func (t TelegramConfig) PublicURLUsable() bool {
	if t.PublicBaseURL == "" {
		return false
	}
	host := t.PublicBaseURL
	if u, err := url.Parse(t.PublicBaseURL); err == nil {
		host = u.Hostname()
	}
	switch {
	case host == "localhost", host == "127.0.0.1", host == "::1":
		return false
	case strings.HasSuffix(host, ".local"), strings.HasSuffix(host, ".test"):
		return false
	}
	return true
}
