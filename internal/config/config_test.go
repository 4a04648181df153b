package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Auth: AuthConfig{
			JWTSecret: "0123456789abcdef0123456789abcdef",
		},
		Broadcast: BroadcastConfig{
			SendDelay: time.Second,
		},
		Telegram: TelegramConfig{
			APIBaseURL: "https://api.telegram.org",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"short jwt secret", func(c *Config) { c.Auth.JWTSecret = "short" }, true},
		{"send delay too small", func(c *Config) { c.Broadcast.SendDelay = 10 * time.Millisecond }, true},
		{"missing api base url", func(c *Config) { c.Telegram.APIBaseURL = "" }, true},
		{"bad public url scheme", func(c *Config) { c.Telegram.PublicBaseURL = "ftp://example.org" }, true},
		{"valid public url", func(c *Config) { c.Telegram.PublicBaseURL = "https://mi-comunidad.es" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_ValidatesConfig(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DATABASE_DSN", "postgres://localhost:5432/vecindario")
	t.Setenv("AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.JWTIssuer != "vecindario" {
		t.Errorf("issuer default = %q, want %q", cfg.Auth.JWTIssuer, "vecindario")
	}

	// Load validates itself; callers need no separate Validate call.
	t.Setenv("AUTH_JWT_SECRET", "short")
	if _, err := Load(); err == nil {
		t.Error("Load accepted a config that fails validation")
	}
}

func TestPublicURLUsable(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"", false},
		{"http://localhost:8000", false},
		{"http://127.0.0.1", false},
		{"https://comunidad.test", false},
		{"https://mi-comunidad.es", true},
		{"https://portal.vecindario.app", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			tc := TelegramConfig{PublicBaseURL: tt.url}
			if got := tc.PublicURLUsable(); got != tt.want {
				t.Errorf("PublicURLUsable(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}
