package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "LOG_LEVEL", "LEADS_STORE", "REDIS_ADDR", "SENDGRID_API_KEY", "EMAIL_PROVIDER", "RATE_LIMIT_WINDOW", "RATE_LIMIT_CONTACT", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development env by default, got %s", cfg.Env)
	}
	if cfg.RedisAddr != "" {
		t.Fatalf("expected redis disabled by default, got %s", cfg.RedisAddr)
	}
	if cfg.EmailConfigured() {
		t.Fatalf("expected email unconfigured without an api key")
	}
	if cfg.LeadsAdminEmail != "admin@spurtek.com.pk" {
		t.Fatalf("unexpected admin email %s", cfg.LeadsAdminEmail)
	}
	if cfg.RateLimitQuote != 5 || cfg.RateLimitContact != 3 || cfg.RateLimitDemo != 3 || cfg.RateLimitDownload != 10 {
		t.Fatalf("unexpected default limits: %+v", cfg)
	}
	if cfg.RateLimitWindow != time.Hour {
		t.Fatalf("expected hourly window, got %s", cfg.RateLimitWindow)
	}
	if cfg.CORSAllowedOrigins != nil {
		t.Fatalf("expected no cors origins, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LEADS_STORE", " Memory ")
	t.Setenv("DATABASE_URL", "postgres://user@host/db")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("SENDGRID_API_KEY", "sg-key")
	t.Setenv("RATE_LIMIT_CONTACT", "7")
	t.Setenv("RATE_LIMIT_WINDOW", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://spurtek.com.pk, ,https://www.spurtek.com.pk")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.IsDevelopment() {
		t.Fatalf("expected production env")
	}
	if cfg.LeadsStore != "memory" {
		t.Fatalf("expected normalized leads store, got %q", cfg.LeadsStore)
	}
	if cfg.DatabaseURL != "postgres://user@host/db" {
		t.Fatalf("expected db override, got %s", cfg.DatabaseURL)
	}
	if !cfg.RedisTLS || cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("expected redis overrides, got %s tls=%v", cfg.RedisAddr, cfg.RedisTLS)
	}
	if !cfg.EmailConfigured() {
		t.Fatalf("expected email configured with sendgrid key")
	}
	if cfg.RateLimitContact != 7 || cfg.RateLimitWindow != 30*time.Minute {
		t.Fatalf("expected limit overrides, got %d/%s", cfg.RateLimitContact, cfg.RateLimitWindow)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("expected two origins, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestEmailConfiguredSES(t *testing.T) {
	cfg := &Config{EmailProvider: "ses", EmailFromAddress: "noreply@spurtek.com.pk"}
	if !cfg.EmailConfigured() {
		t.Fatalf("expected ses configured with a sender address")
	}
}
