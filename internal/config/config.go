package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port        string
	Env         string
	LogLevel    string
	DatabaseURL string
	// LeadsStore selects "memory" to keep submissions in process; empty uses DATABASE_URL
	LeadsStore  string

	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	// Outbound email
	EmailProvider    string
	SendGridAPIKey   string
	EmailFromAddress string
	EmailFromName    string
	LeadsAdminEmail  string

	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	CORSAllowedOrigins []string

	// Per-endpoint request budgets, all sharing one sliding window
	RateLimitQuote      int
	RateLimitDemo       int
	RateLimitContact    int
	RateLimitDownload   int
	RateLimitNewsletter int
	RateLimitWindow     time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		LeadsStore:  strings.ToLower(strings.TrimSpace(getEnv("LEADS_STORE", ""))),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		EmailProvider:    strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "sendgrid"))),
		SendGridAPIKey:   getEnv("SENDGRID_API_KEY", ""),
		EmailFromAddress: getEnv("EMAIL_FROM_ADDRESS", "noreply@spurtek.com.pk"),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "Spurtek"),
		LeadsAdminEmail:  getEnv("LEADS_ADMIN_EMAIL", "admin@spurtek.com.pk"),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),

		RateLimitQuote:      getEnvAsInt("RATE_LIMIT_QUOTE", 5),
		RateLimitDemo:       getEnvAsInt("RATE_LIMIT_DEMO", 3),
		RateLimitContact:    getEnvAsInt("RATE_LIMIT_CONTACT", 3),
		RateLimitDownload:   getEnvAsInt("RATE_LIMIT_DOWNLOAD", 10),
		RateLimitNewsletter: getEnvAsInt("RATE_LIMIT_NEWSLETTER", 5),
		RateLimitWindow:     getEnvAsDuration("RATE_LIMIT_WINDOW", time.Hour),
	}
}

// IsDevelopment reports whether the service runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "development")
}

// EmailConfigured reports whether a notification credential is present for the
// selected provider. SES relies on the ambient AWS credential chain.
func (c *Config) EmailConfigured() bool {
	switch c.EmailProvider {
	case "ses":
		return strings.TrimSpace(c.EmailFromAddress) != ""
	default:
		return strings.TrimSpace(c.SendGridAPIKey) != ""
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
