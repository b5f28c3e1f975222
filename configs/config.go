package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	AppName     string
	DatabaseURL string
	CORSOrigins string
	LogLevel    string

	ClerkJWTKey            string
	ClerkAuthorizedParties []string
	ClerkWebhookSecret     string

	GeminiAPIKey      string
	GeminiModel       string
	GenerationTimeout time.Duration

	DailyQuota     int
	QuotaTimezone  string
	QuotaResetCron string

	RedisURL        string
	HistoryCacheTTL time.Duration

	AdminAPIKeyHash string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_NAME", "Interview Prepper")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CLERK_AUTHORIZED_PARTIES", "http://localhost:5173")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("GENERATION_TIMEOUT", "60s")
	v.SetDefault("DAILY_QUOTA", 10)
	v.SetDefault("QUOTA_TIMEZONE", "UTC")
	v.SetDefault("HISTORY_CACHE_TTL", "5m")
}

// Load reads .env (when present) and the process environment. Values in the
// environment win over .env, and both win over the defaults above.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return fromViper(v)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Port:        v.GetString("PORT"),
		AppName:     v.GetString("APP_NAME"),
		DatabaseURL: v.GetString("DATABASE_URL"),
		CORSOrigins: v.GetString("CORS_ORIGINS"),
		LogLevel:    v.GetString("LOG_LEVEL"),

		ClerkJWTKey:            v.GetString("CLERK_JWT_KEY"),
		ClerkAuthorizedParties: splitList(v.GetString("CLERK_AUTHORIZED_PARTIES")),
		ClerkWebhookSecret:     v.GetString("CLERK_WEBHOOK_SECRET"),

		GeminiAPIKey:      v.GetString("GEMINI_API_KEY"),
		GeminiModel:       v.GetString("GEMINI_MODEL"),
		GenerationTimeout: v.GetDuration("GENERATION_TIMEOUT"),

		DailyQuota:     v.GetInt("DAILY_QUOTA"),
		QuotaTimezone:  v.GetString("QUOTA_TIMEZONE"),
		QuotaResetCron: v.GetString("QUOTA_RESET_CRON"),

		RedisURL:        v.GetString("REDIS_URL"),
		HistoryCacheTTL: v.GetDuration("HISTORY_CACHE_TTL"),

		AdminAPIKeyHash: v.GetString("ADMIN_API_KEY_HASH"),
	}
}

// Location resolves QuotaTimezone, falling back to UTC for unknown names.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.QuotaTimezone)
	if err != nil {
		log.Printf("Warning: unknown QUOTA_TIMEZONE %q, using UTC", c.QuotaTimezone)
		return time.UTC
	}
	return loc
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
