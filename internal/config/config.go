package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the admin service.
type Config struct {
	AppName           string
	AppEnv            string
	AppPort           string
	DatabaseURL       string
	RedisURL          string
	SessionSecret     string
	SessionTTL        time.Duration
	AdminPassword     string
	AdminPasswordHash string
	PreviewTTL        time.Duration
	DefaultClassID    string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("JUKU")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "juku-seiseki-admin")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("preview.ttl", "30m")
	v.SetDefault("default.class_id", "c001")

	sessionTTL, err := time.ParseDuration(v.GetString("session.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid session ttl: %w", err)
	}

	previewTTL, err := time.ParseDuration(v.GetString("preview.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid preview ttl: %w", err)
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		DatabaseURL:       v.GetString("database.url"),
		RedisURL:          v.GetString("redis.url"),
		SessionSecret:     v.GetString("session.secret"),
		SessionTTL:        sessionTTL,
		AdminPassword:     v.GetString("admin.password"),
		AdminPasswordHash: v.GetString("admin.password_hash"),
		PreviewTTL:        previewTTL,
		DefaultClassID:    v.GetString("default.class_id"),
	}

	if cfg.SessionSecret == "" {
		return Config{}, fmt.Errorf("session secret must be provided")
	}

	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		return Config{}, fmt.Errorf("admin password or password hash must be provided")
	}

	return cfg, nil
}
