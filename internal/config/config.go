// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type (
	// Container aggregates all configuration sections.
	Container struct {
		App    *App
		HTTP   *HTTP
		DB     *DB
		Redis  *Redis
		Kafka  *Kafka
		ORS    *ORS
		Prices *Prices
		Token  *Token
	}

	// App holds general application settings.
	App struct {
		Name string
		Env  string
	}

	// HTTP holds the server settings.
	HTTP struct {
		Port           string
		AllowedOrigins []string
	}

	// DB holds the PostgreSQL connection settings.
	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
	}

	// Redis holds the cache store settings.
	Redis struct {
		Address  string
		Password string
		CacheTTL time.Duration
	}

	// Kafka holds the event broker settings.
	Kafka struct {
		Brokers []string
	}

	// ORS holds the OpenRouteService settings.
	ORS struct {
		BaseURL string
		APIKey  string
		Timeout time.Duration
	}

	// Prices holds the energy price feed settings.
	Prices struct {
		URL     string
		Timeout time.Duration
	}

	// Token holds the JWT verification settings.
	Token struct {
		Secret string
	}
)

// New loads the configuration, reading a .env file outside production.
func New() (*Container, error) {
	if os.Getenv("APP_ENV") != "production" {
		// Missing .env is fine in CI and containers.
		_ = godotenv.Load()
	}

	cfg := &Container{
		App: &App{
			Name: getEnv("APP_NAME", "mone-routing"),
			Env:  getEnv("APP_ENV", "development"),
		},
		HTTP: &HTTP{
			Port:           getEnv("HTTP_PORT", "8080"),
			AllowedOrigins: strings.Split(getEnv("HTTP_ALLOWED_ORIGINS", "*"), ","),
		},
		DB: &DB{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnv("DB_NAME", "mone_routing"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: &Redis{
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			CacheTTL: getDuration("REDIS_CACHE_TTL", 0),
		},
		Kafka: &Kafka{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		},
		ORS: &ORS{
			BaseURL: getEnv("ORS_BASE_URL", "https://api.openrouteservice.org"),
			APIKey:  os.Getenv("ORS_API_KEY"),
			Timeout: getDuration("ORS_TIMEOUT", 10*time.Second),
		},
		Prices: &Prices{
			URL:     os.Getenv("PRICE_FEED_URL"),
			Timeout: getDuration("PRICE_FEED_TIMEOUT", 5*time.Second),
		},
		Token: &Token{
			Secret: os.Getenv("TOKEN_SECRET"),
		},
	}

	if cfg.ORS.APIKey == "" {
		return nil, fmt.Errorf("ORS_API_KEY is required")
	}
	if cfg.Prices.URL == "" {
		return nil, fmt.Errorf("PRICE_FEED_URL is required")
	}
	if cfg.Token.Secret == "" {
		return nil, fmt.Errorf("TOKEN_SECRET is required")
	}
	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (db *DB) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		db.Host, db.Port, db.User, db.Password, db.Name, db.SSLMode)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
