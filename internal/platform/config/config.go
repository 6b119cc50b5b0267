package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	LogLevel       slog.Level
	MigrationsPath string

	CORSAllowedOrigins []string
	RateLimit          string

	AlphaVantageAPIURL string
	AlphaVantageAPIKey string
	ProviderTimeout    time.Duration

	// KafkaEnabled is the switch for new-rate events.
	KafkaEnabled         bool
	KafkaBrokers         []string
	KafkaAddNewRateTopic string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("ALPHAVANTAGE_API_URL", "https://www.alphavantage.co/query?function=CURRENCY_EXCHANGE_RATE")
	v.SetDefault("ALPHAVANTAGE_API_KEY", "")
	v.SetDefault("PROVIDER_TIMEOUT", "10s")
	v.SetDefault("KAFKA_ENABLED", false)
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_ADD_NEW_RATE_TOPIC", "fx-rate-added")
}

// splitList parses a comma-separated value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseLogLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q: %w", raw, err)
	}
	return level, nil
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:          v.GetString("PGSQL_URL"),
		Port:                 v.GetString("PORT"),
		IsProduction:         v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:        v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:       v.GetString("MIGRATIONS_PATH"),
		CORSAllowedOrigins:   splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RateLimit:            v.GetString("RATE_LIMIT"),
		AlphaVantageAPIURL:   v.GetString("ALPHAVANTAGE_API_URL"),
		AlphaVantageAPIKey:   v.GetString("ALPHAVANTAGE_API_KEY"),
		KafkaEnabled:         v.GetBool("KAFKA_ENABLED"),
		KafkaBrokers:         splitList(v.GetString("KAFKA_BROKERS")),
		KafkaAddNewRateTopic: v.GetString("KAFKA_ADD_NEW_RATE_TOPIC"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	level, err := parseLogLevel(v.GetString("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	timeoutStr := v.GetString("PROVIDER_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("invalid PROVIDER_TIMEOUT %q", timeoutStr)
	}
	cfg.ProviderTimeout = timeout

	if cfg.AlphaVantageAPIKey == "" {
		log.Println("Warning: ALPHAVANTAGE_API_KEY not set. Provider lookups will be rejected upstream.")
	}

	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, fmt.Errorf("KAFKA_ENABLED is set but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaAddNewRateTopic == "" {
			return nil, fmt.Errorf("KAFKA_ENABLED is set but KAFKA_ADD_NEW_RATE_TOPIC is empty")
		}
	}

	return cfg, nil
}
