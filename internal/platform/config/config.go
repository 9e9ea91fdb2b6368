package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string

	// MigrationsPath is the source URL passed to golang-migrate.
	MigrationsPath string

	// RedisAddr enables the Redis bootstrap cache when non-empty.
	RedisAddr     string
	RedisPassword string

	// BaseCurrency is stamped on entries that omit a currency code.
	BaseCurrency string

	// TokenCleanupInterval controls the expired API token janitor.
	TokenCleanupInterval time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("BASE_CURRENCY", "PEN")
	viper.SetDefault("TOKEN_CLEANUP_INTERVAL", "1h")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cleanupStr := viper.GetString("TOKEN_CLEANUP_INTERVAL")
	cleanupInterval, err := time.ParseDuration(cleanupStr)
	if err != nil {
		cleanupInterval = time.Hour
		log.Printf("Warning: Invalid value for TOKEN_CLEANUP_INTERVAL ('%s'). Defaulting to %s.\n", cleanupStr, cleanupInterval.String())
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.BaseCurrency = viper.GetString("BASE_CURRENCY")
	cfg.TokenCleanupInterval = cleanupInterval

	return cfg, nil
}
