package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Redis (rate cache)
	RedisAddr     string
	RedisPassword string

	// Exchange rate providers
	OpenExchangeAppID      string
	OpenExchangeBaseURL    string
	ExchangeRateAPIKey     string
	ExchangeRateAPIBaseURL string

	// Rate refresh behaviour
	RateRefreshInterval time.Duration
	RateCacheTTL        time.Duration
	ProviderTimeout     time.Duration

	// HTTP
	RateLimit        string // ulule/limiter format, e.g. "100-M"
	CORSAllowOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("OPEN_EXCHANGE_RATES_APP_ID", "")
	viper.SetDefault("OPEN_EXCHANGE_RATES_BASE_URL", "https://openexchangerates.org/api")
	viper.SetDefault("EXCHANGE_RATE_API_KEY", "")
	viper.SetDefault("EXCHANGE_RATE_API_BASE_URL", "https://v6.exchangerate-api.com/v6")
	viper.SetDefault("RATE_REFRESH_INTERVAL", "2h")
	viper.SetDefault("RATE_CACHE_TTL", "1h")
	viper.SetDefault("PROVIDER_TIMEOUT", "10s")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000"})

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")

	cfg.OpenExchangeAppID = viper.GetString("OPEN_EXCHANGE_RATES_APP_ID")
	cfg.OpenExchangeBaseURL = viper.GetString("OPEN_EXCHANGE_RATES_BASE_URL")
	cfg.ExchangeRateAPIKey = viper.GetString("EXCHANGE_RATE_API_KEY")
	cfg.ExchangeRateAPIBaseURL = viper.GetString("EXCHANGE_RATE_API_BASE_URL")
	if cfg.OpenExchangeAppID == "" && cfg.ExchangeRateAPIKey == "" {
		// Not fatal: the service still serves previously stored rates, and
		// refresh cycles will log each provider failure.
		log.Println("Warning: no exchange rate provider credentials configured.")
	}

	cfg.RateRefreshInterval = parseDurationOrDefault("RATE_REFRESH_INTERVAL", 2*time.Hour)
	cfg.RateCacheTTL = parseDurationOrDefault("RATE_CACHE_TTL", time.Hour)
	cfg.ProviderTimeout = parseDurationOrDefault("PROVIDER_TIMEOUT", 10*time.Second)

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowOrigins = viper.GetStringSlice("CORS_ALLOW_ORIGINS")

	return cfg, nil
}

func parseDurationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
