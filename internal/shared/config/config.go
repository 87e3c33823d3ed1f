package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all configuration for our application
type Config struct {
	// Server configuration
	Port           string
	GinMode        string
	APIVersion     string
	APIPrefix      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int

	// Database configuration
	Database DatabaseConfig

	// Redis configuration
	Redis RedisConfig

	// JWT configuration
	JWT JWTConfig

	// Rate limiting
	RateLimit RateLimitConfig

	// Pricing tariffs and bounds
	Pricing PricingConfig

	// External calendar feed
	Calendar CalendarConfig

	// Kafka quote events
	Kafka KafkaConfig

	// Quote session lifecycle
	Session SessionConfig

	// Logging
	LogLevel string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	DSN      string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string

	// TTL values for cached reference data
	CatalogTTL  time.Duration
	CalendarTTL time.Duration
}

// JWTConfig holds JWT configuration. Tokens are issued by the surrounding
// platform; this service only verifies them.
type JWTConfig struct {
	Secret string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled              bool          `json:"enabled"`
	WindowDuration       time.Duration `json:"window_duration"`
	DefaultRequests      int           `json:"default_requests"`
	CatalogRequests      int           `json:"catalog_requests"`
	QuoteRequests        int           `json:"quote_requests"`
	AvailabilityRequests int           `json:"availability_requests"`
	HealthRequests       int           `json:"health_requests"`
}

// PricingConfig holds the fixed tariffs and bounds used by the price engine
type PricingConfig struct {
	TaxRate             decimal.Decimal // e.g. 0.07
	ServiceFeeRate      decimal.Decimal // default, e.g. 0.18
	ServiceFeeRateMin   decimal.Decimal // lower bound for overrides
	ServiceFeeRateMax   decimal.Decimal // upper bound for overrides
	GuestOverageHigh    decimal.Decimal // per extra guest in high season
	GuestOverageRegular decimal.Decimal // per extra guest otherwise
	ExtraHourPrice      decimal.Decimal // default unit price for extra-duration units
	ExtraHourService    string          // catalog name of the extra-duration service
}

// CalendarConfig holds external calendar feed configuration
type CalendarConfig struct {
	BaseURL   string
	AuthToken string
	Timeout   time.Duration
}

// KafkaConfig holds quote-event publishing configuration
type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

// SessionConfig holds quote wizard session lifecycle settings
type SessionConfig struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server configuration
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		APIVersion:     getEnv("API_VERSION", "v1"),
		APIPrefix:      getEnv("API_PREFIX", "/api"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB

		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "offerly_db"),
			User:     getEnv("DB_USER", "offerly_user"),
			Password: getEnv("DB_PASSWORD", "offerly_password"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),

			CatalogTTL:  getDurationEnv("REDIS_CATALOG_TTL", 15*time.Minute),
			CalendarTTL: getDurationEnv("REDIS_CALENDAR_TTL", 2*time.Minute),
		},

		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-super-secret-jwt-key"),
		},

		RateLimit: RateLimitConfig{
			Enabled:              getBoolEnv("RATE_LIMIT_ENABLED", true),
			WindowDuration:       getDurationEnv("RATE_LIMIT_WINDOW_DURATION", 60*time.Second),
			DefaultRequests:      getIntEnv("RATE_LIMIT_DEFAULT_REQUESTS", 60),
			CatalogRequests:      getIntEnv("RATE_LIMIT_CATALOG_REQUESTS", 120),
			QuoteRequests:        getIntEnv("RATE_LIMIT_QUOTE_REQUESTS", 60),
			AvailabilityRequests: getIntEnv("RATE_LIMIT_AVAILABILITY_REQUESTS", 30),
			HealthRequests:       getIntEnv("RATE_LIMIT_HEALTH_REQUESTS", 120),
		},

		Pricing: PricingConfig{
			TaxRate:             getDecimalEnv("PRICING_TAX_RATE", "0.07"),
			ServiceFeeRate:      getDecimalEnv("PRICING_SERVICE_FEE_RATE", "0.18"),
			ServiceFeeRateMin:   getDecimalEnv("PRICING_SERVICE_FEE_RATE_MIN", "0.15"),
			ServiceFeeRateMax:   getDecimalEnv("PRICING_SERVICE_FEE_RATE_MAX", "0.18"),
			GuestOverageHigh:    getDecimalEnv("PRICING_GUEST_OVERAGE_HIGH", "80.00"),
			GuestOverageRegular: getDecimalEnv("PRICING_GUEST_OVERAGE_REGULAR", "52.00"),
			ExtraHourPrice:      getDecimalEnv("PRICING_EXTRA_HOUR_PRICE", "800.00"),
			ExtraHourService:    getEnv("PRICING_EXTRA_HOUR_SERVICE", "Extra Hour"),
		},

		Calendar: CalendarConfig{
			BaseURL:   getEnv("CALENDAR_FEED_URL", ""),
			AuthToken: getEnv("CALENDAR_FEED_TOKEN", ""),
			Timeout:   getDurationEnv("CALENDAR_FEED_TIMEOUT", 5*time.Second),
		},

		Kafka: KafkaConfig{
			Enabled: getBoolEnv("KAFKA_ENABLED", false),
			Brokers: getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:   getEnv("KAFKA_QUOTE_TOPIC", "quote-events"),
		},

		Session: SessionConfig{
			TTL:             getDurationEnv("QUOTE_SESSION_TTL", 2*time.Hour),
			CleanupInterval: getDurationEnv("QUOTE_SESSION_CLEANUP_INTERVAL", 10*time.Minute),
		},

		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}

	// Build composite values
	cfg.Database.DSN = buildDatabaseDSN(cfg.Database)
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	return cfg
}

// buildDatabaseDSN builds the database connection string
func buildDatabaseDSN(db DatabaseConfig) string {
	return "host=" + db.Host +
		" port=" + db.Port +
		" user=" + db.User +
		" password=" + db.Password +
		" dbname=" + db.Name +
		" sslmode=" + db.SSLMode
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

// getDecimalEnv gets a decimal environment variable with a fallback value.
// The fallback must be a valid decimal literal.
func getDecimalEnv(key string, fallback string) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return decimal.RequireFromString(fallback)
}

// getStringSliceEnv gets a comma-separated string environment variable as a slice
func getStringSliceEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		var result []string
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the API base path
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix + "/" + c.APIVersion
}
