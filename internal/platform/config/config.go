package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	StorageDriver string
	RunMigrations bool

	// Customer directory
	CustomerServiceURL    string
	CustomerLookupTimeout time.Duration

	// Optional Redis cache for customer names
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	CustomerCacheTTL time.Duration

	// Customer events
	KafkaBrokers          []string
	CustomerEventsTopic   string
	KafkaConsumerGroup    string
	ConsumeCustomerEvents bool
	EventBufferSize       int
	EventPublishTimeout   time.Duration

	RateLimit          string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	viper.SetDefault("RUN_MIGRATIONS", true)
	viper.SetDefault("CUSTOMER_SERVICE_URL", "")
	viper.SetDefault("CUSTOMER_LOOKUP_TIMEOUT", "5s")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CUSTOMER_CACHE_TTL", "10m")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("CUSTOMER_EVENTS_TOPIC", "customer-events")
	viper.SetDefault("KAFKA_CONSUMER_GROUP", "account-ledger")
	viper.SetDefault("CONSUME_CUSTOMER_EVENTS", false)
	viper.SetDefault("EVENT_BUFFER_SIZE", 256)
	viper.SetDefault("EVENT_PUBLISH_TIMEOUT", "5s")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.RunMigrations = viper.GetBool("RUN_MIGRATIONS")

	cfg.StorageDriver = strings.ToLower(viper.GetString("STORAGE_DRIVER"))
	switch cfg.StorageDriver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		log.Printf("Warning: unknown STORAGE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StorageDriver, StorageDriverPostgres)
		cfg.StorageDriver = StorageDriverPostgres
	}
	if cfg.StorageDriver == StorageDriverPostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.CustomerServiceURL = strings.TrimRight(viper.GetString("CUSTOMER_SERVICE_URL"), "/")
	cfg.CustomerLookupTimeout = durationOrDefault("CUSTOMER_LOOKUP_TIMEOUT", 5*time.Second)

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")
	cfg.CustomerCacheTTL = durationOrDefault("CUSTOMER_CACHE_TTL", 10*time.Minute)

	cfg.KafkaBrokers = splitList(viper.GetString("KAFKA_BROKERS"))
	cfg.CustomerEventsTopic = viper.GetString("CUSTOMER_EVENTS_TOPIC")
	cfg.KafkaConsumerGroup = viper.GetString("KAFKA_CONSUMER_GROUP")
	cfg.ConsumeCustomerEvents = viper.GetBool("CONSUME_CUSTOMER_EVENTS")
	if cfg.ConsumeCustomerEvents && len(cfg.KafkaBrokers) == 0 {
		log.Println("Warning: CONSUME_CUSTOMER_EVENTS is set but KAFKA_BROKERS is empty. Consumer disabled.")
		cfg.ConsumeCustomerEvents = false
	}

	cfg.EventBufferSize = viper.GetInt("EVENT_BUFFER_SIZE")
	if cfg.EventBufferSize <= 0 {
		log.Printf("Warning: Invalid value for EVENT_BUFFER_SIZE (%d). Defaulting to 256.\n", cfg.EventBufferSize)
		cfg.EventBufferSize = 256
	}
	cfg.EventPublishTimeout = durationOrDefault("EVENT_PUBLISH_TIMEOUT", 5*time.Second)

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	return cfg, nil
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		}
		return def
	}
	return d
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
