package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Port              string
	StoreDriver       string
	MongoURI          string
	MongoDatabase     string
	DatabaseURL       string
	JWTSecret         string
	TokenTTL          time.Duration
	JobsPageSize      int
	BookmarksPageSize int
	CORSOrigins       []string
	RedisURL          string
	RateLimit         int
	GinMode           string
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg := &Config{
		Port:              getEnv("PORT", "5000"),
		StoreDriver:       strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
		MongoURI:          getEnv("MONGO_URI", ""),
		MongoDatabase:     getEnv("MONGO_DATABASE", "dreamFinder"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		TokenTTL:          getDuration("TOKEN_TTL", 3*time.Hour),
		JobsPageSize:      getInt("JOBS_PAGE_SIZE", 9),
		BookmarksPageSize: getInt("BOOKMARKS_PAGE_SIZE", 7),
		CORSOrigins:       getList("CORS_ORIGINS", []string{"http://localhost:5174", "https://lowly-key.surge.sh"}),
		RedisURL:          getEnv("REDIS_URL", ""),
		RateLimit:         getInt("RATE_LIMIT", 120),
		GinMode:           getEnv("GIN_MODE", ""),
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required for the mongo store")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres store")
		}
	case DriverMemory:
		if c.JWTSecret == "" {
			c.JWTSecret = "dev-only-secret"
			log.Println("JWT_SECRET not set, using a development secret")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JobsPageSize < 1 || c.BookmarksPageSize < 1 {
		return errors.New("page sizes must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
