package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port            string
	PostgresDSN     string
	MongoURI        string
	MongoDB         string
	RedisAddr       string
	RedisPassword   string
	CatalogCacheTTL time.Duration
	MinioEndpoint   string
	MinioAccessKey  string
	MinioSecretKey  string
	MinioBucket     string
	MinioUseSSL     bool

	JWTSecret string

	RazorpayKeyID     string
	RazorpayKeySecret string
	RazorpayBaseURL   string
	Currency          string

	AllowedOrigins []string
	LogLevel       string
	LogJSON        bool
}

// Load reads an optional .env file and then builds the config from the
// process environment. Variables already set in the environment win over
// the file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:              getenv("PORT", "8080"),
		PostgresDSN:       getenv("POSTGRES_DSN", ""),
		MongoURI:          getenv("MONGO_URL", getenv("MONGO_URI", "")),
		MongoDB:           getenv("MONGO_DB", "storefront"),
		RedisAddr:         getenv("REDIS_ADDR", "redis:6379"),
		RedisPassword:     getenv("REDIS_PASSWORD", ""),
		CatalogCacheTTL:   getduration("CATALOG_CACHE_TTL", 5*time.Minute),
		MinioEndpoint:     getenv("MINIO_ENDPOINT", "minio:9000"),
		MinioAccessKey:    getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey:    getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:       getenv("MINIO_BUCKET", "product-pictures"),
		MinioUseSSL:       getenv("MINIO_USE_SSL", "false") == "true",
		JWTSecret:         getenv("JWT_SECRET", "mySecret"),
		RazorpayKeyID:     getenv("RAZOR_KEY", ""),
		RazorpayKeySecret: getenv("RAZOR_KEY_SECRET", ""),
		RazorpayBaseURL:   getenv("RAZOR_BASE_URL", "https://api.razorpay.com"),
		Currency:          getenv("PAYMENT_CURRENCY", "INR"),
		AllowedOrigins:    splitList(getenv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		LogJSON:           getenv("LOG_JSON", "false") == "true",
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getduration parses a Go duration string; malformed values fall back.
func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
