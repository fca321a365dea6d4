package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "POSTGRES_DSN", "MONGO_URL", "MONGO_URI", "MONGO_DB",
		"REDIS_ADDR", "REDIS_PASSWORD", "CATALOG_CACHE_TTL",
		"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY", "MINIO_BUCKET", "MINIO_USE_SSL",
		"JWT_SECRET", "RAZOR_KEY", "RAZOR_KEY_SECRET", "RAZOR_BASE_URL", "PAYMENT_CURRENCY",
		"CORS_ORIGINS", "LOG_LEVEL", "LOG_JSON",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	c := Load()
	require.NotNil(t, c)

	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "storefront", c.MongoDB)
	assert.Equal(t, "redis:6379", c.RedisAddr)
	assert.Equal(t, 5*time.Minute, c.CatalogCacheTTL)
	assert.Equal(t, "product-pictures", c.MinioBucket)
	assert.False(t, c.MinioUseSSL)
	assert.Equal(t, "mySecret", c.JWTSecret)
	assert.Equal(t, "https://api.razorpay.com", c.RazorpayBaseURL)
	assert.Equal(t, "INR", c.Currency)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, c.AllowedOrigins)
	assert.Equal(t, "info", c.LogLevel)
	assert.False(t, c.LogJSON)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "5000")
	t.Setenv("MONGO_URL", "mongodb://db:27017")
	t.Setenv("RAZOR_KEY", "rzp_test_key")
	t.Setenv("RAZOR_KEY_SECRET", "shh")
	t.Setenv("CATALOG_CACHE_TTL", "30s")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("CORS_ORIGINS", " https://shop.example , ,https://admin.example")

	c := Load()

	assert.Equal(t, "5000", c.Port)
	assert.Equal(t, "mongodb://db:27017", c.MongoURI)
	assert.Equal(t, "rzp_test_key", c.RazorpayKeyID)
	assert.Equal(t, "shh", c.RazorpayKeySecret)
	assert.Equal(t, 30*time.Second, c.CatalogCacheTTL)
	assert.True(t, c.MinioUseSSL)
	assert.Equal(t, []string{"https://shop.example", "https://admin.example"}, c.AllowedOrigins)
}

func TestLoad_MongoURIFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_URI", "mongodb://legacy:27017")

	assert.Equal(t, "mongodb://legacy:27017", Load().MongoURI)
}

func TestGetduration_Malformed(t *testing.T) {
	t.Setenv("CATALOG_CACHE_TTL", "soon")

	assert.Equal(t, time.Minute, getduration("CATALOG_CACHE_TTL", time.Minute))
}
