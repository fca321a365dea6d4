package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayush/storefront/backend/internal/auth"
	"github.com/ayush/storefront/backend/internal/catalog"
	"github.com/ayush/storefront/backend/internal/config"
	"github.com/ayush/storefront/backend/internal/contact"
	"github.com/ayush/storefront/backend/internal/logging"
	"github.com/ayush/storefront/backend/internal/payment"
	"github.com/ayush/storefront/backend/internal/store"
)

func main() {
	cfg := config.Load()
	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogJSON)
	ctx := context.Background()

	fatal := func(msg string, err error) {
		log.Error(msg, "err", err)
		os.Exit(1)
	}

	// ── PostgreSQL (users) ───────────────────────────────────
	pgPool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		fatal("postgres connect", err)
	}
	defer pgPool.Close()
	pgStore := store.NewPostgresStore(pgPool)
	if err := pgStore.Migrate(ctx); err != nil {
		fatal("postgres migrate", err)
	}

	// ── MongoDB (products, messages) ─────────────────────────
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		fatal("mongo connect", err)
	}
	defer mongoClient.Disconnect(ctx)
	if err := mongoClient.Ping(ctx, nil); err != nil {
		fatal("mongo ping", err)
	}
	mongoStore := store.NewMongoStore(mongoClient.Database(cfg.MongoDB))
	log.Info("connected to DB", "db", cfg.MongoDB)

	// ── Redis (catalog cache) ────────────────────────────────
	rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		fatal("redis connect", err)
	}
	defer rdb.Close()
	products := store.NewCachedCatalog(mongoStore, store.NewRedisCache(rdb), cfg.CatalogCacheTTL, log.With("component", "catalog-cache"))

	// ── MinIO (product pictures) ─────────────────────────────
	minioStore, err := store.NewMinioStore(
		ctx, cfg.MinioEndpoint, cfg.MinioAccessKey,
		cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL,
	)
	if err != nil {
		fatal("minio connect", err)
	}

	// ── Payment provider ─────────────────────────────────────
	gateway := payment.NewClient(cfg.RazorpayBaseURL, cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	// ── Handlers ─────────────────────────────────────────────
	authSvc := auth.NewService(pgStore, auth.NewBcryptHasher(0), auth.NewTokenIssuer([]byte(cfg.JWTSecret)))
	h := handlers{
		auth:    auth.NewHandler(authSvc, log.With("component", "auth")),
		catalog: catalog.NewHandler(products, minioStore, log.With("component", "catalog")),
		contact: contact.NewHandler(mongoStore, log.With("component", "contact")),
		payment: payment.NewHandler(gateway, cfg.Currency, log.With("component", "payment")),
	}

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(h, authSvc, cfg.AllowedOrigins, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		log.Info("server running", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("server error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		log.Error("shutdown", "err", err)
	}
}
