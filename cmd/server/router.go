package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ayush/storefront/backend/internal/auth"
	"github.com/ayush/storefront/backend/internal/catalog"
	"github.com/ayush/storefront/backend/internal/contact"
	"github.com/ayush/storefront/backend/internal/middleware"
	"github.com/ayush/storefront/backend/internal/payment"
)

type handlers struct {
	auth    *auth.Handler
	catalog *catalog.Handler
	contact *contact.Handler
	payment *payment.Handler
}

func newRouter(h handlers, sessions middleware.TokenVerifier, allowedOrigins []string, log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Catalog
	r.Get("/products", h.catalog.List)
	r.Get("/products/{id}", h.catalog.Get)
	r.Put("/products/{id}", h.catalog.Update)
	r.Post("/newProduct", h.catalog.Create)
	r.With(middleware.RequireAuth(sessions)).Post("/products/{id}/picture", h.catalog.UploadPicture)
	r.Get("/pictures/*", h.catalog.Picture)

	// Contact form
	r.Post("/messages", h.contact.Submit)

	// Auth
	r.Post("/signup", h.auth.Signup)
	r.Post("/login", h.auth.Login)
	r.Get("/logout", h.auth.Logout)
	r.With(middleware.RequireAuth(sessions)).Get("/me", h.auth.Me)

	// Payments
	r.Post("/order", h.payment.CreateOrder)
	r.Post("/payment", h.payment.ConfirmPayment)

	return r
}
