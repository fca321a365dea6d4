package payment

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"

	"github.com/ayush/storefront/backend/internal/models"
	"github.com/ayush/storefront/backend/internal/respond"
)

// Gateway is the payment provider as seen by the handlers.
type Gateway interface {
	KeyID() string
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (json.RawMessage, error)
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
}

// Handler holds order and payment HTTP handlers.
type Handler struct {
	gateway  Gateway
	currency string
	log      *slog.Logger
}

func NewHandler(gateway Gateway, currency string, log *slog.Logger) *Handler {
	return &Handler{gateway: gateway, currency: currency, log: log}
}

// ToMinorUnits converts a price in major currency units to the integer
// minor units the provider expects.
func ToMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// CreateOrder opens a provider order for the posted price.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.JSON(w, http.StatusBadRequest, failure("invalid request body"))
		return
	}
	amount := ToMinorUnits(req.Price)
	if amount <= 0 {
		respond.JSON(w, http.StatusBadRequest, failure("price must be positive"))
		return
	}

	order, err := h.gateway.CreateOrder(r.Context(), amount, h.currency, req.OrderID)
	if err != nil {
		h.log.ErrorContext(r.Context(), "create payment order", "order_id", req.OrderID, "amount", amount, "err", err)
		respond.JSON(w, http.StatusBadGateway, failure("payment provider unavailable"))
		return
	}

	respond.JSON(w, http.StatusOK, models.OrderResponse{
		Success: true,
		Key:     h.gateway.KeyID(),
		Data:    order,
	})
}

// ConfirmPayment accepts a completed checkout only when its signature
// verifies against the key secret.
func (h *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req models.PaymentConfirmation
	if err := respond.Decode(r, &req); err != nil {
		respond.JSON(w, http.StatusBadRequest, failure("invalid request body"))
		return
	}

	if !h.gateway.VerifyPaymentSignature(req.OrderID, req.PaymentID, req.Signature) {
		h.log.WarnContext(r.Context(), "payment signature rejected", "order_id", req.OrderID, "payment_id", req.PaymentID)
		respond.JSON(w, http.StatusBadRequest, failure("payment verification failed"))
		return
	}

	h.log.InfoContext(r.Context(), "payment confirmed", "order_id", req.OrderID, "payment_id", req.PaymentID)
	respond.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func failure(msg string) map[string]interface{} {
	return map[string]interface{}{"success": false, "error": msg}
}
