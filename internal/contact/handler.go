package contact

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ayush/storefront/backend/internal/models"
	"github.com/ayush/storefront/backend/internal/respond"
)

// MessageStore defines the interface for contact message persistence.
type MessageStore interface {
	CreateMessage(ctx context.Context, m *models.Message) (*models.Message, error)
}

// Handler accepts contact-form submissions.
type Handler struct {
	messages MessageStore
	log      *slog.Logger
}

func NewHandler(messages MessageStore, log *slog.Logger) *Handler {
	return &Handler{messages: messages, log: log}
}

// Submit stores a message and echoes the stored record.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.MessageRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Description == "" {
		respond.Error(w, http.StatusBadRequest, "name, email, and description are required")
		return
	}

	msg, err := h.messages.CreateMessage(r.Context(), &models.Message{
		Name:        req.Name,
		Email:       req.Email,
		Description: req.Description,
	})
	if err != nil {
		h.log.ErrorContext(r.Context(), "store message", "err", err)
		respond.Error(w, http.StatusInternalServerError, "failed to save message")
		return
	}

	h.log.InfoContext(r.Context(), "message received", "id", msg.ID.Hex(), "email", msg.Email)
	respond.JSON(w, http.StatusOK, msg)
}
