package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ayush/storefront/backend/internal/models"
	"github.com/ayush/storefront/backend/internal/respond"
	"github.com/ayush/storefront/backend/internal/store"
)

// Handler holds auth-related HTTP handlers.
type Handler struct {
	svc *Service
	log *slog.Logger
}

func NewHandler(svc *Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Signup creates a new admin account and logs it in.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" || req.Email == "" {
		respond.Error(w, http.StatusBadRequest, "username, password, and email are required")
		return
	}

	user, token, err := h.svc.Signup(r.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		var dup *store.DuplicateError
		switch {
		case errors.As(err, &dup):
			respond.Text(w, http.StatusBadRequest, dup.Error())
		case errors.Is(err, ErrPasswordTooLong):
			respond.Text(w, http.StatusBadRequest, ErrPasswordTooLong.Error())
		case errors.Is(err, store.ErrValueTooLong):
			respond.Text(w, http.StatusBadRequest, "username or email is too long")
		default:
			h.log.ErrorContext(r.Context(), "signup failed", "username", req.Username, "err", err)
			respond.Error(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	setSessionCookie(w, token)
	respond.JSON(w, http.StatusOK, models.AuthResponse{Message: "New Admin Created in DB", User: user.Username})
}

// Login authenticates a user and sets the session cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, token, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrUsernameIncorrect) || errors.Is(err, ErrPasswordIncorrect) {
			respond.Text(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.ErrorContext(r.Context(), "login failed", "username", req.Username, "err", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	setSessionCookie(w, token)
	respond.JSON(w, http.StatusOK, models.AuthResponse{Message: "Logged in", User: user.Username})
}

// Logout clears the session cookie. It always succeeds.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	respond.Text(w, http.StatusOK, "Logout Successful")
}

// Me returns the currently authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	user, err := h.svc.CurrentUser(r.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		h.log.ErrorContext(r.Context(), "load current user", "user_id", userID, "err", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	respond.JSON(w, http.StatusOK, user)
}
