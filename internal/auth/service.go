package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/ayush/storefront/backend/internal/models"
	"github.com/ayush/storefront/backend/internal/store"
)

var (
	// ErrUsernameIncorrect is returned by Login when no user has the name.
	ErrUsernameIncorrect = errors.New("Username is Incorrect")

	// ErrPasswordIncorrect is returned by Login when the password does not match.
	ErrPasswordIncorrect = errors.New("Password is Incorrect")
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, username, email, hashedPw string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Service runs the signup and login flows: it hashes and checks passwords
// and mints session tokens for the resulting user.
type Service struct {
	users  UserStore
	hasher Hasher
	tokens *TokenIssuer
}

func NewService(users UserStore, hasher Hasher, tokens *TokenIssuer) *Service {
	return &Service{users: users, hasher: hasher, tokens: tokens}
}

// Signup creates a user and returns it together with a fresh session token.
// A taken username or email is reported as *store.DuplicateError.
func (s *Service) Signup(ctx context.Context, username, password, email string) (*models.User, string, error) {
	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, username, email, hashed)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login checks the credentials and returns the user with a fresh session token.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, "", ErrUsernameIncorrect
	}
	if err != nil {
		return nil, "", err
	}

	if !s.hasher.Verify(password, user.Password) {
		return nil, "", ErrPasswordIncorrect
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate resolves a session token to the user id it was issued for.
func (s *Service) Authenticate(token string) (string, error) {
	return s.tokens.Verify(token)
}

// CurrentUser loads the user for an id taken from a verified token.
func (s *Service) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetUserByID(ctx, userID)
}
