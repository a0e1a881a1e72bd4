// Package dto defines the request and response bodies of the HTTP surface.
// Validation is explicit: handlers call Validate once before any core code
// sees the data, so the lifecycle manager never re-checks input.
package dto

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"jotter/internal/apperrors"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *RegisterRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	if r.Username == "" {
		return fmt.Errorf("%w: username cannot be empty", apperrors.ErrValidation)
	}
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return fmt.Errorf("%w: invalid email", apperrors.ErrValidation)
	}
	if r.Password == "" {
		return fmt.Errorf("%w: password cannot be empty", apperrors.ErrValidation)
	}
	return nil
}

type LoginCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *LoginCredentials) Validate() error {
	if c.Username == "" || c.Password == "" {
		return fmt.Errorf("%w: username and password are required", apperrors.ErrValidation)
	}
	return nil
}

// NoteInput is the body of both POST /notes and PUT /notes/:id (full replace).
type NoteInput struct {
	Content     string  `json:"content"`
	IsCompleted bool    `json:"is_completed"`
	Tags        *string `json:"tags"`
}

func (n *NoteInput) Validate() error {
	if strings.TrimSpace(n.Content) == "" {
		return fmt.Errorf("%w: content cannot be empty", apperrors.ErrValidation)
	}
	return nil
}

type RegisterResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
