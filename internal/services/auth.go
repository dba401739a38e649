package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pminternship/internship-ai/internal/models"
)

const minPasswordLength = 6

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Name            string `json:"name"`
	Phone           string `json:"phone"`
}

func (r LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return ErrAuthRequiredFields
	}
	return nil
}

func (r SignupRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return ErrAuthRequiredFields
	}
	if r.Name == "" {
		return ErrNameRequired
	}
	if r.Password != r.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if len(r.Password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

type Authenticator interface {
	Login(ctx context.Context, req LoginRequest) (*models.SessionUser, error)
	Signup(ctx context.Context, req SignupRequest) (*models.SessionUser, error)
}

// simulatedAuthenticator accepts every validated credential after a fixed
// delay. Identity management belongs to the external backend.
type simulatedAuthenticator struct {
	delay time.Duration
}

func NewSimulatedAuthenticator(delay time.Duration) Authenticator {
	return &simulatedAuthenticator{delay: delay}
}

// Login implements Authenticator.
func (a *simulatedAuthenticator) Login(ctx context.Context, req LoginRequest) (*models.SessionUser, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	name, _, _ := strings.Cut(req.Email, "@")
	return &models.SessionUser{
		ID:    uuid.New().String(),
		Name:  name,
		Email: req.Email,
	}, nil
}

// Signup implements Authenticator.
func (a *simulatedAuthenticator) Signup(ctx context.Context, req SignupRequest) (*models.SessionUser, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	return &models.SessionUser{
		ID:    uuid.New().String(),
		Name:  req.Name,
		Email: req.Email,
	}, nil
}

func (a *simulatedAuthenticator) wait(ctx context.Context) error {
	if a.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(a.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("authentication interrupted: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
