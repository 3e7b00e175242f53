package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pawsitivewalks/pawsitivewalks/internal/auth"
	"github.com/pawsitivewalks/pawsitivewalks/internal/metrics"
	"github.com/pawsitivewalks/pawsitivewalks/internal/model"
	"github.com/pawsitivewalks/pawsitivewalks/internal/repository"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// AuthService handles registration and credential checks.
// Session handling stays in the HTTP layer.
type AuthService struct {
	users   UserStore
	metrics metrics.Recorder
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, recorder metrics.Recorder) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AuthService{users: users, metrics: recorder}
}

// RegisterInput defines input for registering a user.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	email := NormalizeEmail(input.Email)
	displayName := strings.TrimSpace(input.DisplayName)

	if email == "" || input.Password == "" || displayName == "" {
		return nil, newValidationError("email, password, displayName are required")
	}
	if len(input.Password) < MinPasswordLength {
		return nil, newValidationError("password must be at least 8 characters")
	}
	if len(input.Password) > auth.MaxPasswordBytes {
		return nil, newValidationError("password must be at most 72 bytes")
	}

	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		s.metrics.IncAuthEvent("register", "failure")
		return nil, ErrEmailTaken
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           model.NewIDAt(now),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
		Role:         model.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, repository.ErrEmailExists) {
			s.metrics.IncAuthEvent("register", "failure")
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncAuthEvent("register", "success")
	return user, nil
}

// Login verifies credentials and returns the matching user.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, newValidationError("email and password are required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Spend the same bcrypt work as a real check.
			_, _ = auth.VerifyPassword(password, dummyHash())
			s.metrics.IncAuthEvent("login", "failure")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.metrics.IncAuthEvent("login", "failure")
		return nil, ErrInvalidCredentials
	}

	s.metrics.IncAuthEvent("login", "success")
	return user, nil
}

// Me returns the user bound to the current session.
func (s *AuthService) Me(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// RecordLogout counts a completed logout.
func (s *AuthService) RecordLogout() {
	s.metrics.IncAuthEvent("logout", "success")
}

var (
	dummyOnce sync.Once
	dummy     string
)

func dummyHash() string {
	dummyOnce.Do(func() {
		dummy, _ = auth.HashPassword("pawsitive-placeholder-password")
	})
	return dummy
}
