package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/konjug-backend/internal/auth"
	"github.com/heartmarshall/konjug-backend/internal/domain"
	"github.com/heartmarshall/konjug-backend/pkg/ctxutil"
)

// Session is the result of a successful login.
type Session struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// Register creates a new unverified account.
// Returns ErrAlreadyExists if the email is already taken.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	input.Email = domain.NormalizeEmail(input.Email)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("user.Register: %w", err)
	}

	created, err := s.users.Create(ctx, &domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("user.Register: %w", err)
	}

	s.log.InfoContext(ctx, "user registered", slog.String("user_id", created.ID.String()))
	return created, nil
}

// Login checks the password and issues a session token.
// Returns ErrNotFound for an unknown email and ErrInvalidPassword for a
// wrong password.
func (s *Service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	input.Email = domain.NormalizeEmail(input.Email)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	u, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("user.Login: %w", err)
	}

	if err := s.hasher.Compare(u.PasswordHash, input.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.log.InfoContext(ctx, "login rejected", slog.String("user_id", u.ID.String()))
			return nil, domain.ErrInvalidPassword
		}
		return nil, fmt.Errorf("user.Login: %w", err)
	}

	token, expiresAt, err := s.sessions.GenerateSessionToken(u.ID)
	if err != nil {
		return nil, fmt.Errorf("user.Login issue session: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in", slog.String("user_id", u.ID.String()))
	return &Session{User: u, Token: token, ExpiresAt: expiresAt}, nil
}

// Current returns the user of the authenticated session.
// Returns ErrUnauthorized if no userID is found in context or the account
// no longer exists.
func (s *Service) Current(ctx context.Context) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("user.Current: %w", err)
	}
	return u, nil
}

// GetByEmail returns the account with the given email.
func (s *Service) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, domain.NewValidationError("email", "required")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("user.GetByEmail: %w", err)
	}
	return u, nil
}

// DeleteByEmail removes the account with the given email and returns it.
func (s *Service) DeleteByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, domain.NewValidationError("email", "required")
	}

	u, err := s.users.DeleteByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("user.DeleteByEmail: %w", err)
	}

	s.log.InfoContext(ctx, "user deleted", slog.String("user_id", u.ID.String()))
	return u, nil
}
