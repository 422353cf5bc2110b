// Package user implements account registration, login and lookup.
package user

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/konjug-backend/internal/domain"
)

// userRepo defines the user repository interface needed by user service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	DeleteByEmail(ctx context.Context, email string) (*domain.User, error)
}

// passwordHasher defines password hashing needed by user service.
type passwordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// sessionIssuer defines session token issuance needed by user service.
type sessionIssuer interface {
	GenerateSessionToken(userID uuid.UUID) (string, time.Time, error)
}

// Service implements account operations.
type Service struct {
	log      *slog.Logger
	users    userRepo
	hasher   passwordHasher
	sessions sessionIssuer
	now      func() time.Time
}

// NewService creates a new user service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	hasher passwordHasher,
	sessions sessionIssuer,
) *Service {
	return &Service{
		log:      logger.With("service", "user"),
		users:    users,
		hasher:   hasher,
		sessions: sessions,
		now:      time.Now,
	}
}
