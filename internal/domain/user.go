package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account authenticated by email and password.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	IsVerified   bool
	CreatedAt    time.Time

	VerifyToken               *string
	VerifyTokenExpiry         *time.Time
	ForgotPasswordToken       *string
	ForgotPasswordTokenExpiry *time.Time
}
