// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/konjug-backend/internal/adapter/postgres"
	"github.com/heartmarshall/konjug-backend/internal/domain"
)

const entity = "user"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var userColumns = []string{
	"id", "email", "password_hash", "is_verified", "created_at",
	"verify_token", "verify_token_expiry", "forgot_password_token", "forgot_password_token_expiry",
}

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, id.String())
}

// GetByEmail returns a user by email address.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email}, email)
}

// Create inserts a new user and returns the persisted domain.User.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	query, args, err := psql.Insert("users").
		Columns(userColumns...).
		Values(
			u.ID, u.Email, u.PasswordHash, u.IsVerified, u.CreatedAt,
			u.VerifyToken, u.VerifyTokenExpiry, u.ForgotPasswordToken, u.ForgotPasswordTokenExpiry,
		).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	created, err := scanUser(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, u.Email)
	}
	return created, nil
}

// DeleteByEmail removes the user with the given email and returns it.
func (r *Repo) DeleteByEmail(ctx context.Context, email string) (*domain.User, error) {
	query, args, err := psql.Delete("users").
		Where(squirrel.Eq{"email": email}).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delete: %w", err)
	}

	deleted, err := scanUser(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, email)
	}
	return deleted, nil
}

func (r *Repo) getOne(ctx context.Context, where squirrel.Sqlizer, key string) (*domain.User, error) {
	query, args, err := psql.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	u, err := scanUser(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, key)
	}
	return u, nil
}

func columnList() string {
	return strings.Join(userColumns, ", ")
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.IsVerified, &u.CreatedAt,
		&u.VerifyToken, &u.VerifyTokenExpiry, &u.ForgotPasswordToken, &u.ForgotPasswordTokenExpiry,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
