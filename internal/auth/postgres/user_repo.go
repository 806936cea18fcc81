// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BoardKeep Contributors

// Package postgres implements auth repositories using PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/boardkeep/boardkeep/internal/auth"
)

// db abstracts query execution so repositories work against both
// *pgxpool.Pool and pgxmock pools in tests.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository implements auth.UserRepository using PostgreSQL.
type UserRepository struct {
	db db
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db db) *UserRepository {
	return &UserRepository{db: db}
}

// Create stores a new user. A unique violation on the email index is
// reported as auth.ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, user *auth.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (
			id, email, password_hash, failed_attempts, locked_until,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		user.ID.String(),
		user.Email,
		user.PasswordHash,
		user.FailedAttempts,
		user.LockedUntil,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return oops.Code("USER_EMAIL_TAKEN").
				With("email", user.Email).
				Wrap(auth.ErrDuplicateEmail)
		}
		return oops.Code("USER_CREATE_FAILED").
			With("operation", "insert user").
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id ulid.ULID) (*auth.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, email, password_hash, failed_attempts, locked_until,
		       created_at, updated_at
		FROM users
		WHERE id = $1
	`, id.String())

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_BY_ID_FAILED").
			With("id", id.String()).
			Wrap(err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email (case-insensitive).
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, email, password_hash, failed_attempts, locked_until,
		       created_at, updated_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("email", email).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_BY_EMAIL_FAILED").
			With("email", email).
			Wrap(err)
	}
	return user, nil
}

// Update updates an existing user.
func (r *UserRepository) Update(ctx context.Context, user *auth.User) error {
	result, err := r.db.Exec(ctx, `
		UPDATE users SET
			password_hash = $2,
			failed_attempts = $3,
			locked_until = $4,
			updated_at = $5
		WHERE id = $1
	`,
		user.ID.String(),
		user.PasswordHash,
		user.FailedAttempts,
		user.LockedUntil,
		user.UpdatedAt,
	)
	if err != nil {
		return oops.Code("USER_UPDATE_FAILED").
			With("id", user.ID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("id", user.ID.String()).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

// scanUser scans a single row into a User.
// Callers handle pgx.ErrNoRows themselves.
func scanUser(row pgx.Row) (*auth.User, error) {
	var (
		idStr          string
		email          string
		passwordHash   string
		failedAttempts int
		lockedUntil    *time.Time
		createdAt      time.Time
		updatedAt      time.Time
	)

	err := row.Scan(&idStr, &email, &passwordHash, &failedAttempts, &lockedUntil, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("USER_SCAN_FAILED").Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("USER_INVALID_ID").
			With("id", idStr).
			Wrap(err)
	}

	return &auth.User{
		ID:             id,
		Email:          email,
		PasswordHash:   passwordHash,
		FailedAttempts: failedAttempts,
		LockedUntil:    lockedUntil,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}, nil
}

// Compile-time interface check.
var _ auth.UserRepository = (*UserRepository)(nil)
