// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BoardKeep Contributors

package auth

import (
	"context"
	"regexp"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// MaxEmailLength bounds stored email addresses.
const MaxEmailLength = 254

// emailRegex is a deliberately loose shape check. Real validation happens
// when mail is delivered; this only rejects obvious garbage.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User represents a registered account.
type User struct {
	ID             ulid.ULID
	Email          string
	PasswordHash   string
	FailedAttempts int
	LockedUntil    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewUser creates a User with a fresh ID and timestamps.
// The caller supplies an already-hashed password.
func NewUser(email, passwordHash string) (*User, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, oops.Code("AUTH_EMPTY_HASH").Errorf("password hash cannot be empty")
	}
	now := time.Now()
	return &User{
		ID:           ulid.Make(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// IsLocked returns true if the account is currently locked out.
func (u *User) IsLocked() bool {
	return IsLockedOut(u.LockedUntil)
}

// RecordFailure increments the failure counter and sets lockout if the
// threshold is reached.
func (u *User) RecordFailure() {
	u.FailedAttempts++
	u.LockedUntil = ComputeLockoutTime(u.FailedAttempts)
	u.UpdatedAt = time.Now()
}

// RecordSuccess resets the failure counter and clears any lockout.
func (u *User) RecordSuccess() {
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.UpdatedAt = time.Now()
}

// ValidateEmail validates an email address for registration.
func ValidateEmail(email string) error {
	if email == "" {
		return oops.Code("AUTH_INVALID_EMAIL").Wrapf(ErrValidation, "email is required")
	}
	if len(email) > MaxEmailLength {
		return oops.Code("AUTH_INVALID_EMAIL").
			With("max", MaxEmailLength).
			Wrapf(ErrValidation, "email must be at most %d characters", MaxEmailLength)
	}
	if !emailRegex.MatchString(email) {
		return oops.Code("AUTH_INVALID_EMAIL").Wrapf(ErrValidation, "email is not a valid address")
	}
	return nil
}

// UserRepository manages user persistence.
type UserRepository interface {
	// Create stores a new user. Returns an error wrapping ErrDuplicateEmail
	// if the email is already registered (case-insensitive).
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id ulid.ULID) (*User, error)

	// GetByEmail retrieves a user by email (case-insensitive).
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update updates an existing user.
	Update(ctx context.Context, user *User) error
}
