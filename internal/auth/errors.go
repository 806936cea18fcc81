// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BoardKeep Contributors

package auth

import "errors"

// Sentinel errors for auth operations. Service and repository errors wrap
// these so callers can branch with errors.Is without depending on oops codes.
var (
	// ErrNotFound is returned when a requested user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when registering an email that is
	// already taken.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials is returned when a password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountLocked is returned when a login hits an active lockout.
	ErrAccountLocked = errors.New("account temporarily locked")

	// ErrInvalidToken is returned when a bearer token fails verification.
	ErrInvalidToken = errors.New("invalid token")

	// ErrValidation is returned when a registration field fails validation.
	ErrValidation = errors.New("validation failed")
)
