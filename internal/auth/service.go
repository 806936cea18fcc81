// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BoardKeep Contributors

package auth

import (
	"context"
	"errors"

	"github.com/samber/oops"
)

// dummyPasswordHash is used when a user doesn't exist so that login still
// performs a hash verification, keeping response time consistent and
// preventing timing-based email enumeration. It can never match a password.
//
//nolint:gosec // G101: intentionally fake hash, not a credential.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// Service provides registration, login, and token resolution.
type Service struct {
	users  UserRepository
	hasher PasswordHasher
	tokens *TokenIssuer
}

// NewService creates an auth Service.
func NewService(users UserRepository, hasher PasswordHasher, tokens *TokenIssuer) (*Service, error) {
	if users == nil {
		return nil, oops.Errorf("users repository is required")
	}
	if hasher == nil {
		return nil, oops.Errorf("password hasher is required")
	}
	if tokens == nil {
		return nil, oops.Errorf("token issuer is required")
	}
	return &Service{users: users, hasher: hasher, tokens: tokens}, nil
}

// Register creates a new account and returns the user with a fresh token.
// Fails with ErrDuplicateEmail if the email is already registered and
// ErrValidation if a field is missing or malformed.
func (s *Service) Register(ctx context.Context, email, password string) (*User, string, error) {
	if password == "" {
		return nil, "", ErrEmptyPassword
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	user, err := NewUser(email, hash)
	if err != nil {
		return nil, "", err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, "", oops.Code("AUTH_EMAIL_TAKEN").
				With("email", email).
				Wrap(err)
		}
		return nil, "", oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "create user").
			Wrap(err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "issue token").
			Wrap(err)
	}
	return user, token, nil
}

// Login authenticates a user and returns a fresh token.
// Fails with ErrNotFound for an unknown email, ErrInvalidCredentials for a
// wrong password, and ErrAccountLocked during an active lockout. A dummy
// hash verification runs even for unknown emails so the service-level work
// is constant regardless of whether the account exists.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	user, lookupErr := s.users.GetByEmail(ctx, email)

	targetHash := dummyPasswordHash
	userExists := false
	if lookupErr != nil {
		if !errors.Is(lookupErr, ErrNotFound) {
			return nil, "", oops.Code("AUTH_LOGIN_FAILED").
				With("operation", "get user by email").
				Wrap(lookupErr)
		}
	} else {
		targetHash = user.PasswordHash
		userExists = true
	}

	valid, verifyErr := s.hasher.Verify(password, targetHash)
	if verifyErr != nil {
		if !userExists {
			return nil, "", oops.Code("AUTH_UNKNOWN_EMAIL").With("email", email).Wrap(ErrNotFound)
		}
		return nil, "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "verify password").
			Wrap(verifyErr)
	}

	if !userExists {
		return nil, "", oops.Code("AUTH_UNKNOWN_EMAIL").With("email", email).Wrap(ErrNotFound)
	}

	if !valid {
		user.RecordFailure()
		_ = s.users.Update(ctx, user) //nolint:errcheck // Best effort
		return nil, "", oops.Code("AUTH_INVALID_CREDENTIALS").Wrapf(ErrInvalidCredentials, "invalid email or password")
	}

	// Check lockout AFTER password verification to keep timing constant.
	if user.IsLocked() {
		return nil, "", oops.Code("AUTH_ACCOUNT_LOCKED").
			With("locked_until", user.LockedUntil).
			Wrap(ErrAccountLocked)
	}

	user.RecordSuccess()

	// Upgrade the stored hash if it predates the current scheme.
	if s.hasher.NeedsUpgrade(user.PasswordHash) {
		if newHash, hashErr := s.hasher.Hash(password); hashErr == nil {
			user.PasswordHash = newHash
		}
	}

	// Login succeeds even if the bookkeeping update fails.
	_ = s.users.Update(ctx, user) //nolint:errcheck // Best effort

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "issue token").
			Wrap(err)
	}
	return user, token, nil
}

// ResolveUser verifies a bearer token and resolves it to a live user.
// Fails with ErrInvalidToken if verification fails and ErrNotFound if the
// encoded user no longer exists.
func (s *Service) ResolveUser(ctx context.Context, token string) (*User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("AUTH_USER_GONE").
				With("user_id", userID.String()).
				Wrap(err)
		}
		return nil, oops.Code("AUTH_RESOLVE_FAILED").
			With("operation", "get user by id").
			Wrap(err)
	}
	return user, nil
}
