// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BoardKeep Contributors

package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// TokenTTL is the fixed lifetime of an issued bearer token. There is no
// refresh or revocation; a token stays valid for its full window.
const TokenTTL = time.Hour

// TokenConfig configures a TokenIssuer.
type TokenConfig struct {
	// Secret is the process-wide HMAC signing secret.
	Secret string

	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// TokenIssuer issues and verifies signed, time-limited identity tokens.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

// NewTokenIssuer creates a TokenIssuer from config.
func NewTokenIssuer(cfg TokenConfig) (*TokenIssuer, error) {
	if cfg.Secret == "" {
		return nil, oops.Code("TOKEN_CONFIG_INVALID").Errorf("signing secret is required")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &TokenIssuer{secret: []byte(cfg.Secret), now: now}, nil
}

// Issue signs a token for the given user valid for TokenTTL.
func (i *TokenIssuer) Issue(userID ulid.ULID) (string, error) {
	issuedAt := i.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenTTL)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", oops.Code("TOKEN_SIGN_FAILED").
			With("user_id", userID.String()).
			Wrap(err)
	}
	return signed, nil
}

// Verify checks a token's signature and expiry and returns the encoded
// user ID. Any failure (bad signature, malformed payload, expired) wraps
// ErrInvalidToken.
func (i *TokenIssuer) Verify(token string) (ulid.ULID, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return ulid.ULID{}, oops.Code("TOKEN_INVALID").Wrapf(ErrInvalidToken, "%v", err)
	}

	userID, err := ulid.Parse(claims.Subject)
	if err != nil {
		return ulid.ULID{}, oops.Code("TOKEN_INVALID").
			With("subject", claims.Subject).
			Wrapf(ErrInvalidToken, "token subject is not a valid user id")
	}
	return userID, nil
}
