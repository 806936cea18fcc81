// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BoardKeep Contributors

package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/samber/oops"

	"github.com/boardkeep/boardkeep/internal/auth"
)

// bearerPrefix is the expected Authorization scheme, case-sensitive.
const bearerPrefix = "Bearer "

// ErrUnauthenticated is returned when a request carries no usable bearer
// token at all.
var ErrUnauthenticated = errors.New("unauthenticated")

type contextKey int

const userContextKey contextKey = iota

// UserFrom returns the authenticated user attached to the request context
// by the auth gate.
func UserFrom(ctx context.Context) (*auth.User, bool) {
	user, ok := ctx.Value(userContextKey).(*auth.User)
	return user, ok
}

// authenticated is the auth gate. It extracts the bearer token, verifies
// it, resolves it to a live user, and attaches that user to the request
// context. It is the sole authorization check in front of the board
// services; everything downstream trusts the resolved identity.
func (s *Server) authenticated(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		header := r.Header.Get("Authorization")
		if header == "" {
			s.recordAuthFailure("missing_token")
			s.writeError(w, oops.Code("UNAUTHENTICATED").Wrapf(ErrUnauthenticated, "missing bearer token"))
			return
		}

		token, found := strings.CutPrefix(header, bearerPrefix)
		if !found || token == "" {
			s.recordAuthFailure("malformed_header")
			s.writeError(w, oops.Code("UNAUTHENTICATED").Wrapf(ErrUnauthenticated, "authorization header must be 'Bearer <token>'"))
			return
		}

		user, err := s.auth.ResolveUser(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrInvalidToken):
				s.recordAuthFailure("invalid_token")
			case errors.Is(err, auth.ErrNotFound):
				s.recordAuthFailure("unknown_user")
			}
			s.writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next(w, r.WithContext(ctx), ps)
	}
}

// recordAuthFailure increments the gate's failure metric.
func (s *Server) recordAuthFailure(reason string) {
	if s.metrics != nil {
		s.metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
	}
}
