// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BoardKeep Contributors

package httpapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// handleRegister creates a new account and returns a fresh token.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req credentialsRequest
	if err := decodeJSON(r, &req, false); err != nil {
		s.writeError(w, err)
		return
	}

	user, token, err := s.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.logger.Info("user registered", "user_id", user.ID.String())
	s.writeJSON(w, http.StatusCreated, tokenResponse{Token: token})
}

// handleLogin authenticates and returns a fresh token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req credentialsRequest
	if err := decodeJSON(r, &req, false); err != nil {
		s.writeError(w, err)
		return
	}

	user, token, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.logger.Info("user logged in", "user_id", user.ID.String())
	s.writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}
