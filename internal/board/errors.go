// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BoardKeep Contributors

package board

import "errors"

// Sentinel errors for board operations.
var (
	// ErrNotFound is returned when a project or todo does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the acting user does not own the
	// entity being read or mutated.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation is returned when a required field is missing or has
	// an unsupported value.
	ErrValidation = errors.New("validation failed")
)
