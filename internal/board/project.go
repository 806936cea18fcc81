// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BoardKeep Contributors

package board

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// MaxProjectNameLength bounds project names.
const MaxProjectNameLength = 120

// Project is a named container for todos, owned by exactly one user for
// its whole lifetime.
type Project struct {
	ID        ulid.ULID
	Name      string
	OwnerID   ulid.ULID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProject creates a validated Project owned by the given user.
func NewProject(ownerID ulid.ULID, name string) (*Project, error) {
	if ownerID.Compare(ulid.ULID{}) == 0 {
		return nil, oops.Code("PROJECT_INVALID_OWNER").Errorf("owner ID cannot be zero")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, oops.Code("PROJECT_INVALID_NAME").Wrapf(ErrValidation, "name is required")
	}
	if len(name) > MaxProjectNameLength {
		return nil, oops.Code("PROJECT_INVALID_NAME").
			With("max", MaxProjectNameLength).
			Wrapf(ErrValidation, "name must be at most %d characters", MaxProjectNameLength)
	}

	now := time.Now()
	return &Project{
		ID:        ulid.Make(),
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ProjectRepository manages project persistence.
type ProjectRepository interface {
	// Create stores a new project.
	Create(ctx context.Context, project *Project) error

	// Get retrieves a project by ID.
	Get(ctx context.Context, id ulid.ULID) (*Project, error)

	// ListByOwner returns all projects owned by the given user.
	ListByOwner(ctx context.Context, ownerID ulid.ULID) ([]*Project, error)
}
