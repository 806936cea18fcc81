// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BoardKeep Contributors

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/boardkeep/boardkeep/internal/board"
)

// ProjectRepository implements board.ProjectRepository using PostgreSQL.
type ProjectRepository struct {
	db db
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(db db) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create stores a new project.
func (r *ProjectRepository) Create(ctx context.Context, project *board.Project) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO projects (id, name, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		project.ID.String(),
		project.Name,
		project.OwnerID.String(),
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return oops.Code("PROJECT_CREATE_FAILED").
			With("id", project.ID.String()).
			Wrap(err)
	}
	return nil
}

// Get retrieves a project by ID.
func (r *ProjectRepository) Get(ctx context.Context, id ulid.ULID) (*board.Project, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, owner_id, created_at, updated_at
		FROM projects
		WHERE id = $1
	`, id.String())

	project, err := scanProject(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("PROJECT_NOT_FOUND").
			With("id", id.String()).
			Wrap(board.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("PROJECT_GET_FAILED").
			With("id", id.String()).
			Wrap(err)
	}
	return project, nil
}

// ListByOwner returns all projects owned by the given user, newest first.
func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID ulid.ULID) ([]*board.Project, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, owner_id, created_at, updated_at
		FROM projects
		WHERE owner_id = $1
		ORDER BY id DESC
	`, ownerID.String())
	if err != nil {
		return nil, oops.Code("PROJECT_LIST_FAILED").
			With("owner_id", ownerID.String()).
			Wrap(err)
	}
	defer rows.Close()

	projects := []*board.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, oops.Code("PROJECT_LIST_FAILED").
				With("operation", "scan project row").
				Wrap(err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("PROJECT_LIST_FAILED").
			With("operation", "iterate projects").
			Wrap(err)
	}
	return projects, nil
}

// Compile-time interface check.
var _ board.ProjectRepository = (*ProjectRepository)(nil)
