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

// TodoRepository implements board.TodoRepository using PostgreSQL.
type TodoRepository struct {
	db db
}

// NewTodoRepository creates a new TodoRepository.
func NewTodoRepository(db db) *TodoRepository {
	return &TodoRepository{db: db}
}

// Create stores a new todo.
func (r *TodoRepository) Create(ctx context.Context, todo *board.Todo) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO todos (
			id, title, description, priority, status,
			project_id, owner_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		todo.ID.String(),
		todo.Title,
		todo.Description,
		string(todo.Priority),
		string(todo.Status),
		todo.ProjectID.String(),
		todo.OwnerID.String(),
		todo.CreatedAt,
		todo.UpdatedAt,
	)
	if err != nil {
		return oops.Code("TODO_CREATE_FAILED").
			With("id", todo.ID.String()).
			Wrap(err)
	}
	return nil
}

// Get retrieves a todo by ID.
func (r *TodoRepository) Get(ctx context.Context, id ulid.ULID) (*board.Todo, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, title, description, priority, status,
		       project_id, owner_id, created_at, updated_at
		FROM todos
		WHERE id = $1
	`, id.String())

	todo, err := scanTodo(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("TODO_NOT_FOUND").
			With("id", id.String()).
			Wrap(board.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("TODO_GET_FAILED").
			With("id", id.String()).
			Wrap(err)
	}
	return todo, nil
}

// ListByProject returns the owner's todos in the given project, oldest
// first so board columns keep a stable order.
func (r *TodoRepository) ListByProject(ctx context.Context, ownerID, projectID ulid.ULID) ([]*board.Todo, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, description, priority, status,
		       project_id, owner_id, created_at, updated_at
		FROM todos
		WHERE project_id = $1 AND owner_id = $2
		ORDER BY id
	`, projectID.String(), ownerID.String())
	if err != nil {
		return nil, oops.Code("TODO_LIST_FAILED").
			With("project_id", projectID.String()).
			Wrap(err)
	}
	defer rows.Close()

	todos := []*board.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, oops.Code("TODO_LIST_FAILED").
				With("operation", "scan todo row").
				Wrap(err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("TODO_LIST_FAILED").
			With("operation", "iterate todos").
			Wrap(err)
	}
	return todos, nil
}

// Update persists changed fields of a todo. The WHERE clause is keyed on
// both id and owner_id so the write can never touch another user's todo.
func (r *TodoRepository) Update(ctx context.Context, todo *board.Todo) error {
	result, err := r.db.Exec(ctx, `
		UPDATE todos SET
			title = $3,
			description = $4,
			priority = $5,
			status = $6,
			updated_at = $7
		WHERE id = $1 AND owner_id = $2
	`,
		todo.ID.String(),
		todo.OwnerID.String(),
		todo.Title,
		todo.Description,
		string(todo.Priority),
		string(todo.Status),
		todo.UpdatedAt,
	)
	if err != nil {
		return oops.Code("TODO_UPDATE_FAILED").
			With("id", todo.ID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("TODO_NOT_FOUND").
			With("id", todo.ID.String()).
			Wrap(board.ErrNotFound)
	}
	return nil
}

// Delete removes a todo owned by the given user.
func (r *TodoRepository) Delete(ctx context.Context, ownerID, id ulid.ULID) error {
	result, err := r.db.Exec(ctx, `
		DELETE FROM todos WHERE id = $1 AND owner_id = $2
	`, id.String(), ownerID.String())
	if err != nil {
		return oops.Code("TODO_DELETE_FAILED").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("TODO_NOT_FOUND").
			With("id", id.String()).
			Wrap(board.ErrNotFound)
	}
	return nil
}

// Compile-time interface check.
var _ board.TodoRepository = (*TodoRepository)(nil)
