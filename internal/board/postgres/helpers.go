// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BoardKeep Contributors

// Package postgres implements board repositories using PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/boardkeep/boardkeep/internal/board"
)

// db abstracts query execution so repositories work against both
// *pgxpool.Pool and pgxmock pools in tests.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanProject scans a single row into a Project.
// Callers handle pgx.ErrNoRows themselves.
func scanProject(row pgx.Row) (*board.Project, error) {
	var (
		idStr      string
		name       string
		ownerIDStr string
		createdAt  time.Time
		updatedAt  time.Time
	)

	if err := row.Scan(&idStr, &name, &ownerIDStr, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("PROJECT_SCAN_FAILED").Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("PROJECT_INVALID_ID").With("id", idStr).Wrap(err)
	}
	ownerID, err := ulid.Parse(ownerIDStr)
	if err != nil {
		return nil, oops.Code("PROJECT_INVALID_OWNER_ID").With("owner_id", ownerIDStr).Wrap(err)
	}

	return &board.Project{
		ID:        id,
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// scanTodo scans a single row into a Todo.
// Callers handle pgx.ErrNoRows themselves.
func scanTodo(row pgx.Row) (*board.Todo, error) {
	var (
		idStr        string
		title        string
		description  string
		priority     string
		status       string
		projectIDStr string
		ownerIDStr   string
		createdAt    time.Time
		updatedAt    time.Time
	)

	err := row.Scan(&idStr, &title, &description, &priority, &status, &projectIDStr, &ownerIDStr, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("TODO_SCAN_FAILED").Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("TODO_INVALID_ID").With("id", idStr).Wrap(err)
	}
	projectID, err := ulid.Parse(projectIDStr)
	if err != nil {
		return nil, oops.Code("TODO_INVALID_PROJECT_ID").With("project_id", projectIDStr).Wrap(err)
	}
	ownerID, err := ulid.Parse(ownerIDStr)
	if err != nil {
		return nil, oops.Code("TODO_INVALID_OWNER_ID").With("owner_id", ownerIDStr).Wrap(err)
	}

	return &board.Todo{
		ID:          id,
		Title:       title,
		Description: description,
		Priority:    board.Priority(priority),
		Status:      board.Status(status),
		ProjectID:   projectID,
		OwnerID:     ownerID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}
