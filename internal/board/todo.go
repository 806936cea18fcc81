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

// MaxTitleLength bounds todo titles.
const MaxTitleLength = 200

// Priority is a todo's urgency on the board.
type Priority string

// Supported priorities.
const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// ParsePriority normalizes a priority string case-insensitively.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	case "":
		return "", oops.Code("TODO_INVALID_PRIORITY").Wrapf(ErrValidation, "priority is required")
	default:
		return "", oops.Code("TODO_INVALID_PRIORITY").
			With("priority", s).
			Wrapf(ErrValidation, "priority must be one of Low, Medium, High")
	}
}

// Status is a todo's kanban column.
type Status string

// Supported statuses.
const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// ParseStatus normalizes a status string case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "todo":
		return StatusTodo, nil
	case "in-progress":
		return StatusInProgress, nil
	case "done":
		return StatusDone, nil
	case "":
		return "", oops.Code("TODO_INVALID_STATUS").Wrapf(ErrValidation, "status is required")
	default:
		return "", oops.Code("TODO_INVALID_STATUS").
			With("status", s).
			Wrapf(ErrValidation, "status must be one of todo, in-progress, done")
	}
}

// Todo is a single board item. OwnerID is a denormalized copy of the
// parent project's owner, kept consistent by construction in the service.
type Todo struct {
	ID          ulid.ULID
	Title       string
	Description string
	Priority    Priority
	Status      Status
	ProjectID   ulid.ULID
	OwnerID     ulid.ULID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TodoInput carries the caller-supplied fields for creating a todo.
type TodoInput struct {
	Title       string
	Description string
	Priority    string
	Status      string
}

// NewTodo creates a validated Todo under the given project and owner.
func NewTodo(ownerID, projectID ulid.ULID, in TodoInput) (*Todo, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, oops.Code("TODO_INVALID_TITLE").Wrapf(ErrValidation, "title is required")
	}
	if len(title) > MaxTitleLength {
		return nil, oops.Code("TODO_INVALID_TITLE").
			With("max", MaxTitleLength).
			Wrapf(ErrValidation, "title must be at most %d characters", MaxTitleLength)
	}

	priority, err := ParsePriority(in.Priority)
	if err != nil {
		return nil, err
	}
	status, err := ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Todo{
		ID:          ulid.Make(),
		Title:       title,
		Description: in.Description,
		Priority:    priority,
		Status:      status,
		ProjectID:   projectID,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// TodoPatch is an explicit partial update. Nil fields are left untouched.
type TodoPatch struct {
	Title       *string
	Description *string
	Priority    *string
	Status      *string
}

// IsEmpty returns true if the patch changes nothing.
func (p TodoPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil && p.Status == nil
}

// apply merges the patch into the todo, validating each supplied field.
func (p TodoPatch) apply(todo *Todo) error {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return oops.Code("TODO_INVALID_TITLE").Wrapf(ErrValidation, "title cannot be empty")
		}
		if len(title) > MaxTitleLength {
			return oops.Code("TODO_INVALID_TITLE").
				With("max", MaxTitleLength).
				Wrapf(ErrValidation, "title must be at most %d characters", MaxTitleLength)
		}
		todo.Title = title
	}
	if p.Description != nil {
		todo.Description = *p.Description
	}
	if p.Priority != nil {
		priority, err := ParsePriority(*p.Priority)
		if err != nil {
			return err
		}
		todo.Priority = priority
	}
	if p.Status != nil {
		status, err := ParseStatus(*p.Status)
		if err != nil {
			return err
		}
		todo.Status = status
	}
	todo.UpdatedAt = time.Now()
	return nil
}

// TodoRepository manages todo persistence.
type TodoRepository interface {
	// Create stores a new todo.
	Create(ctx context.Context, todo *Todo) error

	// Get retrieves a todo by ID.
	Get(ctx context.Context, id ulid.ULID) (*Todo, error)

	// ListByProject returns todos in the project owned by the given user.
	ListByProject(ctx context.Context, ownerID, projectID ulid.ULID) ([]*Todo, error)

	// Update persists changed fields of a todo. The write is additionally
	// keyed on the todo's owner so a stale todo can never cross users.
	Update(ctx context.Context, todo *Todo) error

	// Delete removes a todo owned by the given user.
	Delete(ctx context.Context, ownerID, id ulid.ULID) error
}
