// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BoardKeep Contributors

package board

import (
	"context"
	"errors"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Service provides ownership-scoped project and todo operations. Every
// method takes the acting user's ID as resolved by the auth gate; there is
// no other authorization layer.
type Service struct {
	projects ProjectRepository
	todos    TodoRepository
}

// NewService creates a board Service.
func NewService(projects ProjectRepository, todos TodoRepository) (*Service, error) {
	if projects == nil {
		return nil, oops.Errorf("projects repository is required")
	}
	if todos == nil {
		return nil, oops.Errorf("todos repository is required")
	}
	return &Service{projects: projects, todos: todos}, nil
}

// ListProjects returns the actor's projects.
func (s *Service) ListProjects(ctx context.Context, actor ulid.ULID) ([]*Project, error) {
	projects, err := s.projects.ListByOwner(ctx, actor)
	if err != nil {
		return nil, oops.Code("PROJECT_LIST_FAILED").
			With("owner_id", actor.String()).
			Wrap(err)
	}
	return projects, nil
}

// CreateProject creates a project owned by the actor.
func (s *Service) CreateProject(ctx context.Context, actor ulid.ULID, name string) (*Project, error) {
	project, err := NewProject(actor, name)
	if err != nil {
		return nil, err
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, oops.Code("PROJECT_CREATE_FAILED").
			With("owner_id", actor.String()).
			Wrap(err)
	}
	return project, nil
}

// ListTodos returns the actor's todos in the given project. A project that
// does not exist (or belongs to someone else) simply yields no todos.
func (s *Service) ListTodos(ctx context.Context, actor, projectID ulid.ULID) ([]*Todo, error) {
	todos, err := s.todos.ListByProject(ctx, actor, projectID)
	if err != nil {
		return nil, oops.Code("TODO_LIST_FAILED").
			With("project_id", projectID.String()).
			Wrap(err)
	}
	return todos, nil
}

// CreateTodo creates a todo under the given project. The project must
// exist (ErrNotFound otherwise) and belong to the actor (ErrForbidden
// otherwise); the todo's owner is stamped from the actor.
func (s *Service) CreateTodo(ctx context.Context, actor, projectID ulid.ULID, in TodoInput) (*Todo, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("PROJECT_NOT_FOUND").
				With("project_id", projectID.String()).
				Wrap(err)
		}
		return nil, oops.Code("TODO_CREATE_FAILED").
			With("operation", "get project").
			Wrap(err)
	}
	if project.OwnerID.Compare(actor) != 0 {
		return nil, oops.Code("PROJECT_FORBIDDEN").
			With("project_id", projectID.String()).
			Wrap(ErrForbidden)
	}

	todo, err := NewTodo(actor, projectID, in)
	if err != nil {
		return nil, err
	}
	if err := s.todos.Create(ctx, todo); err != nil {
		return nil, oops.Code("TODO_CREATE_FAILED").
			With("project_id", projectID.String()).
			Wrap(err)
	}
	return todo, nil
}

// UpdateTodo applies a partial update to the actor's todo and returns the
// updated entity. A todo owned by another user fails with ErrForbidden.
func (s *Service) UpdateTodo(ctx context.Context, actor, todoID ulid.ULID, patch TodoPatch) (*Todo, error) {
	todo, err := s.getOwned(ctx, actor, todoID)
	if err != nil {
		return nil, err
	}

	if err := patch.apply(todo); err != nil {
		return nil, err
	}

	if err := s.todos.Update(ctx, todo); err != nil {
		return nil, oops.Code("TODO_UPDATE_FAILED").
			With("todo_id", todoID.String()).
			Wrap(err)
	}
	return todo, nil
}

// DeleteTodo deletes the actor's todo and returns the deleted entity.
func (s *Service) DeleteTodo(ctx context.Context, actor, todoID ulid.ULID) (*Todo, error) {
	todo, err := s.getOwned(ctx, actor, todoID)
	if err != nil {
		return nil, err
	}

	if err := s.todos.Delete(ctx, actor, todoID); err != nil {
		return nil, oops.Code("TODO_DELETE_FAILED").
			With("todo_id", todoID.String()).
			Wrap(err)
	}
	return todo, nil
}

// getOwned loads a todo and enforces that the actor owns it.
func (s *Service) getOwned(ctx context.Context, actor, todoID ulid.ULID) (*Todo, error) {
	todo, err := s.todos.Get(ctx, todoID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("TODO_NOT_FOUND").
				With("todo_id", todoID.String()).
				Wrap(err)
		}
		return nil, oops.Code("TODO_GET_FAILED").
			With("todo_id", todoID.String()).
			Wrap(err)
	}
	if todo.OwnerID.Compare(actor) != 0 {
		return nil, oops.Code("TODO_FORBIDDEN").
			With("todo_id", todoID.String()).
			Wrap(ErrForbidden)
	}
	return todo, nil
}
