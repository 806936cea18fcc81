// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BoardKeep Contributors

package board_test

import (
	"context"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/boardkeep/boardkeep/internal/board"
	"github.com/boardkeep/boardkeep/internal/board/mocks"
)

func newTestService(t *testing.T) (*board.Service, *mocks.MockProjectRepository, *mocks.MockTodoRepository) {
	t.Helper()
	projects := mocks.NewMockProjectRepository(t)
	todos := mocks.NewMockTodoRepository(t)
	svc, err := board.NewService(projects, todos)
	require.NoError(t, err)
	return svc, projects, todos
}

func ownedTodo(t *testing.T, owner, project ulid.ULID) *board.Todo {
	t.Helper()
	todo, err := board.NewTodo(owner, project, board.TodoInput{
		Title:    "Buy milk",
		Priority: "Medium",
		Status:   "todo",
	})
	require.NoError(t, err)
	return todo
}

func TestNewService_NilDependencies(t *testing.T) {
	_, err := board.NewService(nil, mocks.NewMockTodoRepository(t))
	assert.Error(t, err)

	_, err = board.NewService(mocks.NewMockProjectRepository(t), nil)
	assert.Error(t, err)
}

func TestService_ListProjects(t *testing.T) {
	ctx := context.Background()
	actor := ulid.Make()

	svc, projects, _ := newTestService(t)

	project, err := board.NewProject(actor, "Household")
	require.NoError(t, err)
	projects.On("ListByOwner", ctx, actor).Return([]*board.Project{project}, nil)

	got, err := svc.ListProjects(ctx, actor)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, project.ID, got[0].ID)
}

func TestService_CreateProject(t *testing.T) {
	ctx := context.Background()
	actor := ulid.Make()

	t.Run("stamps the actor as owner", func(t *testing.T) {
		svc, projects, _ := newTestService(t)

		projects.On("Create", ctx, mock.MatchedBy(func(p *board.Project) bool {
			return p.OwnerID == actor && p.Name == "Household"
		})).Return(nil)

		project, err := svc.CreateProject(ctx, actor, "Household")
		require.NoError(t, err)
		assert.Equal(t, actor, project.OwnerID)
	})

	t.Run("rejects invalid name without hitting the repository", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.CreateProject(ctx, actor, "  ")
		require.Error(t, err)
		assert.ErrorIs(t, err, board.ErrValidation)
	})
}

func TestService_ListTodos(t *testing.T) {
	ctx := context.Background()
	actor := ulid.Make()
	projectID := ulid.Make()

	svc, _, todos := newTestService(t)

	todo := ownedTodo(t, actor, projectID)
	todos.On("ListByProject", ctx, actor, projectID).Return([]*board.Todo{todo}, nil)

	got, err := svc.ListTodos(ctx, actor, projectID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, todo.ID, got[0].ID)
}

func TestService_CreateTodo(t *testing.T) {
	ctx := context.Background()
	actor := ulid.Make()

	input := board.TodoInput{Title: "Buy milk", Priority: "Low", Status: "todo"}

	t.Run("creates todo under own project", func(t *testing.T) {
		svc, projects, todos := newTestService(t)

		project, err := board.NewProject(actor, "Household")
		require.NoError(t, err)
		projects.On("Get", ctx, project.ID).Return(project, nil)
		todos.On("Create", ctx, mock.MatchedBy(func(td *board.Todo) bool {
			return td.OwnerID == actor && td.ProjectID == project.ID
		})).Return(nil)

		todo, err := svc.CreateTodo(ctx, actor, project.ID, input)
		require.NoError(t, err)
		assert.Equal(t, actor, todo.OwnerID)
		assert.Equal(t, project.ID, todo.ProjectID)
	})

	t.Run("fails when project does not exist", func(t *testing.T) {
		svc, projects, _ := newTestService(t)
		projectID := ulid.Make()

		projects.On("Get", ctx, projectID).Return(nil, board.ErrNotFound)

		_, err := svc.CreateTodo(ctx, actor, projectID, input)
		require.Error(t, err)
		assert.ErrorIs(t, err, board.ErrNotFound)
	})

	t.Run("fails when project belongs to someone else", func(t *testing.T) {
		svc, projects, _ := newTestService(t)

		other, err := board.NewProject(ulid.Make(), "Theirs")
		require.NoError(t, err)
		projects.On("Get", ctx, other.ID).Return(other, nil)

		_, err = svc.CreateTodo(ctx, actor, other.ID, input)
		require.Error(t, err)
		assert.ErrorIs(t, err, board.ErrForbidden)
	})

	t.Run("fails on invalid input after ownership check", func(t *testing.T) {
		svc, projects, _ := newTestService(t)

		project, err := board.NewProject(actor, "Household")
		require.NoError(t, err)
		projects.On("Get", ctx, project.ID).Return(project, nil)

		_, err = svc.CreateTodo(ctx, actor, project.ID, board.TodoInput{
			Title: "t", Priority: "whenever", Status: "todo",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, board.ErrValidation)
	})
}

func TestService_UpdateTodo(t *testing.T) {
	ctx := context.Background()
	actor := ulid.Make()
	projectID := ulid.Make()

	strPtr := func(s string) *string { return &s }

	t.Run("applies patched fields", func(t *testing.T) {
		svc, _, todos := newTestService(t)

		todo := ownedTodo(t, actor, projectID)
		before := todo.UpdatedAt
		todos.On("Get", ctx, todo.ID).Return(todo, nil)
		todos.On("Update", ctx, todo).Return(nil)

		got, err := svc.UpdateTodo(ctx, actor, todo.ID, board.TodoPatch{
			Title:  strPtr("Buy oat milk"),
			Status: strPtr("done"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Buy oat milk", got.Title)
		assert.Equal(t, board.StatusDone, got.Status)
		assert.Equal(t, board.PriorityMedium, got.Priority)
		assert.True(t, got.UpdatedAt.Add(time.Nanosecond).After(before))
	})

	t.Run("rejects another user's todo", func(t *testing.T) {
		svc, _, todos := newTestService(t)

		todo := ownedTodo(t, ulid.Make(), projectID)
		todos.On("Get", ctx, todo.ID).Return(todo, nil)

		_, err := svc.UpdateTodo(ctx, actor, todo.ID, board.TodoPatch{Title: strPtr("x")})
		require.Error(t, err)
		assert.ErrorIs(t, err, board.ErrForbidden)
	})

	t.Run("reports missing todo", func(t *testing.T) {
		svc, _, todos := newTestService(t)
		todoID := ulid.Make()

		todos.On("Get", ctx, todoID).Return(nil, board.ErrNotFound)

		_, err := svc.UpdateTodo(ctx, actor, todoID, board.TodoPatch{Title: strPtr("x")})
		require.Error(t, err)
		assert.ErrorIs(t, err, board.ErrNotFound)
	})

	t.Run("rejects invalid patch values", func(t *testing.T) {
		svc, _, todos := newTestService(t)

		todo := ownedTodo(t, actor, projectID)
		todos.On("Get", ctx, todo.ID).Return(todo, nil)

		_, err := svc.UpdateTodo(ctx, actor, todo.ID, board.TodoPatch{Priority: strPtr("asap")})
		require.Error(t, err)
		assert.ErrorIs(t, err, board.ErrValidation)
	})
}

func TestService_DeleteTodo(t *testing.T) {
	ctx := context.Background()
	actor := ulid.Make()
	projectID := ulid.Make()

	t.Run("deletes own todo and returns it", func(t *testing.T) {
		svc, _, todos := newTestService(t)

		todo := ownedTodo(t, actor, projectID)
		todos.On("Get", ctx, todo.ID).Return(todo, nil)
		todos.On("Delete", ctx, actor, todo.ID).Return(nil)

		got, err := svc.DeleteTodo(ctx, actor, todo.ID)
		require.NoError(t, err)
		assert.Equal(t, todo.ID, got.ID)
	})

	t.Run("rejects another user's todo without deleting", func(t *testing.T) {
		svc, _, todos := newTestService(t)

		todo := ownedTodo(t, ulid.Make(), projectID)
		todos.On("Get", ctx, todo.ID).Return(todo, nil)

		_, err := svc.DeleteTodo(ctx, actor, todo.ID)
		require.Error(t, err)
		assert.ErrorIs(t, err, board.ErrForbidden)
	})

	t.Run("reports missing todo", func(t *testing.T) {
		svc, _, todos := newTestService(t)
		todoID := ulid.Make()

		todos.On("Get", ctx, todoID).Return(nil, board.ErrNotFound)

		_, err := svc.DeleteTodo(ctx, actor, todoID)
		require.Error(t, err)
		assert.ErrorIs(t, err, board.ErrNotFound)
	})
}
