// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BoardKeep Contributors

package httpapi_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardkeep/boardkeep/internal/auth"
	"github.com/boardkeep/boardkeep/internal/board"
)

// memUserRepo is an in-memory auth.UserRepository.
type memUserRepo struct {
	mu    sync.Mutex
	users map[ulid.ULID]*auth.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[ulid.ULID]*auth.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return auth.ErrDuplicateEmail
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id ulid.ULID) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, auth.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, auth.ErrNotFound
}

func (r *memUserRepo) Update(_ context.Context, user *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return auth.ErrNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

// memProjectRepo is an in-memory board.ProjectRepository.
type memProjectRepo struct {
	mu       sync.Mutex
	projects map[ulid.ULID]*board.Project
}

func newMemProjectRepo() *memProjectRepo {
	return &memProjectRepo{projects: map[ulid.ULID]*board.Project{}}
}

func (r *memProjectRepo) Create(_ context.Context, project *board.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *project
	r.projects[project.ID] = &cp
	return nil
}

func (r *memProjectRepo) Get(_ context.Context, id ulid.ULID) (*board.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, board.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memProjectRepo) ListByOwner(_ context.Context, ownerID ulid.ULID) ([]*board.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*board.Project{}
	for _, p := range r.projects {
		if p.OwnerID == ownerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

// memTodoRepo is an in-memory board.TodoRepository.
type memTodoRepo struct {
	mu    sync.Mutex
	todos map[ulid.ULID]*board.Todo
}

func newMemTodoRepo() *memTodoRepo {
	return &memTodoRepo{todos: map[ulid.ULID]*board.Todo{}}
}

func (r *memTodoRepo) Create(_ context.Context, todo *board.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *todo
	r.todos[todo.ID] = &cp
	return nil
}

func (r *memTodoRepo) Get(_ context.Context, id ulid.ULID) (*board.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	td, ok := r.todos[id]
	if !ok {
		return nil, board.ErrNotFound
	}
	cp := *td
	return &cp, nil
}

func (r *memTodoRepo) ListByProject(_ context.Context, ownerID, projectID ulid.ULID) ([]*board.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*board.Todo{}
	for _, td := range r.todos {
		if td.ProjectID == projectID && td.OwnerID == ownerID {
			cp := *td
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memTodoRepo) Update(_ context.Context, todo *board.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.todos[todo.ID]
	if !ok || existing.OwnerID != todo.OwnerID {
		return board.ErrNotFound
	}
	cp := *todo
	r.todos[todo.ID] = &cp
	return nil
}

func (r *memTodoRepo) Delete(_ context.Context, ownerID, id ulid.ULID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.todos[id]
	if !ok || existing.OwnerID != ownerID {
		return board.ErrNotFound
	}
	delete(r.todos, id)
	return nil
}

// newFullStack wires real auth and board services over in-memory
// repositories behind the HTTP handler.
func newFullStack(t *testing.T) http.Handler {
	t.Helper()

	tokens, err := auth.NewTokenIssuer(auth.TokenConfig{Secret: "scenario-test-secret"})
	require.NoError(t, err)
	authSvc, err := auth.NewService(newMemUserRepo(), auth.NewArgon2idHasher(), tokens)
	require.NoError(t, err)
	boardSvc, err := board.NewService(newMemProjectRepo(), newMemTodoRepo())
	require.NoError(t, err)

	return newTestHandler(t, authSvc, boardSvc)
}

// registerUser registers an account and returns its bearer token.
func registerUser(t *testing.T, h http.Handler, email string) string {
	t.Helper()
	var body struct {
		Token string `json:"token"`
	}
	rec := doJSON(t, h, http.MethodPost, "/register", "",
		map[string]string{"email": email, "password": "correct horse"}, &body)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotEmpty(t, body.Token)
	return body.Token
}

func TestFullScenario(t *testing.T) {
	h := newFullStack(t)

	aliceToken := registerUser(t, h, "alice@example.com")
	bobToken := registerUser(t, h, "bob@example.com")

	// Logging in again issues a fresh usable token.
	var login struct {
		Token string `json:"token"`
	}
	rec := doJSON(t, h, http.MethodPost, "/login", "",
		map[string]string{"email": "alice@example.com", "password": "correct horse"}, &login)
	require.Equal(t, http.StatusOK, rec.Code)
	aliceToken = login.Token

	// Wrong password is a client error, unknown email is not found.
	rec = doJSON(t, h, http.MethodPost, "/login", "",
		map[string]string{"email": "alice@example.com", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = doJSON(t, h, http.MethodPost, "/login", "",
		map[string]string{"email": "ghost@example.com", "password": "whatever"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Duplicate registration is rejected.
	rec = doJSON(t, h, http.MethodPost, "/register", "",
		map[string]string{"email": "alice@example.com", "password": "another"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Alice creates a project.
	var project struct {
		ID string `json:"id"`
	}
	rec = doJSON(t, h, http.MethodPost, "/projects", aliceToken,
		map[string]string{"name": "Household"}, &project)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Bob sees no projects; Alice sees hers.
	var projects []struct {
		ID string `json:"id"`
	}
	rec = doJSON(t, h, http.MethodGet, "/projects", bobToken, nil, &projects)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, projects)

	rec = doJSON(t, h, http.MethodGet, "/projects", aliceToken, nil, &projects)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, projects, 1)

	// Alice adds a todo to her project.
	var todo struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	rec = doJSON(t, h, http.MethodPost, "/todos/"+project.ID, aliceToken,
		map[string]string{
			"title": "Buy milk", "description": "two liters",
			"priority": "Low", "status": "todo",
		}, &todo)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Bob cannot add to Alice's project.
	rec = doJSON(t, h, http.MethodPost, "/todos/"+project.ID, bobToken,
		map[string]string{"title": "graffiti", "priority": "Low", "status": "todo"}, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Bob cannot list, update, or delete Alice's todo.
	var todos []struct {
		ID string `json:"id"`
	}
	rec = doJSON(t, h, http.MethodGet, "/todos/"+project.ID, bobToken, nil, &todos)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, todos)

	rec = doJSON(t, h, http.MethodPatch, "/todos/"+todo.ID, bobToken,
		map[string]string{"status": "done"}, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/todos/"+todo.ID, bobToken, nil, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Alice moves her todo across the board.
	var updated struct {
		Message string `json:"message"`
		Todo    struct {
			Status string `json:"status"`
		} `json:"todo"`
	}
	rec = doJSON(t, h, http.MethodPatch, "/todos/"+todo.ID, aliceToken,
		map[string]string{"status": "in-progress"}, &updated)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "todo updated", updated.Message)
	assert.Equal(t, "in-progress", updated.Todo.Status)

	// Creating a todo under a nonexistent project is not found.
	rec = doJSON(t, h, http.MethodPost, "/todos/"+ulid.Make().String(), aliceToken,
		map[string]string{"title": "lost", "priority": "Low", "status": "todo"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Alice deletes her todo; the project is then empty.
	rec = doJSON(t, h, http.MethodDelete, "/todos/"+todo.ID, aliceToken, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/todos/"+project.ID, aliceToken, nil, &todos)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, todos)
}
