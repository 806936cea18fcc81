// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BoardKeep Contributors

package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"

	"github.com/boardkeep/boardkeep/internal/auth"
	"github.com/boardkeep/boardkeep/internal/board"
	"github.com/boardkeep/boardkeep/internal/httpapi"
)

// fakeAuth implements httpapi.AuthService with per-test function fields.
type fakeAuth struct {
	registerFn func(ctx context.Context, email, password string) (*auth.User, string, error)
	loginFn    func(ctx context.Context, email, password string) (*auth.User, string, error)
	resolveFn  func(ctx context.Context, token string) (*auth.User, error)
}

func (f *fakeAuth) Register(ctx context.Context, email, password string) (*auth.User, string, error) {
	return f.registerFn(ctx, email, password)
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*auth.User, string, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeAuth) ResolveUser(ctx context.Context, token string) (*auth.User, error) {
	return f.resolveFn(ctx, token)
}

// fakeBoard implements httpapi.BoardService with per-test function fields.
type fakeBoard struct {
	listProjectsFn  func(ctx context.Context, actor ulid.ULID) ([]*board.Project, error)
	createProjectFn func(ctx context.Context, actor ulid.ULID, name string) (*board.Project, error)
	listTodosFn     func(ctx context.Context, actor, projectID ulid.ULID) ([]*board.Todo, error)
	createTodoFn    func(ctx context.Context, actor, projectID ulid.ULID, in board.TodoInput) (*board.Todo, error)
	updateTodoFn    func(ctx context.Context, actor, todoID ulid.ULID, patch board.TodoPatch) (*board.Todo, error)
	deleteTodoFn    func(ctx context.Context, actor, todoID ulid.ULID) (*board.Todo, error)
}

func (f *fakeBoard) ListProjects(ctx context.Context, actor ulid.ULID) ([]*board.Project, error) {
	return f.listProjectsFn(ctx, actor)
}

func (f *fakeBoard) CreateProject(ctx context.Context, actor ulid.ULID, name string) (*board.Project, error) {
	return f.createProjectFn(ctx, actor, name)
}

func (f *fakeBoard) ListTodos(ctx context.Context, actor, projectID ulid.ULID) ([]*board.Todo, error) {
	return f.listTodosFn(ctx, actor, projectID)
}

func (f *fakeBoard) CreateTodo(ctx context.Context, actor, projectID ulid.ULID, in board.TodoInput) (*board.Todo, error) {
	return f.createTodoFn(ctx, actor, projectID, in)
}

func (f *fakeBoard) UpdateTodo(ctx context.Context, actor, todoID ulid.ULID, patch board.TodoPatch) (*board.Todo, error) {
	return f.updateTodoFn(ctx, actor, todoID, patch)
}

func (f *fakeBoard) DeleteTodo(ctx context.Context, actor, todoID ulid.ULID) (*board.Todo, error) {
	return f.deleteTodoFn(ctx, actor, todoID)
}

// testUser is a fixed authenticated user resolved by the default fakeAuth.
func testUser(t *testing.T) *auth.User {
	t.Helper()
	user, err := auth.NewUser("a@x.com", "$argon2id$hash")
	require.NoError(t, err)
	return user
}

// newTestHandler wires a Server around the fakes and returns its handler.
func newTestHandler(t *testing.T, authSvc httpapi.AuthService, boardSvc httpapi.BoardService) http.Handler {
	t.Helper()
	srv, err := httpapi.NewServer(httpapi.ServerConfig{
		Addr:   "127.0.0.1:0",
		Auth:   authSvc,
		Board:  boardSvc,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	return srv.Handler()
}

// resolveAs returns a fakeAuth whose ResolveUser accepts the token
// "good-token" for the given user.
func resolveAs(user *auth.User) *fakeAuth {
	return &fakeAuth{
		resolveFn: func(_ context.Context, token string) (*auth.User, error) {
			if token != "good-token" {
				return nil, auth.ErrInvalidToken
			}
			return user, nil
		},
	}
}

// doJSON performs a request against the handler and decodes the JSON body.
func doJSON(t *testing.T, h http.Handler, method, path, token string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			buf, err := json.Marshal(body)
			require.NoError(t, err)
			reader = bytes.NewBuffer(buf)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if out != nil && rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}
