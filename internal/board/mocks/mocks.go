// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BoardKeep Contributors

// Package mocks provides testify mocks for board interfaces.
package mocks

import (
	"context"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/mock"

	"github.com/boardkeep/boardkeep/internal/board"
)

// MockProjectRepository is a mock board.ProjectRepository.
type MockProjectRepository struct {
	mock.Mock
}

// NewMockProjectRepository creates a MockProjectRepository whose
// expectations are asserted on test cleanup.
func NewMockProjectRepository(t *testing.T) *MockProjectRepository {
	t.Helper()
	m := &MockProjectRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockProjectRepository) Create(ctx context.Context, project *board.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Get(ctx context.Context, id ulid.ULID) (*board.Project, error) {
	args := m.Called(ctx, id)
	var project *board.Project
	if v := args.Get(0); v != nil {
		project = v.(*board.Project)
	}
	return project, args.Error(1)
}

func (m *MockProjectRepository) ListByOwner(ctx context.Context, ownerID ulid.ULID) ([]*board.Project, error) {
	args := m.Called(ctx, ownerID)
	var projects []*board.Project
	if v := args.Get(0); v != nil {
		projects = v.([]*board.Project)
	}
	return projects, args.Error(1)
}

// MockTodoRepository is a mock board.TodoRepository.
type MockTodoRepository struct {
	mock.Mock
}

// NewMockTodoRepository creates a MockTodoRepository whose expectations
// are asserted on test cleanup.
func NewMockTodoRepository(t *testing.T) *MockTodoRepository {
	t.Helper()
	m := &MockTodoRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTodoRepository) Create(ctx context.Context, todo *board.Todo) error {
	args := m.Called(ctx, todo)
	return args.Error(0)
}

func (m *MockTodoRepository) Get(ctx context.Context, id ulid.ULID) (*board.Todo, error) {
	args := m.Called(ctx, id)
	var todo *board.Todo
	if v := args.Get(0); v != nil {
		todo = v.(*board.Todo)
	}
	return todo, args.Error(1)
}

func (m *MockTodoRepository) ListByProject(ctx context.Context, ownerID, projectID ulid.ULID) ([]*board.Todo, error) {
	args := m.Called(ctx, ownerID, projectID)
	var todos []*board.Todo
	if v := args.Get(0); v != nil {
		todos = v.([]*board.Todo)
	}
	return todos, args.Error(1)
}

func (m *MockTodoRepository) Update(ctx context.Context, todo *board.Todo) error {
	args := m.Called(ctx, todo)
	return args.Error(0)
}

func (m *MockTodoRepository) Delete(ctx context.Context, ownerID, id ulid.ULID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

// Compile-time interface checks.
var (
	_ board.ProjectRepository = (*MockProjectRepository)(nil)
	_ board.TodoRepository    = (*MockTodoRepository)(nil)
)
