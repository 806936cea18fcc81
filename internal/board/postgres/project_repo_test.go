// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BoardKeep Contributors

package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardkeep/boardkeep/internal/board"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func testProject(t *testing.T) *board.Project {
	t.Helper()
	project, err := board.NewProject(ulid.Make(), "Household")
	require.NoError(t, err)
	return project
}

func projectRows(projects ...*board.Project) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"id", "name", "owner_id", "created_at", "updated_at"})
	for _, p := range projects {
		rows.AddRow(p.ID.String(), p.Name, p.OwnerID.String(), p.CreatedAt, p.UpdatedAt)
	}
	return rows
}

func TestProjectRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts project", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewProjectRepository(mock)
		project := testProject(t)

		mock.ExpectExec("INSERT INTO projects").
			WithArgs(project.ID.String(), project.Name, project.OwnerID.String(),
				project.CreatedAt, project.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, repo.Create(ctx, project))
	})

	t.Run("wraps database errors", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewProjectRepository(mock)
		project := testProject(t)

		mock.ExpectExec("INSERT INTO projects").
			WithArgs(project.ID.String(), project.Name, project.OwnerID.String(),
				project.CreatedAt, project.UpdatedAt).
			WillReturnError(errors.New("connection reset"))

		assert.Error(t, repo.Create(ctx, project))
	})
}

func TestProjectRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stored project", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewProjectRepository(mock)
		project := testProject(t)

		mock.ExpectQuery("SELECT (.+) FROM projects").
			WithArgs(project.ID.String()).
			WillReturnRows(projectRows(project))

		got, err := repo.Get(ctx, project.ID)
		require.NoError(t, err)
		assert.Equal(t, project.ID, got.ID)
		assert.Equal(t, project.OwnerID, got.OwnerID)
	})

	t.Run("reports missing project", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewProjectRepository(mock)
		id := ulid.Make()

		mock.ExpectQuery("SELECT (.+) FROM projects").
			WithArgs(id.String()).
			WillReturnRows(projectRows())

		_, err := repo.Get(ctx, id)
		require.Error(t, err)
		assert.ErrorIs(t, err, board.ErrNotFound)
	})
}

func TestProjectRepository_ListByOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the owner's projects", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewProjectRepository(mock)
		owner := ulid.Make()

		a, err := board.NewProject(owner, "one")
		require.NoError(t, err)
		b, err := board.NewProject(owner, "two")
		require.NoError(t, err)

		mock.ExpectQuery("SELECT (.+) FROM projects").
			WithArgs(owner.String()).
			WillReturnRows(projectRows(b, a))

		got, err := repo.ListByOwner(ctx, owner)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, b.ID, got[0].ID)
	})

	t.Run("returns empty slice when owner has no projects", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewProjectRepository(mock)
		owner := ulid.Make()

		mock.ExpectQuery("SELECT (.+) FROM projects").
			WithArgs(owner.String()).
			WillReturnRows(projectRows())

		got, err := repo.ListByOwner(ctx, owner)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
