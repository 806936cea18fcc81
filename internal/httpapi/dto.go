// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BoardKeep Contributors

package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/samber/oops"

	"github.com/boardkeep/boardkeep/internal/board"
)

// maxBodyBytes bounds request bodies; every payload here is tiny.
const maxBodyBytes = 1 << 20

// errBadRequestBody is wrapped around undecodable request bodies.
var errBadRequestBody = errors.New("bad request body")

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createProjectRequest struct {
	Name string `json:"name"`
}

type createTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
}

// updateTodoRequest is the explicit PATCH shape. Absent fields stay nil;
// unknown fields are rejected at decode time rather than passed through.
type updateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
}

func (r updateTodoRequest) patch() board.TodoPatch {
	return board.TodoPatch{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Status:      r.Status,
	}
}

type tokenResponse struct {
	Token string `json:"token"`
}

type projectResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toProjectResponse(p *board.Project) projectResponse {
	return projectResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		OwnerID:   p.OwnerID.String(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toProjectResponses(projects []*board.Project) []projectResponse {
	out := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p))
	}
	return out
}

type todoResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	ProjectID   string    `json:"projectId"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toTodoResponse(t *board.Todo) todoResponse {
	return todoResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		ProjectID:   t.ProjectID.String(),
		OwnerID:     t.OwnerID.String(),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTodoResponses(todos []*board.Todo) []todoResponse {
	out := make([]todoResponse, 0, len(todos))
	for _, t := range todos {
		out = append(out, toTodoResponse(t))
	}
	return out
}

type todoMessageResponse struct {
	Message string       `json:"message"`
	Todo    todoResponse `json:"todo"`
}

// decodeJSON decodes a request body into dst. With strict set, unknown
// fields fail the decode.
func decodeJSON(r *http.Request, dst any, strict bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(dst); err != nil {
		return oops.Code("BAD_REQUEST").Wrapf(errBadRequestBody, "invalid request body: %v", err)
	}
	return nil
}
