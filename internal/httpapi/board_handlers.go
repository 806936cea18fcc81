// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BoardKeep Contributors

package httpapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/boardkeep/boardkeep/internal/auth"
	"github.com/boardkeep/boardkeep/internal/board"
)

// actorFrom pulls the gate-resolved user out of the request context.
// A missing user means a route was wired without the auth gate.
func (s *Server) actorFrom(r *http.Request) (*auth.User, bool) {
	user, ok := UserFrom(r.Context())
	if !ok {
		s.logger.Error("handler reached without authenticated user", "path", r.URL.Path)
	}
	return user, ok
}

// parseID parses a path identifier, reporting malformed values as a
// client error before any store access.
func parseID(raw, field string) (ulid.ULID, error) {
	id, err := ulid.Parse(raw)
	if err != nil {
		return ulid.ULID{}, oops.Code("INVALID_ID").
			With(field, raw).
			Wrapf(errInvalidID, "%s is not a valid identifier", field)
	}
	return id, nil
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user, ok := s.actorFrom(r)
	if !ok {
		s.writeError(w, oops.Errorf("missing authenticated user"))
		return
	}

	projects, err := s.board.ListProjects(r.Context(), user.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toProjectResponses(projects))
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user, ok := s.actorFrom(r)
	if !ok {
		s.writeError(w, oops.Errorf("missing authenticated user"))
		return
	}

	var req createProjectRequest
	if err := decodeJSON(r, &req, false); err != nil {
		s.writeError(w, err)
		return
	}

	project, err := s.board.CreateProject(r.Context(), user.ID, req.Name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toProjectResponse(project))
}

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user, ok := s.actorFrom(r)
	if !ok {
		s.writeError(w, oops.Errorf("missing authenticated user"))
		return
	}

	projectID, err := parseID(ps.ByName("projectId"), "projectId")
	if err != nil {
		s.writeError(w, err)
		return
	}

	todos, err := s.board.ListTodos(r.Context(), user.ID, projectID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toTodoResponses(todos))
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user, ok := s.actorFrom(r)
	if !ok {
		s.writeError(w, oops.Errorf("missing authenticated user"))
		return
	}

	projectID, err := parseID(ps.ByName("projectId"), "projectId")
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req createTodoRequest
	if err := decodeJSON(r, &req, false); err != nil {
		s.writeError(w, err)
		return
	}

	todo, err := s.board.CreateTodo(r.Context(), user.ID, projectID, board.TodoInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toTodoResponse(todo))
}

func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user, ok := s.actorFrom(r)
	if !ok {
		s.writeError(w, oops.Errorf("missing authenticated user"))
		return
	}

	todoID, err := parseID(ps.ByName("id"), "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req updateTodoRequest
	if err := decodeJSON(r, &req, true); err != nil {
		s.writeError(w, err)
		return
	}

	todo, err := s.board.UpdateTodo(r.Context(), user.ID, todoID, req.patch())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, todoMessageResponse{
		Message: "todo updated",
		Todo:    toTodoResponse(todo),
	})
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user, ok := s.actorFrom(r)
	if !ok {
		s.writeError(w, oops.Errorf("missing authenticated user"))
		return
	}

	todoID, err := parseID(ps.ByName("id"), "id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	todo, err := s.board.DeleteTodo(r.Context(), user.ID, todoID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, todoMessageResponse{
		Message: "todo deleted",
		Todo:    toTodoResponse(todo),
	})
}
