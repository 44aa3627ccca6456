// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/lineup/internal/domain/allocate"
	"github.com/okian/lineup/internal/domain/roster"
)

// TeamsDependencies defines the allocation operations.
type TeamsDependencies interface {
	Generate(ctx context.Context) (allocate.Assignment, error)
	LastAssignment(ctx context.Context) (allocate.Assignment, bool)
	Allocate(ctx context.Context, rows []roster.Row) (allocate.Assignment, error)
}

// TeamsHandler generates teams from the stored grid.
type TeamsHandler struct {
	deps TeamsDependencies
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps TeamsDependencies) *TeamsHandler {
	return &TeamsHandler{deps: deps}
}

// HandleTeams handles POST /teams (generate) and GET /teams (last result).
func (h *TeamsHandler) HandleTeams(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		const op = "api.generate_teams"
		out, err := h.deps.Generate(r.Context())
		if err != nil {
			writeDomainError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, newAssignmentResponse(out))
	case http.MethodGet:
		const op = "api.get_teams"
		out, ok := h.deps.LastAssignment(r.Context())
		if !ok {
			writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
			return
		}
		writeJSON(w, http.StatusOK, newAssignmentResponse(out))
	default:
		http.NotFound(w, r)
	}
}

// allocateRequest is the body of POST /allocate.
type allocateRequest struct {
	Players []roster.Row `json:"players"`
}

// AllocateHandler splits posted rows without touching the stored grid.
type AllocateHandler struct {
	deps TeamsDependencies
}

// NewAllocateHandler creates a new allocate handler.
func NewAllocateHandler(deps TeamsDependencies) *AllocateHandler {
	return &AllocateHandler{deps: deps}
}

// HandleAllocate handles POST /allocate.
func (h *AllocateHandler) HandleAllocate(w http.ResponseWriter, r *http.Request) {
	const op = "api.allocate"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req allocateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	out, err := h.deps.Allocate(r.Context(), req.Players)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, newAssignmentResponse(out))
}
