// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/lineup/internal/domain/roster"
)

// RosterDependencies defines the grid operations the roster routes need.
type RosterDependencies interface {
	Rows(ctx context.Context) ([]roster.Row, error)
	ImportRows(ctx context.Context, rows []roster.Row) ([]roster.Row, error)
	AddRow(ctx context.Context, row roster.Row) (roster.Row, error)
	UpdateRow(ctx context.Context, id string, row roster.Row) (roster.Row, error)
	DeleteRow(ctx context.Context, id string) error
	ClearRoster(ctx context.Context) error
}

// rosterRequest is the body of PUT /roster.
type rosterRequest struct {
	Rows []roster.Row `json:"rows"`
}

type rosterResponse struct {
	Rows []roster.Row `json:"rows"`
}

// RosterHandler handles the editable grid.
type RosterHandler struct {
	deps RosterDependencies
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps RosterDependencies) *RosterHandler {
	return &RosterHandler{deps: deps}
}

// HandleRoster handles GET, PUT and DELETE /roster.
func (h *RosterHandler) HandleRoster(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPut:
		h.replace(w, r)
	case http.MethodDelete:
		h.clear(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *RosterHandler) list(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_roster"
	rows, err := h.deps.Rows(r.Context())
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, rosterResponse{Rows: nonNil(rows)})
}

func (h *RosterHandler) replace(w http.ResponseWriter, r *http.Request) {
	const op = "api.import_roster"
	var req rosterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	rows, err := h.deps.ImportRows(r.Context(), req.Rows)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, rosterResponse{Rows: nonNil(rows)})
}

func (h *RosterHandler) clear(w http.ResponseWriter, r *http.Request) {
	const op = "api.clear_roster"
	if err := h.deps.ClearRoster(r.Context()); err != nil {
		writeDomainError(w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAddRow handles POST /roster/rows.
func (h *RosterHandler) HandleAddRow(w http.ResponseWriter, r *http.Request) {
	const op = "api.add_row"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var row roster.Row
	if err := decodeJSON(w, r, &row); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	stored, err := h.deps.AddRow(r.Context(), row)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

// HandleRow handles PUT and DELETE /roster/rows/{id}.
func (h *RosterHandler) HandleRow(w http.ResponseWriter, r *http.Request) {
	const op = "api.row"
	id := strings.TrimPrefix(r.URL.Path, "/roster/rows/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	switch r.Method {
	case http.MethodPut:
		var row roster.Row
		if err := decodeJSON(w, r, &row); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		stored, err := h.deps.UpdateRow(r.Context(), id, row)
		if err != nil {
			writeDomainError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, stored)
	case http.MethodDelete:
		if err := h.deps.DeleteRow(r.Context(), id); err != nil {
			writeDomainError(w, op, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

func nonNil(rows []roster.Row) []roster.Row {
	if rows == nil {
		return []roster.Row{}
	}
	return rows
}
