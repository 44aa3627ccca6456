// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	repository "github.com/okian/lineup/internal/adapters/repository"
	"github.com/okian/lineup/internal/domain/allocate"
	"github.com/okian/lineup/internal/domain/roster"
	"github.com/okian/lineup/pkg/logger"
)

// maxBodyBytes bounds request bodies; a full roster is a few kilobytes.
const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	RosterDependencies
	TeamsDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	rosterHandler   *RosterHandler
	teamsHandler    *TeamsHandler
	allocateHandler *AllocateHandler
	log             logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, log logger.Logger) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		rosterHandler:   NewRosterHandler(deps),
		teamsHandler:    NewTeamsHandler(deps),
		allocateHandler: NewAllocateHandler(deps),
		log:             log,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	wrap := func(h http.HandlerFunc, endpoint string) http.HandlerFunc {
		return LoggingMiddleware(s.log, MetricsMiddleware(h, endpoint), endpoint)
	}

	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/roster", wrap(s.rosterHandler.HandleRoster, "roster"))
	mux.HandleFunc("/roster/rows", wrap(s.rosterHandler.HandleAddRow, "roster_rows"))
	mux.HandleFunc("/roster/rows/", wrap(s.rosterHandler.HandleRow, "roster_row"))
	mux.HandleFunc("/teams", wrap(s.teamsHandler.HandleTeams, "teams"))
	mux.HandleFunc("/allocate", wrap(s.allocateHandler.HandleAllocate, "allocate"))
}

type errorResponse struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Invalid []invalidRecord `json:"invalid,omitempty"`
}

type invalidRecord struct {
	Index  int    `json:"index"`
	ID     string `json:"id,omitempty"`
	First  string `json:"first"`
	Last   string `json:"last"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError maps service errors onto status codes.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	if invalid := roster.Invalid(err); len(invalid) > 0 {
		resp := errorResponse{
			Code:    "validation_failed",
			Message: Wrap(op, err).Error(),
			Invalid: make([]invalidRecord, len(invalid)),
		}
		for i, e := range invalid {
			resp.Invalid[i] = invalidRecord{
				Index: e.Index, ID: e.ID, First: e.First, Last: e.Last, Value: e.Value, Reason: e.Reason,
			}
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
	case errors.Is(err, repository.ErrRosterFull):
		writeError(w, http.StatusConflict, "roster_full", WrapKind(op, ErrConflict, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// playerResponse is one player as rendered to clients.
type playerResponse struct {
	First    string          `json:"first"`
	Last     string          `json:"last"`
	Skill    float64         `json:"skill"`
	Position roster.Position `json:"position"`
}

type teamResponse struct {
	Name    string           `json:"name"`
	Skill   float64          `json:"skill"`
	Players []playerResponse `json:"players"`
}

type assignmentResponse struct {
	Teams      []teamResponse `json:"teams"`
	Gap        float64        `json:"gap"`
	Iterations int            `json:"iterations"`
	Swaps      int            `json:"swaps"`
	Balanced   bool           `json:"balanced"`
}

func newTeamResponse(t allocate.Team) teamResponse {
	players := make([]playerResponse, len(t.Players))
	for i, p := range t.Players {
		players[i] = playerResponse{First: p.First, Last: p.Last, Skill: p.Skill, Position: p.Position()}
	}
	return teamResponse{Name: t.Name, Skill: t.Skill, Players: players}
}

func newAssignmentResponse(a allocate.Assignment) assignmentResponse {
	return assignmentResponse{
		Teams:      []teamResponse{newTeamResponse(a.Home), newTeamResponse(a.Away)},
		Gap:        a.Gap,
		Iterations: a.Iterations,
		Swaps:      a.Swaps,
		Balanced:   a.Balanced,
	}
}
