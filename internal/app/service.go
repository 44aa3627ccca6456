// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	repository "github.com/okian/lineup/internal/adapters/repository"
	"github.com/okian/lineup/internal/domain/allocate"
	"github.com/okian/lineup/internal/domain/roster"
	"github.com/okian/lineup/pkg/logger"
	"github.com/okian/lineup/pkg/metrics"
)

// ErrNotStarted is returned by every operation called before Start.
var ErrNotStarted = errors.New("service not started")

const nanosecondsPerMillisecond = 1e6

// Service owns the roster grid and generates teams from it.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     repository.RosterStore
	allocator *allocate.Allocator

	// Configuration
	threshold     float64
	homeName      string
	awayName      string
	maxRosterSize int
	seed          int64

	// State
	started bool
	last    *allocate.Assignment

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithThreshold sets the skill gap the balancing pass aims for.
func WithThreshold(threshold float64) Option {
	return func(s *Service) {
		if threshold >= 0 {
			s.threshold = threshold
		}
	}
}

// WithTeamNames names the two generated teams.
func WithTeamNames(home, away string) Option {
	return func(s *Service) {
		if home != "" {
			s.homeName = home
		}
		if away != "" {
			s.awayName = away
		}
	}
}

// WithMaxRosterSize caps the number of grid rows. Zero means unbounded.
func WithMaxRosterSize(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxRosterSize = n
		}
	}
}

// WithSeed breaks equal-skill ties with a shuffle seeded by seed. Zero keeps
// plain input order.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithStore replaces the in-memory roster store.
func WithStore(store repository.RosterStore) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		threshold: allocate.DefaultThreshold,
		homeName:  allocate.DefaultHomeName,
		awayName:  allocate.DefaultAwayName,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore(repository.WithMaxRows(s.maxRosterSize))
	}

	allocOpts := []allocate.Option{
		allocate.WithThreshold(s.threshold),
		allocate.WithTeamNames(s.homeName, s.awayName),
	}
	if s.seed != 0 {
		allocOpts = append(allocOpts, allocate.WithRand(rand.New(rand.NewSource(s.seed)))) //nolint:gosec // reproducible tie-breaking, not security
	}
	s.allocator = allocate.New(allocOpts...)

	s.started = true
	s.logger.Info(ctx, "roster service started",
		logger.Float64("threshold", s.threshold),
		logger.String("home", s.homeName),
		logger.String("away", s.awayName),
		logger.Int("maxRosterSize", s.maxRosterSize),
		logger.Bool("seeded", s.seed != 0),
	)
	return nil
}

// Stop marks the service stopped. The roster is kept so a restart within the
// same process sees the same grid.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "roster service stopped")
}

func (s *Service) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// Rows returns the grid in order.
func (s *Service) Rows(ctx context.Context) ([]roster.Row, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.store.List(ctx), nil
}

// ImportRows replaces the whole grid, as an upload does.
func (s *Service) ImportRows(ctx context.Context, rows []roster.Row) ([]roster.Row, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	stored, err := s.store.Replace(ctx, rows)
	if err != nil {
		metrics.RecordErrorByComponent("roster", "import")
		return nil, err
	}
	s.forget()
	s.logger.Info(ctx, "roster imported", logger.Int("rows", len(stored)))
	return stored, nil
}

// AddRow appends an empty or prefilled row to the grid.
func (s *Service) AddRow(ctx context.Context, row roster.Row) (roster.Row, error) {
	if err := s.ready(); err != nil {
		return roster.Row{}, err
	}
	stored, err := s.store.Add(ctx, row)
	if err != nil {
		metrics.RecordErrorByComponent("roster", "add")
		return roster.Row{}, err
	}
	s.logger.Debug(ctx, "row added", logger.String("id", stored.ID))
	return stored, nil
}

// UpdateRow overwrites one grid row.
func (s *Service) UpdateRow(ctx context.Context, id string, row roster.Row) (roster.Row, error) {
	if err := s.ready(); err != nil {
		return roster.Row{}, err
	}
	stored, err := s.store.Update(ctx, id, row)
	if err != nil {
		return roster.Row{}, err
	}
	s.logger.Debug(ctx, "row updated", logger.String("id", id))
	return stored, nil
}

// DeleteRow removes one grid row.
func (s *Service) DeleteRow(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Debug(ctx, "row deleted", logger.String("id", id))
	return nil
}

// ClearRoster empties the grid and forgets the last generated teams.
func (s *Service) ClearRoster(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	s.store.Clear(ctx)
	s.forget()
	s.logger.Info(ctx, "roster cleared")
	return nil
}

// Generate builds teams from the attending rows of the grid and remembers the
// result. A grid with nobody attending yields two empty teams.
func (s *Service) Generate(ctx context.Context) (allocate.Assignment, error) {
	if err := s.ready(); err != nil {
		return allocate.Assignment{}, err
	}
	out, err := s.allocate(ctx, s.store.List(ctx))
	if err != nil {
		return allocate.Assignment{}, err
	}

	s.mu.Lock()
	s.last = &out
	s.mu.Unlock()
	return out, nil
}

// Allocate builds teams from caller-supplied rows without touching the grid.
func (s *Service) Allocate(ctx context.Context, rows []roster.Row) (allocate.Assignment, error) {
	if err := s.ready(); err != nil {
		return allocate.Assignment{}, err
	}
	return s.allocate(ctx, rows)
}

// LastAssignment returns the teams produced by the latest Generate, if any.
func (s *Service) LastAssignment(_ context.Context) (allocate.Assignment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return allocate.Assignment{}, false
	}
	return *s.last, true
}

func (s *Service) allocate(ctx context.Context, rows []roster.Row) (allocate.Assignment, error) {
	start := time.Now()
	defer func() {
		metrics.RecordAllocationLatency(float64(time.Since(start).Nanoseconds()) / nanosecondsPerMillisecond)
	}()

	attending := roster.AttendingRows(rows)
	players, err := roster.ParseRows(attending)
	if err != nil {
		s.rejected(ctx, err)
		return allocate.Assignment{}, err
	}

	// The allocator carries a *rand.Rand when seeded, which is not safe for
	// concurrent use.
	s.mu.Lock()
	out, err := s.allocator.Allocate(players)
	s.mu.Unlock()
	if err != nil {
		s.rejected(ctx, err)
		return allocate.Assignment{}, err
	}

	metrics.RecordAllocation(out.Size(), out.Iterations, out.Swaps, out.Gap, out.Balanced)
	if len(players) == 0 {
		s.logger.Warn(ctx, "no attending players; returning empty teams", logger.Int("rows", len(rows)))
		return out, nil
	}
	s.logger.Info(ctx, "teams generated",
		logger.Int("rows", len(rows)),
		logger.Int("players", len(players)),
		logger.Float64(out.Home.Name, out.Home.Skill),
		logger.Float64(out.Away.Name, out.Away.Skill),
		logger.Float64("gap", out.Gap),
		logger.Int("swaps", out.Swaps),
		logger.Int("iterations", out.Iterations),
		logger.Bool("balanced", out.Balanced),
	)
	return out, nil
}

func (s *Service) rejected(ctx context.Context, err error) {
	invalid := roster.Invalid(err)
	metrics.RecordValidationFailure(len(invalid))
	metrics.RecordErrorByComponent("allocator", "validation")
	s.logger.Warn(ctx, "roster rejected", logger.Int("invalidRecords", len(invalid)), logger.Error(err))
}

func (s *Service) forget() {
	s.mu.Lock()
	s.last = nil
	s.mu.Unlock()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":       s.started,
		"threshold":     s.threshold,
		"homeTeam":      s.homeName,
		"awayTeam":      s.awayName,
		"maxRosterSize": s.maxRosterSize,
	}
	if s.started {
		rows := s.store.Count(context.Background())
		stats["rows"] = rows
		metrics.UpdateRosterRows(rows)
	}
	if s.last != nil {
		stats["lastGap"] = s.last.Gap
		stats["lastPlayers"] = s.last.Size()
		stats["lastBalanced"] = s.last.Balanced
	}
	return stats
}
