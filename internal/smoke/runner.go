package smoke

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/lineup/internal/domain/roster"
	"github.com/okian/lineup/pkg/logger"
)

// Run executes one smoke run: health check, import, generate and verify.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	stats := &Stats{RunID: NewRunID(), StartTime: time.Now()}
	log := logger.Get()

	log.Info(ctx, "starting lineup smoke run",
		logger.String("baseURL", config.BaseURL),
		logger.String("run", stats.RunID),
		logger.Int("players", config.Players),
		logger.Float64("attendance", config.Attendance),
		logger.Float64("defense", config.Defense),
		logger.String("timeout", config.Timeout.String()))

	client := newHTTPClient(config.BaseURL, config.Timeout)

	// Step 1: Check service health
	if err := client.do(ctx, http.MethodGet, "/healthz", nil, nil, http.StatusOK); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate and import the grid
	rows := Generate(ctx, config, stats.RunID)
	stats.Seed = config.Seed
	stats.Rows = len(rows)
	stats.Attending = len(roster.AttendingRows(rows))

	var imported struct {
		Rows []roster.Row `json:"rows"`
	}
	body := map[string][]roster.Row{"rows": rows}
	if err := client.do(ctx, http.MethodPut, "/roster", body, &imported, http.StatusOK); err != nil {
		return nil, fmt.Errorf("roster import failed: %w", err)
	}
	if len(imported.Rows) != len(rows) {
		return nil, fmt.Errorf("%w: imported %d rows, sent %d", ErrVerification, len(imported.Rows), len(rows))
	}

	// Step 3: Generate teams
	var got Assignment
	if err := client.do(ctx, http.MethodPost, "/teams", nil, &got, http.StatusOK); err != nil {
		return nil, fmt.Errorf("team generation failed: %w", err)
	}

	// Step 4: Verify
	if err := Verify(rows, got); err != nil {
		return nil, err
	}

	stats.Gap = got.Gap
	stats.Swaps = got.Swaps
	stats.Balanced = got.Balanced
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	if config.Verbose {
		for _, team := range got.Teams {
			displayTeam(ctx, team)
		}
	}
	displayFinalStats(ctx, stats)
	return stats, nil
}

func displayTeam(ctx context.Context, team Team) {
	log := logger.Get().Named("team")
	log.Info(ctx, team.Name,
		logger.Int("players", len(team.Players)),
		logger.Float64("skill", team.Skill))
	for _, p := range team.Players {
		log.Info(ctx, p.First+" "+p.Last,
			logger.String("position", p.Position),
			logger.Float64("skill", p.Skill))
	}
}

// displayFinalStats logs the run summary.
func displayFinalStats(ctx context.Context, stats *Stats) {
	logger.Get().Info(ctx, "smoke run passed",
		logger.String("run", stats.RunID),
		logger.Any("seed", stats.Seed),
		logger.Int("rows", stats.Rows),
		logger.Int("attending", stats.Attending),
		logger.Float64("gap", stats.Gap),
		logger.Int("swaps", stats.Swaps),
		logger.Bool("balanced", stats.Balanced),
		logger.String("duration", stats.Duration.String()))
}
