package smoke

import (
	"context"
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/okian/lineup/internal/domain/roster"
	"github.com/okian/lineup/pkg/logger"
)

// Generate builds a random grid. Names carry the run id so rows from
// different runs never collide, and the same seed yields the same grid.
func Generate(ctx context.Context, config *Config, runID string) []roster.Row {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		config.Seed = seed
	}
	rng := rand.New(rand.NewSource(seed))

	rows := make([]roster.Row, config.Players)
	for i := range rows {
		rows[i] = roster.Row{
			First:      "P" + strconv.Itoa(i+1),
			Last:       runID,
			Skill:      strconv.FormatFloat(randomSkill(rng), 'f', -1, 64),
			Defense:    flag(rng.Float64() < config.Defense),
			Attendance: flag(rng.Float64() < config.Attendance),
		}
	}

	logger.Get().Info(ctx, "generated roster",
		logger.Int("rows", len(rows)),
		logger.Int("attending", len(roster.AttendingRows(rows))),
		logger.Any("seed", seed))
	return rows
}

// NewRunID returns a short unique tag for one run.
func NewRunID() string {
	return uuid.New().String()[:8]
}

func randomSkill(rng *rand.Rand) float64 {
	v := skillMin + rng.Float64()*skillSpan
	return math.Round(v*skillStep) / skillStep
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
