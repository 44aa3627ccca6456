package smoke

import "time"

// Defaults used by the CLI.
const (
	DefaultBaseURL    = "http://localhost:9080"
	DefaultPlayers    = 24
	DefaultAttendance = 0.85
	DefaultDefense    = 0.35
	DefaultTimeout    = 10 * time.Second
	DefaultRunTimeout = 2 * time.Minute
)

// Skill generation range; values are rounded to halves.
const (
	skillMin  = 1.0
	skillSpan = 9.0
	skillStep = 2.0
)

// skillEpsilon absorbs float rounding when comparing sums.
const skillEpsilon = 1e-6
