package allocate

import "math/rand"

// Option applies a configuration option to the Allocator.
type Option func(*Allocator)

// WithThreshold sets the largest skill gap accepted without swapping.
// Negative values are ignored.
func WithThreshold(threshold float64) Option {
	return func(a *Allocator) {
		if threshold >= 0 {
			a.threshold = threshold
		}
	}
}

// WithTeamNames renames the two teams. Empty names keep the defaults.
func WithTeamNames(home, away string) Option {
	return func(a *Allocator) {
		if home != "" {
			a.homeName = home
		}
		if away != "" {
			a.awayName = away
		}
	}
}

// WithRand shuffles each position group with rng before sorting, so players
// of equal skill are ordered by the seeded source instead of input order.
// An Allocator built with this option must not be shared between goroutines.
func WithRand(rng *rand.Rand) Option {
	return func(a *Allocator) {
		a.rng = rng
	}
}
