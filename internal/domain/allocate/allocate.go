// Package allocate splits attending players into two teams that are even in
// position makeup and as close as possible in total skill.
package allocate

import (
	"math"
	"math/rand"
	"slices"
	"strconv"

	"github.com/okian/lineup/internal/domain/roster"
)

// Defaults used when no options are given.
const (
	DefaultThreshold = 2.0
	DefaultHomeName  = "Red"
	DefaultAwayName  = "White"

	// iterationsPerPlayer bounds the balancing loop at 2*n iterations.
	iterationsPerPlayer = 2
)

// Team is one side of an assignment.
type Team struct {
	Name    string
	Players []roster.Player
	Skill   float64
}

// Forwards returns the team's forwards in team order.
func (t Team) Forwards() []roster.Player { return t.byPosition(false) }

// Defense returns the team's defensemen in team order.
func (t Team) Defense() []roster.Player { return t.byPosition(true) }

func (t Team) byPosition(defense bool) []roster.Player {
	out := make([]roster.Player, 0, len(t.Players))
	for _, p := range t.Players {
		if p.Defense == defense {
			out = append(out, p)
		}
	}
	return out
}

// Assignment is the result of one allocation.
type Assignment struct {
	Home Team
	Away Team

	Gap        float64 // |Home.Skill - Away.Skill|
	Iterations int     // balancing loop iterations run
	Swaps      int     // swaps applied
	Balanced   bool    // Gap is within the threshold
}

// Size returns the number of players placed on either team.
func (a Assignment) Size() int { return len(a.Home.Players) + len(a.Away.Players) }

// Allocator builds assignments. The zero value is not usable; call New.
type Allocator struct {
	threshold float64
	homeName  string
	awayName  string
	rng       *rand.Rand
}

// New creates an Allocator with the given options.
func New(opts ...Option) *Allocator {
	a := &Allocator{
		threshold: DefaultThreshold,
		homeName:  DefaultHomeName,
		awayName:  DefaultAwayName,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Threshold returns the configured skill gap tolerance.
func (a *Allocator) Threshold() float64 { return a.threshold }

// Allocate splits players, all of whom must be attending, into two teams.
// The input slice is not modified. An empty input yields two empty teams.
func (a *Allocator) Allocate(players []roster.Player) (Assignment, error) {
	if err := validate(players); err != nil {
		return Assignment{}, err
	}

	var forwards, defense []roster.Player
	for _, p := range players {
		if p.Defense {
			defense = append(defense, p)
		} else {
			forwards = append(forwards, p)
		}
	}
	a.order(forwards)
	a.order(defense)

	home := make([]roster.Player, 0, len(players)/2+1)
	away := make([]roster.Player, 0, len(players)/2+1)
	for i, p := range forwards {
		if i%2 == 0 {
			home = append(home, p)
		} else {
			away = append(away, p)
		}
	}
	// Defense alternates the other way round so the side that got the
	// stronger forward gets the weaker defenseman.
	for i, p := range defense {
		if i%2 == 0 {
			away = append(away, p)
		} else {
			home = append(home, p)
		}
	}

	iterations, swaps := a.balance(home, away, iterationsPerPlayer*len(players))

	out := Assignment{
		Home:       Team{Name: a.homeName, Players: home, Skill: sum(home)},
		Away:       Team{Name: a.awayName, Players: away, Skill: sum(away)},
		Iterations: iterations,
		Swaps:      swaps,
	}
	out.Gap = math.Abs(out.Home.Skill - out.Away.Skill)
	out.Balanced = out.Gap <= a.threshold
	return out, nil
}

// order sorts a position group by skill, highest first. Ties keep their
// current order, which is input order unless a random source is configured.
func (a *Allocator) order(group []roster.Player) {
	if a.rng != nil {
		a.rng.Shuffle(len(group), func(i, j int) { group[i], group[j] = group[j], group[i] })
	}
	slices.SortStableFunc(group, func(x, y roster.Player) int {
		switch {
		case x.Skill > y.Skill:
			return -1
		case x.Skill < y.Skill:
			return 1
		}
		return 0
	})
}

// balance swaps the strongest player of the stronger team with the weakest
// player of the weaker team while the gap exceeds the threshold. A swap is
// only taken when it strictly shrinks the gap, so the loop cannot oscillate;
// maxIter caps it regardless.
func (a *Allocator) balance(home, away []roster.Player, maxIter int) (iterations, swaps int) {
	for iterations < maxIter {
		homeSkill, awaySkill := sum(home), sum(away)
		gap := math.Abs(homeSkill - awaySkill)
		if gap <= a.threshold {
			return iterations, swaps
		}
		iterations++

		strong, weak := home, away
		if awaySkill > homeSkill {
			strong, weak = away, home
		}
		hi, lo := strongest(strong), weakest(weak)
		if hi < 0 || lo < 0 {
			return iterations, swaps
		}
		// Moving delta from the strong side to the weak side changes the
		// gap from g to |g - 2*delta|.
		delta := strong[hi].Skill - weak[lo].Skill
		if math.Abs(gap-2*delta) >= gap {
			return iterations, swaps
		}
		strong[hi], weak[lo] = weak[lo], strong[hi]
		swaps++
	}
	return iterations, swaps
}

// strongest returns the index of the first highest-skill player, or -1.
func strongest(team []roster.Player) int {
	idx := -1
	for i, p := range team {
		if idx < 0 || p.Skill > team[idx].Skill {
			idx = i
		}
	}
	return idx
}

// weakest returns the index of the first lowest-skill player, or -1.
func weakest(team []roster.Player) int {
	idx := -1
	for i, p := range team {
		if idx < 0 || p.Skill < team[idx].Skill {
			idx = i
		}
	}
	return idx
}

func sum(team []roster.Player) float64 {
	var total float64
	for _, p := range team {
		total += p.Skill
	}
	return total
}

// validate rejects the whole batch if any rating is unusable.
func validate(players []roster.Player) error {
	var errs roster.ValidationErrors
	for i, p := range players {
		if err := roster.CheckSkill(p.Skill); err != nil {
			errs = append(errs, &roster.ValidationError{
				Index:  i,
				First:  p.First,
				Last:   p.Last,
				Value:  strconv.FormatFloat(p.Skill, 'g', -1, 64),
				Reason: err.Error(),
			})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
