package smoke

import (
	"errors"
	"fmt"
	"math"

	"github.com/okian/lineup/internal/domain/roster"
)

// ErrVerification marks a result that breaks an allocation guarantee.
var ErrVerification = errors.New("verification failed")

// Verify checks an assignment against the grid that produced it: every
// attending row appears in exactly one team, nobody else does, team sums
// match their players and the gap matches the sums.
func Verify(rows []roster.Row, got Assignment) error {
	if len(got.Teams) != 2 {
		return fmt.Errorf("%w: expected 2 teams, got %d", ErrVerification, len(got.Teams))
	}

	want := make(map[string]int)
	for _, r := range roster.AttendingRows(rows) {
		want[r.First+" "+r.Last]++
	}

	var sums [2]float64
	for i, team := range got.Teams {
		total := 0.0
		for _, p := range team.Players {
			key := p.First + " " + p.Last
			if want[key] == 0 {
				return fmt.Errorf("%w: %q is not an attending row or appears twice", ErrVerification, key)
			}
			want[key]--
			total += p.Skill
		}
		if math.Abs(total-team.Skill) > skillEpsilon {
			return fmt.Errorf("%w: team %s reports skill %.2f but players sum to %.2f",
				ErrVerification, team.Name, team.Skill, total)
		}
		sums[i] = total
	}

	for key, n := range want {
		if n > 0 {
			return fmt.Errorf("%w: %q was not assigned", ErrVerification, key)
		}
	}

	if gap := math.Abs(sums[0] - sums[1]); math.Abs(gap-got.Gap) > skillEpsilon {
		return fmt.Errorf("%w: reported gap %.2f but teams differ by %.2f", ErrVerification, got.Gap, gap)
	}
	return nil
}
