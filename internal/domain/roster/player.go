// Package roster contains the player records the allocator works on and
// the conversion from editable text rows into typed players.
package roster

// Position is the on-ice role of a player.
type Position string

// Known positions.
const (
	Forward Position = "Forward"
	Defense Position = "Defense"
)

// Player is a typed, validated roster entry.
type Player struct {
	First     string
	Last      string
	Skill     float64 // non-negative, finite
	Defense   bool
	Attending bool
}

// Position reports Defense for defensemen and Forward otherwise.
func (p Player) Position() Position {
	if p.Defense {
		return Defense
	}
	return Forward
}

// Name joins first and last name for display and error messages.
func (p Player) Name() string {
	switch {
	case p.First == "":
		return p.Last
	case p.Last == "":
		return p.First
	}
	return p.First + " " + p.Last
}

// Attending returns the attending players in input order. The input slice is
// not modified.
func Attending(players []Player) []Player {
	out := make([]Player, 0, len(players))
	for _, p := range players {
		if p.Attending {
			out = append(out, p)
		}
	}
	return out
}
