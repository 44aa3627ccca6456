package roster

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Row is one line of the editable roster grid. Every field is kept as text,
// exactly as the organizer typed or imported it.
type Row struct {
	ID         string `json:"id,omitempty"`
	First      string `json:"first"`
	Last       string `json:"last"`
	Skill      string `json:"skill"`
	Defense    string `json:"defense"`
	Attendance string `json:"attendance"`
}

// Attending reports whether the row's attendance flag is set.
func (r Row) Attending() bool { return truthy(r.Attendance) }

// truthy accepts "1" plus a few spellings organizers tend to type.
func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "x":
		return true
	}
	return false
}

// Reasons a skill value is rejected.
var (
	errSkillEmpty     = errors.New("skill is empty")
	errSkillNotNum    = errors.New("skill is not a number")
	errSkillNotFinite = errors.New("skill is not a finite number")
	errSkillNegative  = errors.New("skill must not be negative")
)

// ParseSkill converts a skill cell to a rating. Empty, non-numeric, NaN,
// infinite and negative values are rejected.
func ParseSkill(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errSkillEmpty
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errSkillNotNum
	}
	if err := CheckSkill(v); err != nil {
		return 0, err
	}
	return v, nil
}

// CheckSkill rejects ratings the allocator cannot order or sum.
func CheckSkill(v float64) error {
	switch {
	case math.IsNaN(v), math.IsInf(v, 0):
		return errSkillNotFinite
	case v < 0:
		return errSkillNegative
	}
	return nil
}

// ParseRow converts a single row. index is the row's position in the batch
// and is only used for error reporting.
func ParseRow(index int, r Row) (Player, error) {
	skill, err := ParseSkill(r.Skill)
	if err != nil {
		return Player{}, &ValidationError{
			Index:  index,
			ID:     r.ID,
			First:  r.First,
			Last:   r.Last,
			Value:  r.Skill,
			Reason: err.Error(),
		}
	}
	return Player{
		First:     strings.TrimSpace(r.First),
		Last:      strings.TrimSpace(r.Last),
		Skill:     skill,
		Defense:   truthy(r.Defense),
		Attending: r.Attending(),
	}, nil
}

// ParseRows converts a batch of rows. All offending rows are collected into a
// single ValidationErrors; no players are returned in that case.
func ParseRows(rows []Row) ([]Player, error) {
	players := make([]Player, 0, len(rows))
	var errs ValidationErrors
	for i, r := range rows {
		p, err := ParseRow(i, r)
		if err != nil {
			errs = append(errs, err.(*ValidationError))
			continue
		}
		players = append(players, p)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return players, nil
}

// AttendingRows filters rows down to the ones flagged as attending.
func AttendingRows(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.Attending() {
			out = append(out, r)
		}
	}
	return out
}
