package roster

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// UnmarshalJSON accepts skill, defense and attendance as JSON strings,
// numbers or booleans. Everything is normalized back to text so validation
// stays in ParseRow.
func (r *Row) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         string          `json:"id"`
		First      string          `json:"first"`
		Last       string          `json:"last"`
		Skill      json.RawMessage `json:"skill"`
		Defense    json.RawMessage `json:"defense"`
		Attendance json.RawMessage `json:"attendance"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	skill, err := cellText(raw.Skill)
	if err != nil {
		return fmt.Errorf("skill: %w", err)
	}
	defense, err := cellText(raw.Defense)
	if err != nil {
		return fmt.Errorf("defense: %w", err)
	}
	attendance, err := cellText(raw.Attendance)
	if err != nil {
		return fmt.Errorf("attendance: %w", err)
	}
	*r = Row{
		ID:         raw.ID,
		First:      raw.First,
		Last:       raw.Last,
		Skill:      skill,
		Defense:    defense,
		Attendance: attendance,
	}
	return nil
}

func cellText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	switch raw[0] {
	case '"':
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return "", err
		}
		if b {
			return "1", nil
		}
		return "0", nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("unsupported value %s", raw)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return "", err
	}
	return n.String(), nil
}
