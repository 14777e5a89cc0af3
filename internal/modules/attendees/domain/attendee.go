package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Attendee is a registrant of the event as returned by the attendees endpoint.
// Records are replaced wholesale on every fetch and never mutated in place.
type Attendee struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	CreatedAt   time.Time  `json:"createdAt"`
	CheckedInAt *time.Time `json:"checkedInAt"`
}

// AttendeePage is the body of one page of the attendees endpoint.
type AttendeePage struct {
	Attendees []Attendee `json:"attendees"`
	Total     int        `json:"total"`
}

// CheckedIn reports whether the attendee has a check-in timestamp.
func (a Attendee) CheckedIn() bool {
	return a.CheckedInAt != nil
}

// UnmarshalJSON accepts numeric identifiers as well as strings; the upstream
// API has served both over time.
func (a *Attendee) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          json.RawMessage `json:"id"`
		Name        string          `json:"name"`
		Email       string          `json:"email"`
		CreatedAt   time.Time       `json:"createdAt"`
		CheckedInAt *time.Time      `json:"checkedInAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	id, err := decodeIdentifier(raw.ID)
	if err != nil {
		return err
	}
	*a = Attendee{
		ID:          id,
		Name:        raw.Name,
		Email:       raw.Email,
		CreatedAt:   raw.CreatedAt,
		CheckedInAt: raw.CheckedInAt,
	}
	return nil
}

func decodeIdentifier(raw json.RawMessage) (string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return "", nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			return "", fmt.Errorf("decode attendee id: %w", err)
		}
		return value, nil
	}
	var number json.Number
	if err := json.Unmarshal(raw, &number); err != nil {
		return "", fmt.Errorf("decode attendee id: %w", err)
	}
	return number.String(), nil
}

func cloneAttendees(in []Attendee) []Attendee {
	if in == nil {
		return []Attendee{}
	}
	out := make([]Attendee, len(in))
	copy(out, in)
	return out
}
