package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// FilterMode selects who is authoritative for search filtering and paging.
type FilterMode string

const (
	// FilterModeServer trusts the remote endpoint: rows are shown as returned.
	FilterModeServer FilterMode = "server"
	// FilterModeClient re-filters by name and slices a 10-row window locally,
	// on top of whatever the server returned.
	FilterModeClient FilterMode = "client"
)

// ParseFilterMode converts configuration text into a FilterMode.
func ParseFilterMode(raw string) (FilterMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(FilterModeServer):
		return FilterModeServer, nil
	case string(FilterModeClient), "legacy":
		return FilterModeClient, nil
	default:
		return "", fmt.Errorf("unknown filter mode %q", raw)
	}
}

// VisibleAttendees returns the rows to display for query under mode.
func VisibleAttendees(attendees []Attendee, query PageQuery, mode FilterMode) []Attendee {
	if mode != FilterModeClient {
		return cloneAttendees(attendees)
	}

	folder := cases.Fold()
	needle := folder.String(query.Search)
	matched := make([]Attendee, 0, len(attendees))
	for _, attendee := range attendees {
		if strings.Contains(folder.String(attendee.Name), needle) {
			matched = append(matched, attendee)
		}
	}

	page := query.Normalize().Page
	start := (page - 1) * PageSize
	if start >= len(matched) {
		return []Attendee{}
	}
	end := start + PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end]
}
