package domain

import (
	"fmt"
	"time"
)

// Row is one rendered table line.
type Row struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	CreatedAt   string `json:"createdAt"`
	CheckedInAt string `json:"checkedInAt"`
	CheckedIn   bool   `json:"checkedIn"`
}

// View is the presentation projection of a ViewState.
type View struct {
	Search     string   `json:"search"`
	Page       int      `json:"page"`
	TotalPages int      `json:"totalPages"`
	Total      int      `json:"total"`
	Rows       []Row    `json:"attendees"`
	Error      string   `json:"error"`
	Controls   Controls `json:"controls"`
	Summary    string   `json:"summary"`
	PageLabel  string   `json:"pageLabel"`
	URL        string   `json:"url"`
}

// Presenter turns view state into a View.
type Presenter struct {
	Mode FilterMode
	Path string
	Now  func() time.Time
}

// Present renders state. The summary counts the attendees held in state, not
// the rows left after local filtering.
func (p Presenter) Present(state ViewState) View {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	at := now()

	visible := VisibleAttendees(state.Attendees, state.Query, p.Mode)
	rows := make([]Row, 0, len(visible))
	for _, attendee := range visible {
		rows = append(rows, Row{
			ID:          attendee.ID,
			Name:        attendee.Name,
			Email:       attendee.Email,
			CreatedAt:   RelativeTime(attendee.CreatedAt, at),
			CheckedInAt: CheckInLabel(attendee, at),
			CheckedIn:   attendee.CheckedIn(),
		})
	}

	totalPages := state.TotalPages()
	return View{
		Search:     state.Query.Search,
		Page:       state.Query.Page,
		TotalPages: totalPages,
		Total:      state.Total,
		Rows:       rows,
		Error:      state.Error,
		Controls:   state.Controls(),
		Summary:    fmt.Sprintf("Mostrando %d de %d itens", len(state.Attendees), state.Total),
		PageLabel:  fmt.Sprintf("Pagina %d de %d", state.Query.Page, totalPages),
		URL:        state.Query.URL(p.Path),
	}
}
