package domain

// FetchFailedMessage is the user-facing text shown when a page cannot be loaded.
const FetchFailedMessage = "Failed to fetch attendees. Please try again later."

// ViewState holds everything the attendee list needs to render. Query is
// seeded from and written back to the URL; the other fields are derived.
type ViewState struct {
	Query     PageQuery
	Attendees []Attendee
	Total     int
	Error     string
}

// NewViewState starts an empty state for query.
func NewViewState(query PageQuery) ViewState {
	return ViewState{Query: query.Normalize(), Attendees: []Attendee{}}
}

// TotalPages derives the page count from Total.
func (s ViewState) TotalPages() int {
	return TotalPages(s.Total)
}

// ApplyPage replaces attendees and total, clears the error and clamps the
// page. It reports whether the page had to be moved.
func (s *ViewState) ApplyPage(page AttendeePage) bool {
	s.Attendees = cloneAttendees(page.Attendees)
	s.Total = page.Total
	if s.Total < 0 {
		s.Total = 0
	}
	s.Error = ""
	return s.Clamp()
}

// ApplyFailure records a failed fetch. Attendees and total stay as they were.
func (s *ViewState) ApplyFailure() {
	s.Error = FetchFailedMessage
}

// Clamp keeps the page within [1, max(1, TotalPages)].
func (s *ViewState) Clamp() bool {
	last := s.TotalPages()
	if last < 1 {
		last = 1
	}
	page := s.Query.Page
	if page < 1 {
		page = 1
	}
	if page > last {
		page = last
	}
	changed := page != s.Query.Page
	s.Query.Page = page
	return changed
}

// Clone returns a copy that shares no slices with s.
func (s ViewState) Clone() ViewState {
	cloned := s
	cloned.Attendees = cloneAttendees(s.Attendees)
	return cloned
}

// Controls derives the pagination controls for the current state.
func (s ViewState) Controls() Controls {
	return NewControls(s.Query.Page, s.TotalPages())
}
