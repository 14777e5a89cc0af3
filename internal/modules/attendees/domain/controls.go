package domain

// Controls describes the first/previous/next/last buttons.
type Controls struct {
	Page             int  `json:"page"`
	TotalPages       int  `json:"totalPages"`
	FirstDisabled    bool `json:"firstDisabled"`
	PreviousDisabled bool `json:"previousDisabled"`
	NextDisabled     bool `json:"nextDisabled"`
	LastDisabled     bool `json:"lastDisabled"`
}

// NewControls disables first/previous on page 1 and next/last on the last page.
func NewControls(page, totalPages int) Controls {
	return Controls{
		Page:             page,
		TotalPages:       totalPages,
		FirstDisabled:    page == 1,
		PreviousDisabled: page == 1,
		NextDisabled:     page == totalPages,
		LastDisabled:     page == totalPages,
	}
}

// FirstPage is the target of the first-page button.
func (c Controls) FirstPage() int { return 1 }

// PreviousPage is the target of the previous-page button. It is below 1 only
// when the button is disabled.
func (c Controls) PreviousPage() int { return c.Page - 1 }

// NextPage is the target of the next-page button.
func (c Controls) NextPage() int { return c.Page + 1 }

// LastPage is the target of the last-page button, zero when there are no
// attendees.
func (c Controls) LastPage() int { return c.TotalPages }
