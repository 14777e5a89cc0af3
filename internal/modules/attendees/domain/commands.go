package domain

// SearchCommand changes the search term of a live view.
type SearchCommand struct {
	Search string `json:"search" validate:"max=200"`
}

// PageCommand jumps a live view to a page.
type PageCommand struct {
	Page int `json:"page" validate:"gte=1"`
}
