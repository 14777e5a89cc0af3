package domain

import (
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// PageSize is the number of rows shown per page.
const PageSize = 10

// minServerSearchLength is the shortest search forwarded to the remote endpoint.
const minServerSearchLength = 2

// PageQuery is the part of the view state owned by the browser URL.
type PageQuery struct {
	Page   int
	Search string
}

// ParsePageQuery reads search and page from URL query parameters. A missing or
// unparsable page falls back to 1; a missing search is the empty string.
func ParsePageQuery(values url.Values) PageQuery {
	query := PageQuery{Page: 1, Search: values.Get("search")}
	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			query.Page = page
		}
	}
	return query.Normalize()
}

// Normalize returns a copy with the page moved into the valid lower bound.
func (q PageQuery) Normalize() PageQuery {
	normalized := q
	if normalized.Page < 1 {
		normalized.Page = 1
	}
	return normalized
}

// PageIndex is the zero-based page number expected by the remote endpoint.
func (q PageQuery) PageIndex() int {
	return q.Normalize().Page - 1
}

// ServerSearch returns the search term to forward upstream. Terms of a single
// character are not sent.
func (q PageQuery) ServerSearch() (string, bool) {
	if utf8.RuneCountInString(q.Search) < minServerSearchLength {
		return "", false
	}
	return q.Search, true
}

// WithSearch changes the search and resets the page to 1 in one transition.
func (q PageQuery) WithSearch(search string) PageQuery {
	return PageQuery{Page: 1, Search: search}
}

// WithPage changes the page, keeping the search.
func (q PageQuery) WithPage(page int) PageQuery {
	return PageQuery{Page: page, Search: q.Search}.Normalize()
}

// CanonicalKey identifies the upstream request this query produces, so two
// queries that differ only in an unsent one-letter search share a key.
func (q PageQuery) CanonicalKey() string {
	search, _ := q.ServerSearch()
	var builder strings.Builder
	builder.Grow(len(search) + 24)
	builder.WriteString("pageIndex=")
	builder.WriteString(strconv.Itoa(q.PageIndex()))
	builder.WriteString("&query=")
	builder.WriteString(search)
	return builder.String()
}

// UpstreamValues returns the query parameters of the remote request.
func (q PageQuery) UpstreamValues() url.Values {
	values := url.Values{}
	values.Set("pageIndex", strconv.Itoa(q.PageIndex()))
	if search, ok := q.ServerSearch(); ok {
		values.Set("query", search)
	}
	return values
}

// URLValues returns the browser-visible parameters.
func (q PageQuery) URLValues() url.Values {
	normalized := q.Normalize()
	values := url.Values{}
	if normalized.Search != "" {
		values.Set("search", normalized.Search)
	}
	values.Set("page", strconv.Itoa(normalized.Page))
	return values
}

// URL builds the shareable location for path with this query.
func (q PageQuery) URL(path string) string {
	if strings.TrimSpace(path) == "" {
		path = "/"
	}
	return path + "?" + q.URLValues().Encode()
}

// TotalPages is ceil(total / PageSize); zero when there are no records.
func TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + PageSize - 1) / PageSize
}
