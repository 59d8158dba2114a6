package models

import (
	"net/url"
	"strconv"
	"strings"
)

// URL query parameter names shared by the listing views and the search controller
const (
	QueryParam = "query"
	PageParam  = "page"
)

// QueryState is the listing filter reconstructed from the URL on every request
type QueryState struct {
	Term string `json:"query"`
	Page int    `json:"page"`
}

// ParseQueryState reads the filter term and page number from URL query values.
// A missing, malformed or non-positive page falls back to 1.
func ParseQueryState(values url.Values) QueryState {
	page, err := strconv.Atoi(values.Get(PageParam))
	if err != nil || page < 1 {
		page = 1
	}

	return QueryState{
		Term: strings.TrimSpace(values.Get(QueryParam)),
		Page: page,
	}
}

// Values encodes the state canonically: an empty term omits the query key
// and page 1 omits the page key.
func (q QueryState) Values() url.Values {
	values := url.Values{}
	if q.Term != "" {
		values.Set(QueryParam, q.Term)
	}
	if q.Page > 1 {
		values.Set(PageParam, strconv.Itoa(q.Page))
	}
	return values
}
