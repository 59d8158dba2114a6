package search

import (
	"net/url"
	"strconv"

	"github.com/Raymond9734/invoices-dashboard/internal/models"
)

// Navigator reads and replaces the current location.
// Replace must not add a history entry.
type Navigator interface {
	CurrentParams() url.Values
	Replace(url string)
}

// CreatePageURL returns the link for page of a listing, keeping every
// other param of the current location
func CreatePageURL(path string, params url.Values, page int) string {
	next := cloneValues(params)
	next.Set(models.PageParam, strconv.Itoa(page))
	return buildURL(path, next)
}

func buildURL(path string, params url.Values) string {
	encoded := params.Encode()
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}

func cloneValues(values url.Values) url.Values {
	clone := make(url.Values, len(values))
	for key, vals := range values {
		clone[key] = append([]string(nil), vals...)
	}
	return clone
}
