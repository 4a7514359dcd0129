package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"quickbids/models"
)

const maxPageLimit = 100

// parsePaginationParams reads optional limit and offset. Without them every
// match is returned; out-of-range values are ignored.
func parsePaginationParams(r *http.Request) models.Page {
	var page models.Page
	q := r.URL.Query()

	if l, err := strconv.Atoi(q.Get("limit")); err == nil && l > 0 && l <= maxPageLimit {
		page.Limit = l
	}
	if o, err := strconv.Atoi(q.Get("offset")); err == nil && o >= 0 {
		page.Offset = o
	}
	return page
}

// idParam parses an optional id filter. A value that is not an integer
// leaves the filter unset.
func idParam(q url.Values, key string) *int64 {
	id, err := strconv.ParseInt(q.Get(key), 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

// exactBoolParam accepts only "true" and "false"; anything else leaves the
// filter unset.
func exactBoolParam(q url.Values, key string) *bool {
	switch q.Get(key) {
	case "true":
		return ptr(true)
	case "false":
		return ptr(false)
	default:
		return nil
	}
}

// boolParam accepts any strconv.ParseBool spelling; unparseable values
// leave the filter unset.
func boolParam(q url.Values, keys ...string) *bool {
	for _, key := range keys {
		if !q.Has(key) {
			continue
		}
		if b, err := strconv.ParseBool(q.Get(key)); err == nil {
			return &b
		}
	}
	return nil
}
