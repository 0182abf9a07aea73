// Package pagination extracts page/limit parameters from list requests
// and builds response metadata.
package pagination

import (
	"net/url"
	"strconv"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params are the sanitized paging inputs of a list request.
type Params struct {
	Page  int
	Limit int
	Skip  int
}

// FromQuery reads page and limit from the query string, clamping them to
// sane bounds. Unparseable values fall back to the defaults rather than
// failing the request.
func FromQuery(q url.Values) Params {
	return FromQueryLimits(q, DefaultLimit, MaxLimit)
}

// FromQueryLimits is FromQuery with a custom default and maximum limit.
func FromQueryLimits(q url.Values, defaultLimit, maxLimit int) Params {
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil {
		limit = defaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return Params{
		Page:  page,
		Limit: limit,
		Skip:  (page - 1) * limit,
	}
}

// Meta describes one page of a larger result set.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// NewMeta computes paging metadata for a page of total items.
func NewMeta(p Params, total int64) Meta {
	var totalPages int64
	if p.Limit > 0 {
		totalPages = (total + int64(p.Limit) - 1) / int64(p.Limit)
	}

	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    int64(p.Page) < totalPages,
		HasPrev:    p.Page > 1,
	}
}
