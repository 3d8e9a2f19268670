package filters

import (
	"math"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 50
)

// Pagination is the envelope returned next to every list payload.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ParsePage coerces the raw page/limit query params. Non-numeric or
// out-of-range values clamp to the defaults, and limit is capped at maxLimit
// when maxLimit is positive.
func ParsePage(pageStr, limitStr string, maxLimit int) (page, limit, offset int) {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = DefaultPage
	}
	limit, err = strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	// Keep (page-1)*limit from overflowing into a negative offset.
	if page > math.MaxInt/limit {
		page = math.MaxInt / limit
	}
	return page, limit, (page - 1) * limit
}

// NewPagination fills the envelope; TotalPages is ceil(total/limit).
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}
