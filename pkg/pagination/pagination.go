package pagination

import (
	"errors"
	"net/http"
	"strconv"

	"radlab-backoffice/pkg/response"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

var (
	ErrInvalidPage      = errors.New("page must be a positive integer")
	ErrInvalidLimit     = errors.New("limit must be between 1 and 100")
	ErrInvalidSortOrder = errors.New("sortOrder must be asc or desc")
)

// Params carries the list-query parameters shared by every collection route.
type Params struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
	Search    string
}

// Parse reads page/limit/sortBy/sortOrder/search from the query string.
// Out-of-range values are rejected, not clamped.
func Parse(r *http.Request) (*Params, error) {
	q := r.URL.Query()

	p := &Params{
		Page:      DefaultPage,
		Limit:     DefaultLimit,
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
		Search:    q.Get("search"),
	}

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return nil, ErrInvalidPage
		}
		p.Page = page
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > MaxLimit {
			return nil, ErrInvalidLimit
		}
		p.Limit = limit
	}

	switch p.SortOrder {
	case "", "asc", "desc":
	default:
		return nil, ErrInvalidSortOrder
	}

	return p, nil
}

func (p *Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Build computes the response pagination block for a total row count.
func Build(page, limit int, total int64) *response.Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	pg := &response.Pagination{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}

	if pg.HasNextPage {
		next := page + 1
		pg.NextPage = &next
	}
	if pg.HasPrevPage {
		prev := page - 1
		pg.PrevPage = &prev
	}

	return pg
}
