package models

import "strings"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// SortDirection is the ordering of a list request.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// GetQuery carries the filters shared by every entity list.
type GetQuery struct {
	SearchTerm     string        `json:"searchTerm,omitempty"`
	SearchTermKeys []string      `json:"searchTermKeys,omitempty"`
	OrderBy        string        `json:"orderBy,omitempty"`
	Order          SortDirection `json:"order,omitempty"`
	Limit          int           `json:"limit,omitempty"`
	Offset         int           `json:"offset,omitempty"`
}

// Normalize clamps paging values and resolves ordering against the allowed columns.
// Unknown order fields fall back to def.
func (q GetQuery) Normalize(allowed map[string]string, def string) GetQuery {
	if q.Limit <= 0 {
		q.Limit = DefaultPageSize
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if _, ok := allowed[q.OrderBy]; !ok {
		q.OrderBy = def
	}
	switch SortDirection(strings.ToLower(string(q.Order))) {
	case SortAsc:
		q.Order = SortAsc
	default:
		q.Order = SortDesc
	}
	q.SearchTerm = strings.TrimSpace(q.SearchTerm)

	return q
}

// List is a page of records together with the total number of matches.
type List[T any] struct {
	Data       []T `json:"data"`
	TotalCount int `json:"totalCount"`
}
