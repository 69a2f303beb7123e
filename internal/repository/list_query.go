package repository

import "gorm.io/gorm"

// Pagination bounds
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListQuery represents common query parameters
type ListQuery struct {
	Page    int
	PerPage int
	Filters map[string]string
}

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: DefaultPageSize,
		Filters: make(map[string]string),
	}
}

// Normalize clamps Page to >= 1 and PerPage to 1..MaxPageSize. A nil query
// yields the defaults.
func (q *ListQuery) Normalize() *ListQuery {
	if q == nil {
		return NewListQuery()
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPageSize
	}
	if q.PerPage > MaxPageSize {
		q.PerPage = MaxPageSize
	}
	if q.Filters == nil {
		q.Filters = make(map[string]string)
	}
	return q
}

// Offset returns the number of rows skipped before the current page.
func (q *ListQuery) Offset() int {
	return (q.Page - 1) * q.PerPage
}

// Paginate is a gorm scope applying the query's page window.
func (q *ListQuery) Paginate(db *gorm.DB) *gorm.DB {
	if q == nil || q.PerPage <= 0 {
		return db
	}
	return db.Offset(q.Offset()).Limit(q.PerPage)
}
