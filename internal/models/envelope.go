package models

import (
	"net/url"
	"strconv"
)

// Envelope is the response wrapper every backend endpoint uses.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    *T     `json:"data,omitempty"`
}

// Paged is a page of a list endpoint.
type Paged[T any] struct {
	Items       []T  `json:"items"`
	Page        int  `json:"page"`
	PageSize    int  `json:"pageSize"`
	TotalItems  int  `json:"totalItems"`
	TotalPages  int  `json:"totalPages"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

// NewPaged slices all into the page described by q.
func NewPaged[T any](all []T, q PageQuery) Paged[T] {
	q = q.WithDefaults()
	total := len(all)
	pages := (total + q.PageSize - 1) / q.PageSize

	start := (q.Page - 1) * q.PageSize
	if start > total {
		start = total
	}
	end := start + q.PageSize
	if end > total {
		end = total
	}

	items := append([]T{}, all[start:end]...)
	return Paged[T]{
		Items:       items,
		Page:        q.Page,
		PageSize:    q.PageSize,
		TotalItems:  total,
		TotalPages:  pages,
		HasNext:     q.Page < pages,
		HasPrevious: q.Page > 1,
	}
}

// Default paging values of list endpoints.
const (
	DefaultPage     = 1
	DefaultPageSize = 12
)

// PageQuery selects one page of a list endpoint.
type PageQuery struct {
	Page     int `json:"page" form:"page"`
	PageSize int `json:"pageSize" form:"pageSize"`
}

// WithDefaults fills omitted (non-positive) fields with page 1, size 12.
func (q PageQuery) WithDefaults() PageQuery {
	if q.Page <= 0 {
		q.Page = DefaultPage
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	return q
}

// Values renders the query as "page"/"pageSize" parameters.
func (q PageQuery) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("pageSize", strconv.Itoa(q.PageSize))
	return v
}
