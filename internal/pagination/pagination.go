// Package pagination implements the page-math contract shared by all
// paginated listings: 1-based pages, independent total count, and
// totalPages = ceil(total / pageSize).
package pagination

import (
	"errors"
	"strconv"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

var (
	ErrInvalidPage     = errors.New("page must be a positive integer")
	ErrInvalidPageSize = errors.New("pageSize must be between 1 and 100")
)

// Params holds validated pagination query parameters.
type Params struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ParseParams validates the raw page/pageSize query values, applying
// defaults for absent ones. A literal pageSize of 0 is rejected here so the
// page math below never divides by zero.
func ParseParams(pageStr, pageSizeStr string) (Params, error) {
	p := Params{Page: 1, PageSize: DefaultPageSize}

	if pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return Params{}, ErrInvalidPage
		}
		p.Page = page
	}

	if pageSizeStr != "" {
		size, err := strconv.Atoi(pageSizeStr)
		if err != nil || size < 1 || size > MaxPageSize {
			return Params{}, ErrInvalidPageSize
		}
		p.PageSize = size
	}

	return p, nil
}

// Paginated wraps one page of items with its metadata.
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// New builds the pagination envelope. A page beyond range is a valid state
// with empty items; a pageSize below 1 is a contract violation.
func New[T any](items []T, total int64, params Params) (Paginated[T], error) {
	if params.PageSize < 1 {
		return Paginated[T]{}, ErrInvalidPageSize
	}
	if items == nil {
		items = []T{}
	}
	totalPages := int((total + int64(params.PageSize) - 1) / int64(params.PageSize))
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}, nil
}
