package models

import (
	"net/url"
	"strconv"
)

// Page is the panel's paginated list payload.
type Page[T any] struct {
	List     []T   `json:"list"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

// ListParams are the common list query parameters.
type ListParams struct {
	Page     int
	PageSize int
	Keyword  string
}

func (p ListParams) Query() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	if p.Keyword != "" {
		q.Set("keyword", p.Keyword)
	}
	return q
}
