package models

import (
	"net/url"
	"strconv"
	"time"
)

// OperationLog is one entry of the panel's audit trail.
type OperationLog struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	Username     string    `json:"username"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type"`
	ResourceID   uint      `json:"resource_id"`
	Detail       string    `json:"detail"`
	IP           string    `json:"ip"`
	UserAgent    string    `json:"user_agent"`
	CreatedAt    time.Time `json:"created_at"`
}

// LogListParams filters the operation log. Zero Page and PageSize fall
// back to 1 and 20.
type LogListParams struct {
	Page         int
	PageSize     int
	Username     string
	Action       string
	ResourceType string
}

func (p *LogListParams) SetDefaults() {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PageSize == 0 {
		p.PageSize = 20
	}
}

func (p LogListParams) Query() url.Values {
	p.SetDefaults()

	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("pageSize", strconv.Itoa(p.PageSize))
	if p.Username != "" {
		q.Set("username", p.Username)
	}
	if p.Action != "" {
		q.Set("action", p.Action)
	}
	if p.ResourceType != "" {
		q.Set("resource_type", p.ResourceType)
	}
	return q
}
