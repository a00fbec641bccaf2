package models

import "time"

// Node is a GOST instance managed by the panel.
type Node struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Host        string    `json:"host"`
	APIPort     int       `json:"api_port"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NodeRequest is the body of node create and update calls.
type NodeRequest struct {
	Name        string `json:"name"`
	Host        string `json:"host"`
	APIPort     int    `json:"api_port"`
	Username    string `json:"username,omitempty"`
	Password    string `json:"password,omitempty"`
	Description string `json:"description,omitempty"`
}
