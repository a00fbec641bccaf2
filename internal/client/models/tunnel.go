package models

import "time"

// Tunnel is a multi-hop forwarding chain between an entry and an exit node.
type Tunnel struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	EntryNodeID uint      `json:"entry_node_id"`
	ExitNodeID  uint      `json:"exit_node_id"`
	Protocol    string    `json:"protocol"`
	ListenPort  int       `json:"listen_port"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TunnelRequest is the body of tunnel create and update calls.
type TunnelRequest struct {
	Name        string `json:"name"`
	EntryNodeID uint   `json:"entry_node_id"`
	ExitNodeID  uint   `json:"exit_node_id"`
	Protocol    string `json:"protocol"`
	ListenPort  int    `json:"listen_port"`
}
