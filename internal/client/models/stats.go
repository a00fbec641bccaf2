package models

// DashboardStats is the dashboard summary.
type DashboardStats struct {
	TotalNodes     int64 `json:"totalNodes"`
	OnlineNodes    int64 `json:"onlineNodes"`
	TotalTunnels   int64 `json:"totalTunnels"`
	RunningTunnels int64 `json:"runningTunnels"`
	TotalRules     int64 `json:"totalRules"`
	CurrentConns   int64 `json:"currentConns"`
	InputBytes     int64 `json:"inputBytes"`
	OutputBytes    int64 `json:"outputBytes"`
}
