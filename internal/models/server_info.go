package models

import "time"

// ServerInfo represents service bookkeeping
type ServerInfo struct {
	StartTime    time.Time `json:"start_time"`
	LastCallTime time.Time `json:"last_call_time"`
	HomeEnvVars  []string  `json:"home_env_vars"`
}

// SystemResources represents host resources as reported by /server_info
type SystemResources struct {
	CPUCount      int     `json:"cpu_count"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryTotal   uint64  `json:"memory_total"`
	MemoryUsed    uint64  `json:"memory_used"`
	MemoryPercent float64 `json:"memory_percent"`
	DiskTotal     uint64  `json:"disk_total"`
	DiskUsed      uint64  `json:"disk_used"`
	DiskPercent   float64 `json:"disk_percent"`
}

// ServerInfoResponse represents the server info response
type ServerInfoResponse struct {
	Uptime      float64         `json:"uptime"`
	IdleTime    float64         `json:"idle_time"`
	HomeEnvVars []string        `json:"home_env_vars"`
	Resources   SystemResources `json:"resources"`
}

// SystemStats represents process and host statistics
type SystemStats struct {
	CPUPercent float64     `json:"cpu_percent"`
	Memory     MemoryStats `json:"memory"`
	Disk       DiskStats   `json:"disk"`
}

// MemoryStats represents memory usage statistics
type MemoryStats struct {
	RSS           uint64  `json:"rss"`            // Resident Set Size in bytes
	VMS           uint64  `json:"vms"`            // Virtual Memory Size in bytes
	Percent       float32 `json:"percent"`        // Process share of physical memory
	Total         uint64  `json:"total"`          // Host physical memory in bytes
	Used          uint64  `json:"used"`           // Host memory in use in bytes
	SystemPercent float64 `json:"system_percent"` // Host memory usage percentage
}

// DiskStats represents disk usage statistics
type DiskStats struct {
	Total   uint64  `json:"total"`
	Used    uint64  `json:"used"`
	Free    uint64  `json:"free"`
	Percent float64 `json:"percent"`
}
