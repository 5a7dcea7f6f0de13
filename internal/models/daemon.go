package models

import "time"

// DaemonInfo describes the running daemon instance.
// This corresponds to $XDG_RUNTIME_DIR/workstyle.pid.
type DaemonInfo struct {
	Version   int       `yaml:"version"`
	PID       int       `yaml:"pid"`
	Socket    string    `yaml:"socket"`
	Config    string    `yaml:"config,omitempty"`
	StartedAt time.Time `yaml:"started_at"`
}

// NewDaemonInfo creates a new daemon info with current values.
func NewDaemonInfo(pid int, socket, configPath string) *DaemonInfo {
	return &DaemonInfo{
		Version:   1,
		PID:       pid,
		Socket:    socket,
		Config:    configPath,
		StartedAt: time.Now().UTC(),
	}
}
