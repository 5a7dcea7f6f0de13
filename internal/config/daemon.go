package config

import (
	"os"
	"syscall"

	"github.com/watchfire-io/workstyle/internal/models"
)

// LoadDaemonInfo loads the daemon info from the pid file.
// Returns nil if the file doesn't exist.
func LoadDaemonInfo() (*models.DaemonInfo, error) {
	path := PIDFile()
	if !FileExists(path) {
		return nil, nil
	}

	var info models.DaemonInfo
	if err := LoadYAML(path, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SaveDaemonInfo writes the daemon info to the pid file.
func SaveDaemonInfo(info *models.DaemonInfo) error {
	return SaveYAML(PIDFile(), info)
}

// RemoveDaemonInfo removes the pid file.
func RemoveDaemonInfo() error {
	path := PIDFile()
	if !FileExists(path) {
		return nil
	}
	return os.Remove(path)
}

// IsDaemonRunning checks if another daemon process is still running.
// Returns true if the pid file exists and the PID is alive.
func IsDaemonRunning() (bool, *models.DaemonInfo, error) {
	info, err := LoadDaemonInfo()
	if err != nil {
		return false, nil, err
	}
	if info == nil {
		return false, nil, nil
	}
	if info.PID == os.Getpid() {
		return false, info, nil
	}

	process, err := os.FindProcess(info.PID)
	if err != nil {
		return false, info, nil
	}

	// Signal 0 only checks that the process exists.
	if err := process.Signal(syscall.Signal(0)); err != nil {
		_ = RemoveDaemonInfo()
		return false, info, nil
	}

	return true, info, nil
}
