// Package ipc connects to the sway/i3 compositor and adapts its replies and
// events to the layout tree model.
package ipc

import (
	"errors"
	"fmt"
	"os"
)

// EventType identifies an event stream.
type EventType uint32

// Event types, numbered as on the wire.
const (
	EventWorkspace EventType = 0
	EventWindow    EventType = 3
	EventShutdown  EventType = 6
)

// String returns the name used in SUBSCRIBE payloads.
func (e EventType) String() string {
	switch e {
	case EventWorkspace:
		return "workspace"
	case EventWindow:
		return "window"
	case EventShutdown:
		return "shutdown"
	default:
		return fmt.Sprintf("event(%d)", uint32(e))
	}
}

var (
	// ErrConnectionClosed wraps every transport failure: the connection is
	// unusable afterwards.
	ErrConnectionClosed = errors.New("compositor connection closed")

	// ErrCommandFailed is returned when the compositor rejects a command.
	ErrCommandFailed = errors.New("compositor rejected command")

	// ErrNoSocket is returned when neither SWAYSOCK nor I3SOCK is set.
	ErrNoSocket = errors.New("no compositor socket found (SWAYSOCK and I3SOCK are unset)")
)

// SocketPath returns the compositor socket from the environment.
func SocketPath() (string, error) {
	for _, env := range []string{"SWAYSOCK", "I3SOCK"} {
		if p := os.Getenv(env); p != "" {
			return p, nil
		}
	}
	return "", ErrNoSocket
}
