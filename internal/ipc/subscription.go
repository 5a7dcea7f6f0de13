package ipc

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	sway "github.com/joshuarubin/go-sway"
)

// eventBuffer is the number of events queued before the reader waits.
const eventBuffer = 256

// Event is one message from an event subscription.
type Event struct {
	Type   EventType
	Change string
}

// Subscription delivers compositor window events in order on a channel.
// Events are never dropped: when the buffer is full the reader waits until
// the consumer catches up or the subscription is closed.
type Subscription struct {
	events chan Event
	ctx    context.Context
	cancel context.CancelFunc

	sendMu    sync.Mutex
	closeOnce sync.Once

	mu  sync.Mutex
	err error
}

func newSubscription(ctx context.Context) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	s := &Subscription{
		events: make(chan Event, eventBuffer),
		ctx:    ctx,
		cancel: cancel,
	}
	context.AfterFunc(ctx, func() { s.finish(nil) })
	return s
}

// windowHandler forwards window events; every other handler is a no-op.
type windowHandler struct {
	sway.EventHandler
	sub *Subscription
}

func (h windowHandler) Window(_ context.Context, e sway.WindowEvent) {
	h.sub.emit(Event{Type: EventWindow, Change: string(e.Change)})
}

// Subscribe starts a subscription to window events on the socket at path.
// It does not wait for the compositor: the handshake runs on the reader
// goroutine, and a failure closes Events with Err set. The subscription ends
// when ctx is done or Close is called.
func Subscribe(ctx context.Context, path string) (*Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// sway.Subscribe takes no socket option and reads SWAYSOCK; export the
	// resolved path so I3SOCK sessions and explicit paths work too.
	if os.Getenv("SWAYSOCK") != path {
		if err := os.Setenv("SWAYSOCK", path); err != nil {
			return nil, fmt.Errorf("failed to export socket path: %w", err)
		}
	}

	s := newSubscription(ctx)
	handler := windowHandler{EventHandler: sway.NoOpEventHandler(), sub: s}
	go func() {
		err := sway.Subscribe(s.ctx, handler, sway.EventType(EventWindow.String()))
		if s.ctx.Err() != nil {
			s.finish(nil)
			return
		}
		if err == nil {
			err = io.EOF
		}
		s.finish(fmt.Errorf("%w: %w", ErrConnectionClosed, err))
	}()
	return s, nil
}

// Events returns the event channel. It is closed when the subscription ends;
// Err then reports why.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Err returns the error that ended the subscription, or nil if it was closed
// or is still running.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close ends the subscription and unblocks a reader waiting on a full buffer.
func (s *Subscription) Close() error {
	s.cancel()
	return nil
}

func (s *Subscription) emit(ev Event) {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if s.ctx.Err() != nil {
		return
	}
	select {
	case s.events <- ev:
	case <-s.ctx.Done():
	}
}

// finish records err and closes the channel once. Cancelling first releases
// an emit blocked on a full buffer so sendMu can be taken.
func (s *Subscription) finish(err error) {
	s.closeOnce.Do(func() {
		s.cancel()

		s.mu.Lock()
		s.err = err
		s.mu.Unlock()

		s.sendMu.Lock()
		close(s.events)
		s.sendMu.Unlock()
	})
}
