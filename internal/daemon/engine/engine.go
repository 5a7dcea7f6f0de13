// Package engine runs the event loop that keeps workspace labels up to date.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/watchfire-io/workstyle/internal/daemon/label"
	"github.com/watchfire-io/workstyle/internal/daemon/tree"
	"github.com/watchfire-io/workstyle/internal/daemon/watcher"
	"github.com/watchfire-io/workstyle/internal/icons"
	"github.com/watchfire-io/workstyle/internal/ipc"
	"github.com/watchfire-io/workstyle/internal/logger"
	"github.com/watchfire-io/workstyle/internal/models"
)

// DefaultPollInterval is the sleep between two loop cycles.
const DefaultPollInterval = 100 * time.Millisecond

// Compositor fetches layout trees and runs commands.
type Compositor interface {
	GetTree(ctx context.Context) (*models.Node, error)
	RunCommand(ctx context.Context, command string) error
}

// EventSource delivers compositor events. The channel is closed when the
// connection is lost; Err reports why.
type EventSource interface {
	Events() <-chan ipc.Event
	Err() error
}

// ConfigWatcher reports completed writes of the config file.
type ConfigWatcher interface {
	Changes() <-chan watcher.Event
	Rearm() error
}

// Options are fixed for the lifetime of an Engine.
type Options struct {
	ConfigPath   string
	Deduplicate  bool
	PollInterval time.Duration
	Logger       *logger.Logger
}

// Engine owns the compositor connections and the current icon store.
// All of its state is touched only from the goroutine calling Run.
type Engine struct {
	compositor Compositor
	events     EventSource
	watcher    ConfigWatcher

	icons        *icons.Store
	configPath   string
	deduplicate  bool
	pollInterval time.Duration
	logger       *logger.Logger

	rearmPending bool
}

// New creates an engine. events and w may be nil: without events the loop
// never relabels after the initial pass, without w the config is never reloaded.
func New(compositor Compositor, events EventSource, w ConfigWatcher, store *icons.Store, opts Options) *Engine {
	if store == nil {
		store = icons.Default()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	return &Engine{
		compositor:   compositor,
		events:       events,
		watcher:      w,
		icons:        store,
		configPath:   opts.ConfigPath,
		deduplicate:  opts.Deduplicate,
		pollInterval: interval,
		logger:       log.WithPrefix("engine"),
	}
}

// Icons returns the current icon store.
func (e *Engine) Icons() *icons.Store {
	return e.icons
}

// Run labels every workspace once, then loops until ctx is cancelled (nil
// error) or the compositor connection is lost (non-nil error).
func (e *Engine) Run(ctx context.Context) error {
	e.logger.Infof("Started (deduplicate=%t, config=%q, interval=%s)", e.deduplicate, e.configPath, e.pollInterval)

	if err := e.update(ctx); err != nil {
		return err
	}

	timer := time.NewTimer(e.pollInterval)
	defer timer.Stop()

	for {
		if err := e.pollCompositor(ctx); err != nil {
			return err
		}
		e.pollConfig()

		timer.Reset(e.pollInterval)
		select {
		case <-ctx.Done():
			e.logger.Infof("Stopping: %v", ctx.Err())
			return nil
		case <-timer.C:
		}
	}
}

// pollCompositor consumes at most one compositor event without blocking.
func (e *Engine) pollCompositor(ctx context.Context) error {
	if e.events == nil {
		return nil
	}

	select {
	case ev, ok := <-e.events.Events():
		if !ok {
			if ctx.Err() != nil {
				return nil
			}
			err := e.events.Err()
			if err == nil {
				err = ipc.ErrConnectionClosed
			}
			e.logger.Warnf("Connection broken, exiting: %v", err)
			return fmt.Errorf("compositor event stream: %w", err)
		}
		if ev.Type != ipc.EventWindow {
			e.logger.Debugf("Ignoring %s event", ev.Type)
			return nil
		}
		e.logger.Debugf("Window event: %s", ev.Change)
		return e.update(ctx)
	default:
		return nil
	}
}

// update relabels all workspaces. Only a lost connection is returned; every
// other failure is logged and left for the next event.
func (e *Engine) update(ctx context.Context) error {
	err := e.UpdateWorkspaces(ctx)
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return nil
	case errors.Is(err, ipc.ErrConnectionClosed):
		e.logger.Warnf("Connection broken, exiting: %v", err)
		return err
	default:
		e.logger.Errorf("Could not update workspace name: %v", err)
		return nil
	}
}

// pollConfig consumes at most one config change without blocking.
func (e *Engine) pollConfig() {
	if e.watcher == nil {
		return
	}
	if e.rearmPending {
		if err := e.watcher.Rearm(); err == nil {
			e.rearmPending = false
		}
	}

	select {
	case <-e.watcher.Changes():
		e.logger.Infof("Detected config change, reloading config..")
		e.ReloadConfig()
		if err := e.watcher.Rearm(); err != nil {
			e.logger.Debugf("Could not re-arm config watch, retrying: %v", err)
			e.rearmPending = true
		}
	default:
	}
}

// ReloadConfig replaces the icon store with a fresh load of the config file.
// On failure the previous store stays in place.
func (e *Engine) ReloadConfig() {
	if e.configPath == "" {
		return
	}
	store, err := icons.Load(e.configPath)
	if err != nil {
		e.logger.Errorf("Could not reload config, keeping previous: %v", err)
		return
	}
	e.icons = store
	e.logger.Infof("Loaded %d matchers from %s", store.Len(), e.configPath)
}

// Pass is the outcome of one relabeling cycle. ID tags the cycle in logs and
// in preview output.
type Pass struct {
	ID      string
	Results []label.Result
}

// Pending returns the results whose label differs from the current name.
func (p *Pass) Pending() []label.Result {
	var out []label.Result
	for _, r := range p.Results {
		if r.NeedsRename() {
			out = append(out, r)
		}
	}
	return out
}

// Plan fetches a fresh tree and computes the label of every workspace in tree
// order. Workspaces that fail are logged and left out.
func (e *Engine) Plan(ctx context.Context) (*Pass, error) {
	pass := &Pass{ID: uuid.NewString()[:8]}

	root, err := e.compositor.GetTree(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tree: %w", err)
	}

	synth := &label.Synthesizer{
		Icons:       e.icons,
		Deduplicate: e.deduplicate,
		Logger:      e.logger.WithPrefix(pass.ID),
	}

	for _, ws := range tree.Workspaces(root) {
		res, err := synth.Synthesize(ws, tree.Windows(ws))
		if err != nil {
			e.logger.Errorf("[%s] Could not update workspace name: %v", pass.ID, err)
			continue
		}
		pass.Results = append(pass.Results, res)
	}
	return pass, nil
}

// UpdateWorkspaces relabels every workspace whose label changed, one at a
// time. A rejected rename is logged and the next workspace is still updated;
// a transport failure aborts the pass.
func (e *Engine) UpdateWorkspaces(ctx context.Context) error {
	_, _, err := e.Apply(ctx)
	return err
}

// Apply plans one pass, issues its renames and returns it with the number of
// workspaces actually renamed.
func (e *Engine) Apply(ctx context.Context) (*Pass, int, error) {
	pass, err := e.Plan(ctx)
	if err != nil {
		return nil, 0, err
	}
	renamed, err := e.Execute(ctx, pass)
	return pass, renamed, err
}

// Execute issues the pending renames of pass and returns how many succeeded.
func (e *Engine) Execute(ctx context.Context, pass *Pass) (int, error) {
	renamed := 0
	for _, res := range pass.Pending() {
		cmd := res.Command()
		e.logger.Debugf("[%s] %s", pass.ID, cmd)
		if err := e.compositor.RunCommand(ctx, cmd); err != nil {
			if errors.Is(err, ipc.ErrConnectionClosed) || ctx.Err() != nil {
				return renamed, err
			}
			e.logger.Errorf("[%s] Could not rename workspace %q: %v", pass.ID, res.Current, err)
			continue
		}
		renamed++
	}

	if renamed > 0 {
		e.logger.Infof("[%s] Renamed %d of %d workspaces", pass.ID, renamed, len(pass.Results))
	} else {
		e.logger.Debugf("[%s] %d workspaces, none renamed", pass.ID, len(pass.Results))
	}
	return renamed, nil
}
