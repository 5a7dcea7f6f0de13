package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/workstyle/internal/config"
	"github.com/watchfire-io/workstyle/internal/daemon/engine"
	"github.com/watchfire-io/workstyle/internal/daemon/watcher"
	"github.com/watchfire-io/workstyle/internal/icons"
	"github.com/watchfire-io/workstyle/internal/ipc"
	"github.com/watchfire-io/workstyle/internal/models"
)

// connectTimeout bounds the start-up requests to the compositor.
const connectTimeout = 5 * time.Second

// Window nodes carry app_id from sway 1.0 on.
var minAppIDVersion = ipc.Version{Major: 1}

func runDaemon(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}

	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if running {
		return fmt.Errorf("workstyle is already running (PID %d)", info.PID)
	}

	configPath, err := config.ResolveConfigFile(flagConfig)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}
	store, err := icons.LoadOrDefault(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if store.Path() == "" {
		log.Infof("No config at %s, using built-in icons", configPath)
	}

	socket, err := ipc.SocketPath()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dialCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := ipc.Dial(dialCtx, socket)
	if err != nil {
		return err
	}
	defer client.Close()

	if v, err := client.GetVersion(dialCtx); err == nil {
		log.Infof("Connected to %s", v.HumanReadable)
		if v.LessThan(minAppIDVersion) {
			log.Warnf("Compositor %s predates app_id reporting (%s); Wayland windows will use the fallback icon", v, minAppIDVersion)
		}
	} else {
		log.Debugf("Could not query compositor version: %v", err)
	}

	events, err := ipc.Subscribe(ctx, socket)
	if err != nil {
		return fmt.Errorf("failed to subscribe to window events: %w", err)
	}
	defer events.Close()

	var configWatcher engine.ConfigWatcher
	if config.FileExists(configPath) {
		w, err := watcher.New(configPath, log)
		if err != nil {
			return fmt.Errorf("failed to create config watcher: %w", err)
		}
		if err := w.Start(); err != nil {
			return fmt.Errorf("failed to watch config file: %w", err)
		}
		defer w.Stop()
		configWatcher = w
	}

	if err := config.SaveDaemonInfo(models.NewDaemonInfo(os.Getpid(), socket, store.Path())); err != nil {
		log.Warnf("Failed to write pid file: %v", err)
	}
	defer func() {
		if err := config.RemoveDaemonInfo(); err != nil {
			log.Warnf("Failed to remove pid file: %v", err)
		}
	}()

	e := engine.New(client, events, configWatcher, store, engine.Options{
		ConfigPath:   configPath,
		Deduplicate:  flagDeduplicate,
		PollInterval: flagPollInterval,
		Logger:       log,
	})
	return e.Run(ctx)
}
