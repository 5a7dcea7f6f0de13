package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/watchfire-io/workstyle/internal/config"
	"github.com/watchfire-io/workstyle/internal/daemon/engine"
	"github.com/watchfire-io/workstyle/internal/daemon/label"
	"github.com/watchfire-io/workstyle/internal/icons"
	"github.com/watchfire-io/workstyle/internal/ipc"
)

var flagApply bool

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the labels workstyle would assign right now",
	Long: `Fetch the current layout tree once and print, for every workspace, its
current name and the label workstyle computes for it.

With --apply the renames are issued once and the command exits.`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().BoolVar(&flagApply, "apply", false, "Rename the workspaces once")
}

func runPreview(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}

	configPath, err := config.ResolveConfigFile(flagConfig)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}
	store, err := icons.LoadOrDefault(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	socket, err := ipc.SocketPath()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := ipc.Dial(ctx, socket)
	if err != nil {
		return err
	}
	defer client.Close()

	e := engine.New(client, nil, nil, store, engine.Options{
		ConfigPath:  configPath,
		Deduplicate: flagDeduplicate,
		Logger:      log,
	})

	pass, err := e.Plan(ctx)
	if err != nil {
		return err
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		printPassStyled(pass)
	} else {
		printPassPlain(pass)
	}

	if !flagApply {
		return nil
	}
	renamed, err := e.Execute(ctx, pass)
	if err != nil {
		return err
	}
	log.Infof("[%s] Renamed %d workspaces", pass.ID, renamed)
	return nil
}

func printPassStyled(pass *engine.Pass) {
	fmt.Printf("%s %s\n", styleLabel.Render("Pass"), styleValue.Render(pass.ID))
	if len(pass.Results) == 0 {
		fmt.Println(styleHint.Render("No workspaces."))
		return
	}
	for _, r := range pass.Results {
		current := label.StripMarks(r.Current)
		next := label.StripMarks(r.Label)
		if !r.NeedsRename() {
			fmt.Printf("  %s  %s\n", styleValue.Render(strconv.Quote(current)), styleHint.Render("(unchanged)"))
			continue
		}
		fmt.Printf("  %s %s %s\n",
			styleLabel.Render(strconv.Quote(current)),
			styleHint.Render("→"),
			styleSuccess.Render(strconv.Quote(next)),
		)
	}
}

// printPassPlain writes one tab-separated line per workspace for scripts.
func printPassPlain(pass *engine.Pass) {
	for _, r := range pass.Results {
		fmt.Printf("%s\t%d\t%s\t%s\t%t\n", pass.ID, r.WorkspaceID, strconv.Quote(r.Current), strconv.Quote(r.Label), r.NeedsRename())
	}
}
