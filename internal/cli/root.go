package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"checklist-cli/internal/checklist"
	"checklist-cli/internal/format"
	"checklist-cli/internal/logging"
	"checklist-cli/internal/store"
	"checklist-cli/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	Dir        string
	Format     string
	PrettyJSON bool
	Verbose    bool

	log *zap.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "checklist",
		Short:         "A small task checklist (TUI + scriptable CLI)",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  checklist

  # Scriptable commands
  checklist add Buy milk
  checklist list --format text
  checklist toggle 1

  # Shorthand for: checklist add Buy milk
  checklist +Buy milk
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			return runTUI(cmd.Context(), app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		switch app.Format {
		case "json", "edn", "text":
		default:
			return fmt.Errorf("unknown format: %q (want json|edn|text)", app.Format)
		}
		log, err := logging.New(logging.Options{Verbose: app.Verbose})
		if err != nil {
			return err
		}
		app.log = log
		return nil
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.log != nil {
			_ = app.log.Sync()
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("CHECKLIST_DIR", ""), "Path to the data dir (default: config dataDir or ~/.checklist)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("CHECKLIST_FORMAT", "json"), "Output format (json|edn|text)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Debug logging on stderr")

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newToggleCmd(app))
	cmd.AddCommand(newRmCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newVersionCmd(app))

	return cmd
}

// Execute runs cmd and prints a failure once on its stderr.
func Execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err.Error())
	}
	return err
}

func openStore(app *App) (store.Store, error) {
	dir, err := store.ResolveDir(app.Dir)
	if err != nil {
		return store.Store{}, err
	}
	s := store.New(dir)
	if err := s.Ensure(); err != nil {
		return store.Store{}, err
	}
	return s, nil
}

// openController boots a controller on the resolved data dir. CLI commands have no
// view, so the controller renders nowhere.
func openController(ctx context.Context, app *App) (*checklist.Controller, store.Store, error) {
	s, err := openStore(app)
	if err != nil {
		return nil, s, err
	}
	c := checklist.New(s, nil, app.logger())
	if st := c.Boot(ctx); st == checklist.HydrateRecovered {
		app.logger().Warn("saved tasks were unreadable; they will be replaced by the next change",
			zap.String("dir", s.Dir), zap.Error(c.LastLoadError()))
	}
	return c, s, nil
}

func runTUI(ctx context.Context, app *App) error {
	s, err := openStore(app)
	if err != nil {
		return err
	}
	log, err := logging.New(logging.Options{Verbose: app.Verbose, Path: s.LogPath()})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	var glyphs string
	if cfg, err := store.LoadConfig(); err == nil {
		glyphs = cfg.GlyphsPreference()
	} else {
		log.Warn("could not read config", zap.Error(err))
	}
	return tui.Run(ctx, tui.Options{Store: s, Logger: log, Glyphs: glyphs})
}

func (app *App) logger() *zap.Logger {
	if app.log == nil {
		return zap.NewNop()
	}
	return app.log
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}
