package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"checklist-cli/internal/store"

	"github.com/spf13/cobra"
)

// configKeys maps a user-facing key to its setter. An empty value clears the key.
var configKeys = map[string]func(cfg *store.GlobalConfig, v string) error{
	"dataDir": func(cfg *store.GlobalConfig, v string) error {
		cfg.DataDir = v
		return nil
	},
	"tui.glyphs": func(cfg *store.GlobalConfig, v string) error {
		v = strings.ToLower(v)
		switch v {
		case "", "unicode", "ascii":
		default:
			return fmt.Errorf("invalid tui.glyphs: %q (want unicode|ascii)", v)
		}
		if v == "" {
			cfg.TUI = nil
			return nil
		}
		if cfg.TUI == nil {
			cfg.TUI = &store.TUIConfig{}
		}
		cfg.TUI.Glyphs = v
		return nil
	},
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the global config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			return writeConfig(cmd, app, cfg)
		},
	}

	cmd.AddCommand(newConfigSetCmd(app))

	return cmd
}

func newConfigSetCmd(app *App) *cobra.Command {
	keys := make([]string, 0, len(configKeys))
	for k := range configKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return &cobra.Command{
		Use:   "set <key> [value]",
		Short: "Set a config key (" + strings.Join(keys, ", ") + "); no value clears it",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, ok := configKeys[args[0]]
			if !ok {
				return fmt.Errorf("unknown config key: %q (want one of %s)", args[0], strings.Join(keys, ", "))
			}
			var v string
			if len(args) == 2 {
				v = strings.TrimSpace(args[1])
			}

			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			if err := set(cfg, v); err != nil {
				return err
			}
			if err := store.SaveConfig(cfg); err != nil {
				return err
			}
			return writeConfig(cmd, app, cfg)
		},
	}
}

func writeConfig(cmd *cobra.Command, app *App, cfg *store.GlobalConfig) error {
	path, err := store.ConfigPath()
	if err != nil {
		return err
	}
	return writeResult(cmd, app, map[string]any{"data": cfg, "path": path}, func(w io.Writer) {
		fmt.Fprintf(w, "config: %s\n", path)
		fmt.Fprintf(w, "dataDir: %s\n", cfg.DataDir)
		fmt.Fprintf(w, "tui.glyphs: %s\n", cfg.GlyphsPreference())
	})
}
