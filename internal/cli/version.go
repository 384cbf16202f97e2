package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X checklist-cli/internal/cli.Version=...".
var Version = "dev"

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := map[string]any{"version": Version, "go": runtime.Version()}
			return writeResult(cmd, app, map[string]any{"data": data}, func(w io.Writer) {
				fmt.Fprintf(w, "checklist %s (%s)\n", Version, runtime.Version())
			})
		},
	}
}
