package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"checklist-cli/internal/docs"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show built-in documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				topics := docs.Topics()
				return writeResult(cmd, app, map[string]any{"data": map[string]any{"topics": topics}}, func(w io.Writer) {
					fmt.Fprintln(w, strings.Join(topics, "\n"))
				})
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return fmt.Errorf("unknown docs topic: %q (run `checklist docs` to list topics)", topic)
			}

			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			if app.Format == "text" {
				out, err := glamour.Render(body, docsStyle())
				if err != nil {
					out = body
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), out)
				return err
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"topic": topic, "markdown": body}})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no envelope)")

	return cmd
}

// docsStyle avoids glamour's auto style: it queries the terminal and can block when
// stdout is a pipe.
func docsStyle() string {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return styles.NoTTYStyle
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv("CHECKLIST_TUI_THEME")), "light") {
		return styles.LightStyle
	}
	return styles.DarkStyle
}
