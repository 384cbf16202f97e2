package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"checklist-cli/internal/checklist"
	"checklist-cli/internal/model"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	doneMark = color.New(color.FgGreen)
	openMark = color.New(color.FgYellow)
	faint    = color.New(color.Faint)
)

// writeResult writes v for json/edn and calls text for --format text.
func writeResult(cmd *cobra.Command, app *App, v any, text func(w io.Writer)) error {
	if app.Format == "text" {
		text(cmd.OutOrStdout())
		return nil
	}
	return writeOut(cmd, app, v)
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id: %q", s)
	}
	return id, nil
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := openController(cmd.Context(), app)
			if err != nil {
				return err
			}
			it, err := c.Add(cmd.Context(), strings.Join(args, " "))
			if checklist.IsValidation(err) {
				return fmt.Errorf("please enter a task: %w", err)
			}
			if err != nil {
				return err
			}
			return writeResult(cmd, app, map[string]any{"data": it}, func(w io.Writer) {
				fmt.Fprintf(w, "Added %d: %s\n", it.ID, it.Text)
			})
		},
	}
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks in insertion order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := openController(cmd.Context(), app)
			if err != nil {
				return err
			}
			items := c.Snapshot()
			return writeResult(cmd, app, map[string]any{"data": items, "nextId": c.NextID()}, func(w io.Writer) {
				writeTextList(w, items)
			})
		},
	}
}

func writeTextList(w io.Writer, items []model.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, faint.Sprint("No tasks."))
		return
	}
	done := 0
	for _, it := range items {
		mark := openMark.Sprint("[ ]")
		if it.Completed {
			mark = doneMark.Sprint("[x]")
			done++
		}
		fmt.Fprintf(w, "%3d %s %s\n", it.ID, mark, it.Text)
	}
	fmt.Fprintln(w, faint.Sprintf("%d of %d done", done, len(items)))
}

func newToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a task between open and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, _, err := openController(cmd.Context(), app)
			if err != nil {
				return err
			}
			hit, err := c.Toggle(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !hit {
				return writeMiss(cmd, app, id)
			}
			it, _ := c.Find(id)
			return writeResult(cmd, app, map[string]any{"data": it, "changed": true}, func(w io.Writer) {
				verb := "Reopened"
				if it.Completed {
					verb = "Completed"
				}
				fmt.Fprintf(w, "%s %d: %s\n", verb, it.ID, it.Text)
			})
		},
	}
}

func newRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, _, err := openController(cmd.Context(), app)
			if err != nil {
				return err
			}
			it, _ := c.Find(id)
			hit, err := c.Remove(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !hit {
				return writeMiss(cmd, app, id)
			}
			return writeResult(cmd, app, map[string]any{"data": it, "changed": true}, func(w io.Writer) {
				fmt.Fprintf(w, "Removed %d: %s\n", it.ID, it.Text)
			})
		},
	}
}

// writeMiss reports a toggle/rm on an id that isn't there. It is not an error.
func writeMiss(cmd *cobra.Command, app *App, id int) error {
	return writeResult(cmd, app, map[string]any{"data": nil, "changed": false}, func(w io.Writer) {
		fmt.Fprintln(w, faint.Sprintf("No task %d.", id))
	})
}
