package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"checklist-cli/internal/store"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the persisted task slot as stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return err
			}
			slot, found, err := s.GetSlot(cmd.Context(), store.TasksKey)
			if err != nil {
				return err
			}

			if raw {
				v := slot.Value
				if !found {
					v = "[]"
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), v)
				return err
			}
			if !found {
				return writeResult(cmd, app, map[string]any{"data": nil}, func(w io.Writer) {
					fmt.Fprintln(w, faint.Sprint("Nothing saved yet."))
				})
			}

			data := map[string]any{
				"key":             slot.Key,
				"writerId":        slot.Stamp.WriterID,
				"updatedAtUnixMs": slot.Stamp.UpdatedAtUnixMs,
			}
			// Embed the value as JSON when it parses; a damaged slot is exported as text.
			if json.Valid([]byte(slot.Value)) {
				data["value"] = json.RawMessage(slot.Value)
			} else {
				data["value"] = slot.Value
				data["malformed"] = true
			}
			return writeResult(cmd, app, map[string]any{"data": data}, func(w io.Writer) {
				fmt.Fprintln(w, slot.Value)
			})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print only the stored value (no envelope)")

	return cmd
}
