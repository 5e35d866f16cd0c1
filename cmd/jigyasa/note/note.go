// Package notecmder provides the note command for adding and listing
// research notes on a running jigyasa server.
package notecmder

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/jigyasa/cmd/jigyasa/cmdutil"
	"github.com/papercomputeco/jigyasa/pkg/cliui"
	"github.com/papercomputeco/jigyasa/pkg/utils"
)

const noteLongDesc string = `Add and list research notes.

Notes live in the memory of the running jigyasa server and ground every
agent answer.

Examples:
  jigyasa note add "Acme revenue grew 12% year over year"
  jigyasa note add --manual "Margins look stretched"
  pbpaste | jigyasa note add -
  jigyasa note list
  jigyasa note list --full`

const noteShortDesc string = "Add and list research notes"

func NewNoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: noteShortDesc,
		Long:  noteLongDesc,
	}

	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}

func newAddCmd() *cobra.Command {
	var manual bool

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a note",
		Long: `Add a note. Pass "-" to read the note from stdin.

With --manual the note is stored as a hand-written note or saved AI answer.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := cmdutil.TextArg(cmd, args)
			if err != nil {
				return err
			}
			if text == "" {
				return errors.New("note text is required")
			}

			client, err := cmdutil.NewClient(cmd)
			if err != nil {
				return err
			}

			count, err := client.AddNote(cmdutil.Context(cmd), text, manual)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n  %s Note added %s\n\n",
				cliui.SuccessMark,
				cliui.DimStyle.Render(fmt.Sprintf("(%d in notebook)", count)),
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&manual, "manual", false, "Store as a manual note or saved AI answer")
	cmdutil.AddAPITargetFlag(cmd)

	return cmd
}

const previewLen = 120

func newListCmd() *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := cmdutil.NewClient(cmd)
			if err != nil {
				return err
			}

			notes, err := client.Notes(cmdutil.Context(cmd))
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(notes) == 0 {
				fmt.Fprintf(w, "\n  %s\n\n", cliui.DimStyle.Render("The notebook is empty."))
				return nil
			}

			fmt.Fprintf(w, "\n  %s\n\n", cliui.HeaderStyle.Render(fmt.Sprintf("Notes (%d)", len(notes))))
			width := len(strconv.Itoa(len(notes)))
			for i, note := range notes {
				if !full {
					note = utils.Truncate(note, previewLen)
				}
				cliui.KeyValue(w, strconv.Itoa(i+1), width, note)
			}
			fmt.Fprintln(w)
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Print notes without shortening them")
	cmdutil.AddAPITargetFlag(cmd)

	return cmd
}
