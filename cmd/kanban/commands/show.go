package commands

import (
	"context"
	"fmt"

	"github.com/dyluth/kanban/internal/filter"
	"github.com/dyluth/kanban/internal/printer"
	"github.com/dyluth/kanban/internal/render"
	"github.com/dyluth/kanban/pkg/board"
	"github.com/spf13/cobra"
)

var (
	showSearch string
	showOutput string
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active board",
	Long: `Show the active board as a table of cards, one row per card.

A default document is created the first time any command runs against an
empty profile.

Output Formats:
  table - Column, card ID, title and description (default)
  json  - The whole document in the export format

Examples:
  # Show the active board
  kanban show

  # Only cards whose title contains "release"
  kanban show --search release`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVarP(&showSearch, "search", "s", "", "Only show cards whose title contains this text")
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "table", "Output format: table or json")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var renderer board.Renderer
	var renderErr func() error
	switch showOutput {
	case "table":
		t := render.NewTable(cmd.OutOrStdout(), filter.Criteria{Term: showSearch})
		renderer, renderErr = t, func() error { return t.Err }
	case "json":
		j := render.NewJSON(cmd.OutOrStdout())
		renderer, renderErr = j, func() error { return j.Err }
	default:
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", showOutput),
			[]string{"Valid formats: table, json"},
		)
	}

	e, err := connect(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	session := board.NewSession(e.client, renderer, e.log)
	if _, _, err := session.Open(ctx); err != nil {
		return fail(err)
	}
	return fail(renderErr())
}
