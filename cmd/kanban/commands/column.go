package commands

import (
	"context"

	"github.com/dyluth/kanban/internal/printer"
	"github.com/dyluth/kanban/internal/prompt"
	"github.com/dyluth/kanban/internal/resolver"
	"github.com/dyluth/kanban/internal/surface"
	"github.com/dyluth/kanban/pkg/board"
	"github.com/spf13/cobra"
)

var (
	columnName string
	columnYes  bool
)

var columnCmd = &cobra.Command{
	Use:   "column",
	Short: "Add and remove columns on the active board",
}

var columnNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Append a column",
	Long: `Append a column to the active board. The name is asked for unless --name is
given; a blank name becomes "New Column".`,
	Args: cobra.NoArgs,
	RunE: runColumnNew,
}

var columnRmCmd = &cobra.Command{
	Use:   "rm COLUMN",
	Short: "Delete a column and its cards",
	Long: `Delete COLUMN and every card in it. The last column of a board cannot be
deleted.`,
	Args: cobra.ExactArgs(1),
	RunE: runColumnRm,
}

func init() {
	columnNewCmd.Flags().StringVarP(&columnName, "name", "n", "", "Column name (skips the prompt)")
	columnRmCmd.Flags().BoolVarP(&columnYes, "yes", "y", false, "Do not ask for confirmation")

	columnCmd.AddCommand(columnNewCmd, columnRmCmd)
	rootCmd.AddCommand(columnCmd)
}

func runColumnNew(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := connect(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	var p board.Prompter = terminal(cmd, false)
	if cmd.Flags().Changed("name") {
		p = prompt.Static{Answer: columnName}
	}

	doc, err := surface.NewPanel(e.client, nil, p, e.log).AddColumn(ctx)
	if err != nil {
		return fail(err)
	}

	b := doc.ActiveBoard()
	col := b.Columns[len(b.Columns)-1]
	printer.Success("Added column %q to %s (%s)\n", col.Name, b.Name, col.ID)
	return nil
}

func runColumnRm(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := connect(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	panel := surface.NewPanel(e.client, nil, terminal(cmd, columnYes), e.log)
	_, b, err := activeBoard(ctx, panel)
	if err != nil {
		return fail(err)
	}
	columnID, err := resolver.Column(b, args[0])
	if err != nil {
		return fail(err)
	}

	if _, err := panel.DeleteColumn(ctx, columnID); err != nil {
		return fail(err)
	}
	printer.Success("Deleted column %s\n", columnID)
	return nil
}
