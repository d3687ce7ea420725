package commands

import (
	"context"
	"fmt"

	"github.com/dyluth/kanban/internal/printer"
	"github.com/dyluth/kanban/internal/prompt"
	"github.com/dyluth/kanban/internal/render"
	"github.com/dyluth/kanban/internal/resolver"
	"github.com/dyluth/kanban/internal/surface"
	"github.com/dyluth/kanban/pkg/board"
	"github.com/spf13/cobra"
)

var (
	boardName string
	boardYes  bool
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Manage boards",
	Long: `List, create, rename, switch and delete boards.

Boards can be referred to by id, by name (case-insensitive) or by an id prefix
of at least 6 characters.`,
}

var boardListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List boards",
	Args:    cobra.NoArgs,
	RunE:    runBoardList,
}

var boardNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a board and make it active",
	Long: `Create a board with the Backlog / In Progress / Done columns and make it the
active board. The name is asked for unless --name is given.`,
	Args: cobra.NoArgs,
	RunE: runBoardNew,
}

var boardRenameCmd = &cobra.Command{
	Use:   "rename [BOARD NAME]",
	Short: "Rename a board",
	Long: `Rename BOARD to NAME. Without arguments the name of the active board is
asked for, offering its current name.`,
	Args: cobra.MatchAll(cobra.MaximumNArgs(2), func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return fmt.Errorf("rename takes both BOARD and NAME, or neither")
		}
		return nil
	}),
	RunE: runBoardRename,
}

var boardUseCmd = &cobra.Command{
	Use:   "use BOARD",
	Short: "Switch the active board",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoardUse,
}

var boardRmCmd = &cobra.Command{
	Use:   "rm BOARD",
	Short: "Delete a board and all its cards",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoardRm,
}

func init() {
	boardNewCmd.Flags().StringVarP(&boardName, "name", "n", "", "Board name (skips the prompt)")
	boardRmCmd.Flags().BoolVarP(&boardYes, "yes", "y", false, "Do not ask for confirmation")

	boardCmd.AddCommand(boardListCmd, boardNewCmd, boardRenameCmd, boardUseCmd, boardRmCmd)
	rootCmd.AddCommand(boardCmd)
}

func runBoardList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := connect(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	doc, _, err := board.NewSession(e.client, nil, e.log).Open(ctx)
	if err != nil {
		return fail(err)
	}
	return fail(render.Boards(cmd.OutOrStdout(), doc))
}

func runBoardNew(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := connect(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	var p board.Prompter = terminal(cmd, false)
	if cmd.Flags().Changed("name") {
		p = prompt.Static{Answer: boardName}
	}

	doc, err := surface.NewPanel(e.client, nil, p, e.log).AddBoard(ctx)
	if err != nil {
		return fail(err)
	}

	b := doc.ActiveBoard()
	printer.Success("Created board %q (%s)\n", b.Name, b.ID)
	return nil
}

func runBoardRename(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := connect(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	panel := surface.NewPanel(e.client, nil, terminal(cmd, false), e.log)

	if len(args) < 2 {
		doc, err := panel.RequestName(ctx)
		if err != nil {
			return fail(err)
		}
		printer.Success("Board is named %q\n", doc.ActiveBoard().Name)
		return nil
	}

	doc, _, err := panel.Session().Open(ctx)
	if err != nil {
		return fail(err)
	}
	boardID, err := resolver.Board(doc, args[0])
	if err != nil {
		return fail(err)
	}

	if _, err := panel.RenameBoard(ctx, boardID, args[1]); err != nil {
		return fail(err)
	}
	printer.Success("Renamed board %s\n", boardID)
	return nil
}

func runBoardUse(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := connect(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	panel := surface.NewPanel(e.client, nil, nil, e.log)
	doc, _, err := panel.Session().Open(ctx)
	if err != nil {
		return fail(err)
	}
	boardID, err := resolver.Board(doc, args[0])
	if err != nil {
		return fail(err)
	}

	doc, err = panel.UseBoard(ctx, boardID)
	if err != nil {
		return fail(err)
	}
	printer.Success("Switched to %s\n", doc.ActiveBoard().Name)
	return nil
}

func runBoardRm(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := connect(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	panel := surface.NewPanel(e.client, nil, terminal(cmd, boardYes), e.log)
	doc, _, err := panel.Session().Open(ctx)
	if err != nil {
		return fail(err)
	}
	boardID, err := resolver.Board(doc, args[0])
	if err != nil {
		return fail(err)
	}

	if _, err := panel.DeleteBoard(ctx, boardID); err != nil {
		return fail(err)
	}
	printer.Success("Deleted board %s\n", boardID)
	return nil
}
