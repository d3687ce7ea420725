package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/dyluth/kanban/internal/printer"
	"github.com/dyluth/kanban/internal/surface"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [TITLE...]",
	Short: "Quickly add a card to the active board",
	Long: `Add a card to the first column of the active board.

The title is taken from the arguments, or asked for when none are given.

Examples:
  kanban add Buy milk
  kanban add "Review pull request"`,
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	title := strings.Join(args, " ")
	if len(args) == 0 {
		answer, err := terminal(cmd, false).Prompt(ctx, "Card title?", "")
		if err != nil {
			return fail(err)
		}
		title = answer
	}

	e, err := connect(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	doc, card, err := surface.NewPopup(e.client, nil, e.log).QuickAdd(ctx, title)
	if errors.Is(err, surface.ErrBlankTitle) {
		return printer.Error("card title cannot be blank", "Give the card a title.", []string{"kanban add Buy milk"})
	}
	if err != nil {
		return fail(err)
	}

	printer.Success("Added %q to %s (%s)\n", card.Title, doc.ActiveBoard().Name, card.ID)
	return nil
}
