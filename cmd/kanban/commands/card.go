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
	cardTitle  string
	cardYes    bool
	cardBefore string
)

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Add, remove and move cards on the active board",
	Long: `Add, remove and move cards on the active board.

Cards and columns can be referred to by id, by exact title or name
(case-insensitive), or by an id prefix of at least 6 characters.`,
}

var cardNewCmd = &cobra.Command{
	Use:   "new COLUMN",
	Short: "Append a card to a column",
	Long: `Append a card to the end of COLUMN. The title is asked for unless --title is
given; a blank title becomes "New card".`,
	Args: cobra.ExactArgs(1),
	RunE: runCardNew,
}

var cardRmCmd = &cobra.Command{
	Use:   "rm CARD",
	Short: "Delete a card",
	Args:  cobra.ExactArgs(1),
	RunE:  runCardRm,
}

var cardMvCmd = &cobra.Command{
	Use:   "mv CARD COLUMN",
	Short: "Move a card to a column",
	Long: `Move CARD into COLUMN. With --before the card is placed in front of that card,
otherwise (or when the reference card is not in COLUMN) it goes to the end.

Examples:
  kanban card mv card-drag Done
  kanban card mv "Fix login" Backlog --before "Write docs"`,
	Args: cobra.ExactArgs(2),
	RunE: runCardMv,
}

func init() {
	cardNewCmd.Flags().StringVarP(&cardTitle, "title", "t", "", "Card title (skips the prompt)")
	cardRmCmd.Flags().BoolVarP(&cardYes, "yes", "y", false, "Do not ask for confirmation")
	cardMvCmd.Flags().StringVar(&cardBefore, "before", "", "Place the card before this card")

	cardCmd.AddCommand(cardNewCmd, cardRmCmd, cardMvCmd)
	rootCmd.AddCommand(cardCmd)
}

func runCardNew(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := connect(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	var p board.Prompter = terminal(cmd, false)
	if cmd.Flags().Changed("title") {
		p = prompt.Static{Answer: cardTitle}
	}
	panel := surface.NewPanel(e.client, nil, p, e.log)

	_, b, err := activeBoard(ctx, panel)
	if err != nil {
		return fail(err)
	}
	columnID, err := resolver.Column(b, args[0])
	if err != nil {
		return fail(err)
	}

	doc, err := panel.AddCard(ctx, columnID)
	if err != nil {
		return fail(err)
	}

	col := activeColumn(doc, columnID)
	if col == nil || len(col.Cards) == 0 {
		printer.Success("Added card\n")
		return nil
	}
	card := col.Cards[len(col.Cards)-1]
	printer.Success("Added %q to %s (%s)\n", card.Title, col.Name, card.ID)
	return nil
}

func runCardRm(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := connect(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	panel := surface.NewPanel(e.client, nil, terminal(cmd, cardYes), e.log)
	_, b, err := activeBoard(ctx, panel)
	if err != nil {
		return fail(err)
	}
	cardID, err := resolver.Card(b, args[0])
	if err != nil {
		return fail(err)
	}

	doc, err := panel.DeleteCard(ctx, cardID)
	if err != nil || doc == nil {
		return fail(err)
	}
	printer.Success("Deleted card %s\n", cardID)
	return nil
}

func runCardMv(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := connect(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	panel := surface.NewPanel(e.client, nil, nil, e.log)
	_, b, err := activeBoard(ctx, panel)
	if err != nil {
		return fail(err)
	}
	cardID, err := resolver.Card(b, args[0])
	if err != nil {
		return fail(err)
	}
	columnID, err := resolver.Column(b, args[1])
	if err != nil {
		return fail(err)
	}
	beforeID := ""
	if cardBefore != "" {
		beforeID, err = resolver.Card(b, cardBefore)
		if resolver.IsNotFoundError(err) {
			e.log.WithField("before", cardBefore).Debug("Reference card not found; appending")
			beforeID, err = "", nil
		}
		if err != nil {
			return fail(err)
		}
	}

	doc, err := panel.MoveCard(ctx, cardID, columnID, beforeID)
	if err != nil {
		return fail(err)
	}

	name := columnID
	if col := activeColumn(doc, columnID); col != nil {
		name = col.Name
	}
	printer.Success("Moved %s to %s\n", cardID, name)
	return nil
}
