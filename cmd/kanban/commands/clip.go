package commands

import (
	"context"
	"errors"

	"github.com/dyluth/kanban/internal/printer"
	"github.com/dyluth/kanban/internal/surface"
	"github.com/spf13/cobra"
)

var (
	clipSelection string
	clipLink      string
	clipPageTitle string
)

var clipCmd = &cobra.Command{
	Use:   "clip",
	Short: "Add a card from selected text, a link or a page title",
	Long: `Add a card to the first column of the active board, titled with the first of
--selection, --link and --page-title that is not empty ("New card" if none).

Intended for editor and browser integrations. When no document exists yet the
clip is dropped: a running "kanban watch" is asked to name the new board, or a
default document is created if nobody is watching.

Examples:
  kanban clip --selection "$(xclip -o)"
  kanban clip --link https://example.com --page-title "Example"`,
	Args: cobra.NoArgs,
	RunE: runClip,
}

func init() {
	clipCmd.Flags().StringVar(&clipSelection, "selection", "", "Selected text")
	clipCmd.Flags().StringVar(&clipLink, "link", "", "Link URL")
	clipCmd.Flags().StringVar(&clipPageTitle, "page-title", "", "Title of the page")
	rootCmd.AddCommand(clipCmd)
}

func runClip(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := connect(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	info := surface.ClipInfo{Selection: clipSelection, Link: clipLink, PageTitle: clipPageTitle}
	doc, err := surface.NewBackground(e.client, e.log).Clip(ctx, info)
	if errors.Is(err, surface.ErrNoDocument) {
		printer.Warning("No kanban yet; the clip was not saved. Run the command again to add it.\n")
		return nil
	}
	if err != nil {
		return fail(err)
	}

	printer.Success("Clipped %q to %s\n", info.Title(), doc.ActiveBoard().Name)
	return nil
}
