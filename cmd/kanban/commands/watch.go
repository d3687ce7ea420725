package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dyluth/kanban/internal/filter"
	"github.com/dyluth/kanban/internal/render"
	"github.com/dyluth/kanban/internal/surface"
	"github.com/dyluth/kanban/pkg/board"
	"github.com/spf13/cobra"
)

var watchSearch string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show the active board and re-render on every change",
	Long: `Show the active board and re-render it whenever any command saves the
document. While watching, "kanban init" and "kanban clip" on an empty profile
ask here for the name of the new board.

Press Ctrl+C to stop.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchSearch, "search", "s", "", "Only show cards whose title contains this text")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e, err := connect(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	out := cmd.OutOrStdout()
	table := render.NewTable(out, filter.Criteria{Term: watchSearch})
	renderer := board.RendererFunc(func(doc *board.Document) {
		fmt.Fprintln(out)
		table.Render(doc)
		if table.Err != nil {
			e.log.WithError(table.Err).Warn("Failed to render board")
		}
	})

	panel := surface.NewPanel(e.client, renderer, terminal(cmd, false), e.log)
	if _, err := panel.Open(ctx); err != nil {
		return fail(err)
	}
	return fail(panel.Watch(ctx, e.client))
}
