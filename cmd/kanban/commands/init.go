package commands

import (
	"context"

	"github.com/dyluth/kanban/internal/printer"
	"github.com/dyluth/kanban/internal/surface"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the kanban document if it does not exist",
	Long: `Create the kanban document for the profile if it does not exist.

If a "kanban watch" is running it is asked to prompt for the new board's name.
Otherwise the default document (one "Kanban" board with Backlog, In Progress
and Done) is saved. An existing document is never touched.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := connect(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	outcome, err := surface.NewBackground(e.client, e.log).EnsureDocument(ctx)
	if err != nil {
		return fail(err)
	}

	switch outcome {
	case surface.DocumentExisted:
		printer.Info("Kanban already exists for profile %q.\n", e.cfg.Profile)
	case surface.NameRequested:
		printer.Success("Asked the running watcher to name the new board.\n")
	case surface.DefaultInitialized:
		printer.Success("Created kanban for profile %q.\n", e.cfg.Profile)
	}
	return nil
}
