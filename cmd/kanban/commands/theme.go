package commands

import (
	"context"

	"github.com/dyluth/kanban/internal/printer"
	"github.com/dyluth/kanban/internal/surface"
	"github.com/dyluth/kanban/pkg/board"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:       "theme THEME",
	Short:     "Set the theme (dark, light or system)",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(board.ThemeDark), string(board.ThemeLight), string(board.ThemeSystem)},
	RunE:      runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	theme, err := board.ParseTheme(args[0])
	if err != nil {
		return printer.Error("invalid theme", err.Error(), []string{"kanban theme dark"})
	}

	e, err := connect(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	if _, err := surface.NewPanel(e.client, nil, nil, e.log).SetTheme(ctx, theme); err != nil {
		return fail(err)
	}
	printer.Success("Theme set to %s\n", theme)
	return nil
}
