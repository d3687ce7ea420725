package commands

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/dyluth/kanban/internal/printer"
	"github.com/dyluth/kanban/internal/surface"
	"github.com/dyluth/kanban/internal/transfer"
	"github.com/spf13/cobra"
)

var exportFile string

// createExportFile opens the --file target; tests swap it.
var createExportFile = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the document as JSON",
	Long: `Write the whole document as indented JSON, to stdout or to --file.

Examples:
  kanban export > backup.json
  kanban export -f kanban.json`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace the document with an export file",
	Long: `Replace the whole document with the contents of FILE.

Any JSON document is accepted: missing or malformed parts are repaired and each
repair is listed. A file that is not JSON is rejected and nothing changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFile, "file", "f", "", "Write to this file instead of stdout (e.g. "+transfer.DefaultFilename+")")
	rootCmd.AddCommand(exportCmd, importCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := connect(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	opts := surface.NewOptions(e.client, e.log)

	if exportFile == "" {
		err := opts.Export(ctx, cmd.OutOrStdout())
		if errors.Is(err, surface.ErrNothingToExport) {
			printer.Status(transfer.MsgNothingToExport)
			return nil
		}
		return fail(err)
	}

	// Only create the file once there is something to put in it.
	exists, err := e.client.Exists(ctx)
	if err != nil {
		return fail(err)
	}
	if !exists {
		printer.Status(transfer.MsgNothingToExport)
		return nil
	}

	f, err := createExportFile(exportFile)
	if err != nil {
		return printer.Error("failed to create export file", err.Error(), nil)
	}
	if err := opts.Export(ctx, f); err != nil {
		f.Close()
		return fail(err)
	}
	if err := f.Close(); err != nil {
		return printer.Error("failed to write export file", err.Error(), nil)
	}
	printer.Status(transfer.MsgExportReady)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if len(args) == 0 {
		return printer.Error(transfer.MsgNoFileSelected, "Pass the export file to import.", []string{"kanban import " + transfer.DefaultFilename})
	}

	f, err := os.Open(args[0])
	if err != nil {
		return printer.Error(transfer.MsgImportFailed, err.Error(), nil)
	}
	defer f.Close()

	e, err := connect(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	diagnostics, err := surface.NewOptions(e.client, e.log).Import(ctx, f)
	if transfer.IsImportError(err) {
		return printer.Error(transfer.MsgImportFailed, err.Error(), nil)
	}
	if err != nil {
		return fail(err)
	}

	printer.Status(transfer.MsgImportSuccessful)
	printer.Diagnostics(diagnostics)
	return nil
}
