// Package transfer implements the kanban import/export file format.
//
// An export is the document serialized as JSON indented with two spaces. An import
// accepts any JSON value: it is passed through the normalizer and the repairs
// applied are reported alongside the accepted document. Only input that is not
// JSON at all is rejected.
package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dyluth/kanban/pkg/board"
)

// DefaultFilename is the name offered for an export file.
const DefaultFilename = "kanban.json"

// Status messages shown after an import or export.
const (
	MsgExportReady      = "Export ready."
	MsgNothingToExport  = "Nothing to export yet."
	MsgNoFileSelected   = "No file selected."
	MsgImportSuccessful = "Import successful."
	MsgImportFailed     = "Import failed. Please select a valid Kanban export file."
)

// ErrEmptyFile is wrapped by ImportError when the file has no content.
var ErrEmptyFile = errors.New("file is empty")

// ImportError reports a file that could not be parsed. Nothing from the file is
// accepted.
type ImportError struct {
	Err error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import failed: %v", e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// IsImportError checks if an error is an ImportError.
func IsImportError(err error) bool {
	var ie *ImportError
	return errors.As(err, &ie)
}

// Export writes doc as indented JSON followed by a newline.
func Export(w io.Writer, doc *board.Document) error {
	if doc == nil {
		return fmt.Errorf("cannot export a nil document")
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// Import parses data and normalizes it. The result's Diagnostics list every repair
// applied to make the file a valid document.
func Import(data []byte) (board.Result, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return board.Result{}, &ImportError{Err: ErrEmptyFile}
	}
	res, err := board.NormalizeJSON(data)
	if err != nil {
		return board.Result{}, &ImportError{Err: err}
	}
	return res, nil
}

// ImportFrom reads everything from r and imports it.
func ImportFrom(r io.Reader) (board.Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return board.Result{}, fmt.Errorf("failed to read import file: %w", err)
	}
	return Import(data)
}
