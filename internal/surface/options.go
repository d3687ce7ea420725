package surface

import (
	"context"
	"fmt"
	"io"

	"github.com/dyluth/kanban/internal/transfer"
	"github.com/dyluth/kanban/pkg/board"
	"github.com/sirupsen/logrus"
)

// Options is the import/export surface. It replaces or reads the whole document
// and so works on the store directly rather than through a board-scoped session.
type Options struct {
	store board.Store
	log   logrus.FieldLogger
}

// NewOptions creates an options surface over store. log may be nil.
func NewOptions(store board.Store, log logrus.FieldLogger) *Options {
	return &Options{store: store, log: surfaceLogger(log, "options")}
}

// Export writes the stored document to w in the export format.
// Returns ErrNothingToExport when no document has been saved yet.
func (o *Options) Export(ctx context.Context, w io.Writer) error {
	doc, err := o.store.Load(ctx)
	if err != nil {
		if board.IsNotFound(err) {
			return ErrNothingToExport
		}
		return fmt.Errorf("failed to load document: %w", err)
	}
	return transfer.Export(w, doc)
}

// Import reads an export file from r, normalizes it and replaces the stored
// document with the result. It returns the repairs applied to the file.
// A file that is not JSON returns a *transfer.ImportError and nothing is saved.
func (o *Options) Import(ctx context.Context, r io.Reader) ([]string, error) {
	res, err := transfer.ImportFrom(r)
	if err != nil {
		o.log.WithError(err).Warn("Rejected import file")
		return nil, err
	}

	if err := o.store.Save(ctx, res.Document); err != nil {
		return nil, &board.SaveError{Err: err}
	}

	o.log.WithFields(logrus.Fields{
		"boards":  len(res.Document.Boards),
		"repairs": len(res.Diagnostics),
	}).Info("Imported document")
	return res.Diagnostics, nil
}
