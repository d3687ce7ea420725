// Package surface holds the kanban's user-facing surfaces. Each surface is an
// independent view onto the shared document: it owns a board.Session (or talks to
// the store directly) and shares no memory with the others. Surfaces coordinate
// only through the store and its Pub/Sub channels.
package surface

import (
	"context"
	"errors"

	"github.com/dyluth/kanban/internal/logging"
	"github.com/dyluth/kanban/pkg/board"
	"github.com/sirupsen/logrus"
)

var (
	// ErrBlankTitle is returned when a quick-add title is empty.
	ErrBlankTitle = errors.New("card title cannot be blank")

	// ErrNothingToExport is returned when exporting before any document exists.
	ErrNothingToExport = errors.New("nothing to export yet")

	// ErrNoDocument is returned by a clip when there was no document to add to.
	// The clip is dropped and the board-naming flow is started instead.
	ErrNoDocument = errors.New("no kanban document exists yet")
)

// Signals is the inter-surface channel used by a long-running panel.
type Signals interface {
	SubscribeDocuments(ctx context.Context) (*board.DocumentSubscription, error)
	SubscribeRequests(ctx context.Context) (*board.RequestSubscription, error)
}

// Backend is the store plus the operations the background surface needs.
type Backend interface {
	board.Store
	Exists(ctx context.Context) (bool, error)
	InitDefault(ctx context.Context) (*board.Document, error)
	RequestName(ctx context.Context) (int64, error)
}

func surfaceLogger(log logrus.FieldLogger, name string) logrus.FieldLogger {
	if log == nil {
		log = logging.Discard()
	}
	return log.WithField("surface", name)
}

// appendToFirstColumn appends card to the first column of boardID.
func appendToFirstColumn(doc *board.Document, boardID string, card board.Card) *board.Document {
	i := doc.BoardIndex(boardID)
	if i < 0 || len(doc.Boards[i].Columns) == 0 {
		return doc
	}
	return board.AddCard(doc, boardID, doc.Boards[i].Columns[0].ID, card)
}
