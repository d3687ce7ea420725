package surface

import (
	"context"
	"strings"

	"github.com/dyluth/kanban/pkg/board"
	"github.com/sirupsen/logrus"
)

// Popup is the quick-add surface: one title in, one card appended to the first
// column of the active board.
type Popup struct {
	session *board.Session
	log     logrus.FieldLogger
}

// NewPopup creates a popup over store. renderer and log may be nil.
func NewPopup(store board.Store, renderer board.Renderer, log logrus.FieldLogger) *Popup {
	log = surfaceLogger(log, "popup")
	return &Popup{session: board.NewSession(store, renderer, log), log: log}
}

// QuickAdd appends a card titled title to the first column of the active board
// and returns the saved document along with the new card.
// A blank title returns ErrBlankTitle without touching the store.
func (p *Popup) QuickAdd(ctx context.Context, title string) (*board.Document, board.Card, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, board.Card{}, ErrBlankTitle
	}

	card := board.Card{ID: board.NewID(board.KindCard), Title: title}
	doc, err := p.session.Apply(ctx, func(doc *board.Document, boardID string) (*board.Document, error) {
		return appendToFirstColumn(doc, boardID, card), nil
	})
	if err != nil {
		return nil, board.Card{}, err
	}

	p.log.WithFields(logrus.Fields{"board": doc.ActiveBoardID, "card": card.ID}).Debug("Added card")
	return doc, card, nil
}
