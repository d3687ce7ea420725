package surface

import (
	"context"
	"fmt"
	"strings"

	"github.com/dyluth/kanban/pkg/board"
	"github.com/sirupsen/logrus"
)

// ClipInfo is what the user had under the cursor when adding to the kanban.
type ClipInfo struct {
	Selection string
	Link      string
	PageTitle string
}

// Title picks the card title: the selection, else the link, else the page title,
// else "New card".
func (c ClipInfo) Title() string {
	for _, s := range []string{c.Selection, c.Link, c.PageTitle} {
		if t := strings.TrimSpace(s); t != "" {
			return t
		}
	}
	return DefaultCardTitle
}

// EnsureOutcome reports what EnsureDocument did.
type EnsureOutcome int

const (
	// DocumentExisted means a document was already stored.
	DocumentExisted EnsureOutcome = iota
	// NameRequested means a listening panel was asked to name the new board.
	NameRequested
	// DefaultInitialized means nobody was listening, so a default document was saved.
	DefaultInitialized
)

func (o EnsureOutcome) String() string {
	switch o {
	case DocumentExisted:
		return "existing"
	case NameRequested:
		return "requested"
	case DefaultInitialized:
		return "initialized"
	default:
		return fmt.Sprintf("EnsureOutcome(%d)", int(o))
	}
}

// Background runs the flows that have no UI of their own: first-run setup and
// clipping page content into the active board.
type Background struct {
	backend Backend
	session *board.Session
	log     logrus.FieldLogger
}

// NewBackground creates a background surface. log may be nil.
func NewBackground(backend Backend, log logrus.FieldLogger) *Background {
	log = surfaceLogger(log, "background")
	return &Background{
		backend: backend,
		session: board.NewSession(backend, nil, log),
		log:     log,
	}
}

// EnsureDocument makes sure a document exists. If none does, it asks a listening
// panel to prompt for a board name; the panel initializes the document when it
// handles the request. With no listener the default document is saved here.
func (b *Background) EnsureDocument(ctx context.Context) (EnsureOutcome, error) {
	exists, err := b.backend.Exists(ctx)
	if err != nil {
		return DocumentExisted, err
	}
	if exists {
		return DocumentExisted, nil
	}

	n, err := b.backend.RequestName(ctx)
	if err != nil {
		b.log.WithError(err).Warn("Unable to request a board name")
	}
	if err == nil && n > 0 {
		b.log.WithField("receivers", n).Info("Requested board name")
		return NameRequested, nil
	}

	if _, err := b.backend.InitDefault(ctx); err != nil {
		return DocumentExisted, err
	}
	return DefaultInitialized, nil
}

// Clip appends a card built from info to the first column of the active board.
// With no stored document the clip is dropped, EnsureDocument runs, and
// ErrNoDocument is returned.
func (b *Background) Clip(ctx context.Context, info ClipInfo) (*board.Document, error) {
	exists, err := b.backend.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		if _, err := b.EnsureDocument(ctx); err != nil {
			return nil, err
		}
		return nil, ErrNoDocument
	}

	card := board.Card{ID: board.NewID(board.KindCard), Title: info.Title()}
	doc, err := b.session.Apply(ctx, func(doc *board.Document, boardID string) (*board.Document, error) {
		return appendToFirstColumn(doc, boardID, card), nil
	})
	if err != nil {
		return nil, err
	}

	b.log.WithFields(logrus.Fields{"board": doc.ActiveBoardID, "card": card.ID}).Info("Clipped card")
	return doc, nil
}
