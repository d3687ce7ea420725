package surface

import (
	"context"
	"fmt"
	"strings"

	"github.com/dyluth/kanban/pkg/board"
	"github.com/sirupsen/logrus"
)

// Prompt texts shown by the panel.
const (
	PromptBoardName    = "Name your Kanban board"
	PromptNewBoard     = "Board name?"
	PromptColumnName   = "Column name?"
	PromptCardTitle    = "Card title?"
	ConfirmDeleteCard  = "Delete this card?"
	ConfirmDeleteCol   = "Delete this column and its cards?"
	ConfirmDeleteBoard = "Delete this board and all its cards?"

	DefaultColumnName = "New Column"
	DefaultCardTitle  = "New card"
)

// Panel is the full board editor. Every edit that needs user input waits on the
// Prompter first; a dismissed prompt returns board.ErrCancelled and saves nothing.
type Panel struct {
	session  *board.Session
	prompter board.Prompter
	log      logrus.FieldLogger
}

// NewPanel creates a panel over store. renderer and log may be nil.
func NewPanel(store board.Store, renderer board.Renderer, prompter board.Prompter, log logrus.FieldLogger) *Panel {
	log = surfaceLogger(log, "panel")
	return &Panel{
		session:  board.NewSession(store, renderer, log),
		prompter: prompter,
		log:      log,
	}
}

// Session exposes the panel's session, mainly for Current and Focus.
func (p *Panel) Session() *board.Session {
	return p.session
}

// Open loads the document (initializing it if needed) and renders it.
// When a default document had to be created the user is asked to name it.
func (p *Panel) Open(ctx context.Context) (*board.Document, error) {
	doc, initialized, err := p.session.Open(ctx)
	if err != nil {
		return nil, err
	}
	if !initialized {
		return doc, nil
	}
	named, err := p.RequestName(ctx)
	if board.IsCancelled(err) {
		return doc, nil
	}
	return named, err
}

// current returns the session's document, loading it on first use.
func (p *Panel) current(ctx context.Context) (*board.Document, error) {
	if doc := p.session.Current(); doc != nil {
		return doc, nil
	}
	doc, _, err := p.session.Open(ctx)
	return doc, err
}

// RequestName asks the user to name the active board, offering its current name.
// A blank or unchanged answer is not saved.
func (p *Panel) RequestName(ctx context.Context) (*board.Document, error) {
	doc, err := p.current(ctx)
	if err != nil {
		return nil, err
	}
	active := doc.ActiveBoard()
	if active == nil {
		active = &doc.Boards[0]
	}
	boardID, oldName := active.ID, active.Name

	answer, err := p.prompter.Prompt(ctx, PromptBoardName, oldName)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(answer)
	if name == "" || name == oldName {
		return doc, nil
	}

	return p.session.Apply(ctx, func(doc *board.Document, _ string) (*board.Document, error) {
		return board.RenameBoard(doc, boardID, name), nil
	})
}

// AddColumn prompts for a name and appends a column to the current board.
func (p *Panel) AddColumn(ctx context.Context) (*board.Document, error) {
	answer, err := p.prompter.Prompt(ctx, PromptColumnName, "")
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(answer)
	if name == "" {
		name = DefaultColumnName
	}

	col := board.Column{ID: board.NewID(board.KindColumn), Name: name, Cards: []board.Card{}}
	return p.session.Apply(ctx, func(doc *board.Document, boardID string) (*board.Document, error) {
		return board.AddColumn(doc, boardID, col), nil
	})
}

// DeleteColumn removes columnID and its cards after confirmation.
func (p *Panel) DeleteColumn(ctx context.Context, columnID string) (*board.Document, error) {
	if err := p.confirm(ctx, ConfirmDeleteCol); err != nil {
		return nil, err
	}
	return p.session.Apply(ctx, func(doc *board.Document, boardID string) (*board.Document, error) {
		return board.DeleteColumn(doc, boardID, columnID)
	})
}

// AddCard prompts for a title and appends a card to columnID.
func (p *Panel) AddCard(ctx context.Context, columnID string) (*board.Document, error) {
	answer, err := p.prompter.Prompt(ctx, PromptCardTitle, "")
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(answer)
	if title == "" {
		title = DefaultCardTitle
	}

	card := board.Card{ID: board.NewID(board.KindCard), Title: title}
	return p.session.Apply(ctx, func(doc *board.Document, boardID string) (*board.Document, error) {
		return board.AddCard(doc, boardID, columnID, card), nil
	})
}

// DeleteCard removes cardID after confirmation.
func (p *Panel) DeleteCard(ctx context.Context, cardID string) (*board.Document, error) {
	if err := p.confirm(ctx, ConfirmDeleteCard); err != nil {
		return nil, err
	}
	return p.session.Apply(ctx, func(doc *board.Document, boardID string) (*board.Document, error) {
		return board.DeleteCard(doc, boardID, cardID), nil
	})
}

// MoveCard moves cardID into toColumnID before beforeCardID, or to the end when
// beforeCardID is empty or not in that column.
func (p *Panel) MoveCard(ctx context.Context, cardID, toColumnID, beforeCardID string) (*board.Document, error) {
	return p.session.Apply(ctx, func(doc *board.Document, boardID string) (*board.Document, error) {
		return board.MoveCard(doc, boardID, cardID, toColumnID, beforeCardID), nil
	})
}

// AddBoard prompts for a name and adds a board with the column template.
// The new board becomes active.
func (p *Panel) AddBoard(ctx context.Context) (*board.Document, error) {
	answer, err := p.prompter.Prompt(ctx, PromptNewBoard, "")
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(answer)

	doc, err := p.session.Apply(ctx, func(doc *board.Document, _ string) (*board.Document, error) {
		n := name
		if n == "" {
			n = fmt.Sprintf("Board %d", len(doc.Boards)+1)
		}
		return board.AddBoard(doc, board.NewBoard(n)), nil
	})
	if err != nil {
		return nil, err
	}
	p.session.Focus("")
	return doc, nil
}

// RenameBoard renames boardID. Blank names are ignored.
func (p *Panel) RenameBoard(ctx context.Context, boardID, name string) (*board.Document, error) {
	return p.session.Apply(ctx, func(doc *board.Document, _ string) (*board.Document, error) {
		return board.RenameBoard(doc, boardID, name), nil
	})
}

// DeleteBoard removes boardID after confirmation. The last board cannot be deleted.
func (p *Panel) DeleteBoard(ctx context.Context, boardID string) (*board.Document, error) {
	if err := p.confirm(ctx, ConfirmDeleteBoard); err != nil {
		return nil, err
	}
	return p.session.Apply(ctx, func(doc *board.Document, _ string) (*board.Document, error) {
		return board.DeleteBoard(doc, boardID)
	})
}

// UseBoard makes boardID the active board.
func (p *Panel) UseBoard(ctx context.Context, boardID string) (*board.Document, error) {
	p.session.Focus("")
	return p.session.Apply(ctx, func(doc *board.Document, _ string) (*board.Document, error) {
		return board.SetActiveBoard(doc, boardID), nil
	})
}

// SetTheme stores the theme setting.
func (p *Panel) SetTheme(ctx context.Context, theme board.Theme) (*board.Document, error) {
	if err := theme.Validate(); err != nil {
		return nil, err
	}
	return p.session.Apply(ctx, func(doc *board.Document, _ string) (*board.Document, error) {
		return board.SetTheme(doc, theme), nil
	})
}

func (p *Panel) confirm(ctx context.Context, message string) error {
	ok, err := p.prompter.Confirm(ctx, message)
	if err != nil {
		return err
	}
	if !ok {
		return board.ErrCancelled
	}
	return nil
}

// Watch keeps the panel live until ctx is done: documents saved by any surface are
// rendered as they arrive, and request-name signals prompt for the board name.
func (p *Panel) Watch(ctx context.Context, signals Signals) error {
	docs, err := signals.SubscribeDocuments(ctx)
	if err != nil {
		return err
	}
	defer docs.Close()

	requests, err := signals.SubscribeRequests(ctx)
	if err != nil {
		return err
	}
	defer requests.Close()

	p.log.Info("Watching for document changes")
	for {
		select {
		case <-ctx.Done():
			return nil
		case doc, ok := <-docs.Events():
			if !ok {
				return nil
			}
			p.session.Refresh(doc)
		case err, ok := <-docs.Errors():
			if !ok {
				return nil
			}
			p.log.WithError(err).Warn("Skipped document event")
		case _, ok := <-requests.Requests():
			if !ok {
				return nil
			}
			if _, err := p.RequestName(ctx); err != nil && !board.IsCancelled(err) {
				p.log.WithError(err).Error("Failed to handle request-name signal")
			}
		}
	}
}
