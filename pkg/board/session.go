package board

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Renderer consumes persisted documents. It is only ever handed a document that
// has been successfully saved (or freshly loaded), never an unsaved candidate.
type Renderer interface {
	Render(doc *Document)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(doc *Document)

// Render calls f(doc).
func (f RendererFunc) Render(doc *Document) { f(doc) }

// Mutation computes a new document from doc for the board boardID, which is
// guaranteed to resolve. It must not modify doc; it returns doc itself for a no-op.
type Mutation func(doc *Document, boardID string) (*Document, error)

// SaveError reports that a computed mutation could not be persisted.
// The mutation is treated as not applied.
type SaveError struct {
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("failed to save document: %v", e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

// Session is one surface's view of the shared document.
//
// Every mutation runs the same cycle: load-or-init from the store, resolve the
// target board, compute a new document value, save it whole, then render the saved
// value. There is no locking between surfaces; concurrent sessions are
// last-write-wins, and because every write is a whole normalized document the
// worst outcome is a lost edit, never an invalid document.
//
// A Session is not safe for concurrent use; each surface owns one.
type Session struct {
	store    Store
	renderer Renderer
	log      logrus.FieldLogger

	current *Document
	focus   string // board pinned by the surface; "" follows the active board
}

// NewSession creates a session over store. renderer and log may be nil.
func NewSession(store Store, renderer Renderer, log logrus.FieldLogger) *Session {
	if renderer == nil {
		renderer = RendererFunc(func(*Document) {})
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Session{store: store, renderer: renderer, log: log}
}

// Current returns the last document this session loaded or saved, or nil.
func (s *Session) Current() *Document {
	return s.current
}

// Focus pins the session to boardID instead of following the active board.
// An empty boardID restores following the active board.
func (s *Session) Focus(boardID string) {
	s.focus = boardID
}

// Open loads the document, initializing and saving a default one if none exists,
// and renders it. initialized reports whether a default document was created.
func (s *Session) Open(ctx context.Context) (doc *Document, initialized bool, err error) {
	doc, initialized, err = s.loadOrInit(ctx)
	if err != nil {
		return nil, false, err
	}
	s.commit(doc)
	return doc, initialized, nil
}

// Refresh adopts a document saved elsewhere (for example by another surface)
// and renders it. The document is assumed to be persisted already.
func (s *Session) Refresh(doc *Document) {
	if doc != nil {
		s.commit(doc)
	}
}

// Apply runs one mutation cycle and returns the persisted result.
//
// If the target board no longer exists (deleted by another surface since this one
// last loaded), the first board becomes the target and active board, and that
// fallback is saved before the mutation is applied.
//
// Errors returned by m abort the cycle with nothing saved. A persistence failure is
// returned as *SaveError and the renderer keeps showing the previous state.
func (s *Session) Apply(ctx context.Context, m Mutation) (*Document, error) {
	doc, _, err := s.loadOrInit(ctx)
	if err != nil {
		return nil, err
	}

	doc, boardID, err := s.resolveTarget(ctx, doc)
	if err != nil {
		return nil, err
	}

	next, err := m(doc, boardID)
	if err != nil {
		return nil, err
	}
	if next == doc {
		s.commit(doc)
		return doc, nil
	}

	if err := s.store.Save(ctx, next); err != nil {
		s.log.WithError(err).Error("Failed to save document")
		return nil, &SaveError{Err: err}
	}
	s.commit(next)
	return next, nil
}

func (s *Session) loadOrInit(ctx context.Context) (*Document, bool, error) {
	doc, err := s.store.Load(ctx)
	if err == nil {
		return doc, false, nil
	}
	if !IsNotFound(err) {
		return nil, false, fmt.Errorf("failed to load document: %w", err)
	}

	doc = NewDocument()
	if err := s.store.Save(ctx, doc); err != nil {
		return nil, false, &SaveError{Err: err}
	}
	s.log.Info("Initialized default document")
	return doc, true, nil
}

// resolveTarget returns the board to mutate, repairing a dangling target with a
// corrective save of the first board as active.
func (s *Session) resolveTarget(ctx context.Context, doc *Document) (*Document, string, error) {
	target := s.focus
	if target == "" {
		target = doc.ActiveBoardID
	}
	if doc.BoardIndex(target) >= 0 {
		return doc, target, nil
	}

	fallback := doc.Boards[0].ID
	s.log.WithFields(logrus.Fields{"missing": target, "board": fallback}).
		Info("Target board no longer exists; falling back to the first board")
	s.focus = ""

	if doc.ActiveBoardID != fallback {
		next := *doc
		next.ActiveBoardID = fallback
		if err := s.store.Save(ctx, &next); err != nil {
			return nil, "", &SaveError{Err: err}
		}
		doc = &next
	}
	return doc, fallback, nil
}

func (s *Session) commit(doc *Document) {
	s.current = doc
	s.renderer.Render(doc)
}
