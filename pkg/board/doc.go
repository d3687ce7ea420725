// Package board defines the kanban document, the normalizer that repairs any stored
// or imported value into a valid document, the Redis store adapter and the mutation
// protocol shared by every UI surface.
//
// # Overview
//
// The whole kanban state is one Document: an ordered list of boards, each with
// ordered columns, each with ordered cards. It is stored as a single JSON value under
// one well-known Redis key. Several independent surfaces (popup, side panel, options
// page, background worker) read and write it without sharing memory.
//
// # Normalization
//
// Normalize is the single entry point from untrusted data to a Document. It is total:
// malformed boards, columns and cards are repaired or dropped, a document without
// usable boards gets the default board, a board without usable columns gets the
// Backlog / In Progress / Done template, and the active board always resolves. It
// reports whether anything changed plus one human-readable diagnostic per repair.
// Normalizing a canonical document is a no-op.
//
// # Mutation protocol
//
// Surfaces edit through a Session:
//
//	client, _ := board.NewClient(&redis.Options{Addr: "localhost:6379"}, "default")
//	session := board.NewSession(client, renderer, log)
//
//	doc, err := session.Apply(ctx, func(doc *board.Document, boardID string) (*board.Document, error) {
//		col := doc.Boards[doc.BoardIndex(boardID)].Columns[0]
//		return board.AddCard(doc, boardID, col.ID, board.Card{ID: board.NewID(board.KindCard), Title: "Ship it"}), nil
//	})
//
// Apply loads (normalizing and self-healing), resolves the target board, computes a
// new value with the copy-and-replace operations in ops.go, saves it whole, and only
// then renders it. Writes are last-write-wins across surfaces.
//
// # Redis Schema
//
// Document: kanban:{profile}:{storage_key} (storage_key defaults to "kanban.v1")
//
// Pub/Sub channels:
//
// Request name: kanban:{profile}:request_name
// Document events: kanban:{profile}:document_events
package board
