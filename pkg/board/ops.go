package board

import (
	"errors"
	"slices"
	"strings"
)

// Operations in this file never modify their input. Each returns a new *Document
// that shares untouched boards, columns and cards with the original. When the
// target does not exist the input pointer itself is returned, so callers can detect
// a no-op by identity.

var (
	// ErrLastBoard is returned when deleting the only board of a document.
	ErrLastBoard = errors.New("cannot delete the last board")

	// ErrLastColumn is returned when deleting the only column of a board.
	ErrLastColumn = errors.New("cannot delete the last column of a board")
)

// SetActiveBoard makes boardID the active board.
func SetActiveBoard(doc *Document, boardID string) *Document {
	if doc.BoardIndex(boardID) < 0 || doc.ActiveBoardID == boardID {
		return doc
	}
	next := *doc
	next.ActiveBoardID = boardID
	return &next
}

// SetTheme replaces the theme setting.
func SetTheme(doc *Document, theme Theme) *Document {
	if doc.Settings.Theme == theme {
		return doc
	}
	next := *doc
	next.Settings.Theme = theme
	return &next
}

// AddBoard appends b and makes it the active board.
func AddBoard(doc *Document, b Board) *Document {
	next := *doc
	next.Boards = append(slices.Clip(doc.Boards), b)
	next.ActiveBoardID = b.ID
	return &next
}

// RenameBoard sets the name of boardID. Blank names are ignored.
func RenameBoard(doc *Document, boardID, name string) *Document {
	name = strings.TrimSpace(name)
	i := doc.BoardIndex(boardID)
	if i < 0 || name == "" || doc.Boards[i].Name == name {
		return doc
	}
	b := doc.Boards[i]
	b.Name = name
	return withBoard(doc, i, b)
}

// DeleteBoard removes boardID. If it was active, the first remaining board becomes active.
func DeleteBoard(doc *Document, boardID string) (*Document, error) {
	i := doc.BoardIndex(boardID)
	if i < 0 {
		return doc, nil
	}
	if len(doc.Boards) == 1 {
		return doc, ErrLastBoard
	}
	next := *doc
	next.Boards = slices.Delete(slices.Clone(doc.Boards), i, i+1)
	if next.ActiveBoardID == boardID {
		next.ActiveBoardID = next.Boards[0].ID
	}
	return &next, nil
}

// AddColumn appends c to the board.
func AddColumn(doc *Document, boardID string, c Column) *Document {
	i := doc.BoardIndex(boardID)
	if i < 0 {
		return doc
	}
	if c.Cards == nil {
		c.Cards = []Card{}
	}
	b := doc.Boards[i]
	b.Columns = append(slices.Clip(b.Columns), c)
	return withBoard(doc, i, b)
}

// DeleteColumn removes a column and the cards in it.
func DeleteColumn(doc *Document, boardID, columnID string) (*Document, error) {
	i := doc.BoardIndex(boardID)
	if i < 0 {
		return doc, nil
	}
	b := doc.Boards[i]
	ci := b.ColumnIndex(columnID)
	if ci < 0 {
		return doc, nil
	}
	if len(b.Columns) == 1 {
		return doc, ErrLastColumn
	}
	b.Columns = slices.Delete(slices.Clone(b.Columns), ci, ci+1)
	return withBoard(doc, i, b), nil
}

// AddCard appends card to the end of the column.
func AddCard(doc *Document, boardID, columnID string, card Card) *Document {
	i := doc.BoardIndex(boardID)
	if i < 0 {
		return doc
	}
	b := doc.Boards[i]
	ci := b.ColumnIndex(columnID)
	if ci < 0 {
		return doc
	}
	col := b.Columns[ci]
	col.Cards = append(slices.Clip(col.Cards), card)
	return withBoard(doc, i, withColumn(b, ci, col))
}

// DeleteCard removes cardID from whichever column holds it.
func DeleteCard(doc *Document, boardID, cardID string) *Document {
	i := doc.BoardIndex(boardID)
	if i < 0 {
		return doc
	}
	b := doc.Boards[i]
	ci, pos := b.FindCard(cardID)
	if ci < 0 {
		return doc
	}
	col := b.Columns[ci]
	col.Cards = slices.Delete(slices.Clone(col.Cards), pos, pos+1)
	return withBoard(doc, i, withColumn(b, ci, col))
}

// MoveCard removes cardID from its column and inserts it into toColumnID before
// beforeCardID. If beforeCardID is empty or not in the destination column the card
// is appended. The card keeps its ID. Moving within one column reorders it.
func MoveCard(doc *Document, boardID, cardID, toColumnID, beforeCardID string) *Document {
	i := doc.BoardIndex(boardID)
	if i < 0 {
		return doc
	}
	b := doc.Boards[i]
	from, pos := b.FindCard(cardID)
	to := b.ColumnIndex(toColumnID)
	if from < 0 || to < 0 {
		return doc
	}

	card := b.Columns[from].Cards[pos]
	src := b.Columns[from]
	src.Cards = slices.Delete(slices.Clone(src.Cards), pos, pos+1)
	b = withColumn(b, from, src)

	dst := b.Columns[to]
	at := len(dst.Cards)
	if beforeCardID != "" && beforeCardID != cardID {
		if idx := dst.CardIndex(beforeCardID); idx >= 0 {
			at = idx
		}
	}
	dst.Cards = slices.Insert(slices.Clone(dst.Cards), at, card)
	b = withColumn(b, to, dst)

	return withBoard(doc, i, b)
}

// withBoard returns a copy of doc with the board at position i replaced.
func withBoard(doc *Document, i int, b Board) *Document {
	next := *doc
	next.Boards = slices.Clone(doc.Boards)
	next.Boards[i] = b
	return &next
}

// withColumn returns a copy of b with the column at position i replaced.
func withColumn(b Board, i int, c Column) Board {
	b.Columns = slices.Clone(b.Columns)
	b.Columns[i] = c
	return b
}
