package board

import (
	"fmt"
	"strings"
)

// CurrentVersion is the only document schema version this package understands.
const CurrentVersion = 1

// Document is the whole persisted kanban state. It is stored as a single JSON value
// under one well-known key and is treated as an immutable snapshot once loaded:
// operations in this package return new Document values instead of editing in place.
type Document struct {
	Version       int      `json:"version"`
	Boards        []Board  `json:"boards"`        // Never empty once normalized
	ActiveBoardID string   `json:"activeBoardId"` // Always the ID of an element of Boards
	Settings      Settings `json:"settings"`
}

// Board is a named set of ordered columns.
type Board struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Labels  []string `json:"labels"`
	Columns []Column `json:"columns"` // Never empty once normalized
}

// Column is an ordered list of cards. Column order is display order.
type Column struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Cards []Card `json:"cards"`
}

// Card is a single work item. Cards are nested in their column.
type Card struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Settings holds user preferences that travel with the document.
type Settings struct {
	Theme Theme `json:"theme"`
}

// Theme selects the UI colour scheme.
type Theme string

const (
	ThemeDark   Theme = "dark"
	ThemeLight  Theme = "light"
	ThemeSystem Theme = "system"
)

// DefaultTheme is applied to fresh documents and whenever a stored theme is unusable.
const DefaultTheme = ThemeDark

// ParseTheme accepts a theme name case-insensitively and returns its canonical form.
func ParseTheme(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// Validate checks if the Theme is a valid enum value.
func (t Theme) Validate() error {
	switch t {
	case ThemeDark, ThemeLight, ThemeSystem:
		return nil
	default:
		return fmt.Errorf("unknown theme: %q (must be 'dark', 'light', or 'system')", string(t))
	}
}

// ActiveBoard returns the board named by ActiveBoardID, or nil if it does not resolve.
func (d *Document) ActiveBoard() *Board {
	if i := d.BoardIndex(d.ActiveBoardID); i >= 0 {
		return &d.Boards[i]
	}
	return nil
}

// BoardIndex returns the position of the board with the given ID, or -1.
func (d *Document) BoardIndex(boardID string) int {
	for i := range d.Boards {
		if d.Boards[i].ID == boardID {
			return i
		}
	}
	return -1
}

// ColumnIndex returns the position of the column with the given ID, or -1.
func (b *Board) ColumnIndex(columnID string) int {
	for i := range b.Columns {
		if b.Columns[i].ID == columnID {
			return i
		}
	}
	return -1
}

// FindCard locates a card anywhere on the board.
// Returns the column and card positions, or (-1, -1) if the card is not on the board.
func (b *Board) FindCard(cardID string) (columnIdx, cardIdx int) {
	for ci := range b.Columns {
		if i := b.Columns[ci].CardIndex(cardID); i >= 0 {
			return ci, i
		}
	}
	return -1, -1
}

// CardIndex returns the position of the card with the given ID, or -1.
func (c *Column) CardIndex(cardID string) int {
	for i := range c.Cards {
		if c.Cards[i].ID == cardID {
			return i
		}
	}
	return -1
}

// CardCount returns the number of cards across all columns of the board.
func (b *Board) CardCount() int {
	n := 0
	for _, c := range b.Columns {
		n += len(c.Cards)
	}
	return n
}
