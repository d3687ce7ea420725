package filter

import (
	"strings"

	"github.com/dyluth/kanban/pkg/board"
)

// Criteria defines filtering criteria for cards.
// All filters are ANDed together - a card must match ALL criteria to pass.
type Criteria struct {
	Term     string // Case-insensitive substring of the card title, empty = no filter
	ColumnID string // Exact column id, empty = no filter
}

// Matches returns true if the card matches the title term.
// An empty or whitespace-only term matches every card.
func (c *Criteria) Matches(card board.Card) bool {
	term := strings.ToLower(strings.TrimSpace(c.Term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(card.Title), term)
}

// HasFilters returns true if any filters are active.
func (c *Criteria) HasFilters() bool {
	return strings.TrimSpace(c.Term) != "" || c.ColumnID != ""
}

// Board returns a copy of b holding only matching columns and cards.
// Columns are kept even when none of their cards match, so the board layout
// stays stable while searching; only ColumnID drops columns.
func (c *Criteria) Board(b board.Board) board.Board {
	if !c.HasFilters() {
		return b
	}

	out := b
	out.Columns = make([]board.Column, 0, len(b.Columns))
	for _, col := range b.Columns {
		if c.ColumnID != "" && col.ID != c.ColumnID {
			continue
		}
		kept := col
		kept.Cards = make([]board.Card, 0, len(col.Cards))
		for _, card := range col.Cards {
			if c.Matches(card) {
				kept.Cards = append(kept.Cards, card)
			}
		}
		out.Columns = append(out.Columns, kept)
	}
	return out
}
