// Package render draws kanban documents for the terminal.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dyluth/kanban/internal/filter"
	"github.com/dyluth/kanban/internal/transfer"
	"github.com/dyluth/kanban/pkg/board"
	"github.com/olekukonko/tablewriter"
)

// Table renders the active board as one row per card.
// It implements board.Renderer.
type Table struct {
	w        io.Writer
	criteria filter.Criteria

	// Err holds the last rendering error, if any.
	Err error
}

// NewTable returns a table renderer writing to w. Cards are filtered by criteria.
func NewTable(w io.Writer, criteria filter.Criteria) *Table {
	return &Table{w: w, criteria: criteria}
}

// Render draws the active board of doc.
func (t *Table) Render(doc *board.Document) {
	t.Err = t.render(doc)
}

func (t *Table) render(doc *board.Document) error {
	b := doc.ActiveBoard()
	if b == nil {
		return fmt.Errorf("document has no active board")
	}
	visible := t.criteria.Board(*b)

	fmt.Fprintf(t.w, "%s  (%s theme)\n", b.Name, doc.Settings.Theme)
	for _, col := range visible.Columns {
		fmt.Fprintf(t.w, "  %s [%s]\n", col.Name, t.countLabel(b, col))
	}
	fmt.Fprintln(t.w)

	table := tablewriter.NewWriter(t.w)
	table.Header("Column", "ID", "Title", "Description")
	for _, col := range visible.Columns {
		for _, card := range col.Cards {
			if err := table.Append([]string{col.Name, card.ID, card.Title, card.Description}); err != nil {
				return fmt.Errorf("failed to add row: %w", err)
			}
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render board: %w", err)
	}
	return nil
}

// countLabel is the card count of a column, shown as visible/total while searching.
func (t *Table) countLabel(b *board.Board, visible board.Column) string {
	if t.criteria.Term == "" {
		return strconv.Itoa(len(visible.Cards))
	}
	total := 0
	if i := b.ColumnIndex(visible.ID); i >= 0 {
		total = len(b.Columns[i].Cards)
	}
	return fmt.Sprintf("%d/%d", len(visible.Cards), total)
}

// Boards writes a summary table of every board in doc. The active board is marked.
func Boards(w io.Writer, doc *board.Document) error {
	table := tablewriter.NewWriter(w)
	table.Header("Active", "ID", "Name", "Columns", "Cards")
	for _, b := range doc.Boards {
		active := ""
		if b.ID == doc.ActiveBoardID {
			active = "*"
		}
		if err := table.Append([]string{active, b.ID, b.Name, strconv.Itoa(len(b.Columns)), strconv.Itoa(b.CardCount())}); err != nil {
			return fmt.Errorf("failed to add row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render boards: %w", err)
	}
	return nil
}

// JSON renders the whole document in the export format.
// It implements board.Renderer.
type JSON struct {
	w io.Writer

	// Err holds the last rendering error, if any.
	Err error
}

// NewJSON returns a JSON renderer writing to w.
func NewJSON(w io.Writer) *JSON {
	return &JSON{w: w}
}

// Render writes doc as indented JSON.
func (j *JSON) Render(doc *board.Document) {
	j.Err = transfer.Export(j.w, doc)
}
