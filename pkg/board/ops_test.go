package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDocument builds a two-board document with known IDs.
//
//	b1: todo[k1, k2, k3], doing[k4], done[]
//	b2: only[k9]
func testDocument() *Document {
	return &Document{
		Version: CurrentVersion,
		Boards: []Board{
			{
				ID: "b1", Name: "Main", Labels: []string{},
				Columns: []Column{
					{ID: "todo", Name: "Todo", Cards: []Card{
						{ID: "k1", Title: "one"}, {ID: "k2", Title: "two"}, {ID: "k3", Title: "three"},
					}},
					{ID: "doing", Name: "Doing", Cards: []Card{{ID: "k4", Title: "four"}}},
					{ID: "done", Name: "Done", Cards: []Card{}},
				},
			},
			{
				ID: "b2", Name: "Side", Labels: []string{},
				Columns: []Column{{ID: "only", Name: "Only", Cards: []Card{{ID: "k9", Title: "nine"}}}},
			},
		},
		ActiveBoardID: "b1",
		Settings:      Settings{Theme: ThemeDark},
	}
}

func counts(b Board) []int {
	n := make([]int, len(b.Columns))
	for i, c := range b.Columns {
		n[i] = len(c.Cards)
	}
	return n
}

func TestMoveCard(t *testing.T) {
	t.Run("moves across columns and preserves counts", func(t *testing.T) {
		doc := testDocument()
		next := MoveCard(doc, "b1", "k2", "done", "")

		assert.Equal(t, []int{3, 1, 0}, counts(doc.Boards[0]), "input must not change")
		assert.Equal(t, []int{2, 1, 1}, counts(next.Boards[0]))
		assert.Equal(t, []string{"k1", "k3"}, cardIDs(next.Boards[0].Columns[0]))
		assert.Equal(t, []string{"k2"}, cardIDs(next.Boards[0].Columns[2]))
		assert.Equal(t, doc.Boards[0].CardCount(), next.Boards[0].CardCount())
	})

	t.Run("inserts before the reference card", func(t *testing.T) {
		next := MoveCard(testDocument(), "b1", "k3", "doing", "k4")

		assert.Equal(t, []string{"k3", "k4"}, cardIDs(next.Boards[0].Columns[1]))
	})

	t.Run("appends when the reference card is not in the destination", func(t *testing.T) {
		next := MoveCard(testDocument(), "b1", "k1", "doing", "k2")

		assert.Equal(t, []string{"k4", "k1"}, cardIDs(next.Boards[0].Columns[1]))
	})

	t.Run("reorders within a column", func(t *testing.T) {
		next := MoveCard(testDocument(), "b1", "k3", "todo", "k1")

		assert.Equal(t, []string{"k3", "k1", "k2"}, cardIDs(next.Boards[0].Columns[0]))
	})

	t.Run("referencing itself appends", func(t *testing.T) {
		next := MoveCard(testDocument(), "b1", "k1", "todo", "k1")

		assert.Equal(t, []string{"k2", "k3", "k1"}, cardIDs(next.Boards[0].Columns[0]))
	})

	t.Run("keeps the card value", func(t *testing.T) {
		next := MoveCard(testDocument(), "b1", "k4", "todo", "")

		col := next.Boards[0].Columns[0]
		assert.Equal(t, Card{ID: "k4", Title: "four"}, col.Cards[len(col.Cards)-1])
	})

	t.Run("missing card, column or board is a no-op", func(t *testing.T) {
		doc := testDocument()
		assert.Same(t, doc, MoveCard(doc, "b1", "nope", "done", ""))
		assert.Same(t, doc, MoveCard(doc, "b1", "k1", "nope", ""))
		assert.Same(t, doc, MoveCard(doc, "nope", "k1", "done", ""))
		assert.Same(t, doc, MoveCard(doc, "b1", "k9", "done", ""), "cards on other boards are not reachable")
	})

	t.Run("untouched boards are shared", func(t *testing.T) {
		doc := testDocument()
		next := MoveCard(doc, "b1", "k1", "done", "")

		assert.Same(t, &doc.Boards[1].Columns[0].Cards[0], &next.Boards[1].Columns[0].Cards[0])
	})
}

func TestAddCard(t *testing.T) {
	doc := testDocument()
	next := AddCard(doc, "b1", "doing", Card{ID: "new", Title: "fresh"})

	assert.Equal(t, []string{"k4", "new"}, cardIDs(next.Boards[0].Columns[1]))
	assert.Equal(t, []string{"k4"}, cardIDs(doc.Boards[0].Columns[1]))
	assert.Same(t, doc, AddCard(doc, "b1", "nope", Card{ID: "x"}))
	assert.Same(t, doc, AddCard(doc, "nope", "doing", Card{ID: "x"}))
}

func TestAddCard_DoesNotAliasSpareCapacity(t *testing.T) {
	doc := testDocument()
	doc.Boards[0].Columns[2].Cards = make([]Card, 0, 4)

	a := AddCard(doc, "b1", "done", Card{ID: "a", Title: "a"})
	b := AddCard(doc, "b1", "done", Card{ID: "b", Title: "b"})

	assert.Equal(t, []string{"a"}, cardIDs(a.Boards[0].Columns[2]))
	assert.Equal(t, []string{"b"}, cardIDs(b.Boards[0].Columns[2]))
}

func TestDeleteCard(t *testing.T) {
	doc := testDocument()
	next := DeleteCard(doc, "b1", "k2")

	assert.Equal(t, []string{"k1", "k3"}, cardIDs(next.Boards[0].Columns[0]))
	assert.Equal(t, []string{"k1", "k2", "k3"}, cardIDs(doc.Boards[0].Columns[0]))
	assert.Same(t, doc, DeleteCard(doc, "b1", "missing"))
}

func TestColumns(t *testing.T) {
	t.Run("add appends with an empty card list", func(t *testing.T) {
		next := AddColumn(testDocument(), "b1", Column{ID: "c", Name: "Later"})

		cols := next.Boards[0].Columns
		require.Len(t, cols, 4)
		assert.Equal(t, "Later", cols[3].Name)
		assert.NotNil(t, cols[3].Cards)
	})

	t.Run("delete removes the column", func(t *testing.T) {
		next, err := DeleteColumn(testDocument(), "b1", "doing")
		require.NoError(t, err)

		assert.Equal(t, []string{"Todo", "Done"}, columnNames(next.Boards[0]))
	})

	t.Run("delete of missing column is a no-op", func(t *testing.T) {
		doc := testDocument()
		next, err := DeleteColumn(doc, "b1", "nope")
		require.NoError(t, err)
		assert.Same(t, doc, next)
	})

	t.Run("last column cannot be deleted", func(t *testing.T) {
		doc := testDocument()
		next, err := DeleteColumn(doc, "b2", "only")
		assert.ErrorIs(t, err, ErrLastColumn)
		assert.Same(t, doc, next)
	})
}

func TestBoards(t *testing.T) {
	t.Run("add makes the new board active", func(t *testing.T) {
		b := NewBoard("Third")
		next := AddBoard(testDocument(), b)

		require.Len(t, next.Boards, 3)
		assert.Equal(t, b.ID, next.ActiveBoardID)
	})

	t.Run("rename trims and ignores blanks", func(t *testing.T) {
		doc := testDocument()
		next := RenameBoard(doc, "b2", "  Renamed ")
		assert.Equal(t, "Renamed", next.Boards[1].Name)
		assert.Equal(t, "Side", doc.Boards[1].Name)

		assert.Same(t, doc, RenameBoard(doc, "b2", "   "))
		assert.Same(t, doc, RenameBoard(doc, "b2", "Side"))
	})

	t.Run("delete active board moves active to the first remaining", func(t *testing.T) {
		next, err := DeleteBoard(testDocument(), "b1")
		require.NoError(t, err)

		require.Len(t, next.Boards, 1)
		assert.Equal(t, "b2", next.ActiveBoardID)
	})

	t.Run("delete of missing board is a no-op", func(t *testing.T) {
		doc := testDocument()
		next, err := DeleteBoard(doc, "nope")
		require.NoError(t, err)
		assert.Same(t, doc, next)
	})

	t.Run("last board cannot be deleted", func(t *testing.T) {
		doc := NewDocument()
		_, err := DeleteBoard(doc, doc.ActiveBoardID)
		assert.ErrorIs(t, err, ErrLastBoard)
	})

	t.Run("switch active board", func(t *testing.T) {
		doc := testDocument()
		assert.Equal(t, "b2", SetActiveBoard(doc, "b2").ActiveBoardID)
		assert.Same(t, doc, SetActiveBoard(doc, "nope"))
	})

	t.Run("set theme", func(t *testing.T) {
		doc := testDocument()
		next := SetTheme(doc, ThemeLight)
		assert.Equal(t, ThemeLight, next.Settings.Theme)
		assert.Equal(t, ThemeDark, doc.Settings.Theme)
		assert.Same(t, next, SetTheme(next, ThemeLight))
	})
}

func TestOperationsKeepDocumentsCanonical(t *testing.T) {
	doc := Normalize(testDocument()).Document
	steps := []func(*Document) *Document{
		func(d *Document) *Document { return AddCard(d, "b1", "done", Card{ID: NewID(KindCard), Title: "x"}) },
		func(d *Document) *Document { return MoveCard(d, "b1", "k1", "doing", "k4") },
		func(d *Document) *Document { return AddColumn(d, "b2", Column{ID: NewID(KindColumn), Name: "More"}) },
		func(d *Document) *Document { return AddBoard(d, NewBoard("Fresh")) },
		func(d *Document) *Document { return DeleteCard(d, "b1", "k2") },
		func(d *Document) *Document { return SetTheme(d, ThemeSystem) },
	}
	for _, step := range steps {
		doc = step(doc)
		res := Normalize(doc)
		require.False(t, res.Changed, "diagnostics: %v", res.Diagnostics)
	}
}
