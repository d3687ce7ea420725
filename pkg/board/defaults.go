package board

// Fixed identifiers of the default document. They are stable so a fresh document
// is byte-for-byte reproducible and normalizes as a no-op.
const (
	DefaultBoardID    = "board-default"
	DefaultBoardName  = "Kanban"
	defaultBacklogID  = "col-backlog"
	defaultProgressID = "col-progress"
	defaultDoneID     = "col-done"
)

// NewDocument returns a fresh default document: one "Kanban" board with the
// three-column template and an onboarding card in each column.
func NewDocument() *Document {
	b := NewDefaultBoard()
	return &Document{
		Version:       CurrentVersion,
		Boards:        []Board{b},
		ActiveBoardID: b.ID,
		Settings:      Settings{Theme: DefaultTheme},
	}
}

// NewDefaultBoard returns the board used to seed a fresh document.
func NewDefaultBoard() Board {
	cols := DefaultColumns()
	cols[0].Cards = append(cols[0].Cards, Card{
		ID:          "card-welcome",
		Title:       "Welcome to kanban",
		Description: `Use "column new" to add more lists and start capturing your ideas.`,
	})
	cols[1].Cards = append(cols[1].Cards, Card{
		ID:          "card-drag",
		Title:       "Move cards between columns",
		Description: "Pick a card, move it to a new status, and drop it where it belongs.",
	})
	cols[2].Cards = append(cols[2].Cards, Card{
		ID:          "card-search",
		Title:       "Try the search filter",
		Description: "Filter cards instantly by passing a keyword to show --search.",
	})
	return Board{
		ID:      DefaultBoardID,
		Name:    DefaultBoardName,
		Labels:  []string{},
		Columns: cols,
	}
}

// NewBoard returns an empty board with a generated ID and the column template.
// Column IDs of the template only need to be unique within the board.
func NewBoard(name string) Board {
	return Board{
		ID:      NewID(KindBoard),
		Name:    name,
		Labels:  []string{},
		Columns: DefaultColumns(),
	}
}

// DefaultColumns returns the Backlog / In Progress / Done template with no cards.
// Each call returns fresh slices.
func DefaultColumns() []Column {
	return []Column{
		{ID: defaultBacklogID, Name: "Backlog", Cards: []Card{}},
		{ID: defaultProgressID, Name: "In Progress", Cards: []Card{}},
		{ID: defaultDoneID, Name: "Done", Cards: []Card{}},
	}
}
