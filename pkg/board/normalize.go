package board

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Result is the outcome of normalizing a raw document.
type Result struct {
	Document    *Document
	Changed     bool     // True if any repair was applied
	Diagnostics []string // Human-readable repairs, in the order they were applied
}

// Normalize repairs an arbitrary value into a structurally valid Document.
//
// raw may be anything: the generic value produced by decoding JSON, a *Document,
// or an arbitrary Go value (it is inspected through its JSON encoding). Every
// malformed shape has a defined repair or drop rule, so Normalize never panics and
// always returns a document with at least one board, at least one column per board
// and an ActiveBoardID that resolves.
//
// Normalizing an already canonical document returns Changed=false and no diagnostics.
func Normalize(raw any) Result {
	root, ok := toPlain(raw).(map[string]any)
	if !ok {
		return Result{
			Document:    NewDocument(),
			Changed:     true,
			Diagnostics: []string{"Document was empty or invalid; replaced with defaults."},
		}
	}

	n := &normalizer{diagnostics: []string{}}
	doc := &Document{
		Version:  CurrentVersion,
		Boards:   []Board{},
		Settings: Settings{Theme: DefaultTheme},
	}

	n.version(root)
	n.boards(root, doc)
	n.activeBoard(root, doc)
	n.settings(root, doc)

	return Result{Document: doc, Changed: n.changed, Diagnostics: n.diagnostics}
}

// NormalizeJSON decodes data and normalizes the result.
// Returns an error only if data is not valid JSON; any valid JSON value normalizes.
func NormalizeJSON(data []byte) (Result, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Result{}, fmt.Errorf("failed to parse document JSON: %w", err)
	}
	return Normalize(raw), nil
}

// toPlain converts raw into the generic shape produced by encoding/json
// (map[string]any, []any, string, float64, bool, nil). Values that cannot be
// encoded become nil and are therefore replaced wholesale.
func toPlain(raw any) (out any) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()

	switch t := raw.(type) {
	case nil:
		return nil
	case map[string]any:
		if t == nil {
			return nil
		}
		if isPlainTree(t, 0) {
			return t
		}
	case []any, string, float64, bool:
		if isPlainTree(raw, 0) {
			return raw
		}
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	return v
}

// maxPlainDepth bounds the walk in isPlainTree. Deeper values, including cyclic
// ones, go through encoding/json, which reports cycles as errors.
const maxPlainDepth = 1000

// isPlainTree reports whether v already has the encoding/json generic shape throughout.
func isPlainTree(v any, depth int) bool {
	if depth > maxPlainDepth {
		return false
	}
	switch t := v.(type) {
	case nil, string, float64, bool:
		return true
	case []any:
		for _, e := range t {
			if !isPlainTree(e, depth+1) {
				return false
			}
		}
		return true
	case map[string]any:
		for _, e := range t {
			if !isPlainTree(e, depth+1) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

type normalizer struct {
	changed     bool
	diagnostics []string
}

// repair records a change with a diagnostic.
func (n *normalizer) repair(format string, args ...any) {
	n.changed = true
	n.diagnostics = append(n.diagnostics, fmt.Sprintf(format, args...))
}

// track marks the document changed unless the normalized string equals the raw value.
func (n *normalizer) track(normalized string, raw any) {
	if s, ok := raw.(string); !ok || s != normalized {
		n.changed = true
	}
}

func (n *normalizer) version(root map[string]any) {
	v, present := root["version"]
	if f, ok := v.(float64); ok && f == CurrentVersion {
		return
	}
	if !present {
		n.repair("Document version was missing; set to %d.", CurrentVersion)
		return
	}
	n.repair("Document version %v is not supported; treated as version %d.", v, CurrentVersion)
}

func (n *normalizer) boards(root map[string]any, doc *Document) {
	rawBoards, ok := root["boards"].([]any)
	if !ok {
		n.repair("Document was missing boards; added default board.")
	}

	seen := make(map[string]bool, len(rawBoards))
	for i, raw := range rawBoards {
		b, ok := n.board(raw, i)
		if !ok {
			continue
		}
		if seen[b.ID] {
			old := b.ID
			b.ID = NewID(KindBoard)
			n.repair("Board %q reused id %q; assigned a new id.", b.Name, old)
		}
		seen[b.ID] = true
		doc.Boards = append(doc.Boards, b)
	}

	if len(doc.Boards) == 0 {
		n.repair("No usable boards found; added default board.")
		doc.Boards = append(doc.Boards, NewDefaultBoard())
	}
}

func (n *normalizer) board(raw any, index int) (Board, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		n.repair("Removed invalid board at position %d.", index+1)
		return Board{}, false
	}

	name := text(m["name"])
	if name == "" {
		name = DefaultBoardName
		if index > 0 {
			name = fmt.Sprintf("Board %d", index+1)
		}
		n.repair("Board at position %d had no name; named it %q.", index+1, name)
	}
	n.track(name, m["name"])

	id := text(m["id"])
	if id == "" {
		id = NewID(KindBoard)
		n.repair("Board %q had no id; assigned a new one.", name)
	}
	n.track(id, m["id"])

	b := Board{
		ID:      id,
		Name:    name,
		Labels:  n.labels(m["labels"]),
		Columns: n.columns(m["columns"], name),
	}
	if rawCards, present := m["cards"]; present {
		n.migrateCards(rawCards, &b)
	}
	n.dedupe(&b)
	return b, true
}

func (n *normalizer) labels(raw any) []string {
	rawLabels, ok := raw.([]any)
	labels := make([]string, 0, len(rawLabels))
	for _, l := range rawLabels {
		if s, isString := l.(string); isString {
			labels = append(labels, s)
		}
	}
	if !ok || len(labels) != len(rawLabels) {
		n.changed = true
	}
	return labels
}

func (n *normalizer) columns(raw any, boardName string) []Column {
	rawColumns, ok := raw.([]any)
	if !ok || len(rawColumns) == 0 {
		n.repair("Board %q was missing columns; added defaults.", boardName)
		return DefaultColumns()
	}

	columns := make([]Column, 0, len(rawColumns))
	for i, rc := range rawColumns {
		if c, ok := n.column(rc, i, boardName); ok {
			columns = append(columns, c)
		}
	}
	if len(columns) == 0 {
		n.repair("Board %q had no valid columns; added defaults.", boardName)
		return DefaultColumns()
	}
	return columns
}

func (n *normalizer) column(raw any, index int, boardName string) (Column, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		n.repair("Removed invalid column at position %d on %q.", index+1, boardName)
		return Column{}, false
	}

	name := text(m["name"])
	if name == "" {
		name = fmt.Sprintf("Column %d", index+1)
		n.repair("Column at position %d on %q had no name; named it %q.", index+1, boardName, name)
	}
	n.track(name, m["name"])

	id := text(m["id"])
	if id == "" {
		id = NewID(KindColumn)
		n.repair("Column %q on %q had no id; assigned a new one.", name, boardName)
	}
	n.track(id, m["id"])

	rawCards, isSeq := m["cards"].([]any)
	if !isSeq {
		n.repair("Column %q on %q was missing cards; initialized an empty list.", name, boardName)
	}
	cards := make([]Card, 0, len(rawCards))
	for i, rc := range rawCards {
		if c, ok := n.card(rc, i, boardName, name); ok {
			cards = append(cards, c)
		}
	}

	return Column{ID: id, Name: name, Cards: cards}, true
}

func (n *normalizer) card(raw any, index int, boardName, columnName string) (Card, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		n.repair("Removed invalid card at position %d in %q on %q.", index+1, columnName, boardName)
		return Card{}, false
	}

	id := text(m["id"])
	if id == "" {
		id = NewID(KindCard)
		n.repair("Card at position %d in %q on %q had no id; assigned a new one.", index+1, columnName, boardName)
	}
	n.track(id, m["id"])

	title := text(m["title"])
	if title == "" {
		title = "Untitled card"
	}
	n.track(title, m["title"])

	description, isString := m["description"].(string)
	if !isString {
		n.changed = true
	}

	return Card{ID: id, Title: title, Description: description}, true
}

// migrateCards moves cards stored at board level with a columnId back-reference
// into the referenced column, or the first column when the reference is dangling.
func (n *normalizer) migrateCards(raw any, b *Board) {
	rawCards, ok := raw.([]any)
	if !ok {
		n.repair("Dropped malformed board-level cards on %q.", b.Name)
		return
	}

	moved := 0
	for i, rc := range rawCards {
		c, ok := n.card(rc, i, b.Name, "board-level cards")
		if !ok {
			continue
		}
		target := 0
		if m, isMap := rc.(map[string]any); isMap {
			if ci := b.ColumnIndex(text(m["columnId"])); ci >= 0 {
				target = ci
			}
		}
		b.Columns[target].Cards = append(b.Columns[target].Cards, c)
		moved++
	}
	if moved == 0 && len(rawCards) == 0 {
		n.changed = true
		return
	}
	n.repair("Moved %d board-level cards on %q into their columns.", moved, b.Name)
}

// dedupe regenerates column IDs and card IDs that repeat within the board.
func (n *normalizer) dedupe(b *Board) {
	columnIDs := make(map[string]bool, len(b.Columns))
	cardIDs := make(map[string]bool)
	for ci := range b.Columns {
		col := &b.Columns[ci]
		if columnIDs[col.ID] {
			old := col.ID
			col.ID = NewID(KindColumn)
			n.repair("Column %q on %q reused id %q; assigned a new id.", col.Name, b.Name, old)
		}
		columnIDs[col.ID] = true

		for i := range col.Cards {
			card := &col.Cards[i]
			if cardIDs[card.ID] {
				old := card.ID
				card.ID = NewID(KindCard)
				n.repair("Card %q in %q on %q reused id %q; assigned a new id.", card.Title, col.Name, b.Name, old)
			}
			cardIDs[card.ID] = true
		}
	}
}

func (n *normalizer) activeBoard(root map[string]any, doc *Document) {
	requested := text(root["activeBoardId"])
	if requested != "" && doc.BoardIndex(requested) >= 0 {
		doc.ActiveBoardID = requested
		n.track(requested, root["activeBoardId"])
		return
	}
	doc.ActiveBoardID = doc.Boards[0].ID
	n.repair("Active board was missing or invalid; switched to the first available board.")
}

func (n *normalizer) settings(root map[string]any, doc *Document) {
	raw, present := root["settings"]
	if !present {
		return
	}

	m, ok := raw.(map[string]any)
	if !ok {
		n.repair("Settings were malformed; reset to defaults.")
		return
	}
	rawTheme, isString := m["theme"].(string)
	if !isString {
		n.repair("Settings were malformed; reset to defaults.")
		return
	}
	theme, err := ParseTheme(rawTheme)
	if err != nil {
		n.repair("Theme value %q was invalid; reverted to %q.", rawTheme, string(DefaultTheme))
		return
	}
	doc.Settings.Theme = theme
	n.track(string(theme), rawTheme)
}

// text returns the trimmed string value of v, or "" if v is not a string.
func text(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
