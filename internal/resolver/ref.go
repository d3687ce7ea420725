package resolver

import (
	"fmt"
	"strings"

	"github.com/dyluth/kanban/pkg/board"
)

// MinShortIDLength is the minimum required length for short ID prefixes.
// Set to 6 characters to balance usability with collision avoidance.
const MinShortIDLength = 6

// candidate is one addressable entity: its id and its display name.
type candidate struct {
	id   string
	name string
}

// resolve maps a user reference to exactly one candidate id.
//
// The reference is tried in order as:
//  1. an exact id
//  2. a case-insensitive name (must be unique)
//  3. an id prefix of at least MinShortIDLength characters (must be unique)
func resolve(kind, ref string, candidates []candidate) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", &NotFoundError{Kind: kind, Ref: ref}
	}

	for _, c := range candidates {
		if c.id == ref {
			return c.id, nil
		}
	}

	var named []string
	for _, c := range candidates {
		if strings.EqualFold(c.name, ref) {
			named = append(named, c.id)
		}
	}
	switch len(named) {
	case 0:
	case 1:
		return named[0], nil
	default:
		return "", &AmbiguousError{Kind: kind, Ref: ref, Matches: named}
	}

	if len(ref) < MinShortIDLength {
		return "", &NotFoundError{Kind: kind, Ref: ref}
	}

	var matches []string
	for _, c := range candidates {
		if strings.HasPrefix(c.id, ref) {
			matches = append(matches, c.id)
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{Kind: kind, Ref: ref}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousError{Kind: kind, Ref: ref, Matches: matches}
	}
}

// Board resolves ref to a board id in doc.
func Board(doc *board.Document, ref string) (string, error) {
	cs := make([]candidate, len(doc.Boards))
	for i, b := range doc.Boards {
		cs[i] = candidate{id: b.ID, name: b.Name}
	}
	return resolve("board", ref, cs)
}

// Column resolves ref to a column id on b.
func Column(b *board.Board, ref string) (string, error) {
	cs := make([]candidate, len(b.Columns))
	for i, c := range b.Columns {
		cs[i] = candidate{id: c.ID, name: c.Name}
	}
	return resolve("column", ref, cs)
}

// Card resolves ref to a card id on b. Cards are matched by id or title.
func Card(b *board.Board, ref string) (string, error) {
	var cs []candidate
	for _, col := range b.Columns {
		for _, c := range col.Cards {
			cs = append(cs, candidate{id: c.ID, name: c.Title})
		}
	}
	return resolve("card", ref, cs)
}

// NotFoundError indicates nothing matched the reference.
type NotFoundError struct {
	Kind string
	Ref  string
}

func (e *NotFoundError) Error() string {
	if len(e.Ref) > 0 && len(e.Ref) < MinShortIDLength {
		return fmt.Sprintf("no %s found matching '%s' (short IDs must be at least %d characters)", e.Kind, e.Ref, MinShortIDLength)
	}
	return fmt.Sprintf("no %s found matching '%s'", e.Kind, e.Ref)
}

// AmbiguousError indicates multiple entities matched the reference.
type AmbiguousError struct {
	Kind    string
	Ref     string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous %s '%s' matches %d entries", e.Kind, e.Ref, len(e.Matches))
}

// FormatAmbiguousError creates a user-friendly error message for ambiguous references.
// Lists all matching ids (up to 10, then "...and N more").
func FormatAmbiguousError(err *AmbiguousError) string {
	msg := fmt.Sprintf("Error: ambiguous %s '%s' matches %d entries:\n", err.Kind, err.Ref, len(err.Matches))

	displayCount := min(len(err.Matches), 10)
	for i := 0; i < displayCount; i++ {
		msg += fmt.Sprintf("  %s\n", err.Matches[i])
	}

	if len(err.Matches) > 10 {
		msg += fmt.Sprintf("  ...and %d more\n", len(err.Matches)-10)
	}

	msg += "\nUse the full id or a longer prefix."
	return msg
}

// IsNotFoundError checks if an error is a NotFoundError.
func IsNotFoundError(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// IsAmbiguousError checks if an error is an AmbiguousError.
func IsAmbiguousError(err error) bool {
	_, ok := err.(*AmbiguousError)
	return ok
}
