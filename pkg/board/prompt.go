package board

import (
	"context"
	"errors"
)

// ErrCancelled is returned by a Prompter when the user dismisses the prompt.
// A cancelled prompt aborts the pending mutation with no save.
var ErrCancelled = errors.New("prompt cancelled")

// Prompter is the suspend point where a surface waits for the user.
// Prompt returns the entered text (possibly empty) or ErrCancelled.
// Confirm returns whether the user accepted; dismissing counts as false.
type Prompter interface {
	Prompt(ctx context.Context, message, initial string) (string, error)
	Confirm(ctx context.Context, message string) (bool, error)
}

// IsCancelled returns true if err is, or wraps, ErrCancelled.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
