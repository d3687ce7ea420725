// Package prompt implements the board.Prompter suspend point on a terminal.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dyluth/kanban/pkg/board"
)

// Terminal reads answers line by line from an input stream.
// End of input dismisses the prompt. Prompts on one Terminal must not run
// concurrently.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer

	// pending holds a read abandoned by a cancelled prompt; the next prompt
	// receives its line instead of starting a second reader.
	pending chan line

	// AssumeYes answers every confirmation with yes without reading input.
	AssumeYes bool
}

// NewTerminal returns a prompter reading from in and writing questions to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

type line struct {
	text string
	err  error
}

// readLine returns the next line without its terminator. A final line without a
// newline is returned normally; io.EOF is only returned when nothing was read.
func (t *Terminal) readLine(ctx context.Context) (string, error) {
	ch := t.pending
	t.pending = nil
	if ch == nil {
		ch = make(chan line, 1)
		go func() {
			text, err := t.in.ReadString('\n')
			if errors.Is(err, io.EOF) && text != "" {
				err = nil
			}
			ch <- line{text: strings.TrimRight(text, "\r\n"), err: err}
		}()
	}

	select {
	case <-ctx.Done():
		t.pending = ch
		return "", ctx.Err()
	case l := <-ch:
		return l.text, l.err
	}
}

// Prompt asks message and returns the answer. An empty answer accepts initial.
// End of input returns board.ErrCancelled.
func (t *Terminal) Prompt(ctx context.Context, message, initial string) (string, error) {
	if initial != "" {
		fmt.Fprintf(t.out, "%s [%s]: ", message, initial)
	} else {
		fmt.Fprintf(t.out, "%s ", message)
	}

	text, err := t.readLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(t.out)
			return "", board.ErrCancelled
		}
		return "", err
	}
	if text == "" {
		return initial, nil
	}
	return text, nil
}

// Confirm asks a yes/no question defaulting to no.
func (t *Terminal) Confirm(ctx context.Context, message string) (bool, error) {
	if t.AssumeYes {
		return true, nil
	}
	fmt.Fprintf(t.out, "%s [y/N]: ", message)

	text, err := t.readLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(t.out)
			return false, nil
		}
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Static answers prompts from fixed values. It is used for non-interactive runs
// where the answer was given on the command line.
type Static struct {
	Answer string
	Yes    bool
}

// Prompt returns the fixed answer.
func (s Static) Prompt(ctx context.Context, message, initial string) (string, error) {
	return s.Answer, nil
}

// Confirm returns the fixed confirmation.
func (s Static) Confirm(ctx context.Context, message string) (bool, error) {
	return s.Yes, nil
}
