package prompt

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dyluth/kanban/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminal_Prompt(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   string
		initial string
		want    string
		wantErr error
	}{
		{"typed answer", "Roadmap\n", "", "Roadmap", nil},
		{"windows line ending", "Roadmap\r\n", "", "Roadmap", nil},
		{"empty answer accepts initial", "\n", "Kanban", "Kanban", nil},
		{"empty answer without initial", "\n", "", "", nil},
		{"last line without newline", "Roadmap", "", "Roadmap", nil},
		{"end of input cancels", "", "Kanban", "", board.ErrCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewTerminal(strings.NewReader(tt.input), &out)

			got, err := p.Prompt(ctx, "Name your Kanban board", tt.initial)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Name your Kanban board")
		})
	}
}

func TestTerminal_PromptSequence(t *testing.T) {
	p := NewTerminal(strings.NewReader("first\nsecond\n"), io.Discard)
	ctx := context.Background()

	a, err := p.Prompt(ctx, "?", "")
	require.NoError(t, err)
	b, err := p.Prompt(ctx, "?", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, []string{a, b})
}

func TestTerminal_PromptContextCancelled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	p := NewTerminal(r, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Prompt(ctx, "?", "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTerminal_PromptAfterCancel(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	p := NewTerminal(r, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Prompt(ctx, "?", "")
	require.ErrorIs(t, err, context.Canceled)

	go func() { _, _ = io.WriteString(w, "Roadmap\n") }()

	got, err := p.Prompt(context.Background(), "?", "")
	require.NoError(t, err)
	assert.Equal(t, "Roadmap", got)
}

func TestTerminal_Confirm(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			p := NewTerminal(strings.NewReader(tt.input), io.Discard)
			got, err := p.Confirm(ctx, "Delete this card?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("assume yes skips input", func(t *testing.T) {
		p := NewTerminal(strings.NewReader(""), io.Discard)
		p.AssumeYes = true
		got, err := p.Confirm(ctx, "Delete this card?")
		require.NoError(t, err)
		assert.True(t, got)
	})
}

func TestStatic(t *testing.T) {
	var p board.Prompter = Static{Answer: "Later", Yes: true}

	got, err := p.Prompt(context.Background(), "Column name?", "")
	require.NoError(t, err)
	assert.Equal(t, "Later", got)

	ok, err := p.Confirm(context.Background(), "Delete this card?")
	require.NoError(t, err)
	assert.True(t, ok)
}
