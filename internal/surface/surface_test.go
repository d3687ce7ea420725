package surface

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/dyluth/kanban/pkg/board"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// setupTestClient creates a test client connected to a miniredis instance
func setupTestClient(t *testing.T) (*board.Client, *miniredis.Miniredis) {
	mr := miniredis.NewMiniRedis()
	err := mr.Start()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := board.NewClient(&redis.Options{Addr: mr.Addr()}, "test-profile")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client, mr
}

// scripted is a Prompter that replays fixed answers and records the questions.
// A nil answer dismisses the prompt.
type scripted struct {
	answers  []*string
	confirms []bool
	asked    []string
}

func answer(s string) *string { return &s }

func (p *scripted) Prompt(ctx context.Context, message, initial string) (string, error) {
	p.asked = append(p.asked, message+"|"+initial)
	if len(p.answers) == 0 {
		return "", board.ErrCancelled
	}
	next := p.answers[0]
	p.answers = p.answers[1:]
	if next == nil {
		return "", board.ErrCancelled
	}
	return *next, nil
}

func (p *scripted) Confirm(ctx context.Context, message string) (bool, error) {
	p.asked = append(p.asked, message)
	if len(p.confirms) == 0 {
		return false, nil
	}
	next := p.confirms[0]
	p.confirms = p.confirms[1:]
	return next, nil
}

func mustLoad(t *testing.T, client *board.Client) *board.Document {
	t.Helper()
	doc, err := client.Load(context.Background())
	require.NoError(t, err)
	return doc
}

func cardTitles(col board.Column) []string {
	titles := make([]string, len(col.Cards))
	for i, c := range col.Cards {
		titles[i] = c.Title
	}
	return titles
}
