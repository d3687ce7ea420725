package surface

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dyluth/kanban/internal/transfer"
	"github.com/dyluth/kanban/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_Export(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing stored", func(t *testing.T) {
		client, _ := setupTestClient(t)
		var buf bytes.Buffer

		err := NewOptions(client, nil).Export(ctx, &buf)
		assert.ErrorIs(t, err, ErrNothingToExport)
		assert.Empty(t, buf.String())
	})

	t.Run("writes the stored document", func(t *testing.T) {
		client, _ := setupTestClient(t)
		_, err := client.InitDefault(ctx)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, NewOptions(client, nil).Export(ctx, &buf))
		assert.Contains(t, buf.String(), "\n  \"activeBoardId\": \"board-default\"")
	})
}

func TestOptions_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the document and reports repairs", func(t *testing.T) {
		client, _ := setupTestClient(t)
		_, err := client.InitDefault(ctx)
		require.NoError(t, err)

		file := `{"version":1,"boards":[{"id":"b1","name":"Imported","columns":[{"id":"c1","name":"Only","cards":[42,{"id":"k1","title":"kept"}]}]}],"activeBoardId":"missing"}`
		diagnostics, err := NewOptions(client, nil).Import(ctx, strings.NewReader(file))
		require.NoError(t, err)
		assert.Len(t, diagnostics, 2)

		doc := mustLoad(t, client)
		require.Len(t, doc.Boards, 1)
		assert.Equal(t, "Imported", doc.Boards[0].Name)
		assert.Equal(t, "b1", doc.ActiveBoardID)
		assert.Equal(t, []string{"kept"}, cardTitles(doc.Boards[0].Columns[0]))
	})

	t.Run("round trips an export", func(t *testing.T) {
		client, _ := setupTestClient(t)
		_, err := client.InitDefault(ctx)
		require.NoError(t, err)
		opts := NewOptions(client, nil)

		var buf bytes.Buffer
		require.NoError(t, opts.Export(ctx, &buf))
		diagnostics, err := opts.Import(ctx, &buf)
		require.NoError(t, err)
		assert.Empty(t, diagnostics)
		assert.Equal(t, board.NewDocument(), mustLoad(t, client))
	})

	t.Run("unparseable file is rejected without saving", func(t *testing.T) {
		client, _ := setupTestClient(t)
		original, err := client.InitDefault(ctx)
		require.NoError(t, err)

		_, err = NewOptions(client, nil).Import(ctx, strings.NewReader("<html>"))
		require.Error(t, err)
		assert.True(t, transfer.IsImportError(err))
		assert.Equal(t, original, mustLoad(t, client))
	})
}
