package transfer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dyluth/kanban/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, board.NewDocument()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "{\n  \"version\": 1,\n"), out)
	assert.True(t, strings.HasSuffix(out, "}\n"))
	assert.Contains(t, out, "\n    {\n      \"id\": \"board-default\"")

	assert.Error(t, Export(&buf, nil))
}

func TestExportImportRoundTrip(t *testing.T) {
	doc := board.SetTheme(board.NewDocument(), board.ThemeLight)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, doc))

	res, err := ImportFrom(&buf)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, doc, res.Document)
}

func TestImport(t *testing.T) {
	t.Run("repairs are reported", func(t *testing.T) {
		res, err := Import([]byte(`{"version":1,"boards":[{"id":"b1","name":"X","columns":[]}],"activeBoardId":"b1"}`))
		require.NoError(t, err)
		assert.True(t, res.Changed)
		require.NotEmpty(t, res.Diagnostics)
		assert.Contains(t, strings.Join(res.Diagnostics, "\n"), `"X"`)
		assert.Len(t, res.Document.Boards[0].Columns, 3)
	})

	t.Run("valid JSON of the wrong shape is replaced", func(t *testing.T) {
		res, err := Import([]byte(`[1, 2, 3]`))
		require.NoError(t, err)
		assert.True(t, res.Changed)
		assert.Equal(t, board.NewDocument(), res.Document)
	})

	t.Run("not JSON is rejected", func(t *testing.T) {
		_, err := Import([]byte(`{"boards": [`))
		require.Error(t, err)
		assert.True(t, IsImportError(err))
	})

	t.Run("empty file is rejected", func(t *testing.T) {
		_, err := Import([]byte("  \n"))
		assert.True(t, errors.Is(err, ErrEmptyFile))
		assert.True(t, IsImportError(err))
	})
}
