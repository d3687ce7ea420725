package printer

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	prevOut, prevErr, prevNoColor := Out, ErrOut, color.NoColor
	Out, ErrOut = &out, &errOut
	color.NoColor = true
	t.Cleanup(func() {
		Out, ErrOut = prevOut, prevErr
		color.NoColor = prevNoColor
	})
	return &out, &errOut
}

func TestError(t *testing.T) {
	t.Run("returns error with title", func(t *testing.T) {
		capture(t)
		err := Error("Test Error", "This is a test error", []string{})
		require.Error(t, err)
		require.Equal(t, "Test Error", err.Error())
	})

	t.Run("single suggestion is printed plainly", func(t *testing.T) {
		_, errOut := capture(t)
		err := Error("Test Error", "Explanation", []string{"Try this fix"})
		require.Equal(t, "Test Error", err.Error())
		assert.Contains(t, errOut.String(), "Try this fix")
		assert.NotContains(t, errOut.String(), "Either:")
	})

	t.Run("multiple suggestions are numbered", func(t *testing.T) {
		_, errOut := capture(t)
		err := Error("Test Error", "Explanation", []string{
			"First option",
			"Second option",
		})
		require.Equal(t, "Test Error", err.Error())
		assert.Contains(t, errOut.String(), "Either:")
		assert.Contains(t, errOut.String(), "2. Second option")
	})
}

func TestErrorWithContext(t *testing.T) {
	t.Run("returns error with title", func(t *testing.T) {
		_, errOut := capture(t)
		context := map[string]string{
			"Profile": "work",
			"Board":   "board-default",
		}
		err := ErrorWithContext("Test Error", "Explanation", context, []string{})
		require.Error(t, err)
		require.Equal(t, "Test Error", err.Error())
		assert.Contains(t, errOut.String(), "Profile: work")
	})

	t.Run("returns error with title when including suggestions", func(t *testing.T) {
		capture(t)
		context := map[string]string{"Key": "Value"}
		err := ErrorWithContext("Test Error", "Explanation", context, []string{"Fix it"})
		require.Error(t, err)
		require.Equal(t, "Test Error", err.Error())
	})
}

func TestDiagnostics(t *testing.T) {
	out, _ := capture(t)

	Diagnostics(nil)
	assert.Empty(t, out.String())

	Diagnostics([]string{"Board \"X\" was missing columns; added defaults."})
	assert.Contains(t, out.String(), "Applied 1 repair(s)")
	assert.Contains(t, out.String(), "  - Board \"X\" was missing columns; added defaults.")
}

func TestStatus(t *testing.T) {
	out, _ := capture(t)
	Status("Import successful.")
	assert.Equal(t, "Import successful.\n", out.String())
}

func TestStatus_Colored(t *testing.T) {
	out, _ := capture(t)
	color.NoColor = false
	Status("Import successful.")
	assert.Contains(t, out.String(), "Import successful.")
	assert.Contains(t, out.String(), "\x1b[")
}
