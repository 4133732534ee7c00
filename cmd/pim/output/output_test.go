package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Out
	Out = &buf
	t.Cleanup(func() { Out = prev })
	return &buf
}

func TestTable_AlignsColumns(t *testing.T) {
	buf := capture(t)

	require.NoError(t, Table([]string{"ID", "NAME"}, [][]string{
		{"1", "Books"},
		{"200", "Comics"},
	}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Index(lines[1], "Books"), strings.Index(lines[2], "Comics"))
}

func TestJSON_Indents(t *testing.T) {
	buf := capture(t)

	require.NoError(t, JSON(map[string]int{"id": 1}))
	assert.Equal(t, "{\n  \"id\": 1\n}\n", buf.String())
}

func TestMessages(t *testing.T) {
	buf := capture(t)

	Success("saved %d", 1)
	Error("failed %s", "x")
	Muted("page %d", 2)

	out := buf.String()
	assert.Contains(t, out, "saved 1")
	assert.Contains(t, out, "failed x")
	assert.Contains(t, out, "page 2")
}
