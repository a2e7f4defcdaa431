package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exactlyten", Truncate("exactlyten", 10))
	assert.Equal(t, "this is...", Truncate("this is a long title", 10))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
}

func TestYesNo(t *testing.T) {
	assert.Equal(t, "Yes", YesNo(true))
	assert.Equal(t, "No", YesNo(false))
}

func TestTableRendersFixedWidthRows(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf,
		Column{Header: "ID", Width: 3},
		Column{Header: "Title", Width: 10},
	)
	table.Header()
	table.Row("1", "a very long book title")
	table.Row("2", "short")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ID  Title", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "---"))
	assert.Equal(t, "1   a very ...", lines[2])
	assert.Equal(t, "2   short", lines[3])
}
