package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scripted(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return NewPrompter(strings.NewReader(input), &out), &out
}

func TestLineTrimsInput(t *testing.T) {
	p, _ := scripted("  hello world  \n")
	value, ok := p.Line("Name")
	require.True(t, ok)
	assert.Equal(t, "hello world", value)
}

func TestLineReportsEndOfInput(t *testing.T) {
	p, _ := scripted("")
	_, ok := p.Line("Name")
	assert.False(t, ok)
}

func TestLineDefaultKeepsDefaultOnBlank(t *testing.T) {
	p, out := scripted("\nreplacement\n")
	value, ok := p.LineDefault("Country", "France")
	require.True(t, ok)
	assert.Equal(t, "France", value)
	assert.Contains(t, out.String(), "[France]")

	value, ok = p.LineDefault("Country", "France")
	require.True(t, ok)
	assert.Equal(t, "replacement", value)
}

func TestIntRejectsJunk(t *testing.T) {
	p, out := scripted("abc\n")
	_, ok := p.Int("Age")
	assert.False(t, ok)
	assert.Contains(t, out.String(), "Invalid number")
}

func TestIntDefault(t *testing.T) {
	p, _ := scripted("\n42\n")
	value, ok := p.IntDefault("Age", 7)
	require.True(t, ok)
	assert.Equal(t, 7, value)

	value, ok = p.IntDefault("Age", 7)
	require.True(t, ok)
	assert.Equal(t, 42, value)
}

func TestPasswordFallsBackToPlainLine(t *testing.T) {
	// A strings.Reader is not a terminal, so the masked path is skipped.
	p, _ := scripted("secretpass\n")
	value, err := p.Password("Password")
	require.NoError(t, err)
	assert.Equal(t, "secretpass", value)
}

func TestConfirm(t *testing.T) {
	p, _ := scripted("y\nYES\nn\nwhatever\n")
	assert.True(t, p.Confirm("Delete?"))
	assert.True(t, p.Confirm("Delete?"))
	assert.False(t, p.Confirm("Delete?"))
	assert.False(t, p.Confirm("Delete?"))
}
