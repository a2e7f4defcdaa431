package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Prompter reads dialog input. When the source is a real terminal,
// passwords are read masked; otherwise (tests, pipes) they fall back to
// plain lines so scripted input works.
type Prompter struct {
	sc       *bufio.Scanner
	w        io.Writer
	terminal bool
}

func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	p := &Prompter{sc: bufio.NewScanner(r), w: w}
	if f, ok := r.(*os.File); ok {
		p.terminal = term.IsTerminal(int(f.Fd()))
	}
	return p
}

// Prompt prints prefix verbatim and reads one trimmed line. The shell
// loops use it for their "> " prompt.
func (p *Prompter) Prompt(prefix string) (value string, ok bool) {
	fmt.Fprint(p.w, prefix)
	if !p.sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(p.sc.Text()), true
}

// Line prompts for one trimmed line. ok is false when input ended.
func (p *Prompter) Line(label string) (value string, ok bool) {
	fmt.Fprintf(p.w, "%s: ", label)
	if !p.sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(p.sc.Text()), true
}

// LineDefault prompts with a default shown in brackets; an empty answer
// keeps the default. Edit dialogs use it to pre-fill fields.
func (p *Prompter) LineDefault(label, def string) (value string, ok bool) {
	fmt.Fprintf(p.w, "%s [%s]: ", label, def)
	if !p.sc.Scan() {
		return "", false
	}
	text := strings.TrimSpace(p.sc.Text())
	if text == "" {
		return def, true
	}
	return text, true
}

// Int prompts for a number. An unparsable answer is reported and ok is
// false, matching the one-shot dialogs (no retry loop).
func (p *Prompter) Int(label string) (value int, ok bool) {
	text, ok := p.Line(label)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		fmt.Fprintf(p.w, "Invalid number: %s\n", text)
		return 0, false
	}
	return n, true
}

// IntDefault is Int with a pre-filled default.
func (p *Prompter) IntDefault(label string, def int) (value int, ok bool) {
	text, ok := p.LineDefault(label, strconv.Itoa(def))
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		fmt.Fprintf(p.w, "Invalid number: %s\n", text)
		return 0, false
	}
	return n, true
}

// Password reads a masked line on a terminal, a plain line otherwise.
func (p *Prompter) Password(label string) (string, error) {
	fmt.Fprintf(p.w, "%s: ", label)
	if p.terminal {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(p.w)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}
	if !p.sc.Scan() {
		return "", io.EOF
	}
	return strings.TrimSpace(p.sc.Text()), nil
}

// Confirm asks a yes/no question; only "y"/"yes" count as yes.
func (p *Prompter) Confirm(label string) bool {
	text, ok := p.Line(label + " (y/n)")
	if !ok {
		return false
	}
	text = strings.ToLower(text)
	return text == "y" || text == "yes"
}
