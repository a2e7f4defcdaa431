package ui

import (
	"fmt"
	"io"
)

// Notifier is the single surface for user-facing notices. Every page
// reports success and failure through it instead of choosing its own
// style, so the console speaks with one voice.
type Notifier struct {
	w io.Writer
}

func NewNotifier(w io.Writer) *Notifier { return &Notifier{w: w} }

func (n *Notifier) Successf(format string, args ...any) {
	fmt.Fprintf(n.w, format+"\n", args...)
}

func (n *Notifier) Errorf(format string, args ...any) {
	fmt.Fprintf(n.w, "Error: "+format+"\n", args...)
}

func (n *Notifier) Infof(format string, args ...any) {
	fmt.Fprintf(n.w, format+"\n", args...)
}

// Err reports an error through the unified style.
func (n *Notifier) Err(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(n.w, "Error: %v\n", err)
}
