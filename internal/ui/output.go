package ui

import (
	"fmt"
	"io"
)

// OK prints a success line.
func OK(w io.Writer, msg string) {
	t := Current()
	fmt.Fprintln(w, t.Success.Render(t.SymDone+" "+msg))
}

// Fail prints an error line.
func Fail(w io.Writer, msg string) {
	t := Current()
	cross := "✖"
	if t.Name == "mono" {
		cross = "!"
	}
	fmt.Fprintln(w, t.Error.Render(cross+" "+msg))
}

// Note prints a muted hint.
func Note(w io.Writer, msg string) {
	fmt.Fprintln(w, Current().Muted.Render(msg))
}
