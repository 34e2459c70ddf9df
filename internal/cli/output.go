package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	headerStyle  = color.New(color.FgCyan, color.Bold)
	doneStyle    = color.New(color.FgHiBlack)
	idStyle      = color.New(color.FgMagenta)
	mutedStyle   = color.New(color.FgHiBlack)
	successStyle = color.New(color.FgGreen)
	errorStyle   = color.New(color.FgRed, color.Bold)
)

const (
	checkmark = "✓"
	xmark     = "✗"
)

func ok(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", successStyle.Sprint(checkmark), msg)
}

func fail(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", errorStyle.Sprint(xmark), msg)
}
