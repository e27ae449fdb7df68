package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
)

var output io.Writer = os.Stdout

// SetOutput redirects console output, for tests.
func SetOutput(w io.Writer) { output = w }

// Inform shows an informational message.
func Inform(msg string) {
	fmt.Fprintln(output, msg)
}

// Informf shows a formatted informational message.
func Informf(format string, args ...any) {
	Inform(fmt.Sprintf(format, args...))
}

// Warn warns the operator. The command keeps going.
func Warn(msg string) {
	fmt.Fprintln(output, warnStyle.Render("WARNING:")+" "+msg)
}

// Warnf warns the operator with a formatted message.
func Warnf(format string, args ...any) {
	Warn(fmt.Sprintf(format, args...))
}

// Fault reports an operator-visible error.
func Fault(msg string, err error) {
	fmt.Fprintln(output, errorStyle.Render("ERROR:")+" "+msg)
	if err != nil {
		fmt.Fprintln(output, "\t"+err.Error())
	}
}

// VSpace prints size blank lines.
func VSpace(size int) {
	if size > 0 {
		fmt.Fprint(output, strings.Repeat("\n", size))
	}
}
