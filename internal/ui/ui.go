// Package ui prints the colored diagnostic lines shown before and
// around a metric run. Report blocks themselves are plain text and do
// not go through this package.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed, color.Bold)

	// Out is swappable for tests.
	Out io.Writer = os.Stderr
)

// Warnf prints a WARNING line.
func Warnf(format string, args ...any) {
	warnColor.Fprintf(Out, "WARNING: "+format+"\n", args...)
}

// Errorf prints an ERROR line.
func Errorf(format string, args ...any) {
	errorColor.Fprintf(Out, "ERROR: "+format+"\n", args...)
}

// Infof prints an uncolored informational line.
func Infof(format string, args ...any) {
	fmt.Fprintf(Out, format+"\n", args...)
}
