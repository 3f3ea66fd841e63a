package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Gestalt banner and version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	// Teal to violet, one shade per line
	lines := []struct{ text, color string }{
		{`   ____           _        _ _   `, "#2dd4bf"},
		{`  / ___| ___  ___| |_ __ _| | |_ `, "#38bdf8"},
		{` | |  _ / _ \/ __| __/ _' | | __|`, "#818cf8"},
		{` | |_| |  __/\__ \ || (_| | | |_ `, "#a78bfa"},
		{`  \____|\___||___/\__\__,_|_|\__|`, "#c084fc"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
