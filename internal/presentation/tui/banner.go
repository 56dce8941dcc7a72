package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{"  _ __ ___   ___  _ __ _ __ | |__", "#818cf8"},
	{" | '_ ` _ \\ / _ \\| '__| '_ \\| '_ \\", "#a78bfa"},
	{" | | | | | | (_) | |  | |_) | | | |", "#c084fc"},
	{" |_| |_| |_|\\___/|_|  | .__/|_| |_|", "#e879f9"},
	{"                      |_|", "#f472b6"},
}

// PrintBanner writes the morph ASCII banner to w. Colors are dropped when w
// is not a color-capable terminal.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)

	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, out.String(line.text).Foreground(out.Color(line.color)))
	}
	fmt.Fprintln(w)
}
