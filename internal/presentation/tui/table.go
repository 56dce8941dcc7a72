package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/morph/pkg/value"
)

// ResultTable renders a transform pass as a markdown table, one row per key
// in sorted order.
func ResultTable(in, out value.Map) string {
	var b strings.Builder
	b.WriteString("| Key | Kind | Input | Output |\n")
	b.WriteString("|---|---|---|---|\n")

	for _, key := range out.Keys() {
		before, ok := in[key]
		kind, input := "-", "-"
		if ok {
			kind, input = before.Kind().String(), before.String()
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			cell(key), kind, cell(input), cell(out[key].String()))
	}
	return b.String()
}

func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
