package clonotab_api

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

func isHline(row []string) bool {
	for _, cell := range row {
		if cell != hlineCell {
			return false
		}
	}
	return len(row) > 0
}

// Lay out rows as aligned text
// justify holds one 'l' or 'r' per cell, a '|' before a cell puts a column
// separator in front of it. Row 0 is the header and is followed by a rule
func makeTable(rows [][]string, justify []byte) string {
	codes := []byte{}
	separated := []bool{}
	pendingSep := false
	for _, code := range justify {
		if code == '|' {
			pendingSep = true
			continue
		}
		codes = append(codes, code)
		separated = append(separated, pendingSep)
		pendingSep = false
	}

	ncols := len(codes)
	widths := make([]int, ncols)
	for r, row := range rows {
		if len(row) != ncols {
			panic(fmt.Sprintf("row %d has %d cells, the justification describes %d", r, len(row), ncols))
		}
		if isHline(row) {
			continue
		}
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	rule := func() string {
		var line strings.Builder
		for i := 0; i < ncols; i++ {
			if i > 0 {
				if separated[i] {
					line.WriteString("─┼─")
				} else {
					line.WriteString("──")
				}
			}
			line.WriteString(strings.Repeat("─", widths[i]))
		}
		return line.String()
	}

	var out strings.Builder
	for r, row := range rows {
		if isHline(row) {
			out.WriteString(rule())
			out.WriteByte('\n')
			continue
		}
		var line strings.Builder
		for i, cell := range row {
			if i > 0 {
				if separated[i] {
					line.WriteString(" │ ")
				} else {
					line.WriteString("  ")
				}
			}
			if codes[i] == 'r' {
				line.WriteString(runewidth.FillLeft(cell, widths[i]))
			} else {
				line.WriteString(runewidth.FillRight(cell, widths[i]))
			}
		}
		out.WriteString(strings.TrimRight(line.String(), " "))
		out.WriteByte('\n')
		if r == 0 {
			out.WriteString(rule())
			out.WriteByte('\n')
		}
	}
	return out.String()
}
