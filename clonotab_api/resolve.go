package clonotab_api

import (
	"regexp"
	"strings"
)

var chainPlaceholderRegex = regexp.MustCompile(`\|TR[XY]`)

// The variable name of an lvar, without its ":" qualifier
// "umis:total" and "umis" both resolve to "umis"
func lvarBase(lvar string) string {
	if i := strings.Index(lvar, ":"); i >= 0 {
		return lvar[:i]
	}
	return lvar
}

// Percentages print with two decimals
func isPercent(lvar string) bool {
	return strings.HasSuffix(lvar, "_%")
}

// Replace the chain placeholders left by clonotype construction
func resolveChainPlaceholders(input string) string {
	if !strings.Contains(input, "|TR") {
		return input
	}
	return chainPlaceholderRegex.ReplaceAllStringFunc(input, func(placeholder string) string {
		if placeholder == "|TRX" {
			return "TRB"
		}
		return "TRA"
	})
}

// Resolve the chain placeholders of every cell of the rows
func resolveRows(rows [][]string) {
	for _, row := range rows {
		for i, cell := range row {
			row[i] = resolveChainPlaceholders(cell)
		}
	}
}
