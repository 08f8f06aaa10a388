package clonotab_api

import (
	"fmt"
	"math"
)

// Format a sum: rounded to an integer, percentages with two decimals
func formatSum(total float64, lvar string) string {
	if isPercent(lvar) {
		return fmt.Sprintf("%.2f", total)
	}
	return fmt.Sprint(int64(math.Round(total)))
}

// Format a mean: one decimal, percentages with two
func formatMean(mean float64, lvar string) string {
	if isPercent(lvar) {
		return fmt.Sprintf("%.2f", mean)
	}
	return fmt.Sprintf("%.1f", mean)
}

// Build an aggregate row labelled label, calling format with the total of every lvar
// Lvars without recorded values stay empty, as do all column slots
func aggregateRow(ctx *renderContext, label string, format func(total float64, lvar string) string) []string {
	row := ctx.blankRow(label)
	for i, lvar := range ctx.in.Lvars {
		total, found := ctx.in.Stats.Total(lvarBase(lvar))
		if found {
			row[1+i] = format(total, lvar)
		}
	}
	return row
}

// The Σ row
func sumRow(ctx *renderContext) []string {
	return aggregateRow(ctx, "Σ", formatSum)
}

// The μ row, dividing by the number of exact subclonotypes
func meanRow(ctx *renderContext) []string {
	n := float64(len(ctx.body))
	return aggregateRow(ctx, "μ", func(total float64, lvar string) string {
		return formatMean(total/n, lvar)
	})
}
