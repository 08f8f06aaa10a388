package clonotab_api

import (
	"math"
	"strconv"
)

// The values one variable took on the rows of a table
type VariableStat struct {
	// The variable name, without qualifier
	Name string

	// The value of each row, in row order
	// Values that do not parse as finite numbers are kept but ignored when summing
	Values []string
}

// Per variable row values, kept in insertion order
// The same name may occur more than once, all occurrences count
type VariableStats []VariableStat

// Append a value to the first entry with this name, creating it when needed
func (stats *VariableStats) Add(name string, value string) {
	for i := range *stats {
		if (*stats)[i].Name == name {
			(*stats)[i].Values = append((*stats)[i].Values, value)
			return
		}
	}
	*stats = append(*stats, VariableStat{Name: name, Values: []string{value}})
}

// Append a new entry, also when the name is already present
func (stats *VariableStats) Push(name string, values []string) {
	*stats = append(*stats, VariableStat{Name: name, Values: values})
}

// Sum of all numeric values recorded under name
// found is false when no entry has this name
func (stats VariableStats) Total(name string) (total float64, found bool) {
	for _, stat := range stats {
		if stat.Name != name {
			continue
		}
		found = true
		for _, value := range stat.Values {
			if x, err := strconv.ParseFloat(value, 64); err == nil && !math.IsNaN(x) && !math.IsInf(x, 0) {
				total += x
			}
		}
	}
	return total, found
}

// Collect the lvar values of the rows of a group
func statsFromRows(lvars []string, rows []RowData) VariableStats {
	stats := VariableStats{}
	for _, row := range rows {
		for i, lvar := range lvars {
			if i >= len(row.Lvals) {
				break
			}
			stats.Add(lvarBase(lvar), row.Lvals[i])
		}
	}
	return stats
}
