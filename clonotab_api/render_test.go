package clonotab_api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeTableSeparatedColumns(t *testing.T) {
	rows := [][]string{{"#", "a"}, {"1", "xyz"}}

	text := makeTable(rows, []byte("r|l"))

	assert.Equal(t, "# │ a\n──┼────\n1 │ xyz\n", text)
}

func TestMakeTableRightJustified(t *testing.T) {
	rows := [][]string{{"n", "count"}, {"1", "7"}}

	text := makeTable(rows, []byte("lr"))

	assert.Equal(t, "n  count\n────────\n1      7\n", text)
}

func TestMakeTableHline(t *testing.T) {
	rows := [][]string{{"h", "x"}, {hlineCell, hlineCell}, {"1", "2"}}

	text := makeTable(rows, []byte("rr"))

	assert.Equal(t, "h  x\n────\n────\n1  2\n", text)
}

func TestMakeTableWideCharacters(t *testing.T) {
	rows := [][]string{{"#", "v"}, {"Σ", "10"}}

	text := makeTable(rows, []byte("lr"))

	assert.Equal(t, "#   v\n─────\nΣ  10\n", text)
}

func TestMakeTableRowMismatch(t *testing.T) {
	assert.Panics(t, func() { makeTable([][]string{{"#", "a"}, {"1"}}, []byte("rr")) })
}
