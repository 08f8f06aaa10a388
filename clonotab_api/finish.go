package clonotab_api

import (
	"fmt"
	"strings"
)

// Everything one clonotype group table is built from
type TableInput struct {
	// The index of the group, used in the header text
	GroupIndex int

	// The indices of the exact subclonotypes of the group in display order
	Exacts []int

	// All exact subclonotypes, indexed by Exacts
	ExactClonotypes []ExactClonotype

	// The column layout of the group
	ColInfo *ColInfo

	// The displayed positions of each column
	Vars [][]int

	// The codon start positions shown as amino acids, per column
	ShowAA [][]int

	// One field type tag per displayed position, per column
	FieldTypes []string

	// The row-level variables to display
	Lvars []string

	// The universal reference
	RefData *RefData

	// The donor reference alleles
	Dref []DonorReferenceItem

	// The upstream values, one per exact subclonotype in display order
	Rows []RowData

	// The row values per variable, for the sum and mean rows
	Stats VariableStats

	// Maps display order to the storage order of the parseable records
	// The identity order is used when empty
	Rord []int

	// 1 measures, 2 emits
	Pass int
}

// A finished clonotype table
type Table struct {
	// All rows, the header first
	Rows [][]string

	// One code per header cell, '|' before every chain column
	Justify []byte

	// The header text and the rendered table
	Text string

	// The phylogeny inferences, empty unless requested
	Phylogeny string

	// One record per exact subclonotype in display order, pass 2 only
	Records []ParseableRecord
}

// The mutable state shared by the stages building one table
// Stages append rows; reference rows are the only ones inserted, at refInsert
type renderContext struct {
	in     *TableInput
	config *Config

	row1    []string
	justify []byte
	rows    [][]string

	// The main row and sub-rows of each exact subclonotype
	body [][][]string

	// Diff rows waiting to be filled in by buildDiffRow
	drows [][]string

	refInsert int

	mlog strings.Builder
	logz strings.Builder
}

// Number of cells of every row
func (ctx *renderContext) width() int {
	return 1 + len(ctx.in.Lvars) + ctx.in.ColInfo.Width()
}

// A row with a label and empty cells
func (ctx *renderContext) blankRow(label string) []string {
	row := make([]string, ctx.width())
	row[0] = label
	return row
}

func (ctx *renderContext) checkRow(row []string, what string) {
	if len(row) != ctx.width() {
		panic(fmt.Sprintf("%s row has %d cells, the header has %d", what, len(row), ctx.width()))
	}
}

func (ctx *renderContext) appendRow(row []string) {
	ctx.checkRow(row, row[0])
	ctx.rows = append(ctx.rows, row)
}

// Insert rows at the reference insertion point, right after the header
// and any rows inserted there before
func (ctx *renderContext) insertRows(rows ...[]string) {
	for _, row := range rows {
		ctx.checkRow(row, row[0])
	}
	tail := append([][]string{}, ctx.rows[ctx.refInsert:]...)
	ctx.rows = append(append(ctx.rows[:ctx.refInsert], rows...), tail...)
	ctx.refInsert += len(rows)
}

// Build the table of one clonotype group
// outData holds records in storage order filled by earlier stages, it may be nil
func FinishTable(config *Config, in *TableInput, outData []ParseableRecord) *Table {
	ctx := &renderContext{in: in, config: config}

	addHeaderText(ctx)

	buildTableStuff(ctx)
	ctx.rows = [][]string{ctx.row1}
	ctx.refInsert = 1

	insertReferenceRows(ctx)
	insertConsensusRow(ctx)

	if len(ctx.drows) > 0 {
		hline := make([]string, ctx.width())
		for i := range hline {
			hline[i] = hlineCell
		}
		ctx.rows = append(ctx.rows, hline)
	}
	buildDiffRow(ctx)

	for j, group := range ctx.body {
		group[0][0] = fmt.Sprint(j + 1)
		for _, row := range group {
			ctx.appendRow(row)
		}
	}

	records := fillParseable(ctx, outData)

	if config.Print.Sum {
		ctx.appendRow(sumRow(ctx))
	}
	if config.Print.Mean {
		ctx.appendRow(meanRow(ctx))
	}

	resolveRows(ctx.rows)
	ctx.mlog.WriteString(makeTable(ctx.rows, ctx.justify))

	if config.Print.Toy && in.Pass == 2 {
		addPhylogeny(ctx)
	}

	return &Table{
		Rows:      ctx.rows,
		Justify:   ctx.justify,
		Text:      ctx.mlog.String(),
		Phylogeny: ctx.logz.String(),
		Records:   records,
	}
}

// Write the group summary line above the table
func addHeaderText(ctx *renderContext) {
	in := ctx.in
	cells := 0
	for _, u := range in.Exacts {
		cells += in.ExactClonotypes[u].NCells()
	}
	chains := make([]string, 0, in.ColInfo.Cols())
	for col := 0; col < in.ColInfo.Cols(); col++ {
		chains = append(chains, chainLabel(in, col))
	}
	fmt.Fprintf(&ctx.mlog, "[%d] GROUP = %d exact subclonotypes, %d cells, chains %s\n",
		in.GroupIndex+1, len(in.Exacts), cells, strings.Join(chains, ","))
}
