package clonotab_api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowLabels(rows [][]string) []string {
	labels := []string{}
	for _, row := range rows {
		labels = append(labels, row[0])
	}
	return labels
}

func TestFinishTableSumAndMean(t *testing.T) {
	config := testConfig()
	config.Print.Sum = true
	config.Print.Mean = true

	table := FinishTable(config, testInput(config), nil)

	require.Len(t, table.Rows, 9)
	assert.Equal(t, []string{"#", "reference", "consensus", hlineCell, "diffs", "1", "2", "Σ", "μ"}, rowLabels(table.Rows))
	assert.Equal(t, []string{"Σ", "10", "", "", ""}, table.Rows[7])
	assert.Equal(t, []string{"μ", "5.0", "", "", ""}, table.Rows[8])
}

func TestFinishTableRowWidths(t *testing.T) {
	config := testConfig()
	config.Print.Sum = true
	config.Print.Mean = true
	in := testInput(config)

	table := FinishTable(config, in, nil)

	width := 1 + len(in.Lvars) + len(in.ColInfo.Cvars[0]) + len(in.ColInfo.Cvars[1])
	assert.Equal(t, []string{"#", "umis_total", "var IGH", "cdr3_aa", "var IGK"}, table.Rows[0])
	for i, row := range table.Rows {
		assert.Len(t, row, width, "row %d", i)
	}
	assert.Equal(t, []byte{'r', 'r', '|', 'l', 'l', '|', 'l'}, table.Justify)
}

func TestFinishTableReferenceConsensusAndDiff(t *testing.T) {
	config := testConfig()
	table := FinishTable(config, testInput(config), nil)

	assert.Equal(t, []string{"reference", "", "G-G", "", "GG"}, table.Rows[1])
	assert.Equal(t, []string{"consensus", "", "RAG", "", "GG"}, table.Rows[2])
	assert.Equal(t, []string{"diffs", "", "xC.", "", ".."}, table.Rows[4])
	assert.Equal(t, []string{"1", "4", "GAG", "CARW", "GG"}, table.Rows[5])
	assert.Equal(t, []string{"2", "6", "AAG", "CARF", "GG"}, table.Rows[6])
}

func TestFinishTableDonorReferenceRow(t *testing.T) {
	config := testConfig()
	in := testInput(config)
	in.Dref = []DonorReferenceItem{{VRefID: 0, Donor: "d1", NtSequence: []byte("ACATACGTAC")}}
	in.ColInfo.Vpids = []int{0, NoShare}

	table := FinishTable(config, in, nil)

	assert.Equal(t, []string{"#", "reference", "donor ref", "consensus"}, rowLabels(table.Rows)[:4])
	assert.Equal(t, []string{"donor ref", "", "A-G", "", "GG"}, table.Rows[2])
}

func TestFinishTableDonorMatchingUniversal(t *testing.T) {
	config := testConfig()
	in := testInput(config)
	in.Dref = []DonorReferenceItem{{VRefID: 0, NtSequence: []byte("ACGTACGTAC")}}
	in.ColInfo.Vpids = []int{0, NoShare}

	table := FinishTable(config, in, nil)

	assert.NotContains(t, rowLabels(table.Rows), "donor ref")
}

func TestFinishTableWithoutSequenceColumns(t *testing.T) {
	config := testConfig()
	in := testInput(config)
	in.ColInfo.Cvars = [][]string{{"umis"}, {"ncells"}}
	for i := range in.Rows {
		in.Rows[i].Cvals = nil
	}

	table := FinishTable(config, in, nil)

	assert.Equal(t, []string{"#", "1", "2"}, rowLabels(table.Rows))
	assert.Equal(t, []string{"1", "4", "4", "2"}, table.Rows[1])
	assert.Equal(t, []string{"2", "6", "5", "1"}, table.Rows[2])
}

func TestFinishTableSubRows(t *testing.T) {
	config := testConfig()
	in := testInput(config)
	in.Rows[0].SubRows = [][]string{{"", "", "|TRX", "", ""}}

	table := FinishTable(config, in, nil)

	assert.Equal(t, []string{"", "", "TRB", "", ""}, table.Rows[6])
	assert.Equal(t, "2", table.Rows[7][0])
}

func TestFinishTableIsIdempotent(t *testing.T) {
	config := testConfig()
	config.Print.Sum = true
	config.Print.Toy = true

	first := FinishTable(config, testInput(config), nil)
	second := FinishTable(config, testInput(config), nil)

	assert.Equal(t, first.Rows, second.Rows)
	assert.Equal(t, first.Justify, second.Justify)
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, first.Phylogeny, second.Phylogeny)
}

func TestFinishTableHeaderText(t *testing.T) {
	config := testConfig()
	in := testInput(config)
	in.GroupIndex = 2

	table := FinishTable(config, in, nil)

	assert.Contains(t, table.Text, "[3] GROUP = 2 exact subclonotypes, 3 cells, chains IGH,IGK\n")
}

func TestFinishTableContractViolations(t *testing.T) {
	config := testConfig()

	ragged := testInput(config)
	ragged.ColInfo.Mat[1] = []int{1}
	assert.Panics(t, func() { FinishTable(config, ragged, nil) })

	missingLvals := testInput(config)
	missingLvals.Rows[1].Lvals = nil
	assert.Panics(t, func() { FinishTable(config, missingLvals, nil) })

	badSubRow := testInput(config)
	badSubRow.Rows[0].SubRows = [][]string{{"too", "short"}}
	assert.Panics(t, func() { FinishTable(config, badSubRow, nil) })

	missingRef := testInput(config)
	missingRef.RefData = &RefData{}
	assert.Panics(t, func() { FinishTable(config, missingRef, nil) })
}

func TestFinishTableAbsentChain(t *testing.T) {
	config := testConfig()
	in := testInput(config)
	in.ColInfo.Mat[1] = []int{1, NoShare}

	table := FinishTable(config, in, nil)

	assert.Equal(t, []string{"2", "6", "AAG", "CARF", ""}, table.Rows[6])
	assert.Equal(t, "GG", table.Rows[2][4])
}
