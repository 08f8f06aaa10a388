package clonotab_api

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseableConfig() *Config {
	config := testConfig()
	config.Parseable.Pout = "out.tsv"
	return config
}

func TestFillParseableAllFields(t *testing.T) {
	config := parseableConfig()

	table := FinishTable(config, testInput(config), nil)

	require.Len(t, table.Records, 2)
	assert.Equal(t, ParseableRecord{
		"group_id":              "1",
		"exact_subclonotype_id": "1",
		"ncells":                "2",
		"barcodes":              "AAAC-1,AAAG-1",
		"umis_total":            "4",
		"var1":                  "GAG",
		"cdr3_aa1":              "CARW",
		"var2":                  "GG",
	}, table.Records[0])
	assert.Equal(t, "2", table.Records[1]["exact_subclonotype_id"])
	assert.Equal(t, "CCCA-1", table.Records[1]["barcodes"])
}

func TestFillParseableMeasuringPass(t *testing.T) {
	config := parseableConfig()
	in := testInput(config)
	in.Pass = 1

	table := FinishTable(config, in, nil)

	assert.Nil(t, table.Records)
}

func TestFillParseableWithoutOutput(t *testing.T) {
	config := testConfig()

	table := FinishTable(config, testInput(config), nil)

	assert.Nil(t, table.Records)
}

func TestFillParseableRequestedColumns(t *testing.T) {
	config := parseableConfig()
	config.Parseable.Pcols = []string{"ncells"}
	config.Parseable.Extra = []string{"barcodes"}

	table := FinishTable(config, testInput(config), nil)

	assert.Equal(t, ParseableRecord{"ncells": "2", "barcodes": "AAAC-1,AAAG-1"}, table.Records[0])
}

func TestFillParseableExtraOnly(t *testing.T) {
	config := testConfig()
	config.Parseable.Extra = []string{"var2"}

	table := FinishTable(config, testInput(config), nil)

	assert.Equal(t, ParseableRecord{"var2": "GG"}, table.Records[1])
}

func TestFillParseableSortOrder(t *testing.T) {
	config := parseableConfig()
	in := testInput(config)
	in.Rord = []int{1, 0}
	outData := []ParseableRecord{{"origin": "stored0"}, {"origin": "stored1"}}

	table := FinishTable(config, in, outData)

	assert.Equal(t, "stored1", table.Records[0]["origin"])
	assert.Equal(t, "1", table.Records[0]["exact_subclonotype_id"])
	assert.Equal(t, "2", outData[0]["exact_subclonotype_id"])
}

func TestFillParseableSortOrderMismatch(t *testing.T) {
	config := parseableConfig()
	in := testInput(config)
	in.Rord = []int{0}

	assert.Panics(t, func() { FinishTable(config, in, nil) })
}

func TestWriteParseable(t *testing.T) {
	records := []ParseableRecord{{
		"ncells":                "3",
		"barcodes":              "A,B",
		"exact_subclonotype_id": "2",
		"group_id":              "1",
	}}

	var tsv bytes.Buffer
	require.NoError(t, WriteParseable(&tsv, records, nil, false))
	assert.Equal(t, "group_id\texact_subclonotype_id\tbarcodes\tncells\n1\t2\tA,B\t3\n", tsv.String())

	var csv bytes.Buffer
	require.NoError(t, WriteParseable(&csv, records, nil, true))
	assert.Equal(t, "group_id,exact_subclonotype_id,barcodes,ncells\n1,2,\"A,B\",3\n", csv.String())

	var selected bytes.Buffer
	require.NoError(t, WriteParseable(&selected, records, []string{"ncells", "missing"}, false))
	assert.Equal(t, "ncells\tmissing\n3\t\n", selected.String())
}
