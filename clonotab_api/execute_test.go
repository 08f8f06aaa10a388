package clonotab_api

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cli "github.com/urfave/cli/v2"
)

func testContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range []cli.Flag{
		&cli.StringFlag{Name: "clonotypes"},
		&cli.StringFlag{Name: "output"},
		&cli.BoolFlag{Name: "verbose"},
	} {
		require.NoError(t, f.Apply(set))
	}
	require.NoError(t, set.Parse(args))
	Cctx := cli.NewContext(cli.NewApp(), set, nil)
	Cctx.Context = context.Background()
	return Cctx
}

func executeConfig(t *testing.T, gex string) *Config {
	t.Helper()
	config, err := parseConfig([]byte("print:\n  lvars: [umis]\n  sum: true\n"))
	require.NoError(t, err)
	config.Datasets = []Dataset{{
		Name:    "lib1",
		VdjPath: writeFile(t, "contigs.tsv", "AAAC-1\tIGH\t3\nAAAC-1\tIGK\t2\n"),
		GexPath: writeFile(t, "barcodes.tsv", gex),
	}}
	config.Reference = writeFile(t, "ref.fa", ">IGHV1\nACGTACGTAC\n>IGHJ1\nTTGGCC\n>IGKV1\nGGGAAACCCT\n>IGKJ1\nAACCGG\n")
	return config
}

func TestExecute(t *testing.T) {
	config := executeConfig(t, "AAAC-1\n")
	config.Parseable.Pout = filepath.Join(t.TempDir(), "records.tsv")
	config.Parseable.Pcols = []string{"group_id", "exact_subclonotype_id", "umis", "var1"}
	output := filepath.Join(t.TempDir(), "tables.txt")
	Cctx := testContext(t, "--clonotypes", writeFile(t, "clonotypes.yaml", clonotypeYaml), "--output", output)

	require.NoError(t, Execute(Cctx, config))

	tables, err := os.ReadFile(output)
	require.NoError(t, err)
	rule := strings.Repeat("─", 15) + "─┼─" + strings.Repeat("─", 7) + "─┼─" + strings.Repeat("─", 8)
	assert.Equal(t, "[1] GROUP = 1 exact subclonotypes, 1 cells, chains IGH,IGK\n"+
		"        #  umis │ var IGH │ umis IGK\n"+
		rule+"\n"+
		"reference       │ G       │\n"+
		"consensus       │ G       │\n"+
		rule+"\n"+
		"    diffs       │ .       │\n"+
		"        1     3 │ G       │        3\n"+
		"        Σ     3 │         │\n", string(tables))

	records, err := os.ReadFile(config.Parseable.Pout)
	require.NoError(t, err)
	assert.Equal(t, "group_id\texact_subclonotype_id\tumis\tvar1\n1\t1\t3\tG\n", string(records))
}

func TestExecuteWithoutClonotypes(t *testing.T) {
	config := executeConfig(t, "AAAC-1\n")

	err := Execute(testContext(t), config)

	assert.ErrorContains(t, err, "clonotypes")
}

func TestExecuteWithoutReference(t *testing.T) {
	config := executeConfig(t, "AAAC-1\n")
	config.Reference = ""
	Cctx := testContext(t, "--clonotypes", writeFile(t, "clonotypes.yaml", clonotypeYaml))

	err := Execute(Cctx, config)

	assert.ErrorContains(t, err, "Required field \"reference\" not set")
}

func TestCheck(t *testing.T) {
	err := Check(testContext(t), executeConfig(t, "AAAC-1\n"))
	assert.NoError(t, err)

	// a single tested cell can not be improbable
	err = Check(testContext(t), executeConfig(t, "GGGG-1\n"))
	assert.NoError(t, err)
}
