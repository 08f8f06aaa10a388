package clonotab_api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	cli "github.com/urfave/cli/v2"
)

// Load the inputs, check the datasets for consistency and print all clonotype groups
func Execute(Cctx *cli.Context, config *Config) error {
	logger := log.New(os.Stderr, "", 0)

	if Cctx.String("clonotypes") == "" {
		return cli.Exit("Required flag \"clonotypes\" not set", 1)
	}
	if config.Reference == "" {
		return cli.Exit("Required field \"reference\" not set in the config file", 1)
	}
	if err := LoadDatasets(config); err != nil {
		return cli.Exit(fmt.Sprintf("Failed to load the datasets: %v", err), 1)
	}
	clonotypes, err := ReadClonotypes(Cctx.String("clonotypes"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to read the clonotypes: %v", err), 1)
	}
	refdata, err := ReadReference(config.Reference)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to read the reference: %v", err), 1)
	}
	dref := []DonorReferenceItem{}
	if config.DonorReference != "" {
		if dref, err = ReadDonorReference(config.DonorReference); err != nil {
			return cli.Exit(fmt.Sprintf("Failed to read the donor reference: %v", err), 1)
		}
	}

	if err := checkConsistency(Cctx, config, clonotypes.ExactClonotypes); err != nil {
		return err
	}

	output := io.Writer(os.Stdout)
	if Cctx.String("output") != "" {
		outputFile, err := os.Create(Cctx.String("output"))
		if err != nil {
			logger.Fatalf("Failed to create the output file: %v", err)
		}
		defer outputFile.Close()
		output = outputFile
	}

	records := []ParseableRecord{}
	for pass := 1; pass <= 2; pass++ {
		nrows := 0
		for gi := range clonotypes.Groups {
			in := clonotypes.Groups[gi].tableInput(gi, config, clonotypes.ExactClonotypes, refdata, dref, pass)
			table := FinishTable(config, in, nil)
			if pass == 1 {
				nrows += len(table.Rows)
				continue
			}
			writeLine(table.Text, output)
			if table.Phylogeny != "" {
				writeLine(table.Phylogeny, output)
			}
			records = append(records, table.Records...)
		}
		if pass == 1 && Cctx.Bool("verbose") {
			logger.Printf("%d clonotype groups, %d table rows", len(clonotypes.Groups), nrows)
		}
	}

	if config.Parseable.Pout != "" {
		return writeParseableOutput(config.Parseable, records)
	}
	return nil
}

// Run only the consistency check
func Check(Cctx *cli.Context, config *Config) error {
	if err := LoadDatasets(config); err != nil {
		return cli.Exit(fmt.Sprintf("Failed to load the datasets: %v", err), 1)
	}
	exacts := []ExactClonotype{}
	if Cctx.String("clonotypes") != "" {
		clonotypes, err := ReadClonotypes(Cctx.String("clonotypes"))
		if err != nil {
			return cli.Exit(fmt.Sprintf("Failed to read the clonotypes: %v", err), 1)
		}
		exacts = clonotypes.ExactClonotypes
	}
	return checkConsistency(Cctx, config, exacts)
}

func checkConsistency(Cctx *cli.Context, config *Config, exacts []ExactClonotype) error {
	logger := log.New(os.Stderr, "", 0)
	tinc := time.Now()
	results, err := CheckVdjGexConsistency(Cctx.Context, config.Datasets, exacts, config.AllowInconsistent)
	var inconsistent *InconsistencyError
	if errors.As(err, &inconsistent) {
		return cli.Exit(inconsistent.Error(), 1)
	} else if err != nil {
		return err
	}
	if Cctx.Bool("verbose") {
		for _, res := range results {
			if res.Tested {
				logger.Printf("%s: %d of %d tested VDJ cells are GEX cells (P = %.3g)",
					config.Datasets[res.DatasetIndex].Name, res.Good, res.Total, res.Probability)
			}
		}
		logger.Printf("%.2f seconds used testing for inconsistency", time.Since(tinc).Seconds())
	}
	return nil
}

// Write the parseable records to stdout or a file
func writeParseableOutput(cfg ParseableConfig, records []ParseableRecord) error {
	if cfg.Pout == "stdout" {
		return WriteParseable(os.Stdout, records, cfg.Pcols, false)
	}
	file, err := os.Create(cfg.Pout)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to create the parseable output file: %v", err), 1)
	}
	defer file.Close()
	return WriteParseable(file, records, cfg.Pcols, strings.HasSuffix(cfg.Pout, ".csv"))
}

// Assemble the table input of a group
func (group *Group) tableInput(gi int, config *Config, exacts []ExactClonotype, refdata *RefData, dref []DonorReferenceItem, pass int) *TableInput {
	return &TableInput{
		GroupIndex:      gi,
		Exacts:          group.Exacts,
		ExactClonotypes: exacts,
		ColInfo:         &group.ColInfo,
		Vars:            group.Vars,
		ShowAA:          group.ShowAA,
		FieldTypes:      group.FieldTypes,
		Lvars:           config.Print.Lvars,
		RefData:         refdata,
		Dref:            dref,
		Rows:            group.Rows,
		Stats:           statsFromRows(config.Print.Lvars, group.Rows),
		Rord:            group.Rord,
		Pass:            pass,
	}
}

// Write a line to the output
func writeLine(line string, w io.Writer) {
	fmt.Fprintln(w, strings.TrimRight(line, "\n"))
}
