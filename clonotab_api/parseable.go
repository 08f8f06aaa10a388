package clonotab_api

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/carbocation/pfx"
)

// Field name to value, one record per exact subclonotype
type ParseableRecord map[string]string

// Decides which parseable fields are collected
// Nothing is collected in the measuring pass or when no output is requested
type parseableGate struct {
	active  bool
	all     bool
	allowed map[string]bool
}

func newParseableGate(cfg ParseableConfig, pass int) parseableGate {
	gate := parseableGate{
		active:  pass == 2 && (cfg.Pout != "" || len(cfg.Extra) > 0),
		all:     cfg.Pout != "" && len(cfg.Pcols) == 0,
		allowed: map[string]bool{},
	}
	for _, name := range cfg.Pcols {
		gate.allowed[name] = true
	}
	for _, name := range cfg.Extra {
		gate.allowed[name] = true
	}
	return gate
}

// Store value under name when the field is requested
func (gate parseableGate) speak(record ParseableRecord, name string, value string) {
	if !gate.active {
		return
	}
	if gate.all || gate.allowed[name] {
		record[name] = value
	}
}

// Collect the parseable fields of every exact subclonotype and reorder the
// records from storage order to display order
func fillParseable(ctx *renderContext, outData []ParseableRecord) []ParseableRecord {
	in := ctx.in
	gate := newParseableGate(ctx.config.Parseable, in.Pass)
	if !gate.active {
		return nil
	}
	nexacts := len(in.Exacts)
	rord := in.Rord
	if len(rord) == 0 {
		rord = make([]int, nexacts)
		for u := range rord {
			rord[u] = u
		}
	}
	if len(rord) != nexacts {
		panic(fmt.Sprintf("sort order has %d entries for %d exact subclonotypes", len(rord), nexacts))
	}
	for len(outData) < nexacts {
		outData = append(outData, ParseableRecord{})
	}

	for u := 0; u < nexacts; u++ {
		record := outData[rord[u]]
		if record == nil {
			record = ParseableRecord{}
			outData[rord[u]] = record
		}
		ex := &in.ExactClonotypes[in.Exacts[u]]
		gate.speak(record, "group_id", fmt.Sprint(in.GroupIndex+1))
		gate.speak(record, "exact_subclonotype_id", fmt.Sprint(u+1))
		gate.speak(record, "ncells", fmt.Sprint(ex.NCells()))
		barcodes := make([]string, 0, len(ex.Clones))
		for _, cell := range ex.Clones {
			barcodes = append(barcodes, cell.Barcode)
		}
		gate.speak(record, "barcodes", strings.Join(barcodes, ","))

		mainRow := ctx.body[u][0]
		for i, lvar := range in.Lvars {
			gate.speak(record, lvar, mainRow[1+i])
		}
		i := 1 + len(in.Lvars)
		for col, cvars := range in.ColInfo.Cvars {
			for _, cvar := range cvars {
				gate.speak(record, fmt.Sprintf("%s%d", cvar, col+1), resolveChainPlaceholders(mainRow[i]))
				i++
			}
		}
	}

	records := make([]ParseableRecord, nexacts)
	for v := 0; v < nexacts; v++ {
		records[v] = outData[rord[v]]
	}
	return records
}

// The output columns: the requested ones, or every collected field with the ids first
func parseableColumns(records []ParseableRecord, pcols []string) []string {
	if len(pcols) > 0 {
		return pcols
	}
	seen := map[string]bool{}
	for _, record := range records {
		for name := range record {
			seen[name] = true
		}
	}
	columns := []string{}
	for _, name := range []string{"group_id", "exact_subclonotype_id"} {
		if seen[name] {
			columns = append(columns, name)
			delete(seen, name)
		}
	}
	rest := make([]string, 0, len(seen))
	for name := range seen {
		rest = append(rest, name)
	}
	sort.Strings(rest)
	return append(columns, rest...)
}

// Write the records as TSV, or CSV when asCSV is set
func WriteParseable(w io.Writer, records []ParseableRecord, pcols []string, asCSV bool) error {
	columns := parseableColumns(records, pcols)
	writer := csv.NewWriter(w)
	if !asCSV {
		writer.Comma = '\t'
	}
	if err := writer.Write(columns); err != nil {
		return pfx.Err(err)
	}
	line := make([]string, len(columns))
	for _, record := range records {
		for i, name := range columns {
			line[i] = record[name]
		}
		if err := writer.Write(line); err != nil {
			return pfx.Err(err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return pfx.Err(err)
	}
	return nil
}
