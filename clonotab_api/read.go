package clonotab_api

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/biogo/hts/bgzf"
	"github.com/carbocation/pfx"
	"gopkg.in/yaml.v2"
)

// Call fn for every line of a plain or bgzip compressed (.gz) file
func forEachLine(file string, fn func(line string) error) error {
	openFile, err := os.Open(file)
	if err != nil {
		return pfx.Err(err)
	}
	defer openFile.Close()

	if strings.HasSuffix(file, ".gz") {
		return readBgzip(openFile, fn)
	}
	return readPlain(openFile, fn)
}

func readBgzip(input io.Reader, fn func(line string) error) error {
	bgReader, err := bgzf.NewReader(input, 1)
	if err != nil {
		return pfx.Err(err)
	}
	defer bgReader.Close()

	for {
		b, _, err := readLine(bgReader)
		if err != nil && err != io.EOF {
			return pfx.Err(err)
		}
		if len(b) > 0 {
			if ferr := fn(strings.TrimRight(string(b), "\r\n")); ferr != nil {
				return ferr
			}
		}
		if err == io.EOF {
			return nil
		}
	}
}

// readLine reads a line from a bgzip file
func readLine(r *bgzf.Reader) ([]byte, bgzf.Chunk, error) {
	tx := r.Begin()
	var (
		data []byte
		b    byte
		err  error
	)
	for {
		b, err = r.ReadByte()
		if err != nil {
			break
		}
		data = append(data, b)
		if b == '\n' {
			break
		}
	}
	chunk := tx.End()
	return data, chunk, err
}

func readPlain(input io.Reader, fn func(line string) error) error {
	scanner := bufio.NewScanner(input)
	const maxCapacity = 8 * 1000000 // 8 MB
	scanner.Buffer(make([]byte, maxCapacity), maxCapacity)
	for scanner.Scan() {
		if err := fn(strings.TrimRight(scanner.Text(), "\r")); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return pfx.Err(err)
	}
	return nil
}

// Heavy and TRB chains are the left chains
func isLeftChain(chain string) bool {
	chain = strings.ToUpper(chain)
	return strings.HasPrefix(chain, "IGH") || strings.HasPrefix(chain, "TRB")
}

// Read the contig table of one dataset
// Columns: barcode, chain, umis. Further columns are ignored
func readContigs(file string, datasetIndex int) ([]TigData, error) {
	tigs := []TigData{}
	lineNumber := 0
	err := forEachLine(file, func(line string) error {
		lineNumber++
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "barcode\t") {
			return nil
		}
		data := strings.Split(line, "\t")
		if len(data) < 3 {
			return fmt.Errorf("%s:%d: expected at least 3 columns, found %d", file, lineNumber, len(data))
		}
		umis, err := strconv.Atoi(data[2])
		if err != nil {
			return fmt.Errorf("%s:%d: invalid UMI count %q", file, lineNumber, data[2])
		}
		tigs = append(tigs, TigData{
			DatasetIndex: datasetIndex,
			Barcode:      data[0],
			UmiCount:     umis,
			Left:         isLeftChain(data[1]),
		})
		return nil
	})
	if err != nil {
		return nil, pfx.Err(err)
	}
	return tigs, nil
}

// Read a barcode list, one barcode in the first column of each line
// The result is sorted
func readBarcodes(file string) ([]string, error) {
	barcodes := []string{}
	err := forEachLine(file, func(line string) error {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			return nil
		}
		barcodes = append(barcodes, strings.Split(line, "\t")[0])
		return nil
	})
	if err != nil {
		return nil, pfx.Err(err)
	}
	sort.Strings(barcodes)
	return barcodes, nil
}

// Load the contigs and GEX barcodes of all datasets in the config
func LoadDatasets(config *Config) error {
	for li := range config.Datasets {
		dataset := &config.Datasets[li]
		tigs, err := readContigs(dataset.VdjPath, li)
		if err != nil {
			return err
		}
		dataset.Contigs = tigs
		if dataset.GexPath != "" {
			barcodes, err := readBarcodes(dataset.GexPath)
			if err != nil {
				return err
			}
			dataset.GexCellBarcodes = barcodes
		}
	}
	return nil
}

// Read FASTA-like records, calling fn with each header (without '>') and sequence
func readFasta(file string, fn func(header string, seq []byte) error) error {
	header := ""
	var seq []byte
	inRecord := false
	err := forEachLine(file, func(line string) error {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, ">") {
			if inRecord {
				if err := fn(header, seq); err != nil {
					return err
				}
			}
			header = strings.TrimPrefix(line, ">")
			seq = nil
			inRecord = true
			return nil
		}
		seq = append(seq, bytes.ToUpper([]byte(line))...)
		return nil
	})
	if err != nil {
		return err
	}
	if inRecord {
		return fn(header, seq)
	}
	return nil
}

// Read the universal reference
func ReadReference(file string) (*RefData, error) {
	refdata := &RefData{}
	err := readFasta(file, func(header string, seq []byte) error {
		fields := strings.Fields(header)
		if len(fields) == 0 {
			return fmt.Errorf("empty reference header for record %d", len(refdata.Names)+1)
		}
		refdata.Names = append(refdata.Names, fields[0])
		refdata.Refs = append(refdata.Refs, seq)
		return nil
	})
	if err != nil {
		return nil, pfx.Err(err)
	}
	return refdata, nil
}

// Read the donor reference
// Each header is "<vref_id>|<donor>"
func ReadDonorReference(file string) ([]DonorReferenceItem, error) {
	dref := []DonorReferenceItem{}
	err := readFasta(file, func(header string, seq []byte) error {
		fields := strings.SplitN(header, "|", 2)
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("invalid donor reference header %q", header)
		}
		item := DonorReferenceItem{VRefID: id, NtSequence: seq}
		if len(fields) > 1 {
			item.Donor = fields[1]
		}
		dref = append(dref, item)
		return nil
	})
	if err != nil {
		return nil, pfx.Err(err)
	}
	return dref, nil
}

// Read the clonotype groups produced by clonotype construction
func ReadClonotypes(file string) (*ClonotypeSet, error) {
	var data []byte
	err := forEachLine(file, func(line string) error {
		data = append(data, line...)
		data = append(data, '\n')
		return nil
	})
	if err != nil {
		return nil, pfx.Err(err)
	}
	return parseClonotypes(data)
}

func parseClonotypes(data []byte) (*ClonotypeSet, error) {
	var set ClonotypeSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, pfx.Err(err)
	}
	for i := range set.ExactClonotypes {
		for m := range set.ExactClonotypes[i].Share {
			share := &set.ExactClonotypes[i].Share[m]
			share.Seq = []byte(strings.ToUpper(share.SeqString))
			share.SeqDel = []byte(strings.ToUpper(share.SeqDelString))
			share.Js = []byte(strings.ToUpper(share.JsString))
			if len(share.Seq) == 0 {
				share.Seq = share.SeqDel
			}
			if share.Chain != "" && !share.Left {
				share.Left = isLeftChain(share.Chain)
			}
		}
	}
	for gi := range set.Groups {
		rsi := &set.Groups[gi].ColInfo
		if len(rsi.Vpids) == 0 {
			rsi.Vpids = make([]int, rsi.Cols())
			for col := range rsi.Vpids {
				rsi.Vpids[col] = NoShare
			}
		}
	}
	return &set, nil
}
