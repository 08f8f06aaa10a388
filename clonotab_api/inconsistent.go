package clonotab_api

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat/distuv"
)

// Test for consistency between VDJ cells and GEX cells.
//
// Per dataset we take up to MaxCheckedCells VDJ cells having both heavy and light
// (or TRB and TRA) chains and the highest UMI totals, using at most one cell per
// exact subclonotype, and count those that are GEX cells. With n cells taken and
// k of them GEX cells, the dataset fails when P(X <= k) < InconsistentTailBound
// for X ~ Binomial(n, ExpectedGexFraction). For n = 100 this means k >= 50.
// The bound is lower for small n. On 260 libraries the lowest k/n observed was
// 0.65, most were 0.9 or higher.
const (
	MaxCheckedCells       = 100
	ExpectedGexFraction   = 0.7
	InconsistentTailBound = 0.00002
)

const inconsistencyTrailer = "\nThis test is restricted to VDJ cells having both chain types, uses at most " +
	"one cell\nper exact subclonotype, and uses up to 100 cells having the highest " +
	"UMI counts.\n" +
	"\nThe data suggest a laboratory or informatic mixup.  If you believe " +
	"that this is not the case,\nyou can force clonotab to run by adding " +
	"--allow-inconsistent to the command line.\n"

// The outcome of the check for one dataset
type CheckResult struct {
	// The index of the dataset
	DatasetIndex int

	// The locations of the VDJ and GEX data
	VdjPath string
	GexPath string

	// False when the dataset was not tested
	Tested bool

	// Number of cells counted and how many of them are GEX cells
	Total int
	Good  int

	// P(X <= Good) for X ~ Binomial(Total, ExpectedGexFraction)
	Probability float64

	// Whether the dataset failed the check
	Inconsistent bool
}

// The error returned when one or more datasets fail the check
type InconsistencyError struct {
	// The failing datasets, in dataset order
	Failed []CheckResult
}

func (e *InconsistencyError) Error() string {
	var msg strings.Builder
	for _, res := range e.Failed {
		fmt.Fprintf(&msg, "\nThe VDJ dataset with path\n%s\nand the GEX dataset with path\n"+
			"%s\nshow insufficient sharing of barcodes.  "+
			"Of the %d VDJ cells that were tested,\n"+
			"only %d were GEX cells.\n",
			res.VdjPath, res.GexPath, res.Total, res.Good)
	}
	msg.WriteString(inconsistencyTrailer)
	return msg.String()
}

// P(X <= k) for X ~ Binomial(n, p)
func BinomialLowerTail(n int, k int, p float64) float64 {
	return distuv.Binomial{N: float64(n), P: p}.CDF(float64(k))
}

type cellKey struct {
	datasetIndex int
	barcode      string
}

// A VDJ barcode with both chain types
type pairedCell struct {
	barcode string
	umis    int
}

// The barcodes of a dataset having both chain types, in order of first appearance
func pairedCells(li int, contigs []TigData) []pairedCell {
	type chains struct {
		umis         int
		heavy, light bool
	}
	order := []string{}
	seen := map[string]*chains{}
	for _, tig := range contigs {
		if tig.DatasetIndex != li {
			continue
		}
		c, ok := seen[tig.Barcode]
		if !ok {
			c = &chains{}
			seen[tig.Barcode] = c
			order = append(order, tig.Barcode)
		}
		c.umis += tig.UmiCount
		if tig.Left {
			c.heavy = true
		} else {
			c.light = true
		}
	}
	paired := []pairedCell{}
	for _, barcode := range order {
		if c := seen[barcode]; c.heavy && c.light {
			paired = append(paired, pairedCell{barcode: barcode, umis: c.umis})
		}
	}
	return paired
}

// Count the sampled cells of one dataset and how many of them are GEX cells
func sampleDataset(li int, dataset *Dataset, exactOf map[cellKey]int) (total int, good int) {
	gex := make(map[string]bool, len(dataset.GexCellBarcodes))
	for _, barcode := range dataset.GexCellBarcodes {
		gex[barcode] = true
	}
	paired := pairedCells(li, dataset.Contigs)
	sort.SliceStable(paired, func(i, j int) bool { return paired[i].umis > paired[j].umis })

	used := map[int]bool{}
	for _, cell := range paired {
		ex, inex := exactOf[cellKey{li, cell.barcode}]
		if inex && used[ex] {
			continue
		}
		total++
		if gex[cell.barcode] {
			good++
		}
		if inex {
			used[ex] = true
		}
		if total == MaxCheckedCells {
			break
		}
	}
	return total, good
}

// Check every dataset with GEX data for VDJ/GEX barcode consistency
// Datasets are checked concurrently. All failures are reported in one *InconsistencyError
func CheckVdjGexConsistency(ctx context.Context, datasets []Dataset, exactClonotypes []ExactClonotype, allowInconsistent bool) ([]CheckResult, error) {
	results := make([]CheckResult, len(datasets))
	for li := range datasets {
		results[li] = CheckResult{
			DatasetIndex: li,
			VdjPath:      datasets[li].VdjPath,
			GexPath:      datasets[li].GexPath,
		}
	}
	if allowInconsistent {
		return results, nil
	}

	exactOf := map[cellKey]int{}
	for i, ex := range exactClonotypes {
		for _, cell := range ex.Clones {
			exactOf[cellKey{cell.DatasetIndex, cell.Barcode}] = i
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for li := range datasets {
		if datasets[li].GexPath == "" {
			continue
		}
		li := li
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := &results[li]
			res.Tested = true
			res.Total, res.Good = sampleDataset(li, &datasets[li], exactOf)
			if res.Total == 0 {
				res.Probability = 1
				return nil
			}
			res.Probability = BinomialLowerTail(res.Total, res.Good, ExpectedGexFraction)
			res.Inconsistent = res.Probability < InconsistentTailBound
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	failed := []CheckResult{}
	for _, res := range results {
		if res.Inconsistent {
			failed = append(failed, res)
		}
	}
	if len(failed) > 0 {
		return results, &InconsistencyError{Failed: failed}
	}
	return results, nil
}
