package clonotab_api

import (
	"fmt"
	"log"
	"os"
)

// Groups with more exact subclonotypes are not compared pairwise
const maxPhylogenyExacts = 500

// Differences between two exact subclonotypes of a group
type pairDistance struct {
	// Positions where the first exact differs from the reference and the second matches it
	D1 int

	// Positions where the second exact differs from the reference and the first matches it
	D2 int

	// Differences between the V and J trim boundaries, attributable to neither
	D int
}

// Count the differences between exact subclonotypes u1 and u2 over all shared columns
func comparePair(in *TableInput, heur Heuristics, vrefs [][]byte, jrefs [][]byte, u1 int, u2 int) pairDistance {
	var dist pairDistance
	for col := 0; col < in.ColInfo.Cols(); col++ {
		share1, share2 := shareAt(in, col, u1), shareAt(in, col, u2)
		if share1 == nil || share2 == nil {
			continue
		}
		s1, s2 := share1.SeqDel, share2.SeqDel
		n := len(s1)
		vref, jref := vrefs[col], jrefs[col]
		for _, p := range in.Vars[col] {
			if p >= len(s1) || p >= len(s2) || s1[p] == s2[p] {
				continue
			}
			switch {
			case p < len(vref)-heur.RefVTrim:
				if s1[p] == vref[p] {
					dist.D1++
				} else if s2[p] == vref[p] {
					dist.D2++
				}
			case p >= n-(len(jref)-heur.RefJTrim):
				jp := len(jref) - (n - p)
				if s1[p] == jref[jp] {
					dist.D1++
				} else if s2[p] == jref[jp] {
					dist.D2++
				}
			default:
				dist.D++
			}
		}
	}
	return dist
}

// The J sequence a column is compared against: the contig J segment of the last
// exact subclonotype carrying the column, its J reference when the segment is unknown
func columnJRef(in *TableInput, col int) []byte {
	_, jref := universalRefs(in, col)
	for u := range in.Exacts {
		share := shareAt(in, col, u)
		if share == nil {
			continue
		}
		switch {
		case len(share.Js) > 0:
			jref = share.Js
		case share.JRefID >= 0 && share.JRefID < len(in.RefData.Refs):
			jref = in.RefData.Refs[share.JRefID]
		}
	}
	return jref
}

// Write an ancestry inference for every pair of exact subclonotypes where
// exactly one of the two carries no reference-attributable difference
// The cost is quadratic in the number of exact subclonotypes
func addPhylogeny(ctx *renderContext) {
	in := ctx.in
	nexacts := len(in.Exacts)
	if nexacts > maxPhylogenyExacts {
		if ctx.config.MuteWarnings {
			return
		}
		logger := log.New(os.Stderr, "", 0)
		logger.Printf("Group %d has %d exact subclonotypes, skipping the phylogeny (limit %d)",
			in.GroupIndex+1, nexacts, maxPhylogenyExacts)
		return
	}

	cols := in.ColInfo.Cols()
	vrefs := make([][]byte, cols)
	jrefs := make([][]byte, cols)
	for col := 0; col < cols; col++ {
		jrefs[col] = columnJRef(in, col)
		vrefs[col] = resolvedVRef(in, col)
	}

	heur := ctx.config.Heuristics
	for u1 := 0; u1 < nexacts; u1++ {
		for u2 := u1 + 1; u2 < nexacts; u2++ {
			dist := comparePair(in, heur, vrefs, jrefs, u1, u2)
			if (dist.D1 == 0) == (dist.D2 == 0) {
				continue
			}
			if dist.D1 == 0 {
				fmt.Fprintf(&ctx.logz, "%d ==> %d", u1+1, u2+1)
			} else {
				fmt.Fprintf(&ctx.logz, "%d ==> %d", u2+1, u1+1)
			}
			fmt.Fprintf(&ctx.logz, "; u1 = %d, u2 = %d, d1 = %d, d2 = %d, d = %d\n",
				u1+1, u2+1, dist.D1, dist.D2, dist.D)
		}
	}
}
