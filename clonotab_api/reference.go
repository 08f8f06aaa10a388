package clonotab_api

import "fmt"

// The codon start positions shown as amino acids for a column
func showAAPositions(in *TableInput, col int) []int {
	if col < len(in.ShowAA) {
		return in.ShowAA[col]
	}
	return nil
}

// The field type tag of displayed position j of a column, '*' when none was given
func fieldType(in *TableInput, col int, j int) byte {
	if col < len(in.FieldTypes) && j < len(in.FieldTypes[col]) {
		return in.FieldTypes[col][j]
	}
	return '*'
}

// The universal V and J reference sequences of a column
func universalRefs(in *TableInput, col int) (vref []byte, jref []byte) {
	rsi := in.ColInfo
	if in.RefData == nil {
		panic("no reference data")
	}
	vid, jid := rsi.Vids[col], rsi.Jids[col]
	if vid < 0 || vid >= len(in.RefData.Refs) || jid < 0 || jid >= len(in.RefData.Refs) {
		panic(fmt.Sprintf("column %d refers to reference %d/%d, the reference has %d segments",
			col+1, vid, jid, len(in.RefData.Refs)))
	}
	return in.RefData.Refs[vid], in.RefData.Refs[jid]
}

// The V reference of a column, the donor allele when one is assigned
func resolvedVRef(in *TableInput, col int) []byte {
	vref, _ := universalRefs(in, col)
	if vpid := in.ColInfo.Vpids[col]; vpid != NoShare {
		if vpid < 0 || vpid >= len(in.Dref) {
			panic(fmt.Sprintf("column %d refers to donor reference %d, there are %d", col+1, vpid, len(in.Dref)))
		}
		return in.Dref[vpid].NtSequence
	}
	return vref
}

// Length of the deletion-adjusted sequences of a column
func columnLength(in *TableInput, col int) int {
	for u := range in.Exacts {
		if share := shareAt(in, col, u); share != nil {
			return len(share.SeqDel)
		}
	}
	return 0
}

// The reference base at position p of a sequence of length n
// V covers the start, J is aligned to the 3' end, anything in between is junction
func refBase(vref []byte, jref []byte, n int, p int) byte {
	if p < len(vref) {
		return vref[p]
	}
	if len(jref) > 0 && p < n && p >= n-len(jref) {
		return jref[len(jref)-(n-p)]
	}
	return '-'
}

// The full reference sequence of a column
func referenceSequence(vref []byte, jref []byte, n int) []byte {
	seq := make([]byte, n)
	for p := 0; p < n; p++ {
		seq[p] = refBase(vref, jref, n, p)
	}
	return seq
}

// Whether any column displays sequence positions
func displaysSequence(in *TableInput) bool {
	for col, cvars := range in.ColInfo.Cvars {
		for _, cvar := range cvars {
			if cvar == "var" && len(in.Vars[col]) > 0 {
				return true
			}
			if cvar == "aa" && len(showAAPositions(in, col)) > 0 {
				return true
			}
		}
	}
	return false
}

// A row showing the given per column reference sequences at the displayed positions
func referenceRow(ctx *renderContext, label string, refs [][]byte) []string {
	in := ctx.in
	row := ctx.blankRow(label)
	i := 1 + len(in.Lvars)
	for col, cvars := range in.ColInfo.Cvars {
		for _, cvar := range cvars {
			switch cvar {
			case "var":
				bases := make([]byte, 0, len(in.Vars[col]))
				for _, p := range in.Vars[col] {
					if p < len(refs[col]) {
						bases = append(bases, refs[col][p])
					} else {
						bases = append(bases, '-')
					}
				}
				row[i] = string(bases)
			case "aa":
				aaPositions := showAAPositions(in, col)
				aas := make([]byte, 0, len(aaPositions))
				for _, p := range aaPositions {
					aas = append(aas, aminoAcidAt(refs[col], p))
				}
				row[i] = string(aas)
			}
			i++
		}
	}
	return row
}

// Insert the universal reference row and, when it differs, the donor reference row
func insertReferenceRows(ctx *renderContext) {
	in := ctx.in
	if !displaysSequence(in) {
		return
	}
	cols := in.ColInfo.Cols()
	universal := make([][]byte, cols)
	donor := make([][]byte, cols)
	for col := 0; col < cols; col++ {
		vref, jref := universalRefs(in, col)
		n := columnLength(in, col)
		universal[col] = referenceSequence(vref, jref, n)
		donor[col] = referenceSequence(resolvedVRef(in, col), jref, n)
	}
	rows := [][]string{referenceRow(ctx, "reference", universal)}
	donorRow := referenceRow(ctx, "donor ref", donor)
	for i := 1; i < len(donorRow); i++ {
		if donorRow[i] != rows[0][i] {
			rows = append(rows, donorRow)
			break
		}
	}
	ctx.insertRows(rows...)
}

// The bases of the exact subclonotypes carrying a column, at position p
func basesAt(in *TableInput, col int, p int) []byte {
	bases := []byte{}
	for u := range in.Exacts {
		share := shareAt(in, col, u)
		if share == nil {
			continue
		}
		if p < len(share.SeqDel) {
			bases = append(bases, share.SeqDel[p])
		} else {
			bases = append(bases, '-')
		}
	}
	return bases
}

// The amino acids of the exact subclonotypes carrying a column, at codon p
func aminoAcidsAt(in *TableInput, col int, p int) []byte {
	aas := []byte{}
	for u := range in.Exacts {
		if share := shareAt(in, col, u); share != nil {
			aas = append(aas, aminoAcidAt(share.SeqDel, p))
		}
	}
	return aas
}

func allEqual(x []byte) bool {
	for i := 1; i < len(x); i++ {
		if x[i] != x[0] {
			return false
		}
	}
	return true
}

// Append the consensus row: shared bases as is, mixed positions as IUPAC codes
func insertConsensusRow(ctx *renderContext) {
	in := ctx.in
	if !displaysSequence(in) || len(in.Exacts) == 0 {
		return
	}
	row := ctx.blankRow("consensus")
	i := 1 + len(in.Lvars)
	for col, cvars := range in.ColInfo.Cvars {
		for _, cvar := range cvars {
			switch cvar {
			case "var":
				con := make([]byte, 0, len(in.Vars[col]))
				for _, p := range in.Vars[col] {
					bases := basesAt(in, col, p)
					switch {
					case len(bases) == 0:
						con = append(con, ' ')
					case allEqual(bases):
						con = append(con, bases[0])
					default:
						con = append(con, iupacCode(bases))
					}
				}
				row[i] = string(con)
			case "aa":
				aaPositions := showAAPositions(in, col)
				con := make([]byte, 0, len(aaPositions))
				for _, p := range aaPositions {
					aas := aminoAcidsAt(in, col, p)
					switch {
					case len(aas) == 0:
						con = append(con, ' ')
					case allEqual(aas):
						con = append(con, aas[0])
					default:
						con = append(con, 'X')
					}
				}
				row[i] = string(con)
			}
			i++
		}
	}
	ctx.appendRow(row)
}

// Fill in the pending diff rows and append them
// x marks positions where the group disagrees, the field type tag marks
// positions where the whole group differs from the universal reference
func buildDiffRow(ctx *renderContext) {
	in := ctx.in
	if len(ctx.drows) == 0 {
		return
	}
	for _, row := range ctx.drows {
		i := 1 + len(in.Lvars)
		for col, cvars := range in.ColInfo.Cvars {
			for _, cvar := range cvars {
				switch cvar {
				case "var":
					vref, jref := universalRefs(in, col)
					n := columnLength(in, col)
					diff := make([]byte, 0, len(in.Vars[col]))
					for j, p := range in.Vars[col] {
						bases := basesAt(in, col, p)
						switch {
						case len(bases) == 0:
							diff = append(diff, ' ')
						case !allEqual(bases):
							diff = append(diff, 'x')
						case bases[0] != refBase(vref, jref, n, p):
							diff = append(diff, fieldType(in, col, j))
						default:
							diff = append(diff, '.')
						}
					}
					row[i] = string(diff)
				case "aa":
					aaPositions := showAAPositions(in, col)
					diff := make([]byte, 0, len(aaPositions))
					for _, p := range aaPositions {
						if allEqual(aminoAcidsAt(in, col, p)) {
							diff = append(diff, '.')
						} else {
							diff = append(diff, 'x')
						}
					}
					row[i] = string(diff)
				}
				i++
			}
		}
		ctx.appendRow(row)
	}
	ctx.drows = nil
}
