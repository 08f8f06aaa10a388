package clonotab_api

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const hlineCell = `\hline`

// Variables displayed as text, everything else is numeric
var textVariables = map[string]bool{
	"var":      true,
	"aa":       true,
	"const":    true,
	"notes":    true,
	"barcodes": true,
	"datasets": true,
	"donors":   true,
	"origins":  true,
	"chain":    true,
}

// The justification of a variable: 'l' for text, 'r' for numbers
func justification(x string) byte {
	x = lvarBase(x)
	if textVariables[x] {
		return 'l'
	}
	for _, suffix := range []string{"_name", "_aa", "_dna", "_id"} {
		if strings.HasSuffix(x, suffix) {
			return 'l'
		}
	}
	return 'r'
}

// The displayed chain name of a column
func chainLabel(in *TableInput, col int) string {
	rsi := in.ColInfo
	label := ""
	if col < len(rsi.Chains) {
		label = rsi.Chains[col]
	}
	if label == "" {
		for u, m := range rsi.Mat[col] {
			if m != NoShare {
				label = in.ExactClonotypes[in.Exacts[u]].Share[m].Chain
				break
			}
		}
	}
	if label == "" {
		return fmt.Sprintf("chain%d", col+1)
	}
	return cases.Upper(language.Und).String(label)
}

// Check the column layout against the group, panicking on any mismatch
func checkLayout(in *TableInput) {
	rsi := in.ColInfo
	cols := rsi.Cols()
	if len(rsi.Vids) != cols || len(rsi.Jids) != cols || len(rsi.Vpids) != cols || len(rsi.Cvars) != cols {
		panic(fmt.Sprintf("column layout is inconsistent: %d columns, %d vids, %d jids, %d vpids, %d cvars",
			cols, len(rsi.Vids), len(rsi.Jids), len(rsi.Vpids), len(rsi.Cvars)))
	}
	if len(in.Vars) != cols {
		panic(fmt.Sprintf("%d columns but displayed positions for %d", cols, len(in.Vars)))
	}
	if len(in.Rows) != len(in.Exacts) {
		panic(fmt.Sprintf("%d exact subclonotypes but %d rows of values", len(in.Exacts), len(in.Rows)))
	}
	for col := 0; col < cols; col++ {
		if len(rsi.Mat[col]) != len(in.Exacts) {
			panic(fmt.Sprintf("column %d has %d entries for %d exact subclonotypes", col+1, len(rsi.Mat[col]), len(in.Exacts)))
		}
		for u, m := range rsi.Mat[col] {
			if m != NoShare && m >= len(in.ExactClonotypes[in.Exacts[u]].Share) {
				panic(fmt.Sprintf("column %d refers to chain %d of exact subclonotype %d, which does not exist", col+1, m, u+1))
			}
		}
	}
	for u, row := range in.Rows {
		if len(row.Lvals) != len(in.Lvars) {
			panic(fmt.Sprintf("exact subclonotype %d has %d lvar values for %d lvars", u+1, len(row.Lvals), len(in.Lvars)))
		}
	}
}

// The share of exact subclonotype u in column col, nil when absent
func shareAt(in *TableInput, col int, u int) *Share {
	m := in.ColInfo.Mat[col][u]
	if m == NoShare {
		return nil
	}
	return &in.ExactClonotypes[in.Exacts[u]].Share[m]
}

// Build the header row, the justification and the body rows
func buildTableStuff(ctx *renderContext) {
	in := ctx.in
	rsi := in.ColInfo
	checkLayout(in)

	ctx.row1 = append(ctx.row1, "#")
	ctx.justify = append(ctx.justify, 'r')
	for _, lvar := range in.Lvars {
		ctx.row1 = append(ctx.row1, lvar)
		ctx.justify = append(ctx.justify, justification(lvar))
	}
	showsVar := false
	for col := 0; col < rsi.Cols(); col++ {
		ctx.justify = append(ctx.justify, '|')
		for j, cvar := range rsi.Cvars[col] {
			header := cvar
			if j == 0 {
				header = cvar + " " + chainLabel(in, col)
			}
			ctx.row1 = append(ctx.row1, header)
			ctx.justify = append(ctx.justify, justification(cvar))
			if cvar == "var" && len(in.Vars[col]) > 0 {
				showsVar = true
			}
		}
	}

	for u := range in.Exacts {
		row := make([]string, 0, ctx.width())
		row = append(row, "")
		row = append(row, in.Rows[u].Lvals...)
		for col := 0; col < rsi.Cols(); col++ {
			for j, cvar := range rsi.Cvars[col] {
				row = append(row, cvarValue(in, u, col, j, cvar))
			}
		}
		group := [][]string{row}
		for _, sub := range in.Rows[u].SubRows {
			subRow := append([]string{}, sub...)
			ctx.checkRow(subRow, fmt.Sprintf("sub-row of exact subclonotype %d", u+1))
			group = append(group, subRow)
		}
		ctx.body = append(ctx.body, group)
	}

	if showsVar {
		ctx.drows = append(ctx.drows, ctx.blankRow("diffs"))
	}
}

// The value of cvar j of column col for exact subclonotype u
func cvarValue(in *TableInput, u int, col int, j int, cvar string) string {
	share := shareAt(in, col, u)
	if share == nil {
		return ""
	}
	ex := &in.ExactClonotypes[in.Exacts[u]]
	switch cvar {
	case "var":
		bases := make([]byte, 0, len(in.Vars[col]))
		for _, p := range in.Vars[col] {
			if p < len(share.SeqDel) {
				bases = append(bases, share.SeqDel[p])
			} else {
				bases = append(bases, '-')
			}
		}
		return string(bases)
	case "aa":
		aaPositions := showAAPositions(in, col)
		aas := make([]byte, 0, len(aaPositions))
		for _, p := range aaPositions {
			aas = append(aas, aminoAcidAt(share.SeqDel, p))
		}
		return string(aas)
	case "umis":
		return fmt.Sprint(ex.Umis())
	case "ncells":
		return fmt.Sprint(ex.NCells())
	}
	cvals := in.Rows[u].Cvals
	if col < len(cvals) && j < len(cvals[col]) {
		return cvals[col][j]
	}
	return ""
}
