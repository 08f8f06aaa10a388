package clonotab_api

import "sort"

var genCode = map[string]byte{
	"ATA": 'I', "ATC": 'I', "ATT": 'I', "ATG": 'M',
	"ACA": 'T', "ACC": 'T', "ACG": 'T', "ACT": 'T',
	"AAC": 'N', "AAT": 'N', "AAA": 'K', "AAG": 'K',
	"AGC": 'S', "AGT": 'S', "AGA": 'R', "AGG": 'R',
	"CTA": 'L', "CTC": 'L', "CTG": 'L', "CTT": 'L',
	"CCA": 'P', "CCC": 'P', "CCG": 'P', "CCT": 'P',
	"CAC": 'H', "CAT": 'H', "CAA": 'Q', "CAG": 'Q',
	"CGA": 'R', "CGC": 'R', "CGG": 'R', "CGT": 'R',
	"GTA": 'V', "GTC": 'V', "GTG": 'V', "GTT": 'V',
	"GCA": 'A', "GCC": 'A', "GCG": 'A', "GCT": 'A',
	"GAC": 'D', "GAT": 'D', "GAA": 'E', "GAG": 'E',
	"GGA": 'G', "GGC": 'G', "GGG": 'G', "GGT": 'G',
	"TCA": 'S', "TCC": 'S', "TCG": 'S', "TCT": 'S',
	"TTC": 'F', "TTT": 'F', "TTA": 'L', "TTG": 'L',
	"TAC": 'Y', "TAT": 'Y', "TAA": '*', "TAG": '*',
	"TGC": 'C', "TGT": 'C', "TGA": '*', "TGG": 'W',
}

// Translate one codon, X for anything that is not three plain bases
func translateCodon(codon []byte) byte {
	if len(codon) != 3 {
		return 'X'
	}
	aa, ok := genCode[string(codon)]
	if !ok {
		return 'X'
	}
	return aa
}

// Translate the codon starting at p, X when it runs off the sequence
func aminoAcidAt(seq []byte, p int) byte {
	if p < 0 || p+3 > len(seq) {
		return 'X'
	}
	return translateCodon(seq[p : p+3])
}

// IUPAC ambiguity codes keyed by their sorted base sets
var iupacCodes = map[string]byte{
	"A": 'A', "C": 'C', "G": 'G', "T": 'T',
	"AG": 'R', "CT": 'Y', "CG": 'S', "AT": 'W',
	"GT": 'K', "AC": 'M', "CGT": 'B', "AGT": 'D',
	"ACT": 'H', "ACG": 'V', "ACGT": 'N',
}

// The IUPAC code covering all given bases, N when any base is not A, C, G or T
func iupacCode(bases []byte) byte {
	seen := map[byte]bool{}
	for _, b := range bases {
		seen[b] = true
	}
	set := make([]byte, 0, len(seen))
	for b := range seen {
		set = append(set, b)
	}
	sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })
	if code, ok := iupacCodes[string(set)]; ok {
		return code
	}
	return 'N'
}
