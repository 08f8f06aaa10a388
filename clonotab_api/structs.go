package clonotab_api

// NoShare marks a chain column that an exact subclonotype does not carry,
// and a column without a donor reference allele
const NoShare = -1

// The struct representing one chain of an exact subclonotype
type Share struct {
	// The chain name as it is displayed, e.g. IGH, IGK, TRB or TRA
	Chain string `yaml:"chain"`

	// Heavy (IGH) or TRB chain when true, light or TRA chain otherwise
	Left bool `yaml:"left"`

	// The aligned nucleotide sequence
	Seq []byte `yaml:"-"`

	// The deletion-adjusted sequence
	// Displayed positions index into this sequence
	SeqDel []byte `yaml:"-"`

	// The index of the V segment in the universal reference
	VRefID int `yaml:"v_ref_id"`

	// The index of the J segment in the universal reference
	JRefID int `yaml:"j_ref_id"`

	// The J segment of the contig, 3' aligned with SeqDel
	// Empty when unknown, the universal J reference is used instead
	Js []byte `yaml:"-"`

	// String forms of Seq, SeqDel and Js, used for (un)marshalling only
	SeqString    string `yaml:"seq"`
	SeqDelString string `yaml:"seq_del"`
	JsString     string `yaml:"js"`
}

// A struct representing one cell of an exact subclonotype
type Cell struct {
	// The cell barcode
	Barcode string `yaml:"barcode"`

	// The index of the dataset the cell was sequenced in
	DatasetIndex int `yaml:"dataset"`

	// The number of UMIs of the cell, summed over its chains
	UmiCount int `yaml:"umis"`

	// The number of reads of the cell, summed over its chains
	ReadCount int `yaml:"reads"`
}

// A struct representing a group of cells sharing an identical chain configuration
type ExactClonotype struct {
	// The chains of the exact subclonotype, in column order of its own
	Share []Share `yaml:"shares"`

	// The cells of the exact subclonotype
	Clones []Cell `yaml:"cells"`
}

// Number of cells in the exact subclonotype
func (ex *ExactClonotype) NCells() int {
	return len(ex.Clones)
}

// Total UMI count over all cells of the exact subclonotype
func (ex *ExactClonotype) Umis() int {
	total := 0
	for _, cell := range ex.Clones {
		total += cell.UmiCount
	}
	return total
}

// The struct describing the chain columns of one clonotype group
type ColInfo struct {
	// Share index per column and per exact subclonotype of the group
	// Indexed as Mat[col][u], NoShare when the exact lacks the chain
	Mat [][]int `yaml:"mat"`

	// The universal V reference id of each column
	Vids []int `yaml:"vids"`

	// The universal J reference id of each column
	Jids []int `yaml:"jids"`

	// The donor reference index of each column, NoShare for none
	Vpids []int `yaml:"vpids"`

	// The column variables displayed for each column
	Cvars [][]string `yaml:"cvars"`

	// The chain label of each column
	Chains []string `yaml:"chains"`
}

// Number of chain columns
func (rsi *ColInfo) Cols() int {
	return len(rsi.Mat)
}

// Number of display slots taken by the columns
func (rsi *ColInfo) Width() int {
	width := 0
	for _, cvars := range rsi.Cvars {
		width += len(cvars)
	}
	return width
}

// A struct representing a donor-specific inferred V allele
type DonorReferenceItem struct {
	// The universal V reference this allele was inferred from
	VRefID int

	// The donor the allele belongs to
	Donor string

	// The nucleotide sequence of the allele
	NtSequence []byte
}

// The universal reference sequences
type RefData struct {
	// The names of the reference segments
	Names []string

	// The nucleotide sequences of the reference segments
	Refs [][]byte
}

// A struct representing one contig of one cell
type TigData struct {
	// The index of the dataset the contig belongs to
	DatasetIndex int

	// The cell barcode of the contig
	Barcode string

	// The number of UMIs supporting the contig
	UmiCount int

	// Heavy (IGH) or TRB chain when true, light or TRA chain otherwise
	Left bool
}

// A struct representing one library with its paired expression data
type Dataset struct {
	// The name of the dataset
	Name string `yaml:"name"`

	// The location of the VDJ contig table
	VdjPath string `yaml:"vdj"`

	// The location of the GEX cell barcode list
	// Leave empty when the dataset has no expression data
	GexPath string `yaml:"gex"`

	// The sorted GEX cell barcodes, filled by LoadDatasets
	GexCellBarcodes []string `yaml:"-"`

	// The contigs of the dataset, filled by LoadDatasets
	Contigs []TigData `yaml:"-"`
}

// The per exact subclonotype values handed over by clonotype construction
type RowData struct {
	// The values of the lvars, in lvar order
	Lvals []string `yaml:"lvals"`

	// The values of the cvars, per column and per cvar
	// Built-in cvars (var, aa, umis, ncells) are computed and can be left empty
	Cvals [][]string `yaml:"cvals"`

	// Additional rows printed under the main row of the exact subclonotype
	SubRows [][]string `yaml:"sub_rows"`
}

// A struct representing one clonotype group ready to be printed
type Group struct {
	// The indices of the exact subclonotypes in display order
	Exacts []int `yaml:"exacts"`

	// The column layout of the group
	ColInfo ColInfo `yaml:"columns"`

	// The displayed positions of each column
	Vars [][]int `yaml:"vars"`

	// The codon start positions shown as amino acids, per column
	ShowAA [][]int `yaml:"show_aa"`

	// One field type tag per displayed position, per column
	FieldTypes []string `yaml:"field_types"`

	// The upstream values, one per exact subclonotype in display order
	Rows []RowData `yaml:"rows"`

	// Maps display order to the storage order of the parseable records
	Rord []int `yaml:"rord"`
}

// The struct representing the clonotype input file
type ClonotypeSet struct {
	// The exact subclonotypes referred to by the groups
	ExactClonotypes []ExactClonotype `yaml:"exact_clonotypes"`

	// The clonotype groups
	Groups []Group `yaml:"groups"`
}

//
// Config structs
//

// The struct representing the configuration file
// The config file is a YAML file
type Config struct {
	// The datasets of this run
	Datasets []Dataset `yaml:"datasets"`

	// The location of the universal reference
	Reference string `yaml:"reference"`

	// The location of the donor reference, optional
	DonorReference string `yaml:"donor_reference"`

	// Heuristic constants
	Heuristics Heuristics `yaml:"heuristics"`

	// Table options
	Print PrintConfig `yaml:"print"`

	// Parseable output options
	Parseable ParseableConfig `yaml:"parseable"`

	// Skip the VDJ/GEX consistency check
	AllowInconsistent bool `yaml:"allow_inconsistent"`

	// Don't log warnings
	MuteWarnings bool `yaml:"mute_warnings"`
}

// Heuristic constants of the reference comparison
type Heuristics struct {
	// Number of bases trimmed from the 3' end of V references
	RefVTrim int `yaml:"ref_v_trim"`

	// Number of bases trimmed from the 5' end of J references
	RefJTrim int `yaml:"ref_j_trim"`
}

// A struct holding the table options
type PrintConfig struct {
	// The row-level variables to display
	Lvars []string `yaml:"lvars"`

	// Add a sum row
	Sum bool `yaml:"sum"`

	// Add a mean row
	Mean bool `yaml:"mean"`

	// Print the pairwise phylogeny inferences
	Toy bool `yaml:"toy"`
}

// A struct holding the parseable output options
type ParseableConfig struct {
	// Where to write the parseable output
	// "stdout" writes to stdout, a path ending in .csv writes CSV, anything else TSV
	Pout string `yaml:"pout"`

	// The fields to write, all fields when empty
	Pcols []string `yaml:"pcols"`

	// Fields that are always collected
	Extra []string `yaml:"extra"`
}
