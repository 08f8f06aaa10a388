package clonotab_api

// Two chain columns of 20 bases each: V on 0-9, junction on 10-13, J on 14-19
//
//	IGH reference  ACGTACGTAC ---- TTGGCC
//	IGK reference  GGGAAACCCT ---- AACCGG
func testRefData() *RefData {
	return &RefData{
		Names: []string{"IGHV1", "IGHJ1", "IGKV1", "IGKJ1"},
		Refs: [][]byte{
			[]byte("ACGTACGTAC"),
			[]byte("TTGGCC"),
			[]byte("GGGAAACCCT"),
			[]byte("AACCGG"),
		},
	}
}

// Exact 0 matches the references, exact 1 carries G>A at position 2 of the heavy chain
func testExacts() []ExactClonotype {
	return []ExactClonotype{
		{
			Share: []Share{
				{Chain: "IGH", Left: true, SeqDel: []byte("ACGTACGTACGATCTTGGCC"), VRefID: 0, JRefID: 1},
				{Chain: "IGK", SeqDel: []byte("GGGAAACCCTTTTTAACCGG"), VRefID: 2, JRefID: 3},
			},
			Clones: []Cell{{Barcode: "AAAC-1", UmiCount: 3}, {Barcode: "AAAG-1", UmiCount: 1}},
		},
		{
			Share: []Share{
				{Chain: "IGH", Left: true, SeqDel: []byte("ACATACGTACGATCTTGGCC"), VRefID: 0, JRefID: 1},
				{Chain: "IGK", SeqDel: []byte("GGGAAACCCTTTTTAACCGG"), VRefID: 2, JRefID: 3},
			},
			Clones: []Cell{{Barcode: "CCCA-1", UmiCount: 5}},
		},
	}
}

func testConfig() *Config {
	config, err := parseConfig([]byte("print:\n  lvars: [umis_total]\n"))
	if err != nil {
		panic(err)
	}
	return config
}

// A group of both exact subclonotypes with one lvar valued 4 and 6
func testInput(config *Config) *TableInput {
	rows := []RowData{
		{Lvals: []string{"4"}, Cvals: [][]string{{"", "CARW"}, {""}}},
		{Lvals: []string{"6"}, Cvals: [][]string{{"", "CARF"}, {""}}},
	}
	return &TableInput{
		Exacts:          []int{0, 1},
		ExactClonotypes: testExacts(),
		ColInfo: &ColInfo{
			Mat:   [][]int{{0, 0}, {1, 1}},
			Vids:  []int{0, 2},
			Jids:  []int{1, 3},
			Vpids: []int{NoShare, NoShare},
			Cvars: [][]string{{"var", "cdr3_aa"}, {"var"}},
		},
		Vars:       [][]int{{2, 11, 16}, {0, 1}},
		FieldTypes: []string{"FCJ", "FF"},
		Lvars:      config.Print.Lvars,
		RefData:    testRefData(),
		Rows:       rows,
		Stats:      statsFromRows(config.Print.Lvars, rows),
		Pass:       2,
	}
}
