package model

import "strings"

// Dataset is a columnar, read-only record store. Every slice has length Len()
// and is indexed by row. Species and tissue columns are keyed by column name.
type Dataset struct {
	SpeciesNames []string
	TissueNames  []string

	IDs          []string
	Species      map[string][]TriState
	Tissues      map[string][]Level
	Conservation []TriState
	Expression   []TriState
	Structure    []TriState

	InFamilyMirBase     []Flag
	InFamilyMirGeneDB   []Flag
	FamilyNameMirBase   []string
	FamilyNameMirGeneDB []string
	ClassMirBase        []string
	ClassMirGeneDB      []string
	RepeatClass         []string
	HsaSpecific         []Flag
	Sequence            []string

	// Derived columns, filled by Derive.
	ConservationCount      []Count
	ExpressionCount        []Count
	StructureDisplay       []string
	FamilyDisplayMirBase   []string
	FamilyDisplayMirGeneDB []string
}

// NewDataset allocates a dataset of n rows with every field Unknown.
func NewDataset(schema Schema, n int) *Dataset {
	ds := &Dataset{
		SpeciesNames:        append([]string(nil), schema.Species...),
		TissueNames:         append([]string(nil), schema.Tissues...),
		IDs:                 make([]string, n),
		Species:             make(map[string][]TriState, len(schema.Species)),
		Tissues:             make(map[string][]Level, len(schema.Tissues)),
		Conservation:        make([]TriState, n),
		Expression:          make([]TriState, n),
		Structure:           make([]TriState, n),
		InFamilyMirBase:     make([]Flag, n),
		InFamilyMirGeneDB:   make([]Flag, n),
		FamilyNameMirBase:   make([]string, n),
		FamilyNameMirGeneDB: make([]string, n),
		ClassMirBase:        make([]string, n),
		ClassMirGeneDB:      make([]string, n),
		RepeatClass:         make([]string, n),
		HsaSpecific:         make([]Flag, n),
		Sequence:            make([]string, n),
	}
	for _, s := range schema.Species {
		ds.Species[s] = make([]TriState, n)
	}
	for _, t := range schema.Tissues {
		ds.Tissues[t] = make([]Level, n)
	}
	return ds
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.IDs) }

// HasSpecies reports whether name is a species column of the dataset.
func (d *Dataset) HasSpecies(name string) bool {
	_, ok := d.Species[name]
	return ok
}

// HasTissue reports whether name is a tissue column of the dataset.
func (d *Dataset) HasTissue(name string) bool {
	_, ok := d.Tissues[name]
	return ok
}

// SpeciesAt returns the species value of row i, Unknown for absent columns.
func (d *Dataset) SpeciesAt(name string, i int) TriState {
	col, ok := d.Species[name]
	if !ok {
		return Unknown
	}
	return col[i]
}

// TissueAt returns the tissue level of row i, unknown for absent columns.
func (d *Dataset) TissueAt(name string, i int) Level {
	col, ok := d.Tissues[name]
	if !ok {
		return Level{}
	}
	return col[i]
}

// Cell is one named string value of a row.
type Cell struct {
	Column string
	Value  string
}

// RowStrings returns the string form of every column of row i, raw and
// derived. Unknown values are empty strings.
func (d *Dataset) RowStrings(i int) []Cell {
	cells := make([]Cell, 0, 20+len(d.SpeciesNames)+len(d.TissueNames))
	cells = append(cells,
		Cell{ColID, d.IDs[i]},
		Cell{ColConservation, d.Conservation[i].String()},
	)
	for _, s := range d.SpeciesNames {
		cells = append(cells, Cell{s, d.Species[s][i].String()})
	}
	cells = append(cells, Cell{ColExpression, d.Expression[i].String()})
	for _, t := range d.TissueNames {
		cells = append(cells, Cell{t, d.Tissues[t][i].String()})
	}
	cells = append(cells,
		Cell{ColStructure, d.Structure[i].String()},
		Cell{ColClassMirBase, d.ClassMirBase[i]},
		Cell{ColClassMirGeneDB, d.ClassMirGeneDB[i]},
		Cell{ColFamilyMirGeneDB, d.InFamilyMirGeneDB[i].String()},
		Cell{ColFamilyMirBase, d.InFamilyMirBase[i].String()},
		Cell{ColHsaSpecificity, d.HsaSpecific[i].String()},
		Cell{ColRepeatClass, d.RepeatClass[i]},
		Cell{ColSequence, d.Sequence[i]},
		Cell{ColFamilyNameMirBase, d.FamilyNameMirBase[i]},
		Cell{ColFamilyNameMirGeneDB, d.FamilyNameMirGeneDB[i]},
	)
	if d.ConservationCount != nil {
		cells = append(cells,
			Cell{"Conservation_display", d.ConservationCount[i].String()},
			Cell{"Expression_display", d.ExpressionCount[i].String()},
			Cell{"Structure_display", d.StructureDisplay[i]},
			Cell{"miRBase_family_display", d.FamilyDisplayMirBase[i]},
			Cell{"MirGeneDB_family_display", d.FamilyDisplayMirGeneDB[i]},
		)
	}
	return cells
}

// SpeciesColumn resolves a species column name or display label
// ("P. troglodytes", case-insensitive) to its column name.
func (d *Dataset) SpeciesColumn(name string) (string, bool) {
	if d.HasSpecies(name) {
		return name, true
	}
	want := strings.ToLower(strings.TrimSpace(name))
	for _, s := range d.SpeciesNames {
		if strings.ToLower(SpeciesLabel(s)) == want {
			return s, true
		}
	}
	return "", false
}
