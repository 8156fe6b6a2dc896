// Package view projects a filtered dataset into the ordered, user-visible
// table. Column layout is declarative: a fixed descriptor list plus the
// species and tissue columns chosen by the caller.
package view

import (
	"encoding/json"
	"regexp"

	"github.com/mirbrowse/server/internal/classify"
	"github.com/mirbrowse/server/internal/model"
)

// Group identifies the kind of a column.
type Group string

const (
	GroupID        Group = "id"
	GroupCount     Group = "count"
	GroupSpecies   Group = "species"
	GroupTissue    Group = "tissue"
	GroupStructure Group = "structure"
	GroupClass     Group = "class"
	GroupFamily    Group = "family"
	GroupHsa       Group = "hsa"
	GroupRepeat    Group = "repeat"
)

// Column labels of the fixed columns.
const (
	LabelID              = "miRNA"
	LabelConservation    = "Conservation"
	LabelExpression      = "Expression"
	LabelStructure       = "Structure"
	LabelClassMirBase    = "Class miRBase"
	LabelClassMirGeneDB  = "Class MirGeneDB"
	LabelFamilyMirGeneDB = "MirGeneDB family"
	LabelFamilyMirBase   = "miRBase family"
	LabelHsaSpecificity  = "hsa-specificity"
	LabelRepeatClass     = "Repeat Class"
)

// Cell is one projected value. Text is empty when Known is false.
type Cell struct {
	Text     string            `json:"text"`
	Known    bool              `json:"known"`
	Category classify.Category `json:"category"`
}

// Descriptor declares one output column.
type Descriptor struct {
	Key   string
	Label string
	Group Group
	Value func(ds *model.Dataset, i int) Cell
}

// Column is the serializable part of a Descriptor.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Group Group  `json:"group"`
}

// Visibility selects the optional columns. Species accepts column names or
// display labels.
type Visibility struct {
	Species     []string `json:"species"`
	Tissues     []string `json:"tissues"`
	ShowClasses bool     `json:"show_classes"`
}

// Key returns a canonical string of the visible columns in request order.
func (v Visibility) Key() string {
	// Marshalling strings and string slices cannot fail.
	data, _ := json.Marshal(v)
	return string(data)
}

// Table is a projected view.
type Table struct {
	Columns []Column `json:"columns"`
	Rows    [][]Cell `json:"rows"`
}

func text(s string) Cell {
	return Cell{Text: s, Known: s != "", Category: classify.None}
}

var (
	idColumn = Descriptor{model.ColID, LabelID, GroupID, func(ds *model.Dataset, i int) Cell {
		return text(ds.IDs[i])
	}}
	conservationColumn = Descriptor{model.ColConservation, LabelConservation, GroupCount, func(ds *model.Dataset, i int) Cell {
		c := ds.ConservationCount[i]
		return Cell{Text: c.String(), Known: c.Valid, Category: classify.PassFail(ds.Conservation[i])}
	}}
	expressionColumn = Descriptor{model.ColExpression, LabelExpression, GroupCount, func(ds *model.Dataset, i int) Cell {
		c := ds.ExpressionCount[i]
		return Cell{Text: c.String(), Known: c.Valid, Category: classify.PassFail(ds.Expression[i])}
	}}
	structureColumn = Descriptor{model.ColStructure, LabelStructure, GroupStructure, func(ds *model.Dataset, i int) Cell {
		c := text(ds.StructureDisplay[i])
		c.Category = classify.PassFail(ds.Structure[i])
		return c
	}}
	classMirBaseColumn = Descriptor{model.ColClassMirBase, LabelClassMirBase, GroupClass, func(ds *model.Dataset, i int) Cell {
		c := text(ds.ClassMirBase[i])
		c.Category = classify.Class(ds.ClassMirBase[i])
		return c
	}}
	classMirGeneDBColumn = Descriptor{model.ColClassMirGeneDB, LabelClassMirGeneDB, GroupClass, func(ds *model.Dataset, i int) Cell {
		c := text(ds.ClassMirGeneDB[i])
		c.Category = classify.Class(ds.ClassMirGeneDB[i])
		return c
	}}
	familyMirGeneDBColumn = Descriptor{model.ColFamilyMirGeneDB, LabelFamilyMirGeneDB, GroupFamily, func(ds *model.Dataset, i int) Cell {
		c := text(ds.FamilyDisplayMirGeneDB[i])
		c.Category = classify.Family(ds.InFamilyMirGeneDB[i])
		return c
	}}
	familyMirBaseColumn = Descriptor{model.ColFamilyMirBase, LabelFamilyMirBase, GroupFamily, func(ds *model.Dataset, i int) Cell {
		c := text(ds.FamilyDisplayMirBase[i])
		c.Category = classify.Family(ds.InFamilyMirBase[i])
		return c
	}}
	hsaColumn = Descriptor{model.ColHsaSpecificity, LabelHsaSpecificity, GroupHsa, func(ds *model.Dataset, i int) Cell {
		f := ds.HsaSpecific[i]
		return Cell{Text: f.String(), Known: f != model.FlagUnknown, Category: classify.Hsa(f)}
	}}
	repeatColumn = Descriptor{model.ColRepeatClass, LabelRepeatClass, GroupRepeat, func(ds *model.Dataset, i int) Cell {
		c := text(ds.RepeatClass[i])
		c.Category = classify.Repeat(ds.RepeatClass[i])
		return c
	}}
)

func speciesColumn(name string) Descriptor {
	return Descriptor{name, "<i>" + model.SpeciesLabel(name) + "</i>", GroupSpecies, func(ds *model.Dataset, i int) Cell {
		v := ds.SpeciesAt(name, i)
		return Cell{Text: v.String(), Known: v.Known(), Category: classify.Species(v)}
	}}
}

func tissueColumn(name string) Descriptor {
	return Descriptor{name, name, GroupTissue, func(ds *model.Dataset, i int) Cell {
		l := ds.TissueAt(name, i)
		return Cell{Text: l.Display(), Known: l.Known(), Category: classify.Tissue(l)}
	}}
}

// Mandatory returns the columns shown regardless of visibility.
func Mandatory() []Descriptor {
	return []Descriptor{
		idColumn, conservationColumn, expressionColumn, structureColumn,
		familyMirGeneDBColumn, familyMirBaseColumn, hsaColumn, repeatColumn,
	}
}

// Columns returns the ordered, de-duplicated column list for vis. Species
// and tissues the dataset does not carry are skipped.
func Columns(ds *model.Dataset, vis Visibility) []Descriptor {
	var species, tissues []Descriptor
	for _, s := range vis.Species {
		if col, ok := ds.SpeciesColumn(s); ok {
			species = append(species, speciesColumn(col))
		}
	}
	for _, t := range vis.Tissues {
		if ds.HasTissue(t) {
			tissues = append(tissues, tissueColumn(t))
		}
	}

	ordered := []Descriptor{idColumn, conservationColumn}
	ordered = append(ordered, species...)
	ordered = append(ordered, expressionColumn)
	ordered = append(ordered, tissues...)
	ordered = append(ordered, structureColumn)
	if vis.ShowClasses {
		ordered = append(ordered, classMirBaseColumn, classMirGeneDBColumn)
	}
	ordered = append(ordered, familyMirGeneDBColumn, familyMirBaseColumn, hsaColumn, repeatColumn)

	seen := make(map[string]bool, len(ordered))
	out := ordered[:0]
	for _, d := range ordered {
		if seen[d.Key] {
			continue
		}
		seen[d.Key] = true
		out = append(out, d)
	}
	if len(out) == 0 {
		return Mandatory()
	}
	return out
}

// Project builds the table for the given rows.
func Project(ds *model.Dataset, rows []int, cols []Descriptor) Table {
	t := Table{
		Columns: make([]Column, len(cols)),
		Rows:    make([][]Cell, 0, len(rows)),
	}
	for j, d := range cols {
		t.Columns[j] = Column{Key: d.Key, Label: d.Label, Group: d.Group}
	}
	for _, i := range rows {
		row := make([]Cell, len(cols))
		for j, d := range cols {
			row[j] = d.Value(ds, i)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

var markup = regexp.MustCompile(`<.*?>`)

// PlainLabel strips markup from a column label.
func PlainLabel(label string) string {
	return markup.ReplaceAllString(label, "")
}
