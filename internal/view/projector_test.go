package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirbrowse/server/internal/classify"
	"github.com/mirbrowse/server/internal/data/annot"
	"github.com/mirbrowse/server/internal/model"
)

var schema = model.Schema{
	Species: []string{"X_laevis", "Pan_troglodytes"},
	Tissues: []string{"heart", "liver"},
}

const table = `miRNA,Conservation,X_laevis,Pan_troglodytes,Expression,heart,liver,Structure,Class_miRBase,Class_MirGeneDB,miRBase family,MirGeneDB family,family_name_mirbase,family_name_mirgene,hsa-specificity,Repeat_Class
rec-1,TRUE,TRUE,FALSE,TRUE,2.0,1.0,TRUE,R,D,YES,NO,MIR-1,,Yes,LINE
rec-2,FALSE,,,FALSE,,,FALSE,S,,NO,,,,No,no repeat
`

func load(t *testing.T) *model.Dataset {
	t.Helper()
	raw, err := annot.Read(strings.NewReader(table), ',')
	require.NoError(t, err)
	return annot.Normalize(raw, schema)
}

func keys(cols []Descriptor) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Key
	}
	return out
}

func TestColumns_DefaultOrder(t *testing.T) {
	ds := load(t)
	assert.Equal(t, []string{
		model.ColID, model.ColConservation, model.ColExpression, model.ColStructure,
		model.ColFamilyMirGeneDB, model.ColFamilyMirBase, model.ColHsaSpecificity, model.ColRepeatClass,
	}, keys(Columns(ds, Visibility{})))
	assert.Equal(t, keys(Mandatory()), keys(Columns(ds, Visibility{})))
}

func TestColumns_VisibleSpeciesTissuesAndClasses(t *testing.T) {
	ds := load(t)
	cols := Columns(ds, Visibility{
		Species:     []string{"P. troglodytes", "X_laevis", "Pan_troglodytes", "Homo_nowhere"},
		Tissues:     []string{"liver", "liver", "brain"},
		ShowClasses: true,
	})
	assert.Equal(t, []string{
		model.ColID, model.ColConservation, "Pan_troglodytes", "X_laevis",
		model.ColExpression, "liver", model.ColStructure,
		model.ColClassMirBase, model.ColClassMirGeneDB,
		model.ColFamilyMirGeneDB, model.ColFamilyMirBase, model.ColHsaSpecificity, model.ColRepeatClass,
	}, keys(cols))
	assert.Equal(t, "<i>P. troglodytes</i>", cols[2].Label)
	assert.Equal(t, "P. troglodytes", PlainLabel(cols[2].Label))
}

func TestProject_CellsAndCategories(t *testing.T) {
	ds := load(t)
	cols := Columns(ds, Visibility{Species: []string{"X_laevis"}, Tissues: []string{"heart"}, ShowClasses: true})
	tbl := Project(ds, []int{0, 1}, cols)
	require.Len(t, tbl.Rows, 2)
	require.Len(t, tbl.Columns, len(cols))

	cell := func(row int, key string) Cell {
		for j, c := range tbl.Columns {
			if c.Key == key {
				return tbl.Rows[row][j]
			}
		}
		t.Fatalf("column %s not projected", key)
		return Cell{}
	}

	assert.Equal(t, Cell{"rec-1", true, classify.None}, cell(0, model.ColID))
	assert.Equal(t, Cell{"2", true, classify.Passed}, cell(0, model.ColConservation))
	assert.Equal(t, Cell{"TRUE", true, classify.SpeciesTrue}, cell(0, "X_laevis"))
	assert.Equal(t, Cell{"2.00", true, classify.High}, cell(0, "heart"))
	assert.Equal(t, Cell{"R", true, classify.ClassR}, cell(0, model.ColClassMirBase))
	assert.Equal(t, Cell{"MIR-1", true, classify.InFamily}, cell(0, model.ColFamilyMirBase))
	assert.Equal(t, Cell{"", false, classify.Single}, cell(0, model.ColFamilyMirGeneDB))
	assert.Equal(t, Cell{"LINE", true, classify.Other}, cell(0, model.ColRepeatClass))

	assert.Equal(t, Cell{"", false, classify.SpeciesUnknown}, cell(1, "X_laevis"))
	assert.Equal(t, Cell{"", false, classify.None}, cell(1, "heart"))
	assert.Equal(t, Cell{model.NotInDatabase, true, classify.None}, cell(1, model.ColClassMirGeneDB))
	assert.Equal(t, Cell{"No", true, classify.HsaNo}, cell(1, model.ColHsaSpecificity))
	assert.Equal(t, Cell{"no repeat", true, classify.NoRepeat}, cell(1, model.ColRepeatClass))
}

func TestProject_EmptySelection(t *testing.T) {
	ds := load(t)
	tbl := Project(ds, nil, Mandatory())
	assert.Empty(t, tbl.Rows)
	assert.Len(t, tbl.Columns, 8)
}

func TestVisibilityKey(t *testing.T) {
	assert.NotEqual(t,
		Visibility{Tissues: []string{"heart,brain"}}.Key(),
		Visibility{Tissues: []string{"heart", "brain"}}.Key())
	assert.NotEqual(t,
		Visibility{Species: []string{"X_laevis;tissues=heart"}}.Key(),
		Visibility{Species: []string{"X_laevis"}, Tissues: []string{"heart"}}.Key())
	assert.NotEqual(t,
		Visibility{Tissues: []string{"heart", "liver"}}.Key(),
		Visibility{Tissues: []string{"liver", "heart"}}.Key())
	assert.Equal(t,
		Visibility{Species: []string{"X_laevis"}, ShowClasses: true}.Key(),
		Visibility{Species: []string{"X_laevis"}, ShowClasses: true}.Key())
}

func TestProject_TissueTwoDecimals(t *testing.T) {
	ds := load(t)
	tbl := Project(ds, []int{0}, Columns(ds, Visibility{Tissues: []string{"heart", "liver"}}))
	assert.Equal(t, "2.00", tbl.Rows[0][3].Text)
	assert.Equal(t, "1.00", tbl.Rows[0][4].Text)
	// Search and row strings keep the source text.
	assert.Equal(t, "2.0", ds.TissueAt("heart", 0).String())
}
