package model

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConservationCount(t *testing.T) {
	tests := []struct {
		name    string
		species []TriState
		want    Count
	}{
		{"no species", nil, Count{}},
		{"all unknown", []TriState{Unknown, Unknown}, Count{N: 0, Valid: true}},
		{"mixed", []TriState{True, False, Unknown}, Count{N: 2, Valid: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConservationCount(tt.species))
		})
	}
}

func TestExpressionCount(t *testing.T) {
	got := ExpressionCount([]Level{LevelOf(2.0), LevelOf(1.5), LevelOf(1.49), {}})
	assert.Equal(t, Count{N: 2, Valid: true}, got)
	assert.False(t, ExpressionCount(nil).Valid)
}

func TestStructureDisplay(t *testing.T) {
	pattern := regexp.MustCompile(`^[^/]+/[^/]+$`)
	cases := map[[2]string]string{
		{"R", "R"}:           "R/R",
		{"D", NotInDatabase}: "D/-",
		{"", ""}:             "-/-",
		{"I", "-"}:           "I/-",
		{" S ", "S"}:         "S/S",
	}
	for in, want := range cases {
		got := StructureDisplay(in[0], in[1])
		assert.Equal(t, want, got)
		assert.Regexp(t, pattern, got)
		assert.NotContains(t, got, NotInDatabase)
	}
}

func TestFamilyDisplay(t *testing.T) {
	assert.Equal(t, "mir-17", FamilyDisplay(Yes, " mir-17 "))
	assert.Equal(t, "", FamilyDisplay(Yes, ""), "flag Yes without a name stays unknown")
	assert.Equal(t, "", FamilyDisplay(No, "mir-17"))
	assert.Equal(t, "", FamilyDisplay(FlagUnknown, "mir-17"))
}

func TestDatasetDerive(t *testing.T) {
	schema := Schema{Species: []string{"Pan_troglodytes", "Mus_musculus"}, Tissues: []string{"heart", "liver"}}
	ds := NewDataset(schema, 2)
	ds.IDs[0], ds.IDs[1] = "hsa-mir-1", "hsa-mir-2"
	ds.Species["Pan_troglodytes"][0] = True
	ds.Species["Mus_musculus"][0] = False
	ds.Tissues["heart"][0] = LevelOf(2)
	ds.Tissues["liver"][0] = LevelOf(1)
	ds.ClassMirBase[0] = "R"
	ds.ClassMirGeneDB[0] = NotInDatabase
	ds.InFamilyMirBase[1] = Yes

	ds.Derive()

	require.Len(t, ds.ConservationCount, 2)
	assert.Equal(t, Count{N: 2, Valid: true}, ds.ConservationCount[0])
	assert.Equal(t, Count{N: 0, Valid: true}, ds.ConservationCount[1])
	assert.Equal(t, Count{N: 1, Valid: true}, ds.ExpressionCount[0])
	assert.Equal(t, "R/-", ds.StructureDisplay[0])
	assert.Equal(t, "-/-", ds.StructureDisplay[1])
	assert.Equal(t, "", ds.FamilyDisplayMirBase[1])

	for i := 0; i < ds.Len(); i++ {
		c := ds.ConservationCount[i]
		assert.True(t, c.N >= 0 && c.N <= len(ds.SpeciesNames))
	}
}

func TestDatasetDeriveWithoutSpecies(t *testing.T) {
	ds := NewDataset(Schema{}, 1)
	ds.Derive()
	assert.False(t, ds.ConservationCount[0].Valid)
	assert.False(t, ds.ExpressionCount[0].Valid)
}

func TestSpeciesLabel(t *testing.T) {
	assert.Equal(t, "P. troglodytes", SpeciesLabel("Pan_troglodytes"))
	assert.Equal(t, "X. tropicalis", SpeciesLabel("Xenopus_tropicalis"))
	assert.Equal(t, "human", SpeciesLabel("human"))
}
