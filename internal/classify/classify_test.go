package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mirbrowse/server/internal/model"
)

func TestPassFail(t *testing.T) {
	assert.Equal(t, Passed, PassFail(model.True))
	assert.Equal(t, NotPassed, PassFail(model.False))
	assert.Equal(t, None, PassFail(model.Unknown))
}

func TestFamily(t *testing.T) {
	assert.Equal(t, InFamily, Family(model.Yes))
	assert.Equal(t, Single, Family(model.No))
	assert.Equal(t, None, Family(model.FlagUnknown))
}

func TestSpecies(t *testing.T) {
	assert.Equal(t, SpeciesTrue, Species(model.True))
	assert.Equal(t, SpeciesFalse, Species(model.False))
	assert.Equal(t, SpeciesUnknown, Species(model.Unknown))
}

func TestTissue(t *testing.T) {
	assert.Equal(t, High, Tissue(model.LevelOf(1.5)))
	assert.Equal(t, Low, Tissue(model.LevelOf(1.49)))
	assert.Equal(t, Low, Tissue(model.LevelOf(0)))
	assert.Equal(t, None, Tissue(model.Level{}))
}

func TestRepeat(t *testing.T) {
	assert.Equal(t, NoRepeat, Repeat("no repeat"))
	assert.Equal(t, NoRepeat, Repeat("No Repeat"))
	assert.Equal(t, Other, Repeat("no repeats"))
	assert.Equal(t, Other, Repeat("LINE"))
	assert.Equal(t, None, Repeat(""))
}

func TestClass(t *testing.T) {
	for code, want := range map[string]Category{"R": ClassR, "d": ClassD, "I": ClassI, "S": ClassS, "X": None, "": None, model.NotInDatabase: None} {
		assert.Equal(t, want, Class(code), "code %q", code)
	}
}
