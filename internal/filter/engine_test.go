package filter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirbrowse/server/internal/data/annot"
	"github.com/mirbrowse/server/internal/facet"
	"github.com/mirbrowse/server/internal/model"
)

var schema = model.Schema{
	Species: []string{"X_laevis", "Pan_troglodytes"},
	Tissues: []string{"heart", "liver"},
}

const table = `miRNA,Conservation,X_laevis,Pan_troglodytes,Expression,heart,liver,Structure,Class_miRBase,Class_MirGeneDB,miRBase family,MirGeneDB family,family_name_mirbase,hsa-specificity,Repeat_Class,sequence
rec-1,TRUE,TRUE,TRUE,TRUE,2.0,1.0,TRUE,R,R,YES,YES,,Yes,LINE,acgu
rec-2,FALSE,FALSE,,FALSE,1.0,2.0,FALSE,D,-,NO,NO,,No,no repeat,
rec-3,,,,,,,,,,,,,,,
`

func load(t *testing.T) *model.Dataset {
	t.Helper()
	raw, err := annot.Read(strings.NewReader(table), ',')
	require.NoError(t, err)
	return annot.Normalize(raw, schema)
}

func ids(ds *model.Dataset, r Result) []string {
	out := make([]string, 0, len(r.Indices))
	for _, i := range r.Indices {
		out = append(out, ds.IDs[i])
	}
	return out
}

func TestApply_EmptyConfigKeepsEverything(t *testing.T) {
	ds := load(t)
	r := Apply(facet.Config{}, ds)
	assert.Equal(t, 3, r.Count)
	assert.Equal(t, 3, r.Total)
	assert.Empty(t, ActiveFacets(facet.Config{}))
}

func TestApply_RepeatScenario(t *testing.T) {
	ds := load(t)
	r := Apply(facet.Config{RepeatClasses: []string{"LINE"}}, ds)
	assert.Equal(t, []string{"rec-1"}, ids(ds, r))
}

func TestApply_FoundInAndStability(t *testing.T) {
	ds := load(t)
	cfg := facet.Config{FoundIn: []string{"X_laevis"}}
	assert.Equal(t, []string{"rec-1", "rec-2"}, ids(ds, Apply(cfg, ds)))

	cfg.Stability = []facet.StabilityOption{facet.Stable}
	assert.Equal(t, []string{"rec-1"}, ids(ds, Apply(cfg, ds)))

	// Species given by display label resolve to the same column.
	byLabel := facet.Config{FoundIn: []string{"X. laevis"}, Stability: []facet.StabilityOption{facet.Stable}}
	assert.Equal(t, []string{"rec-1"}, ids(ds, Apply(byLabel, ds)))
}

func TestApply_StabilityNeedsFoundIn(t *testing.T) {
	ds := load(t)
	r := Apply(facet.Config{Stability: []facet.StabilityOption{facet.Unstable}}, ds)
	assert.Equal(t, 3, r.Count)
}

func TestApply_TissueScenario(t *testing.T) {
	ds := load(t)
	assert.Empty(t, ids(ds, Apply(facet.Config{ExpressedIn: []string{"heart", "liver"}}, ds)))
	assert.Equal(t, []string{"rec-1"}, ids(ds, Apply(facet.Config{ExpressedIn: []string{"heart"}}, ds)))
	assert.Equal(t, []string{"rec-1"}, ids(ds, Apply(facet.Config{NotExpressedIn: []string{"liver"}}, ds)))
}

func TestApply_FamilyDisplayScenario(t *testing.T) {
	ds := load(t)
	assert.Equal(t, model.Yes, ds.InFamilyMirBase[0])
	assert.Equal(t, "", ds.FamilyDisplayMirBase[0])
}

func TestApply_InertPassFacets(t *testing.T) {
	ds := load(t)
	both := []facet.PassOption{facet.Passed, facet.NotPassed}
	for _, cfg := range []facet.Config{
		{Conservation: both},
		{Expression: both},
		{Structure: both},
	} {
		assert.Equal(t, Apply(facet.Config{}, ds).Indices, Apply(cfg, ds).Indices)
	}
}

func TestApply_CombinesAcrossFacets(t *testing.T) {
	ds := load(t)
	cfg := facet.Config{
		Conservation: []facet.PassOption{facet.Passed},
		Hsa:          []facet.HsaOption{facet.NotSpecific},
	}
	r := Apply(cfg, ds)
	assert.Equal(t, 0, r.Count, "an empty result is a valid outcome")
	assert.Equal(t, 3, r.Total)
	assert.Equal(t, []string{"conservation", "hsa"}, ActiveFacets(cfg))
}

func TestApply_SearchRunsLast(t *testing.T) {
	ds := load(t)
	cfg := facet.Config{Search: "rec", Database: facet.OnlyInPrimary}
	assert.Equal(t, []string{"rec-2"}, ids(ds, Apply(cfg, ds)))
	assert.Equal(t, []string{"database", "search"}, ActiveFacets(cfg))
}

func TestApply_Idempotent(t *testing.T) {
	ds := load(t)
	cfg := facet.Config{FoundIn: []string{"X. laevis"}, Search: "R"}
	before := append([]string(nil), cfg.FoundIn...)

	first := Apply(cfg, ds)
	second := Apply(cfg, ds)
	assert.Equal(t, first, second)
	assert.Equal(t, before, cfg.FoundIn)
	assert.Equal(t, 3, ds.Len())
}

func TestApply_SearchMatchesSourceText(t *testing.T) {
	ds := load(t)
	assert.Equal(t, []string{"rec-1", "rec-2"}, ids(ds, Apply(facet.Config{Search: "2.0"}, ds)))
	assert.Equal(t, []string{"rec-1"}, ids(ds, Apply(facet.Config{Search: "rec-1"}, ds)))
	// Surrounding spaces are part of the term.
	assert.Empty(t, Apply(facet.Config{Search: "rec-1 "}, ds).Indices)
}
