package annot

import (
	"math"
	"strconv"
	"strings"

	"github.com/mirbrowse/server/internal/model"
)

// placeholders are read as Unknown in every column.
var placeholders = map[string]struct{}{
	"nan": {}, "NaN": {}, "NAN": {}, "-": {}, "": {},
}

// Normalize turns a raw table into a dataset holding every schema column.
// Missing columns and unrecognized values become Unknown; it never fails.
// Derived columns are computed before returning.
func Normalize(raw *RawTable, schema model.Schema) *model.Dataset {
	n := len(raw.Rows)
	ds := model.NewDataset(schema, n)

	text := func(i int, col string) string {
		v, _ := raw.Value(i, col)
		return clean(v)
	}

	for i := 0; i < n; i++ {
		ds.IDs[i] = text(i, model.ColID)

		for _, s := range schema.Species {
			ds.Species[s][i] = ParseSpecies(text(i, s))
		}
		for _, t := range schema.Tissues {
			ds.Tissues[t][i] = ParseLevel(text(i, t))
		}

		ds.Conservation[i] = ParsePass(text(i, model.ColConservation))
		ds.Expression[i] = ParsePass(text(i, model.ColExpression))
		ds.Structure[i] = ParsePass(text(i, model.ColStructure))

		// An absent miRBase family flag means a single pre-miRNA.
		ds.InFamilyMirBase[i] = ParseFlag(text(i, model.ColFamilyMirBase))
		if ds.InFamilyMirBase[i] == model.FlagUnknown && text(i, model.ColFamilyMirBase) == "" {
			ds.InFamilyMirBase[i] = model.No
		}
		ds.InFamilyMirGeneDB[i] = ParseFlag(text(i, model.ColFamilyMirGeneDB))
		ds.FamilyNameMirBase[i] = text(i, model.ColFamilyNameMirBase)
		ds.FamilyNameMirGeneDB[i] = text(i, model.ColFamilyNameMirGeneDB)

		ds.ClassMirBase[i] = text(i, model.ColClassMirBase)
		ds.ClassMirGeneDB[i] = secondaryClass(text(i, model.ColClassMirGeneDB))

		ds.RepeatClass[i] = ShortenRepeat(text(i, model.ColRepeatClass))
		ds.HsaSpecific[i] = ParseFlag(text(i, model.ColHsaSpecificity))
		ds.Sequence[i] = text(i, model.ColSequence)
	}

	ds.Derive()
	return ds
}

// clean trims v and maps placeholder tokens to the empty Unknown marker.
func clean(v string) string {
	v = strings.TrimSpace(v)
	if _, ok := placeholders[v]; ok {
		return ""
	}
	return v
}

// ParseSpecies maps the heterogeneous species tokens onto a TriState.
func ParseSpecies(v string) model.TriState {
	switch strings.ToUpper(clean(v)) {
	case "TRUE", "1", "1.0":
		return model.True
	case "FALSE", "0", "0.0":
		return model.False
	}
	return model.Unknown
}

// ParsePass reads a TRUE/FALSE pass/fail token.
func ParsePass(v string) model.TriState {
	switch strings.ToUpper(clean(v)) {
	case "TRUE":
		return model.True
	case "FALSE":
		return model.False
	}
	return model.Unknown
}

// ParseFlag reads a YES/NO membership token.
func ParseFlag(v string) model.Flag {
	switch strings.ToUpper(clean(v)) {
	case "YES":
		return model.Yes
	case "NO":
		return model.No
	}
	return model.FlagUnknown
}

// ParseLevel reads a non-negative tissue magnitude; anything else is Unknown.
func ParseLevel(v string) model.Level {
	v = clean(v)
	if v == "" {
		return model.Level{}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return model.Level{}
	}
	l := model.LevelOf(f)
	l.Raw = v
	return l
}

// ShortenRepeat keeps the primary repeat token: the text before the first "("
// and then before the first ",", with underscores shown as spaces.
func ShortenRepeat(v string) string {
	v = clean(v)
	if i := strings.Index(v, "("); i >= 0 {
		v = v[:i]
	}
	if i := strings.Index(v, ","); i >= 0 {
		v = v[:i]
	}
	v = strings.TrimSpace(strings.ReplaceAll(v, "_", " "))
	return v
}

func secondaryClass(v string) string {
	if v == "" || strings.EqualFold(v, "NA") {
		return model.NotInDatabase
	}
	return v
}
