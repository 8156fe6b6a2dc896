package facet

import (
	"strings"

	"github.com/mirbrowse/server/internal/model"
)

// PassFail filters a TRUE/FALSE column. Selecting nothing or both options is inert.
func PassFail(sel []PassOption, col []model.TriState) Mask {
	wantTrue := contains(sel, Passed)
	wantFalse := contains(sel, NotPassed)
	if wantTrue == wantFalse {
		return All(len(col))
	}
	want := model.True
	if wantFalse {
		want = model.False
	}
	return maskOf(len(col), func(i int) bool { return col[i] == want })
}

// Hsa filters on hsa-specificity. Selecting nothing or both options is inert.
func Hsa(sel []HsaOption, col []model.Flag) Mask {
	wantYes := contains(sel, OnlySpecific)
	wantNo := contains(sel, NotSpecific)
	if wantYes == wantNo {
		return All(len(col))
	}
	want := model.Yes
	if wantNo {
		want = model.No
	}
	return maskOf(len(col), func(i int) bool { return col[i] == want })
}

// Family keeps rows matching any selected option across both databases.
func Family(sel []FamilyOption, ds *model.Dataset) Mask {
	n := ds.Len()
	if len(sel) == 0 {
		return All(n)
	}
	m := make(Mask, n)
	or := func(col []model.Flag, want model.Flag) {
		for i := range m {
			if col[i] == want {
				m[i] = true
			}
		}
	}
	for _, opt := range sel {
		switch opt {
		case SingleMirBase:
			or(ds.InFamilyMirBase, model.No)
		case InFamilyMirBase:
			or(ds.InFamilyMirBase, model.Yes)
		case SingleMirGeneDB:
			or(ds.InFamilyMirGeneDB, model.No)
		case InFamilyMirGeneDB:
			or(ds.InFamilyMirGeneDB, model.Yes)
		}
	}
	return m
}

// OneOf keeps rows whose value exactly matches one of sel. Empty sel is inert.
// It serves both the repeat-class and the class facets.
func OneOf(sel []string, col []string) Mask {
	if len(sel) == 0 {
		return All(len(col))
	}
	set := make(map[string]struct{}, len(sel))
	for _, s := range sel {
		set[s] = struct{}{}
	}
	return maskOf(len(col), func(i int) bool {
		if col[i] == "" {
			return false
		}
		_, ok := set[col[i]]
		return ok
	})
}

// Database filters on presence in the primary and secondary databases.
func Database(choice DatabaseChoice, primary, secondary []string) Mask {
	switch choice {
	case InBoth:
		return maskOf(len(primary), func(i int) bool {
			return primary[i] != "" && primary[i] == secondary[i]
		})
	case OnlyInPrimary:
		return maskOf(len(primary), func(i int) bool {
			return primary[i] != "" && secondary[i] == model.NotInDatabase
		})
	}
	return All(len(primary))
}

// FoundIn keeps rows where every listed species has evidence (True or False).
func FoundIn(species []string, ds *model.Dataset) Mask {
	return maskOf(ds.Len(), func(i int) bool {
		for _, s := range species {
			if !ds.SpeciesAt(s, i).Known() {
				return false
			}
		}
		return true
	})
}

// NotFoundIn keeps rows where every listed species is Unknown.
func NotFoundIn(species []string, ds *model.Dataset) Mask {
	return maskOf(ds.Len(), func(i int) bool {
		for _, s := range species {
			if ds.SpeciesAt(s, i).Known() {
				return false
			}
		}
		return true
	})
}

// Stability keeps rows where every found-in species holds an allowed value:
// True for Stable, False for Unstable. It is inert without found-in species
// or without a stability choice.
func Stability(found []string, sel []StabilityOption, ds *model.Dataset) Mask {
	allowTrue := contains(sel, Stable)
	allowFalse := contains(sel, Unstable)
	if len(found) == 0 || (!allowTrue && !allowFalse) {
		return All(ds.Len())
	}
	return maskOf(ds.Len(), func(i int) bool {
		for _, s := range found {
			switch ds.SpeciesAt(s, i) {
			case model.True:
				if !allowTrue {
					return false
				}
			case model.False:
				if !allowFalse {
					return false
				}
			default:
				return false
			}
		}
		return true
	})
}

// ExpressedIn keeps rows expressed at or above the threshold in every listed tissue.
func ExpressedIn(tissues []string, ds *model.Dataset) Mask {
	return maskOf(ds.Len(), func(i int) bool {
		for _, t := range tissues {
			if !ds.TissueAt(t, i).Expressed() {
				return false
			}
		}
		return true
	})
}

// NotExpressedIn keeps rows with a known level below the threshold in every
// listed tissue. Unknown levels satisfy neither tissue facet.
func NotExpressedIn(tissues []string, ds *model.Dataset) Mask {
	return maskOf(ds.Len(), func(i int) bool {
		for _, t := range tissues {
			if !ds.TissueAt(t, i).Silent() {
				return false
			}
		}
		return true
	})
}

// Search narrows within to rows where term occurs, case-insensitively, in the
// string form of any column. Rows outside within are never inspected.
func Search(term string, ds *model.Dataset, within Mask) Mask {
	out := make(Mask, ds.Len())
	needle := strings.ToLower(term)
	for i := range out {
		if within != nil && !within[i] {
			continue
		}
		if needle == "" {
			out[i] = true
			continue
		}
		for _, c := range ds.RowStrings(i) {
			if c.Value != "" && strings.Contains(strings.ToLower(c.Value), needle) {
				out[i] = true
				break
			}
		}
	}
	return out
}
