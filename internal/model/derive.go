package model

import "strings"

// ConservationCount counts species with evidence either way. With no species
// configured the count is Unknown rather than zero.
func ConservationCount(species []TriState) Count {
	if len(species) == 0 {
		return Count{}
	}
	n := 0
	for _, s := range species {
		if s.Known() {
			n++
		}
	}
	return Count{N: n, Valid: true}
}

// ExpressionCount counts tissues expressed at or above ExpressionThreshold.
// Unknown levels are skipped; with no tissues configured the count is Unknown.
func ExpressionCount(levels []Level) Count {
	if len(levels) == 0 {
		return Count{}
	}
	n := 0
	for _, l := range levels {
		if l.Expressed() {
			n++
		}
	}
	return Count{N: n, Valid: true}
}

// StructureDisplay formats the miRBase/MirGeneDB class pair as "A/B", using "-"
// for missing or placeholder codes.
func StructureDisplay(classA, classB string) string {
	return classOrDash(classA) + "/" + classOrDash(classB)
}

func classOrDash(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || v == NotInDatabase || v == "-" {
		return "-"
	}
	return v
}

// FamilyDisplay returns the family name when the pre-miRNA belongs to a family
// and a name is recorded; otherwise Unknown (empty). It never shows "No".
func FamilyDisplay(flag Flag, name string) string {
	if flag != Yes {
		return ""
	}
	return strings.TrimSpace(name)
}

// Derive fills the derived columns. It is called once after normalization.
func (d *Dataset) Derive() {
	n := d.Len()
	d.ConservationCount = make([]Count, n)
	d.ExpressionCount = make([]Count, n)
	d.StructureDisplay = make([]string, n)
	d.FamilyDisplayMirBase = make([]string, n)
	d.FamilyDisplayMirGeneDB = make([]string, n)

	species := make([]TriState, len(d.SpeciesNames))
	levels := make([]Level, len(d.TissueNames))
	for i := 0; i < n; i++ {
		for j, s := range d.SpeciesNames {
			species[j] = d.Species[s][i]
		}
		for j, t := range d.TissueNames {
			levels[j] = d.Tissues[t][i]
		}
		d.ConservationCount[i] = ConservationCount(species)
		d.ExpressionCount[i] = ExpressionCount(levels)
		d.StructureDisplay[i] = StructureDisplay(d.ClassMirBase[i], d.ClassMirGeneDB[i])
		d.FamilyDisplayMirBase[i] = FamilyDisplay(d.InFamilyMirBase[i], d.FamilyNameMirBase[i])
		d.FamilyDisplayMirGeneDB[i] = FamilyDisplay(d.InFamilyMirGeneDB[i], d.FamilyNameMirGeneDB[i])
	}
}
