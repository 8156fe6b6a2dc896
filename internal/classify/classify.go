// Package classify maps cell values to the semantic categories used by
// presentation. Filtering never consults these categories.
package classify

import (
	"strings"

	"github.com/mirbrowse/server/internal/model"
)

// Category is a presentation label for a cell.
type Category string

const (
	None Category = "NONE"

	Passed    Category = "PASSED"
	NotPassed Category = "NOT_PASSED"

	InFamily Category = "IN_FAMILY"
	Single   Category = "SINGLE"

	SpeciesTrue    Category = "TRUE"
	SpeciesFalse   Category = "FALSE"
	SpeciesUnknown Category = "UNKNOWN"

	High Category = "HIGH"
	Low  Category = "LOW"

	NoRepeat Category = "NO_REPEAT"
	Other    Category = "OTHER"

	ClassR Category = "CLASS_R"
	ClassD Category = "CLASS_D"
	ClassI Category = "CLASS_I"
	ClassS Category = "CLASS_S"

	HsaYes Category = "HSA_SPECIFIC"
	HsaNo  Category = "NOT_HSA_SPECIFIC"
)

// PassFail classifies a pass/fail field.
func PassFail(v model.TriState) Category {
	switch v {
	case model.True:
		return Passed
	case model.False:
		return NotPassed
	}
	return None
}

// Family classifies a family membership flag.
func Family(f model.Flag) Category {
	switch f {
	case model.Yes:
		return InFamily
	case model.No:
		return Single
	}
	return None
}

// Species classifies a species presence value. Species cells are never NONE.
func Species(v model.TriState) Category {
	switch v {
	case model.True:
		return SpeciesTrue
	case model.False:
		return SpeciesFalse
	}
	return SpeciesUnknown
}

// Tissue classifies an expression level against model.ExpressionThreshold.
func Tissue(l model.Level) Category {
	switch {
	case l.Expressed():
		return High
	case l.Silent():
		return Low
	}
	return None
}

// Repeat classifies a repeat label; only the literal "no repeat" is NO_REPEAT.
func Repeat(label string) Category {
	label = strings.TrimSpace(label)
	if label == "" {
		return None
	}
	if strings.EqualFold(label, "no repeat") {
		return NoRepeat
	}
	return Other
}

// Class classifies a single-letter database class code.
func Class(code string) Category {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "R":
		return ClassR
	case "D":
		return ClassD
	case "I":
		return ClassI
	case "S":
		return ClassS
	}
	return None
}

// Hsa classifies the hsa-specificity flag.
func Hsa(f model.Flag) Category {
	switch f {
	case model.Yes:
		return HsaYes
	case model.No:
		return HsaNo
	}
	return None
}
