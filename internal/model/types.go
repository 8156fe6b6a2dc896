// Package model defines the pre-miRNA annotation record set and its derived columns.
package model

import (
	"strconv"
	"strings"
)

// ExpressionThreshold is the tissue magnitude at or above which a pre-miRNA
// counts as expressed.
const ExpressionThreshold = 1.5

// NotInDatabase is the class code recorded when a pre-miRNA is absent from the
// secondary (MirGeneDB) database.
const NotInDatabase = "—"

// TriState is a three-valued boolean. The zero value is Unknown.
type TriState uint8

const (
	Unknown TriState = iota
	True
	False
)

// Known reports whether t carries evidence either way.
func (t TriState) Known() bool { return t != Unknown }

// String returns the upper-case token used by the source table.
func (t TriState) String() string {
	switch t {
	case True:
		return "TRUE"
	case False:
		return "FALSE"
	}
	return ""
}

// Flag is a Yes/No/Unknown membership marker.
type Flag uint8

const (
	FlagUnknown Flag = iota
	Yes
	No
)

func (f Flag) String() string {
	switch f {
	case Yes:
		return "Yes"
	case No:
		return "No"
	}
	return ""
}

// Level is an optional tissue expression magnitude. Raw keeps the cell text
// it was parsed from, if any.
type Level struct {
	Value float64
	Valid bool
	Raw   string
}

// LevelOf returns a known level.
func LevelOf(v float64) Level { return Level{Value: v, Valid: true} }

// Known reports whether the level holds a number.
func (l Level) Known() bool { return l.Valid }

// Expressed reports whether the level is known and at or above the threshold.
func (l Level) Expressed() bool { return l.Valid && l.Value >= ExpressionThreshold }

// Silent reports whether the level is known and below the threshold.
// Unknown levels are neither expressed nor silent.
func (l Level) Silent() bool { return l.Valid && l.Value < ExpressionThreshold }

// String returns the source text of the level, or the shortest decimal form
// when it was not parsed from a cell.
func (l Level) String() string {
	if !l.Valid {
		return ""
	}
	if l.Raw != "" {
		return l.Raw
	}
	return strconv.FormatFloat(l.Value, 'f', -1, 64)
}

// Display formats the level with two decimals.
func (l Level) Display() string {
	if !l.Valid {
		return ""
	}
	return strconv.FormatFloat(l.Value, 'f', 2, 64)
}

// Count is an optional non-negative integer.
type Count struct {
	N     int
	Valid bool
}

func (c Count) String() string {
	if !c.Valid {
		return ""
	}
	return strconv.Itoa(c.N)
}

// SpeciesLabel turns a "Genus_species" column name into "G. species".
func SpeciesLabel(col string) string {
	genus, species, ok := strings.Cut(col, "_")
	if !ok || genus == "" {
		return col
	}
	return genus[:1] + ". " + species
}
