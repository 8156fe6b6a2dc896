package facet

import (
	"encoding/json"
	"slices"
)

// PassOption is a choice of the conservation, expression and structure facets.
type PassOption string

const (
	Passed    PassOption = "PASSED"
	NotPassed PassOption = "NOT PASSED"
)

// HsaOption is a choice of the hsa-specificity facet.
type HsaOption string

const (
	OnlySpecific HsaOption = "Only hsa-specific"
	NotSpecific  HsaOption = "Not hsa-specific"
)

// FamilyOption is a choice of the family facet.
type FamilyOption string

const (
	SingleMirBase     FamilyOption = "Single miRNAs – miRBase"
	SingleMirGeneDB   FamilyOption = "Single miRNAs – MirGeneDB"
	InFamilyMirBase   FamilyOption = "miRNAs in family – miRBase"
	InFamilyMirGeneDB FamilyOption = "miRNAs in family – MirGeneDB"
)

// DatabaseChoice is the single choice of the database-membership facet.
type DatabaseChoice string

const (
	ShowAll       DatabaseChoice = "Show all"
	InBoth        DatabaseChoice = "In both"
	OnlyInPrimary DatabaseChoice = "Only in miRBase"
)

// StabilityOption narrows the found-in facet to one species value.
type StabilityOption string

const (
	Stable   StabilityOption = "Stable"
	Unstable StabilityOption = "Unstable"
)

// Option lists, in display order.
var (
	PassOptions      = []PassOption{Passed, NotPassed}
	HsaOptions       = []HsaOption{OnlySpecific, NotSpecific}
	FamilyOptions    = []FamilyOption{SingleMirBase, SingleMirGeneDB, InFamilyMirBase, InFamilyMirGeneDB}
	DatabaseChoices  = []DatabaseChoice{ShowAll, InBoth, OnlyInPrimary}
	StabilityOptions = []StabilityOption{Stable, Unstable}
)

// Config is the user's current selection for every facet. A zero Config
// filters nothing. The engine reads it and never modifies it.
type Config struct {
	Search string `json:"search,omitempty"`

	Conservation []PassOption   `json:"conservation,omitempty"`
	Expression   []PassOption   `json:"expression,omitempty"`
	Structure    []PassOption   `json:"structure,omitempty"`
	Hsa          []HsaOption    `json:"hsa,omitempty"`
	Family       []FamilyOption `json:"family,omitempty"`

	RepeatClasses []string       `json:"repeat_classes,omitempty"`
	Database      DatabaseChoice `json:"database,omitempty"`
	Classes       []string       `json:"classes,omitempty"`

	FoundIn    []string          `json:"found_in,omitempty"`
	NotFoundIn []string          `json:"not_found_in,omitempty"`
	Stability  []StabilityOption `json:"stability,omitempty"`

	ExpressedIn    []string `json:"expressed_in,omitempty"`
	NotExpressedIn []string `json:"not_expressed_in,omitempty"`
}

// Key returns a canonical representation of c, independent of selection
// order. Selections that filter nothing are dropped.
func (c Config) Key() string {
	k := Config{
		Search:         c.Search,
		Conservation:   sortedCopy(c.Conservation),
		Expression:     sortedCopy(c.Expression),
		Structure:      sortedCopy(c.Structure),
		Hsa:            sortedCopy(c.Hsa),
		Family:         sortedCopy(c.Family),
		RepeatClasses:  sortedCopy(c.RepeatClasses),
		Classes:        sortedCopy(c.Classes),
		FoundIn:        sortedCopy(c.FoundIn),
		NotFoundIn:     sortedCopy(c.NotFoundIn),
		ExpressedIn:    sortedCopy(c.ExpressedIn),
		NotExpressedIn: sortedCopy(c.NotExpressedIn),
	}
	if c.Database != ShowAll {
		k.Database = c.Database
	}
	if len(c.FoundIn) > 0 {
		k.Stability = sortedCopy(c.Stability)
	}
	// Marshalling strings and string slices cannot fail.
	data, _ := json.Marshal(k)
	return string(data)
}

func sortedCopy[T ~string](vals []T) []T {
	if len(vals) == 0 {
		return nil
	}
	out := append([]T(nil), vals...)
	slices.Sort(out)
	return out
}

func toStrings[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

func contains[T comparable](vals []T, v T) bool {
	for _, x := range vals {
		if x == v {
			return true
		}
	}
	return false
}
