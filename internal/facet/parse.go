package facet

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/mirbrowse/server/internal/model"
)

// Query parameter names accepted by ParseQuery.
const (
	ParamSearch         = "search"
	ParamConservation   = "conservation"
	ParamExpression     = "expression"
	ParamStructure      = "structure"
	ParamHsa            = "hsa"
	ParamFamily         = "family"
	ParamRepeat         = "repeat"
	ParamDatabase       = "database"
	ParamClass          = "class"
	ParamFoundIn        = "found_in"
	ParamNotFoundIn     = "not_found_in"
	ParamStability      = "stability"
	ParamExpressedIn    = "expressed_in"
	ParamNotExpressedIn = "not_expressed_in"
)

var (
	passAliases = aliasTable(map[PassOption][]string{
		Passed:    {"passed", "pass", "true"},
		NotPassed: {"not passed", "not_passed", "failed", "false"},
	})
	hsaAliases = aliasTable(map[HsaOption][]string{
		OnlySpecific: {"only hsa-specific", "only_specific", "specific", "yes"},
		NotSpecific:  {"not hsa-specific", "not_specific", "no"},
	})
	familyAliases = aliasTable(map[FamilyOption][]string{
		SingleMirBase:     {"single miRNAs – miRBase", "single_mirbase"},
		SingleMirGeneDB:   {"single miRNAs – MirGeneDB", "single_mirgenedb"},
		InFamilyMirBase:   {"miRNAs in family – miRBase", "family_mirbase", "in_family_mirbase"},
		InFamilyMirGeneDB: {"miRNAs in family – MirGeneDB", "family_mirgenedb", "in_family_mirgenedb"},
	})
	databaseAliases = aliasTable(map[DatabaseChoice][]string{
		ShowAll:       {"show all", "show_all", "all"},
		InBoth:        {"in both", "in_both", "both"},
		OnlyInPrimary: {"only in miRBase", "only_in_primary", "only_in_mirbase", "primary"},
	})
	stabilityAliases = aliasTable(map[StabilityOption][]string{
		Stable:   {"stable"},
		Unstable: {"unstable"},
	})
)

func canon(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", " ", "–", "-", "—", "-").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

func aliasTable[T ~string](src map[T][]string) map[string]T {
	out := make(map[string]T)
	for opt, aliases := range src {
		out[canon(string(opt))] = opt
		for _, a := range aliases {
			out[canon(a)] = opt
		}
	}
	return out
}

func lookupAll[T ~string](table map[string]T, raw []string, facet string) ([]T, error) {
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		opt, ok := table[canon(r)]
		if !ok {
			return nil, fmt.Errorf("unknown %s option %q", facet, r)
		}
		if !contains(out, opt) {
			out = append(out, opt)
		}
	}
	return out, nil
}

// ParseQuery builds a Config from URL query parameters. Multi-valued facets
// accept repeated parameters, a JSON array or a comma-separated list.
func ParseQuery(q url.Values) (Config, error) {
	var (
		c   Config
		err error
	)
	c.Search = searchTerm(q.Get(ParamSearch))

	if c.Conservation, err = lookupAll(passAliases, ListParam(q, ParamConservation), ParamConservation); err != nil {
		return Config{}, err
	}
	if c.Expression, err = lookupAll(passAliases, ListParam(q, ParamExpression), ParamExpression); err != nil {
		return Config{}, err
	}
	if c.Structure, err = lookupAll(passAliases, ListParam(q, ParamStructure), ParamStructure); err != nil {
		return Config{}, err
	}
	if c.Hsa, err = lookupAll(hsaAliases, ListParam(q, ParamHsa), ParamHsa); err != nil {
		return Config{}, err
	}
	if c.Family, err = lookupAll(familyAliases, ListParam(q, ParamFamily), ParamFamily); err != nil {
		return Config{}, err
	}
	if c.Stability, err = lookupAll(stabilityAliases, ListParam(q, ParamStability), ParamStability); err != nil {
		return Config{}, err
	}
	if raw := strings.TrimSpace(q.Get(ParamDatabase)); raw != "" {
		choice, ok := databaseAliases[canon(raw)]
		if !ok {
			return Config{}, fmt.Errorf("unknown %s option %q", ParamDatabase, raw)
		}
		c.Database = choice
	}

	c.RepeatClasses = ListParam(q, ParamRepeat)
	c.Classes = ListParam(q, ParamClass)
	c.FoundIn = ListParam(q, ParamFoundIn)
	c.NotFoundIn = ListParam(q, ParamNotFoundIn)
	c.ExpressedIn = ListParam(q, ParamExpressedIn)
	c.NotExpressedIn = ListParam(q, ParamNotExpressedIn)
	return c, nil
}

// ParseJSON decodes a Config body and canonicalizes its enum options, so
// aliases accepted by ParseQuery are accepted here too.
func ParseJSON(data []byte) (Config, error) {
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("invalid facet configuration: %w", err)
	}
	var err error
	if c.Conservation, err = lookupAll(passAliases, toStrings(c.Conservation), ParamConservation); err != nil {
		return Config{}, err
	}
	if c.Expression, err = lookupAll(passAliases, toStrings(c.Expression), ParamExpression); err != nil {
		return Config{}, err
	}
	if c.Structure, err = lookupAll(passAliases, toStrings(c.Structure), ParamStructure); err != nil {
		return Config{}, err
	}
	if c.Hsa, err = lookupAll(hsaAliases, toStrings(c.Hsa), ParamHsa); err != nil {
		return Config{}, err
	}
	if c.Family, err = lookupAll(familyAliases, toStrings(c.Family), ParamFamily); err != nil {
		return Config{}, err
	}
	if c.Stability, err = lookupAll(stabilityAliases, toStrings(c.Stability), ParamStability); err != nil {
		return Config{}, err
	}
	if c.Database != "" {
		choice, ok := databaseAliases[canon(string(c.Database))]
		if !ok {
			return Config{}, fmt.Errorf("unknown %s option %q", ParamDatabase, c.Database)
		}
		c.Database = choice
	}
	c.Search = searchTerm(c.Search)
	return c, nil
}

// searchTerm keeps the term as typed; only a blank term clears the search.
func searchTerm(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

// ListParam reads a multi-valued parameter. An absent or empty parameter
// yields nil, meaning no selection.
func ListParam(q url.Values, name string) []string {
	rawValues := q[name]
	if len(rawValues) == 0 {
		return nil
	}

	// Repeated query parameters: ?repeat=LINE&repeat=SINE
	if len(rawValues) > 1 {
		return cleanList(rawValues)
	}

	raw := strings.TrimSpace(rawValues[0])
	if raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, "[") {
		var vals []string
		if err := json.Unmarshal([]byte(raw), &vals); err == nil {
			return cleanList(vals)
		}
		// Fall through to comma-separated parsing for tolerance.
	}
	return cleanList(strings.Split(raw, ","))
}

func cleanList(vals []string) []string {
	var out []string
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v != "" && !contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// Resolve maps species display labels ("P. troglodytes") to column names and
// drops duplicates. Names it cannot resolve are kept as given; the predicates
// read absent columns as entirely Unknown.
func Resolve(c Config, ds *model.Dataset) Config {
	species := func(in []string) []string {
		if len(in) == 0 {
			return nil
		}
		out := make([]string, 0, len(in))
		for _, s := range in {
			col, ok := ds.SpeciesColumn(s)
			if !ok {
				col = s
			}
			if !contains(out, col) {
				out = append(out, col)
			}
		}
		return out
	}
	c.FoundIn = species(c.FoundIn)
	c.NotFoundIn = species(c.NotFoundIn)
	return c
}
