// Package filter combines the facet predicates into a single row selection.
package filter

import (
	"github.com/mirbrowse/server/internal/facet"
	"github.com/mirbrowse/server/internal/model"
)

// Result is the outcome of one filter pass.
type Result struct {
	Mask    facet.Mask
	Indices []int
	Count   int
	Total   int
}

// step is one facet of the pipeline. active reports whether the facet has a
// selection; inactive facets are skipped without evaluating the predicate.
type step struct {
	name   string
	active func(c facet.Config) bool
	eval   func(c facet.Config, ds *model.Dataset) facet.Mask
}

// pipeline lists the facets in application order. Search is not part of it:
// it always runs last against the already-narrowed rows.
var pipeline = []step{
	{"conservation",
		func(c facet.Config) bool { return len(c.Conservation) > 0 },
		func(c facet.Config, ds *model.Dataset) facet.Mask { return facet.PassFail(c.Conservation, ds.Conservation) }},
	{"expression",
		func(c facet.Config) bool { return len(c.Expression) > 0 },
		func(c facet.Config, ds *model.Dataset) facet.Mask { return facet.PassFail(c.Expression, ds.Expression) }},
	{"structure",
		func(c facet.Config) bool { return len(c.Structure) > 0 },
		func(c facet.Config, ds *model.Dataset) facet.Mask { return facet.PassFail(c.Structure, ds.Structure) }},
	{"hsa",
		func(c facet.Config) bool { return len(c.Hsa) > 0 },
		func(c facet.Config, ds *model.Dataset) facet.Mask { return facet.Hsa(c.Hsa, ds.HsaSpecific) }},
	{"family",
		func(c facet.Config) bool { return len(c.Family) > 0 },
		func(c facet.Config, ds *model.Dataset) facet.Mask { return facet.Family(c.Family, ds) }},
	{"repeat",
		func(c facet.Config) bool { return len(c.RepeatClasses) > 0 },
		func(c facet.Config, ds *model.Dataset) facet.Mask { return facet.OneOf(c.RepeatClasses, ds.RepeatClass) }},
	{"database",
		func(c facet.Config) bool { return c.Database != "" && c.Database != facet.ShowAll },
		func(c facet.Config, ds *model.Dataset) facet.Mask {
			return facet.Database(c.Database, ds.ClassMirBase, ds.ClassMirGeneDB)
		}},
	{"class",
		func(c facet.Config) bool { return len(c.Classes) > 0 },
		func(c facet.Config, ds *model.Dataset) facet.Mask { return facet.OneOf(c.Classes, ds.ClassMirBase) }},
	{"found_in",
		func(c facet.Config) bool { return len(c.FoundIn) > 0 },
		func(c facet.Config, ds *model.Dataset) facet.Mask { return facet.FoundIn(c.FoundIn, ds) }},
	{"not_found_in",
		func(c facet.Config) bool { return len(c.NotFoundIn) > 0 },
		func(c facet.Config, ds *model.Dataset) facet.Mask { return facet.NotFoundIn(c.NotFoundIn, ds) }},
	{"stability",
		func(c facet.Config) bool { return len(c.FoundIn) > 0 && len(c.Stability) > 0 },
		func(c facet.Config, ds *model.Dataset) facet.Mask { return facet.Stability(c.FoundIn, c.Stability, ds) }},
	{"expressed_in",
		func(c facet.Config) bool { return len(c.ExpressedIn) > 0 },
		func(c facet.Config, ds *model.Dataset) facet.Mask { return facet.ExpressedIn(c.ExpressedIn, ds) }},
	{"not_expressed_in",
		func(c facet.Config) bool { return len(c.NotExpressedIn) > 0 },
		func(c facet.Config, ds *model.Dataset) facet.Mask { return facet.NotExpressedIn(c.NotExpressedIn, ds) }},
}

// Apply evaluates every active facet of cfg against ds and returns the rows
// that satisfy all of them. Species labels in cfg are resolved to columns.
// Neither cfg nor ds is modified.
func Apply(cfg facet.Config, ds *model.Dataset) Result {
	cfg = facet.Resolve(cfg, ds)

	mask := facet.All(ds.Len())
	for _, s := range pipeline {
		if !s.active(cfg) {
			continue
		}
		mask.And(s.eval(cfg, ds))
		if mask.Count() == 0 {
			break
		}
	}
	if cfg.Search != "" && mask.Count() > 0 {
		mask = facet.Search(cfg.Search, ds, mask)
	}

	idx := mask.Indices()
	return Result{
		Mask:    mask,
		Indices: idx,
		Count:   len(idx),
		Total:   ds.Len(),
	}
}

// ActiveFacets returns the names of the facets cfg constrains, in application order.
func ActiveFacets(cfg facet.Config) []string {
	var out []string
	for _, s := range pipeline {
		if s.active(cfg) {
			out = append(out, s.name)
		}
	}
	if cfg.Search != "" {
		out = append(out, "search")
	}
	return out
}
