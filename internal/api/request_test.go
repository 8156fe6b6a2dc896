package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/mirbrowse/server/internal/facet"
)

func TestParseVisibility(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		vis := parseVisibility(url.Values{})
		if vis.Species != nil || vis.Tissues != nil || vis.ShowClasses {
			t.Fatalf("expected zero visibility, got %#v", vis)
		}
	})

	t.Run("commaSeparated", func(t *testing.T) {
		q, _ := url.ParseQuery("show_species=Pan_troglodytes,Mus_musculus&show_classes=1")
		vis := parseVisibility(q)
		want := []string{"Pan_troglodytes", "Mus_musculus"}
		if !reflect.DeepEqual(vis.Species, want) || !vis.ShowClasses {
			t.Fatalf("unexpected visibility %#v", vis)
		}
	})

	t.Run("jsonArray", func(t *testing.T) {
		q, _ := url.ParseQuery(`show_tissues=["heart","liver"]`)
		vis := parseVisibility(q)
		if !reflect.DeepEqual(vis.Tissues, []string{"heart", "liver"}) {
			t.Fatalf("unexpected tissues %#v", vis.Tissues)
		}
	})

	t.Run("repeated", func(t *testing.T) {
		q, _ := url.ParseQuery("show_tissues=heart&show_tissues=liver&show_tissues=heart")
		vis := parseVisibility(q)
		if !reflect.DeepEqual(vis.Tissues, []string{"heart", "liver"}) {
			t.Fatalf("unexpected tissues %#v", vis.Tissues)
		}
	})
}

func TestParseBrowseRequest(t *testing.T) {
	t.Run("postBody", func(t *testing.T) {
		body := `{"facets":{"conservation":["passed"],"database":"in_both"},"visibility":{"show_classes":true}}`
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req, err := parseBrowseRequest(r)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(req.Facets.Conservation, []facet.PassOption{facet.Passed}) || req.Facets.Database != facet.InBoth {
			t.Fatalf("unexpected facets %#v", req.Facets)
		}
		if !req.Visibility.ShowClasses {
			t.Fatalf("expected classes visible")
		}
	})

	t.Run("emptyPostUsesQuery", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/?hsa=specific", strings.NewReader("  "))
		req, err := parseBrowseRequest(r)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(req.Facets.Hsa, []facet.HsaOption{facet.OnlySpecific}) {
			t.Fatalf("unexpected hsa %#v", req.Facets.Hsa)
		}
	})

	t.Run("visibilityOnly", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"visibility":{"tissues":["heart"]}}`))
		req, err := parseBrowseRequest(r)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if req.Facets.Key() != (facet.Config{}).Key() {
			t.Fatalf("expected empty facets, got %#v", req.Facets)
		}
	})

	t.Run("unknownOption", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"facets":{"stability":["wobbly"]}}`))
		if _, err := parseBrowseRequest(r); err == nil {
			t.Fatalf("expected error for unknown option")
		}
	})

	t.Run("tooLarge", func(t *testing.T) {
		big := `{"facets":{"search":"` + strings.Repeat("a", maxBrowseBodyBytes) + `"}}`
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big))
		if _, err := parseBrowseRequest(r); err == nil {
			t.Fatalf("expected error for oversized body")
		}
	})
}
