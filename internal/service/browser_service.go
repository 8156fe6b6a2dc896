// Package service provides business logic for the annotation browser.
package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"sort"

	"github.com/mirbrowse/server/internal/assets"
	"github.com/mirbrowse/server/internal/cache"
	"github.com/mirbrowse/server/internal/classify"
	"github.com/mirbrowse/server/internal/export"
	"github.com/mirbrowse/server/internal/facet"
	"github.com/mirbrowse/server/internal/filter"
	"github.com/mirbrowse/server/internal/model"
	"github.com/mirbrowse/server/internal/render"
	"github.com/mirbrowse/server/internal/view"
	"github.com/mirbrowse/server/pkg/colormap"
)

// BrowserServiceConfig contains browser service configuration.
type BrowserServiceConfig struct {
	DatasetID string
	Title     string
	Dataset   *model.Dataset
	Icons     *assets.Icons
	Cache     *cache.Manager
	Renderer  *render.ChartRenderer
}

// BrowserService filters, projects and exports one annotation dataset.
// The dataset is read-only; every method is safe for concurrent use.
type BrowserService struct {
	datasetID string
	title     string
	ds        *model.Dataset
	icons     *assets.Icons
	cache     *cache.Manager
	renderer  *render.ChartRenderer

	repeatClasses  []string
	primaryClasses []string
}

// NewBrowserService creates a new browser service.
func NewBrowserService(cfg BrowserServiceConfig) *BrowserService {
	datasetID := cfg.DatasetID
	if datasetID == "" {
		datasetID = "default"
	}
	title := cfg.Title
	if title == "" {
		title = datasetID
	}
	s := &BrowserService{
		datasetID:      datasetID,
		title:          title,
		ds:             cfg.Dataset,
		icons:          cfg.Icons,
		cache:          cfg.Cache,
		renderer:       cfg.Renderer,
		repeatClasses:  distinct(cfg.Dataset.RepeatClass),
		primaryClasses: distinct(cfg.Dataset.ClassMirBase),
	}
	log.Printf("[BrowserService] dataset %s: %d rows, %d species, %d tissues, %d icons",
		datasetID, cfg.Dataset.Len(), len(cfg.Dataset.SpeciesNames), len(cfg.Dataset.TissueNames), cfg.Icons.Len())
	return s
}

func distinct(values []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// ID returns the dataset ID.
func (s *BrowserService) ID() string { return s.datasetID }

// Title returns the dataset title.
func (s *BrowserService) Title() string { return s.title }

// Dataset returns the underlying dataset.
func (s *BrowserService) Dataset() *model.Dataset { return s.ds }

// SpeciesInfo names a species column and its display label.
type SpeciesInfo struct {
	Column string `json:"column"`
	Label  string `json:"label"`
}

// SystemInfo is an organ system restricted to the dataset's tissues.
type SystemInfo struct {
	Name    string   `json:"name"`
	Key     string   `json:"key"`
	HasIcon bool     `json:"has_icon"`
	Tissues []string `json:"tissues"`
}

// SchemaResponse describes the dataset columns.
type SchemaResponse struct {
	Dataset string        `json:"dataset"`
	Title   string        `json:"title"`
	Total   int           `json:"total"`
	Species []SpeciesInfo `json:"species"`
	Tissues []string      `json:"tissues"`
	Systems []SystemInfo  `json:"systems"`
}

// Schema returns the species, tissues and organ systems of the dataset.
func (s *BrowserService) Schema() SchemaResponse {
	resp := SchemaResponse{
		Dataset: s.datasetID,
		Title:   s.title,
		Total:   s.ds.Len(),
		Species: make([]SpeciesInfo, 0, len(s.ds.SpeciesNames)),
		Tissues: append([]string(nil), s.ds.TissueNames...),
	}
	for _, sp := range s.ds.SpeciesNames {
		resp.Species = append(resp.Species, SpeciesInfo{Column: sp, Label: model.SpeciesLabel(sp)})
	}
	for _, sys := range model.Systems() {
		info := SystemInfo{Name: sys.Name, Key: assets.Key(sys.Icon)}
		_, info.HasIcon = s.icons.Get(info.Key)
		for _, t := range sys.Tissues {
			if s.ds.HasTissue(t) {
				info.Tissues = append(info.Tissues, t)
			}
		}
		if len(info.Tissues) > 0 {
			resp.Systems = append(resp.Systems, info)
		}
	}
	return resp
}

// OptionsResponse lists the selectable values of every facet.
type OptionsResponse struct {
	Conservation  []facet.PassOption      `json:"conservation"`
	Expression    []facet.PassOption      `json:"expression"`
	Structure     []facet.PassOption      `json:"structure"`
	Hsa           []facet.HsaOption       `json:"hsa"`
	Family        []facet.FamilyOption    `json:"family"`
	Database      []facet.DatabaseChoice  `json:"database"`
	Stability     []facet.StabilityOption `json:"stability"`
	RepeatClasses []string                `json:"repeat_classes"`
	Classes       []string                `json:"classes"`
	Species       []SpeciesInfo           `json:"species"`
	Tissues       []string                `json:"tissues"`
}

// Options returns the facet option sets. Repeat and class options are the
// sorted distinct values present in the dataset.
func (s *BrowserService) Options() OptionsResponse {
	return OptionsResponse{
		Conservation:  facet.PassOptions,
		Expression:    facet.PassOptions,
		Structure:     facet.PassOptions,
		Hsa:           facet.HsaOptions,
		Family:        facet.FamilyOptions,
		Database:      facet.DatabaseChoices,
		Stability:     facet.StabilityOptions,
		RepeatClasses: append([]string(nil), s.repeatClasses...),
		Classes:       append([]string(nil), s.primaryClasses...),
		Species:       s.Schema().Species,
		Tissues:       append([]string(nil), s.ds.TissueNames...),
	}
}

// QueryResult is a filtered, projected table.
type QueryResult struct {
	Dataset      string     `json:"dataset"`
	RowsShown    int        `json:"rows_shown"`
	Total        int        `json:"total"`
	ActiveFacets []string   `json:"active_facets"`
	Table        view.Table `json:"table"`
}

// Query filters the dataset and projects the selected rows.
func (s *BrowserService) Query(cfg facet.Config, vis view.Visibility) QueryResult {
	res := filter.Apply(cfg, s.ds)
	active := filter.ActiveFacets(cfg)
	if active == nil {
		active = []string{}
	}
	return QueryResult{
		Dataset:      s.datasetID,
		RowsShown:    res.Count,
		Total:        res.Total,
		ActiveFacets: active,
		Table:        view.Project(s.ds, res.Indices, view.Columns(s.ds, vis)),
	}
}

// QueryJSON returns the JSON encoding of Query, cached by configuration.
func (s *BrowserService) QueryJSON(cfg facet.Config, vis view.Visibility) ([]byte, error) {
	key := cache.Key("rows", s.datasetID, cfg.Key(), vis.Key())
	if data, ok := s.cache.GetQuery(key); ok {
		return data, nil
	}
	data, err := json.Marshal(s.Query(cfg, vis))
	if err != nil {
		return nil, fmt.Errorf("failed to encode rows: %w", err)
	}
	s.cache.SetQuery(key, data)
	return data, nil
}

// ExportTSV returns the filtered, projected table as TSV.
func (s *BrowserService) ExportTSV(cfg facet.Config, vis view.Visibility) ([]byte, error) {
	key := cache.Key("tsv", s.datasetID, cfg.Key(), vis.Key())
	if data, ok := s.cache.GetResult(key); ok {
		return data, nil
	}

	res := filter.Apply(cfg, s.ds)
	var buf bytes.Buffer
	if err := export.WriteTSV(&buf, view.Project(s.ds, res.Indices, view.Columns(s.ds, vis))); err != nil {
		return nil, fmt.Errorf("failed to export tsv: %w", err)
	}
	s.store(key, buf.Bytes())
	return buf.Bytes(), nil
}

// ExportFASTA returns the sequences of the filtered rows as FASTA.
func (s *BrowserService) ExportFASTA(cfg facet.Config) ([]byte, error) {
	key := cache.Key("fasta", s.datasetID, cfg.Key())
	if data, ok := s.cache.GetResult(key); ok {
		return data, nil
	}

	res := filter.Apply(cfg, s.ds)
	var buf bytes.Buffer
	if _, err := export.WriteFASTA(&buf, s.ds, res.Indices); err != nil {
		return nil, fmt.Errorf("failed to export fasta: %w", err)
	}
	s.store(key, buf.Bytes())
	return buf.Bytes(), nil
}

// RepeatCounts returns the repeat-class distribution of the filtered rows.
func (s *BrowserService) RepeatCounts(cfg facet.Config) []view.RepeatCount {
	res := filter.Apply(cfg, s.ds)
	return view.RepeatDistribution(s.ds, res.Indices)
}

// RepeatChart returns the repeat-class distribution as a PNG bar chart.
func (s *BrowserService) RepeatChart(cfg facet.Config) ([]byte, error) {
	w, h := s.renderer.Size()
	key := cache.Key("repeats.png", s.datasetID, cfg.Key(), fmt.Sprintf("%dx%d", w, h))
	if data, ok := s.cache.GetResult(key); ok {
		return data, nil
	}

	data, err := s.renderer.RenderRepeatChart(s.RepeatCounts(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	s.store(key, data)
	return data, nil
}

// store caches an artifact; a full cache is not an error for the caller.
func (s *BrowserService) store(key string, data []byte) {
	if err := s.cache.SetResult(key, data); err != nil {
		log.Printf("[BrowserService] cache %s: %v", key, err)
	}
}

// LegendItem is one swatch of the legend.
type LegendItem struct {
	Category classify.Category `json:"category"`
	Label    string            `json:"label"`
	Color    string            `json:"color"`
}

// LegendGroup is one legend card.
type LegendGroup struct {
	Title string       `json:"title"`
	Items []LegendItem `json:"items"`
}

func legendItem(c classify.Category, label string) LegendItem {
	return LegendItem{Category: c, Label: label, Color: colormap.Legend[string(c)]}
}

// Legend returns the legend cards for the current view. Species colors are
// shown when species columns are visible or a species facet is active;
// tissue and class colors only when those columns are visible.
func (s *BrowserService) Legend(cfg facet.Config, vis view.Visibility) []LegendGroup {
	groups := []LegendGroup{
		{Title: "Conservation / Expression / Structure", Items: []LegendItem{
			legendItem(classify.Passed, "PASSED"),
			legendItem(classify.NotPassed, "NOT PASSED"),
		}},
		{Title: "Family", Items: []LegendItem{
			legendItem(classify.InFamily, "In family"),
			legendItem(classify.Single, "Single"),
		}},
		{Title: "hsa specificity", Items: []LegendItem{
			legendItem(classify.HsaYes, "hsa-specific"),
			legendItem(classify.HsaNo, "Not hsa-specific"),
		}},
		{Title: "Repeat Class", Items: []LegendItem{
			legendItem(classify.NoRepeat, "No repeat"),
			legendItem(classify.Other, "Repeat present"),
		}},
	}
	if len(vis.Species) > 0 || len(cfg.FoundIn) > 0 || len(cfg.NotFoundIn) > 0 {
		groups = append(groups, LegendGroup{Title: "Species conservation", Items: []LegendItem{
			legendItem(classify.SpeciesTrue, "Stable (TRUE)"),
			legendItem(classify.SpeciesFalse, "Unstable (FALSE)"),
			legendItem(classify.SpeciesUnknown, "Not found (NA)"),
		}})
	}
	if len(vis.Tissues) > 0 {
		threshold := model.LevelOf(model.ExpressionThreshold).String()
		groups = append(groups, LegendGroup{Title: "Tissue value", Items: []LegendItem{
			legendItem(classify.High, "RPMM≥"+threshold),
			legendItem(classify.Low, "RPMM<"+threshold),
		}})
	}
	if vis.ShowClasses {
		groups = append(groups, LegendGroup{Title: "Class", Items: []LegendItem{
			legendItem(classify.ClassR, "R"),
			legendItem(classify.ClassD, "D"),
			legendItem(classify.ClassI, "I"),
			legendItem(classify.ClassS, "S"),
		}})
	}
	return groups
}

// Icon returns the icon of an organ system, if one was loaded.
func (s *BrowserService) Icon(key string) ([]byte, bool) {
	return s.icons.Get(key)
}
