// Package api provides HTTP handlers for the annotation browser server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mirbrowse/server/internal/export"
	"github.com/mirbrowse/server/internal/facet"
	ratelimit "github.com/mirbrowse/server/internal/middleware"
	"github.com/mirbrowse/server/internal/service"
	"github.com/mirbrowse/server/internal/view"
)

// RouterConfig contains router configuration.
type RouterConfig struct {
	Registry    *DatasetRegistry
	CORSOrigins []string
	// RateLimit disables rate limiting when RequestsPerSecond is zero.
	RateLimit ratelimit.RateLimitConfig
	// Context bounds background work started by middleware.
	Context context.Context
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.RateLimit.RequestsPerSecond > 0 {
		ctx := cfg.Context
		if ctx == nil {
			ctx = context.Background()
		}
		r.Use(ratelimit.RateLimiter(ctx, cfg.RateLimit))
	}

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Global datasets endpoint (not dataset-scoped)
	r.Get("/api/datasets", datasetsHandler(cfg.Registry))

	// Dataset-scoped routes: /d/{dataset}/...
	r.Route("/d/{dataset}", func(r chi.Router) {
		r.Use(datasetMiddleware(cfg.Registry))

		r.Route("/api", func(r chi.Router) {
			r.Get("/schema", withService(schemaHandler))
			r.Get("/options", withService(optionsHandler))
			r.Get("/rows", withService(rowsHandler))
			r.Post("/rows", withService(rowsHandler))
			r.Get("/export/tsv", withService(exportTSVHandler))
			r.Post("/export/tsv", withService(exportTSVHandler))
			r.Get("/export/fasta", withService(exportFASTAHandler))
			r.Post("/export/fasta", withService(exportFASTAHandler))
			r.Get("/repeats", withService(repeatsHandler))
			r.Post("/repeats", withService(repeatsHandler))
			r.Get("/charts/repeats.png", withService(repeatChartHandler))
			r.Post("/charts/repeats.png", withService(repeatChartHandler))
			r.Get("/legend", withService(legendHandler))
			r.Post("/legend", withService(legendHandler))
			r.Get("/icons/{system}", withService(iconHandler))
		})
	})

	return r
}

// Context key for dataset service
type ctxKey string

const datasetServiceKey ctxKey = "datasetService"

// datasetMiddleware resolves the dataset from URL and injects the browser service into context.
func datasetMiddleware(registry *DatasetRegistry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			datasetID := chi.URLParam(r, "dataset")
			svc, ok := registry.Lookup(datasetID)
			if !ok {
				http.Error(w, "dataset not found: "+datasetID, http.StatusNotFound)
				return
			}
			ctx := context.WithValue(r.Context(), datasetServiceKey, svc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func getDatasetService(r *http.Request) *service.BrowserService {
	if svc, ok := r.Context().Value(datasetServiceKey).(*service.BrowserService); ok {
		return svc
	}
	return nil
}

// withService adapts a service-bound handler to a dataset-scoped route.
func withService(h func(svc *service.BrowserService) http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc := getDatasetService(r)
		if svc == nil {
			http.Error(w, "dataset service not found", http.StatusInternalServerError)
			return
		}
		h(svc)(w, r)
	}
}

// datasetsHandler returns the list of available datasets.
func datasetsHandler(registry *DatasetRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, registry.List())
	}
}

func schemaHandler(svc *service.BrowserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, svc.Schema())
	}
}

func optionsHandler(svc *service.BrowserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, svc.Options())
	}
}

func rowsHandler(svc *service.BrowserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := parseBrowseRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		data, err := svc.QueryJSON(req.Facets, req.Visibility)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}
}

func exportTSVHandler(svc *service.BrowserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := parseBrowseRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		data, err := svc.ExportTSV(req.Facets, req.Visibility)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeAttachment(w, "text/tab-separated-values", export.TSVFilename, data)
	}
}

func exportFASTAHandler(svc *service.BrowserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := parseBrowseRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		data, err := svc.ExportFASTA(req.Facets)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeAttachment(w, "text/plain", export.FASTAFilename, data)
	}
}

func repeatsHandler(svc *service.BrowserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := parseBrowseRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		counts := svc.RepeatCounts(req.Facets)
		if counts == nil {
			counts = []view.RepeatCount{}
		}
		writeJSON(w, map[string]interface{}{
			"order":  view.RepeatOrder,
			"counts": counts,
		})
	}
}

func repeatChartHandler(svc *service.BrowserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := parseBrowseRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		data, err := svc.RepeatChart(req.Facets)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Write(data)
	}
}

func legendHandler(svc *service.BrowserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := parseBrowseRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, svc.Legend(req.Facets, req.Visibility))
	}
}

func iconHandler(svc *service.BrowserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		system := strings.TrimSuffix(chi.URLParam(r, "system"), ".png")
		data, ok := svc.Icon(system)
		if !ok {
			http.Error(w, "icon not found: "+system, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", http.DetectContentType(data))
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.Write(data)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

// browseRequest is a facet selection plus column visibility.
type browseRequest struct {
	Facets     facet.Config
	Visibility view.Visibility
}

// Visibility query parameters.
const (
	paramShowSpecies = "show_species"
	paramShowTissues = "show_tissues"
	paramShowClasses = "show_classes"
)

const maxBrowseBodyBytes = 1 << 20 // 1 MiB

// parseBrowseRequest reads the selection from the query string for GET and
// from a JSON body for POST. A POST with an empty body falls back to the
// query string.
func parseBrowseRequest(r *http.Request) (browseRequest, error) {
	if r.Method == http.MethodPost && r.Body != nil {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBrowseBodyBytes+1))
		if err != nil {
			return browseRequest{}, err
		}
		if len(body) > maxBrowseBodyBytes {
			return browseRequest{}, errors.New("request body too large")
		}
		if raw := bytes.TrimSpace(body); len(raw) > 0 {
			return parseBrowseBody(raw)
		}
	}
	return parseBrowseQuery(r.URL.Query())
}

func parseBrowseQuery(q url.Values) (browseRequest, error) {
	cfg, err := facet.ParseQuery(q)
	if err != nil {
		return browseRequest{}, err
	}
	return browseRequest{Facets: cfg, Visibility: parseVisibility(q)}, nil
}

func parseVisibility(q url.Values) view.Visibility {
	showClasses, _ := strconv.ParseBool(strings.TrimSpace(q.Get(paramShowClasses)))
	return view.Visibility{
		Species:     facet.ListParam(q, paramShowSpecies),
		Tissues:     facet.ListParam(q, paramShowTissues),
		ShowClasses: showClasses,
	}
}

// parseBrowseBody accepts {"facets": {...}, "visibility": {...}}; both keys
// are optional.
func parseBrowseBody(raw []byte) (browseRequest, error) {
	var payload struct {
		Facets     json.RawMessage `json:"facets"`
		Visibility view.Visibility `json:"visibility"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return browseRequest{}, errors.New("invalid request body: " + err.Error())
	}

	req := browseRequest{Visibility: payload.Visibility}
	if facets := bytes.TrimSpace(payload.Facets); len(facets) > 0 && !bytes.Equal(facets, []byte("null")) {
		cfg, err := facet.ParseJSON(facets)
		if err != nil {
			return browseRequest{}, err
		}
		req.Facets = cfg
	}
	return req, nil
}
