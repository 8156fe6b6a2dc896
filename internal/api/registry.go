package api

import (
	"sync"

	"github.com/mirbrowse/server/internal/service"
)

const defaultTitle = "pre-miRNA Annotation Browser"

// DatasetInfo is one entry of the /api/datasets listing.
type DatasetInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Total int    `json:"total"`
}

// DatasetList is the /api/datasets payload.
type DatasetList struct {
	Default  string        `json:"default"`
	Title    string        `json:"title"`
	Datasets []DatasetInfo `json:"datasets"`
}

// DatasetRegistry maps dataset IDs to their browser services. Datasets are
// listed in registration order; the first one registered is the default
// unless another is named.
type DatasetRegistry struct {
	mu        sync.RWMutex
	title     string
	defaultID string
	ids       []string
	services  map[string]*service.BrowserService
}

func NewDatasetRegistry(title, defaultID string) *DatasetRegistry {
	if title == "" {
		title = defaultTitle
	}
	return &DatasetRegistry{
		title:     title,
		defaultID: defaultID,
		services:  make(map[string]*service.BrowserService),
	}
}

// Register adds svc under its own ID. Registering an ID twice replaces the
// service and keeps its position.
func (r *DatasetRegistry) Register(svc *service.BrowserService) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := svc.ID()
	if _, ok := r.services[id]; !ok {
		r.ids = append(r.ids, id)
	}
	r.services[id] = svc
}

func (r *DatasetRegistry) Lookup(id string) (*service.BrowserService, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	svc, ok := r.services[id]
	return svc, ok
}

// List returns the registered datasets and the default ID.
func (r *DatasetRegistry) List() DatasetList {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := DatasetList{Default: r.defaultID, Title: r.title, Datasets: make([]DatasetInfo, 0, len(r.ids))}
	if _, ok := r.services[out.Default]; !ok && len(r.ids) > 0 {
		out.Default = r.ids[0]
	}
	for _, id := range r.ids {
		svc := r.services[id]
		out.Datasets = append(out.Datasets, DatasetInfo{ID: id, Name: svc.Title(), Total: svc.Dataset().Len()})
	}
	return out
}
