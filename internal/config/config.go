// Package config handles configuration loading for the annotation browser
// server.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mirbrowse/server/internal/model"
)

// DefaultDatasetID is the dataset ID used by the legacy single-dataset form.
const DefaultDatasetID = "default"

// Config represents the server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Data   DataConfig   `yaml:"data"`
	Cache  CacheConfig  `yaml:"cache"`
	Render RenderConfig `yaml:"render"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port        int             `yaml:"port"`
	Title       string          `yaml:"title"`
	CORSOrigins []string        `yaml:"cors_origins"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig bounds requests per client IP. A zero RPS disables it.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// DatasetConfig describes one annotation table.
type DatasetConfig struct {
	Title     string   `yaml:"title"`
	TablePath string   `yaml:"table_path"`
	IconsDir  string   `yaml:"icons_dir"`
	Species   []string `yaml:"species"`
	Tissues   []string `yaml:"tissues"`
}

// Schema returns the configured column schema, falling back to the built-in
// species and tissue lists for whichever is not set.
func (d DatasetConfig) Schema() model.Schema {
	s := model.DefaultSchema()
	if len(d.Species) > 0 {
		s.Species = append([]string(nil), d.Species...)
	}
	if len(d.Tissues) > 0 {
		s.Tissues = append([]string(nil), d.Tissues...)
	}
	return s
}

// DataConfig contains data source settings. It accepts either the legacy
// flat form (table_path, icons_dir) or a map of dataset ID to DatasetConfig.
type DataConfig struct {
	DefaultDataset string
	Datasets       map[string]DatasetConfig
	order          []string
}

// DatasetIDs returns dataset IDs in configuration order.
func (d DataConfig) DatasetIDs() []string {
	return append([]string(nil), d.order...)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *DataConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("data: expected mapping, got %v", node.Tag)
	}

	legacy := false
	for i := 0; i < len(node.Content); i += 2 {
		if node.Content[i+1].Kind != yaml.MappingNode {
			legacy = true
			break
		}
	}

	d.Datasets = make(map[string]DatasetConfig)
	d.order = nil
	if legacy {
		var ds DatasetConfig
		if err := node.Decode(&ds); err != nil {
			return fmt.Errorf("data: %w", err)
		}
		d.Datasets[DefaultDatasetID] = ds
		d.order = []string{DefaultDatasetID}
		return nil
	}

	for i := 0; i < len(node.Content); i += 2 {
		id := node.Content[i].Value
		var ds DatasetConfig
		if err := node.Content[i+1].Decode(&ds); err != nil {
			return fmt.Errorf("data.%s: %w", id, err)
		}
		if _, dup := d.Datasets[id]; !dup {
			d.order = append(d.order, id)
		}
		d.Datasets[id] = ds
	}
	return nil
}

// CacheConfig contains caching settings.
type CacheConfig struct {
	ResultSizeMB     int `yaml:"result_size_mb"`
	ResultTTLMinutes int `yaml:"result_ttl_minutes"`
	QueryEntries     int `yaml:"query_entries"`
}

// RenderConfig contains rendering settings.
type RenderConfig struct {
	ChartWidth  int `yaml:"chart_width"`
	ChartHeight int `yaml:"chart_height"`
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return default config if file doesn't exist
		return DefaultConfig(), nil
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Apply defaults for missing values
	applyDefaults(&cfg)

	return &cfg, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			Title:       "pre-miRNA Annotation Browser",
			CORSOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
			RateLimit:   RateLimitConfig{RPS: 20, Burst: 40},
		},
		Data: DataConfig{
			DefaultDataset: DefaultDatasetID,
			Datasets: map[string]DatasetConfig{
				DefaultDatasetID: {
					TablePath: "./data/mirna_annotations.csv",
					IconsDir:  "./data/icons",
				},
			},
			order: []string{DefaultDatasetID},
		},
		Cache: CacheConfig{
			ResultSizeMB:     128,
			ResultTTLMinutes: 10,
			QueryEntries:     256,
		},
		Render: RenderConfig{
			ChartWidth:  700,
			ChartHeight: 600,
		},
	}
}

func applyDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaults.Server.Port
	}
	if cfg.Server.Title == "" {
		cfg.Server.Title = defaults.Server.Title
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = defaults.Server.CORSOrigins
	}
	if cfg.Server.RateLimit.Burst == 0 && cfg.Server.RateLimit.RPS > 0 {
		cfg.Server.RateLimit.Burst = int(cfg.Server.RateLimit.RPS) + 1
	}
	if len(cfg.Data.Datasets) == 0 {
		cfg.Data = defaults.Data
	}
	for id, ds := range cfg.Data.Datasets {
		if ds.TablePath == "" && id == DefaultDatasetID {
			ds.TablePath = defaults.Data.Datasets[DefaultDatasetID].TablePath
		}
		if ds.Title == "" {
			ds.Title = id
		}
		cfg.Data.Datasets[id] = ds
	}
	if cfg.Data.DefaultDataset == "" && len(cfg.Data.order) > 0 {
		cfg.Data.DefaultDataset = cfg.Data.order[0]
	}
	if cfg.Cache.ResultSizeMB == 0 {
		cfg.Cache.ResultSizeMB = defaults.Cache.ResultSizeMB
	}
	if cfg.Cache.ResultTTLMinutes == 0 {
		cfg.Cache.ResultTTLMinutes = defaults.Cache.ResultTTLMinutes
	}
	if cfg.Cache.QueryEntries == 0 {
		cfg.Cache.QueryEntries = defaults.Cache.QueryEntries
	}
	if cfg.Render.ChartWidth == 0 {
		cfg.Render.ChartWidth = defaults.Render.ChartWidth
	}
	if cfg.Render.ChartHeight == 0 {
		cfg.Render.ChartHeight = defaults.Render.ChartHeight
	}
}
