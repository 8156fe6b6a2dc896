// Package cli implements mirnactl, an offline command-line front end to the
// filter engine.
package cli

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mirbrowse/server/internal/cache"
	"github.com/mirbrowse/server/internal/data/annot"
	"github.com/mirbrowse/server/internal/facet"
	"github.com/mirbrowse/server/internal/model"
	"github.com/mirbrowse/server/internal/render"
	"github.com/mirbrowse/server/internal/service"
	"github.com/mirbrowse/server/internal/view"
)

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		return 1
	}
	return 0
}

// listFlags are multi-valued facet flags and the query parameter each feeds.
var listFlags = map[string]string{
	"conservation":     facet.ParamConservation,
	"expression":       facet.ParamExpression,
	"structure":        facet.ParamStructure,
	"hsa":              facet.ParamHsa,
	"family":           facet.ParamFamily,
	"repeat":           facet.ParamRepeat,
	"class":            facet.ParamClass,
	"found-in":         facet.ParamFoundIn,
	"not-found-in":     facet.ParamNotFoundIn,
	"stability":        facet.ParamStability,
	"expressed-in":     facet.ParamExpressedIn,
	"not-expressed-in": facet.ParamNotExpressedIn,
}

// NewRootCmd builds the mirnactl command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "mirnactl",
		Short:        "Filter and export a pre-miRNA annotation table",
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringP("table", "t", "", "Annotation table (.csv, .tsv, .txt, optionally .gz or .zst)")
	pf.StringSlice("species", nil, "Species columns (default: built-in list)")
	pf.StringSlice("tissues", nil, "Tissue columns (default: built-in list)")
	pf.String("search", "", "Case-insensitive substring matched against every column")
	pf.String("database", "", "Database membership: show_all, in_both, only_in_mirbase")
	for name := range listFlags {
		pf.StringSlice(name, nil, "Facet selection for "+name)
	}

	root.AddCommand(newCountCmd(), newExportCmd(), newOptionsCmd())
	return root
}

// facetConfig converts the facet flags into a facet.Config through the same
// parser the HTTP API uses.
func facetConfig(flags *pflag.FlagSet) (facet.Config, error) {
	q := url.Values{}
	for name, param := range listFlags {
		vals, err := flags.GetStringSlice(name)
		if err != nil {
			return facet.Config{}, err
		}
		if len(vals) > 0 {
			q[param] = vals
		}
	}
	if s, _ := flags.GetString("search"); s != "" {
		q.Set(facet.ParamSearch, s)
	}
	if d, _ := flags.GetString("database"); d != "" {
		q.Set(facet.ParamDatabase, d)
	}
	return facet.ParseQuery(q)
}

// openService loads the table named by --table into a browser service.
func openService(flags *pflag.FlagSet) (*service.BrowserService, func(), error) {
	path, _ := flags.GetString("table")
	if strings.TrimSpace(path) == "" {
		return nil, nil, fmt.Errorf("--table is required")
	}

	schema := model.DefaultSchema()
	if sp, _ := flags.GetStringSlice("species"); len(sp) > 0 {
		schema.Species = sp
	}
	if ts, _ := flags.GetStringSlice("tissues"); len(ts) > 0 {
		schema.Tissues = ts
	}

	ds, err := annot.Load(path, schema)
	if err != nil {
		return nil, nil, err
	}

	cm, err := cache.NewManager(cache.Config{ResultCacheSizeMB: 32, ResultTTL: time.Minute, QueryCacheSize: 8})
	if err != nil {
		return nil, nil, err
	}
	svc := service.NewBrowserService(service.BrowserServiceConfig{
		DatasetID: "cli",
		Title:     path,
		Dataset:   ds,
		Cache:     cm,
		Renderer:  render.NewChartRenderer(render.Config{}),
	})
	return svc, func() { cm.Close() }, nil
}

func newCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of rows selected by the facet flags",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := facetConfig(cmd.Flags())
			if err != nil {
				return err
			}
			svc, closeFn, err := openService(cmd.Flags())
			if err != nil {
				return err
			}
			defer closeFn()

			res := svc.Query(cfg, view.Visibility{})
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Rows shown: %d / %d\n", res.RowsShown, res.Total)
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	var (
		format      string
		output      string
		showSpecies []string
		showTissues []string
		showClasses bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the selected rows as TSV or FASTA",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := facetConfig(cmd.Flags())
			if err != nil {
				return err
			}
			svc, closeFn, err := openService(cmd.Flags())
			if err != nil {
				return err
			}
			defer closeFn()

			var data []byte
			switch strings.ToLower(format) {
			case "tsv":
				data, err = svc.ExportTSV(cfg, view.Visibility{Species: showSpecies, Tissues: showTissues, ShowClasses: showClasses})
			case "fasta":
				data, err = svc.ExportFASTA(cfg)
			default:
				return fmt.Errorf("unknown format %q (expected tsv or fasta)", format)
			}
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			if _, err := w.Write(data); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			if w != cmd.OutOrStdout() {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d bytes to %s\n", len(data), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "tsv", "Export format: tsv or fasta")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringSliceVar(&showSpecies, "show-species", nil, "Species columns to include")
	cmd.Flags().StringSliceVar(&showTissues, "show-tissues", nil, "Tissue columns to include")
	cmd.Flags().BoolVar(&showClasses, "show-classes", false, "Include the database class columns")
	return cmd
}

func newOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the selectable values of every facet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeFn, err := openService(cmd.Flags())
			if err != nil {
				return err
			}
			defer closeFn()

			opts := svc.Options()
			out := cmd.OutOrStdout()
			printList := func(name string, vals []string) {
				_, _ = fmt.Fprintf(out, "%s: %s\n", name, strings.Join(vals, " | "))
			}
			printList("conservation/expression/structure", stringsOf(opts.Conservation))
			printList("hsa", stringsOf(opts.Hsa))
			printList("family", stringsOf(opts.Family))
			printList("database", stringsOf(opts.Database))
			printList("stability", stringsOf(opts.Stability))
			printList("repeat", opts.RepeatClasses)
			printList("class", opts.Classes)
			species := make([]string, len(opts.Species))
			for i, s := range opts.Species {
				species[i] = s.Label
			}
			printList("species", species)
			printList("tissues", opts.Tissues)
			return nil
		},
	}
}

func stringsOf[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}
