// Package annot reads pre-miRNA annotation tables from flat files and
// normalizes them into a model.Dataset.
package annot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/mirbrowse/server/internal/model"
)

// RawTable is an untyped table as read from disk.
type RawTable struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// NewRawTable builds a table from a header and rows. Short rows are padded
// on access, extra cells are ignored.
func NewRawTable(header []string, rows [][]string) *RawTable {
	t := &RawTable{Header: header, Rows: rows, index: make(map[string]int, len(header))}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}
	return t
}

// Has reports whether the table carries column col.
func (t *RawTable) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// Value returns the raw cell at row i and column col, and whether the column exists.
func (t *RawTable) Value(i int, col string) (string, bool) {
	j, ok := t.index[col]
	if !ok {
		return "", false
	}
	row := t.Rows[i]
	if j >= len(row) {
		return "", true
	}
	return row[j], true
}

// Load reads and normalizes the table at path.
func Load(path string, schema model.Schema) (*model.Dataset, error) {
	raw, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Normalize(raw, schema), nil
}

// ReadFile reads a delimited table. The delimiter is chosen from the file
// extension (tab for .tsv/.txt, comma otherwise) and .gz / .zst inputs are
// decompressed on the fly.
func ReadFile(path string) (*RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table: %w", err)
	}
	defer f.Close()

	name := strings.ToLower(filepath.Base(path))
	var r io.Reader = f
	switch {
	case strings.HasSuffix(name, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer gz.Close()
		r = gz
		name = strings.TrimSuffix(name, ".gz")
	case strings.HasSuffix(name, ".zst"):
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
		}
		defer dec.Close()
		r = dec
		name = strings.TrimSuffix(name, ".zst")
	}

	delim := ','
	if strings.HasSuffix(name, ".tsv") || strings.HasSuffix(name, ".txt") {
		delim = '\t'
	}
	t, err := Read(r, delim)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return t, nil
}

// Read parses a delimited table with a header row.
func Read(r io.Reader, delim rune) (*RawTable, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty table")
		}
		return nil, err
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	return NewRawTable(header, rows), nil
}
