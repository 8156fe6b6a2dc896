// Package export serializes projected tables and selected sequences.
package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/mirbrowse/server/internal/model"
	"github.com/mirbrowse/server/internal/view"
)

// Download names used by the HTTP layer.
const (
	TSVFilename   = "mirna_filtered_table.tsv"
	FASTAFilename = "mirna_selected.fasta"
)

// WriteTSV writes t as tab-separated text. Headers are plain labels and
// Unknown cells are empty.
func WriteTSV(w io.Writer, t view.Table) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = view.PlainLabel(c.Label)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write tsv header: %w", err)
	}

	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, cell := range row {
			if cell.Known {
				record[i] = cell.Text
			} else {
				record[i] = ""
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write tsv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadTSV parses output of WriteTSV back into a header and rows.
func ReadTSV(r io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read tsv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("read tsv: missing header")
	}
	return records[0], records[1:], nil
}

// WriteFASTA writes one record per selected row with a known sequence. The
// sequence is uppercased with all whitespace removed.
func WriteFASTA(w io.Writer, ds *model.Dataset, rows []int) (int, error) {
	bw := bufio.NewWriter(w)
	n := 0
	for _, i := range rows {
		seq := Sequence(ds.Sequence[i])
		if seq == "" {
			continue
		}
		if _, err := fmt.Fprintf(bw, ">%s\n%s\n", ds.IDs[i], seq); err != nil {
			return n, fmt.Errorf("write fasta: %w", err)
		}
		n++
	}
	if err := bw.Flush(); err != nil {
		return n, fmt.Errorf("write fasta: %w", err)
	}
	return n, nil
}

// Sequence normalizes a raw sequence for FASTA output.
func Sequence(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, raw)
}
