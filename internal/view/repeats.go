package view

import (
	"math"
	"sort"
	"strings"

	"github.com/mirbrowse/server/internal/model"
	"github.com/mirbrowse/server/pkg/colormap"
)

// RepeatOrder is the display order of well-known repeat classes. Other
// labels follow alphabetically.
var RepeatOrder = []string{
	"LINE", "SINE", "LTR", "DNA", "Satellite repeats", "Simple repeats",
	"Low complexity", "No repeat", "tRNA", "RC",
}

// RepeatCount is one bar of the repeat-class distribution.
type RepeatCount struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
	Color   string  `json:"color"`
}

func repeatRank(label string) int {
	for i, r := range RepeatOrder {
		if strings.EqualFold(r, label) {
			return i
		}
	}
	return -1
}

// RepeatDistribution counts repeat labels over rows. Rows with an Unknown
// repeat class are not counted. Percentages are rounded to two decimals.
func RepeatDistribution(ds *model.Dataset, rows []int) []RepeatCount {
	counts := make(map[string]int)
	total := 0
	for _, i := range rows {
		label := ds.RepeatClass[i]
		if label == "" {
			continue
		}
		counts[label]++
		total++
	}
	if total == 0 {
		return nil
	}

	out := make([]RepeatCount, 0, len(counts))
	for label, n := range counts {
		out = append(out, RepeatCount{
			Label:   label,
			Count:   n,
			Percent: math.Round(float64(n)/float64(total)*10000) / 100,
		})
	}
	sort.Slice(out, func(a, b int) bool {
		ra, rb := repeatRank(out[a].Label), repeatRank(out[b].Label)
		switch {
		case ra >= 0 && rb >= 0:
			if ra != rb {
				return ra < rb
			}
		case ra >= 0:
			return true
		case rb >= 0:
			return false
		}
		return out[a].Label < out[b].Label
	})

	// Known classes keep their palette slot; the rest continue after them.
	next := len(RepeatOrder)
	for i := range out {
		slot := repeatRank(out[i].Label)
		if slot < 0 {
			slot = next
			next++
		}
		out[i].Color = colormap.UCSC.HexAt(slot)
	}
	return out
}
