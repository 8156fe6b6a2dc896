// Package facet holds the facet configuration and one predicate per
// filterable dimension. Each predicate is a pure function of its selection
// and the dataset columns, returning a row mask.
package facet

// Mask selects rows by index.
type Mask []bool

// All returns a mask of n selected rows.
func All(n int) Mask {
	m := make(Mask, n)
	for i := range m {
		m[i] = true
	}
	return m
}

// And narrows m to rows also selected by other. Both masks must have the same length.
func (m Mask) And(other Mask) {
	for i := range m {
		m[i] = m[i] && other[i]
	}
}

// Count returns the number of selected rows.
func (m Mask) Count() int {
	n := 0
	for _, v := range m {
		if v {
			n++
		}
	}
	return n
}

// Indices returns the selected row indices in order.
func (m Mask) Indices() []int {
	out := make([]int, 0, m.Count())
	for i, v := range m {
		if v {
			out = append(out, i)
		}
	}
	return out
}

func maskOf(n int, keep func(i int) bool) Mask {
	m := make(Mask, n)
	for i := range m {
		m[i] = keep(i)
	}
	return m
}
