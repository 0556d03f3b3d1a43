package timeseries

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Column pairs a named series for joining into a Frame. Column order is
// preserved through the join so that output ordering follows request order.
type Column struct {
	Name   string
	Series Series
}

// Frame is a set of named series outer-joined on a shared ascending date
// index. Missing observations are represented as NaN.
type Frame struct {
	Dates   []time.Time
	Columns []string
	values  map[string][]float64
}

// Join outer-joins the given columns by date. Every date present in at least
// one column appears in the frame; columns without an observation on a date
// hold NaN there.
func Join(cols []Column) *Frame {
	dateSet := make(map[time.Time]struct{})
	for _, c := range cols {
		for _, p := range c.Series {
			dateSet[p.Date] = struct{}{}
		}
	}
	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	index := make(map[time.Time]int, len(dates))
	for i, d := range dates {
		index[d] = i
	}

	f := &Frame{
		Dates:   dates,
		Columns: make([]string, 0, len(cols)),
		values:  make(map[string][]float64, len(cols)),
	}
	for _, c := range cols {
		vals := make([]float64, len(dates))
		for i := range vals {
			vals[i] = math.NaN()
		}
		for _, p := range c.Series {
			vals[index[p.Date]] = p.Value
		}
		f.Columns = append(f.Columns, c.Name)
		f.values[c.Name] = vals
	}
	return f
}

// TrimBefore returns a frame restricted to dates on or after cutoff.
func (f *Frame) TrimBefore(cutoff time.Time) *Frame {
	cutoff = Day(cutoff)
	from := sort.Search(len(f.Dates), func(i int) bool {
		return !f.Dates[i].Before(cutoff)
	})
	out := &Frame{
		Dates:   f.Dates[from:],
		Columns: f.Columns,
		values:  make(map[string][]float64, len(f.Columns)),
	}
	for _, name := range f.Columns {
		out.values[name] = f.values[name][from:]
	}
	return out
}

// ObservationCount returns the number of non-NaN observations in a column.
func (f *Frame) ObservationCount(name string) int {
	n := 0
	for _, v := range f.values[name] {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

// Empty reports whether the frame holds no observations at all.
func (f *Frame) Empty() bool {
	for _, name := range f.Columns {
		if f.ObservationCount(name) > 0 {
			return false
		}
	}
	return true
}

// Correlation computes the pairwise Pearson correlation matrix over the
// frame using pairwise-complete observations: a date contributes to the
// (a, b) coefficient only if both columns have a value there. Pairs with
// fewer than two complete observations, and coefficients that are not finite
// (e.g. a zero-variance column), yield a nil entry. The matrix is symmetric
// with 1.0 on the diagonal for every column with at least two observations.
func (f *Frame) Correlation() map[string]map[string]*float64 {
	matrix := make(map[string]map[string]*float64, len(f.Columns))
	for _, name := range f.Columns {
		matrix[name] = make(map[string]*float64, len(f.Columns))
	}
	for i, a := range f.Columns {
		for j := i; j < len(f.Columns); j++ {
			b := f.Columns[j]
			coeff := f.pairwiseCorrelation(a, b)
			matrix[a][b] = coeff
			matrix[b][a] = coeff
		}
	}
	return matrix
}

func (f *Frame) pairwiseCorrelation(a, b string) *float64 {
	va, vb := f.values[a], f.values[b]
	xs := make([]float64, 0, len(va))
	ys := make([]float64, 0, len(vb))
	for i := range va {
		if math.IsNaN(va[i]) || math.IsNaN(vb[i]) {
			continue
		}
		xs = append(xs, va[i])
		ys = append(ys, vb[i])
	}
	if len(xs) < 2 {
		return nil
	}
	if a == b {
		one := 1.0
		return &one
	}
	c := stat.Correlation(xs, ys, nil)
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return nil
	}
	return &c
}
