// Package timeseries provides the date-indexed series primitives used by the
// return analytics pipeline: lag-1 percent changes, period resampling,
// by-date averaging, outer joins and pairwise-complete correlation.
//
// A Series is an explicit ordered sequence of (date, value) points rather
// than an indexed-table abstraction, so every alignment and truncation step
// in the pipeline is a visible, testable operation.
package timeseries

import (
	"math"
	"sort"
	"time"
)

// Point is a single dated observation.
type Point struct {
	Date  time.Time
	Value float64
}

// Series is an ordered sequence of dated observations. All operations assume
// dates are normalized to midnight UTC and sorted ascending; constructors in
// this package maintain both invariants.
type Series []Point

// Day normalizes a timestamp to midnight UTC. All series dates pass through
// this so that map lookups and equality checks behave as date comparisons.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// PercentChange computes the lag-1 percent change of the series:
// (v[t] - v[t-1]) / v[t-1] * 100. The first observation has no prior value
// and is dropped, so the result has length len(s)-1. A series with fewer
// than two observations yields an empty result.
func PercentChange(s Series) Series {
	if len(s) < 2 {
		return nil
	}
	out := make(Series, 0, len(s)-1)
	for i := 1; i < len(s); i++ {
		prev := s[i-1].Value
		if prev == 0 {
			continue
		}
		out = append(out, Point{
			Date:  s[i].Date,
			Value: (s[i].Value - prev) / prev * 100,
		})
	}
	return out
}

// ResampleLast buckets the series by the given bucket-end function and keeps
// the last observed value in each bucket, dated at the bucket end. The input
// must be sorted ascending; the output is sorted ascending by bucket end.
func ResampleLast(s Series, bucketEnd func(time.Time) time.Time) Series {
	if len(s) == 0 {
		return nil
	}
	last := make(map[time.Time]float64, len(s))
	for _, p := range s {
		last[bucketEnd(p.Date)] = p.Value
	}
	out := make(Series, 0, len(last))
	for d, v := range last {
		out = append(out, Point{Date: d, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// WeekEndingFriday returns the Friday on or after d, i.e. the end of the
// Friday-anchored week d belongs to. Saturday and Sunday roll forward to the
// next Friday.
func WeekEndingFriday(d time.Time) time.Time {
	d = Day(d)
	offset := (int(time.Friday) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, offset)
}

// MonthEnd returns the last calendar day of d's month.
func MonthEnd(d time.Time) time.Time {
	d = Day(d)
	return time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}

// MeanByDate averages a set of series date by date. A date's mean is taken
// only over the series that have an observation on that date; series missing
// a date are excluded from that date's mean, not treated as zero. Dates with
// no observations at all are absent from the result.
func MeanByDate(series []Series) Series {
	sums := make(map[time.Time]float64)
	counts := make(map[time.Time]int)
	for _, s := range series {
		for _, p := range s {
			sums[p.Date] += p.Value
			counts[p.Date]++
		}
	}
	out := make(Series, 0, len(sums))
	for d, sum := range sums {
		out = append(out, Point{Date: d, Value: sum / float64(counts[d])})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// TrimBefore drops all observations dated before cutoff.
func (s Series) TrimBefore(cutoff time.Time) Series {
	cutoff = Day(cutoff)
	out := make(Series, 0, len(s))
	for _, p := range s {
		if !p.Date.Before(cutoff) {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Round2 returns a copy of the series with values rounded to 2 decimal
// places. Rounding is a presentation step: callers keep unrounded series for
// correlation and round only when building wire records.
func (s Series) Round2() Series {
	out := make(Series, len(s))
	for i, p := range s {
		out[i] = Point{Date: p.Date, Value: math.Round(p.Value*100) / 100}
	}
	return out
}
