package timeseries_test

import (
	"math"
	"testing"
	"time"

	"github.com/themepulse/theme-returns-backend/internal/timeseries"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func series(start time.Time, values ...float64) timeseries.Series {
	out := make(timeseries.Series, len(values))
	for i, v := range values {
		out[i] = timeseries.Point{Date: start.AddDate(0, 0, i), Value: v}
	}
	return out
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPercentChange(t *testing.T) {
	t.Run("drops the first observation", func(t *testing.T) {
		prices := series(date(2024, 1, 1), 100, 110, 99, 105)

		returns := timeseries.PercentChange(prices)

		if len(returns) != len(prices)-1 {
			t.Fatalf("Expected length %d, got %d", len(prices)-1, len(returns))
		}
		if !returns[0].Date.Equal(date(2024, 1, 2)) {
			t.Errorf("Expected first return on 2024-01-02, got %s", returns[0].Date)
		}
	})

	t.Run("computes lag-1 percent changes", func(t *testing.T) {
		prices := series(date(2024, 1, 1), 100, 110, 99)

		returns := timeseries.PercentChange(prices)

		if len(returns) != 2 {
			t.Fatalf("Expected 2 returns, got %d", len(returns))
		}
		if !almostEqual(returns[0].Value, 10.0) {
			t.Errorf("Expected first return 10.0, got %f", returns[0].Value)
		}
		if !almostEqual(returns[1].Value, -10.0) {
			t.Errorf("Expected second return -10.0, got %f", returns[1].Value)
		}
	})

	t.Run("returns empty for short series", func(t *testing.T) {
		if got := timeseries.PercentChange(nil); len(got) != 0 {
			t.Errorf("Expected empty result for empty input, got %d points", len(got))
		}
		one := series(date(2024, 1, 1), 100)
		if got := timeseries.PercentChange(one); len(got) != 0 {
			t.Errorf("Expected empty result for single observation, got %d points", len(got))
		}
	})
}

func TestWeekEndingFriday(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday maps to same week's friday", date(2024, 1, 8), date(2024, 1, 12)},
		{"friday maps to itself", date(2024, 1, 12), date(2024, 1, 12)},
		{"saturday rolls to next friday", date(2024, 1, 13), date(2024, 1, 19)},
		{"sunday rolls to next friday", date(2024, 1, 14), date(2024, 1, 19)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := timeseries.WeekEndingFriday(tc.in)
			if !got.Equal(tc.want) {
				t.Errorf("WeekEndingFriday(%s) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestMonthEnd(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		{date(2024, 1, 15), date(2024, 1, 31)},
		{date(2024, 2, 1), date(2024, 2, 29)}, // leap year
		{date(2023, 2, 10), date(2023, 2, 28)},
		{date(2024, 4, 30), date(2024, 4, 30)},
	}
	for _, tc := range cases {
		got := timeseries.MonthEnd(tc.in)
		if !got.Equal(tc.want) {
			t.Errorf("MonthEnd(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestResampleLast(t *testing.T) {
	t.Run("keeps the last observation per bucket", func(t *testing.T) {
		// Mon 2024-01-08 .. Fri 2024-01-12, then Mon 2024-01-15.
		prices := timeseries.Series{
			{Date: date(2024, 1, 8), Value: 100},
			{Date: date(2024, 1, 10), Value: 105},
			{Date: date(2024, 1, 12), Value: 110},
			{Date: date(2024, 1, 15), Value: 120},
		}

		weekly := timeseries.ResampleLast(prices, timeseries.WeekEndingFriday)

		if len(weekly) != 2 {
			t.Fatalf("Expected 2 buckets, got %d", len(weekly))
		}
		if !weekly[0].Date.Equal(date(2024, 1, 12)) || !almostEqual(weekly[0].Value, 110) {
			t.Errorf("Expected first bucket (2024-01-12, 110), got (%s, %f)", weekly[0].Date, weekly[0].Value)
		}
		if !weekly[1].Date.Equal(date(2024, 1, 19)) || !almostEqual(weekly[1].Value, 120) {
			t.Errorf("Expected second bucket (2024-01-19, 120), got (%s, %f)", weekly[1].Date, weekly[1].Value)
		}
	})

	t.Run("returns empty for empty input", func(t *testing.T) {
		if got := timeseries.ResampleLast(nil, timeseries.WeekEndingFriday); len(got) != 0 {
			t.Errorf("Expected empty result, got %d points", len(got))
		}
	})
}

func TestMeanByDate(t *testing.T) {
	t.Run("averages only series present on a date", func(t *testing.T) {
		a := timeseries.Series{
			{Date: date(2024, 1, 2), Value: 10},
			{Date: date(2024, 1, 3), Value: 20},
		}
		b := timeseries.Series{
			{Date: date(2024, 1, 3), Value: 40},
		}

		mean := timeseries.MeanByDate([]timeseries.Series{a, b})

		if len(mean) != 2 {
			t.Fatalf("Expected 2 dates, got %d", len(mean))
		}
		// B has no value on Jan 2: the mean is A alone, not (10+0)/2.
		if !almostEqual(mean[0].Value, 10) {
			t.Errorf("Expected subset mean 10 on Jan 2, got %f", mean[0].Value)
		}
		if !almostEqual(mean[1].Value, 30) {
			t.Errorf("Expected mean 30 on Jan 3, got %f", mean[1].Value)
		}
	})

	t.Run("returns empty for no input", func(t *testing.T) {
		if got := timeseries.MeanByDate(nil); len(got) != 0 {
			t.Errorf("Expected empty result, got %d points", len(got))
		}
	})
}

func TestTrimBefore(t *testing.T) {
	s := series(date(2024, 1, 1), 1, 2, 3, 4, 5)

	trimmed := s.TrimBefore(date(2024, 1, 3))

	if len(trimmed) != 3 {
		t.Fatalf("Expected 3 points, got %d", len(trimmed))
	}
	if !trimmed[0].Date.Equal(date(2024, 1, 3)) {
		t.Errorf("Expected first date 2024-01-03, got %s", trimmed[0].Date)
	}
}

func TestRound2(t *testing.T) {
	s := timeseries.Series{
		{Date: date(2024, 1, 2), Value: 10.004999},
		{Date: date(2024, 1, 3), Value: -9.999999},
	}

	rounded := s.Round2()

	if !almostEqual(rounded[0].Value, 10.0) {
		t.Errorf("Expected 10.0, got %f", rounded[0].Value)
	}
	if !almostEqual(rounded[1].Value, -10.0) {
		t.Errorf("Expected -10.0, got %f", rounded[1].Value)
	}
	// The original series is untouched.
	if almostEqual(s[0].Value, 10.0) {
		t.Error("Round2 must not mutate the receiver")
	}
}
