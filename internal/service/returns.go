package service

import (
	"github.com/themepulse/theme-returns-backend/internal/model"
	"github.com/themepulse/theme-returns-backend/internal/timeseries"
)

// ComputeReturns converts a daily close-price series into a percent-return
// series at the requested granularity.
//
// Daily returns are the lag-1 percent change of the daily closes. Weekly and
// monthly returns first resample the closes to period-end values (last
// observed close per Friday-anchored week or calendar month) and apply the
// same lag-1 rule across periods. In every case the first period has no
// prior observation and is dropped, which is why callers fetch with a 7-day
// warm-up buffer before the requested start date.
//
// A series with fewer than two observations (after resampling) yields an
// empty result, not an error.
func ComputeReturns(prices timeseries.Series, timeframe model.Timeframe) timeseries.Series {
	switch timeframe {
	case model.TimeframeWeekly:
		return timeseries.PercentChange(timeseries.ResampleLast(prices, timeseries.WeekEndingFriday))
	case model.TimeframeMonthly:
		return timeseries.PercentChange(timeseries.ResampleLast(prices, timeseries.MonthEnd))
	default:
		return timeseries.PercentChange(prices)
	}
}
