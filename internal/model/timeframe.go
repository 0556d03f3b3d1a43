package model

// Timeframe is the requested return granularity.
type Timeframe string

// Supported timeframes. Weekly buckets end on Friday, monthly buckets on the
// last calendar day of the month.
const (
	TimeframeDaily   Timeframe = "D"
	TimeframeWeekly  Timeframe = "W"
	TimeframeMonthly Timeframe = "M"
)

// Valid reports whether the timeframe is one of the supported values.
func (t Timeframe) Valid() bool {
	switch t {
	case TimeframeDaily, TimeframeWeekly, TimeframeMonthly:
		return true
	}
	return false
}
