package yahoo

import (
	"time"

	"github.com/themepulse/theme-returns-backend/internal/timeseries"
)

// Response is the raw JSON structure of the Yahoo Finance v8 chart API.
// Quote arrays use pointers because the API emits null entries for days
// without a trade (holidays, halts); those rows are dropped during parsing.
type Response struct {
	Chart Chart `json:"chart"`
}

// Chart is the top-level chart payload: results plus an optional API error.
type Chart struct {
	Result []Result `json:"result"`
	Error  *string  `json:"error"`
}

// Result holds one symbol's metadata, timestamps and price indicators.
type Result struct {
	Meta       Meta                `json:"meta"`
	Timestamp  []int64             `json:"timestamp"`
	Indicators IndicatorsContainer `json:"indicators"`
}

// Meta carries symbol metadata returned alongside the price arrays.
type Meta struct {
	Currency         string `json:"currency"`
	Symbol           string `json:"symbol"`
	ExchangeName     string `json:"exchangeName"`
	FullExchangeName string `json:"fullExchangeName"`
	LongName         string `json:"longName"`
	Shortname        string `json:"shortName"`
}

// IndicatorsContainer wraps the quote arrays.
type IndicatorsContainer struct {
	Quote []Quote `json:"quote"`
}

// Quote holds the parallel OHLCV arrays, index-aligned with Timestamp.
type Quote struct {
	Open   []*float64 `json:"open"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
}

// PriceChart is the parsed internal representation of a chart response:
// symbol metadata plus an ascending time series of daily bars.
type PriceChart struct {
	Currency     string
	Symbol       string
	ExchangeName string
	LongName     string
	Shortname    string
	Bars         []Bar
}

// Bar is a single trading day's OHLCV data. Date is midnight UTC.
type Bar struct {
	Date       time.Time
	PriceOpen  float64
	PriceClose float64
	PriceHigh  float64
	PriceLow   float64
	Volume     int64
}

// CloseSeries extracts the (date, close) series from the chart. Dates are
// normalized to midnight UTC; when the source reports several bars on the
// same calendar day the last one wins.
func (c PriceChart) CloseSeries() timeseries.Series {
	if len(c.Bars) == 0 {
		return nil
	}
	out := make(timeseries.Series, 0, len(c.Bars))
	for _, bar := range c.Bars {
		day := timeseries.Day(bar.Date)
		if n := len(out); n > 0 && out[n-1].Date.Equal(day) {
			out[n-1].Value = bar.PriceClose
			continue
		}
		out = append(out, timeseries.Point{Date: day, Value: bar.PriceClose})
	}
	return out
}
