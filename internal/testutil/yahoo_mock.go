package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/themepulse/theme-returns-backend/internal/yahoo"
)

// QueryCall records the arguments of one QueryRange invocation so tests can
// assert on the effective fetch range.
type QueryCall struct {
	Symbol string
	Start  time.Time
	End    time.Time
}

// MockYahooClient is a mock implementation of yahoo.Client for testing.
// It returns predefined per-symbol responses instead of making API calls
// and is safe for the aggregator's concurrent fetches.
type MockYahooClient struct {
	mu sync.Mutex
	// Responses maps symbol -> response to return from QueryRange.
	Responses map[string]yahoo.Response
	// Errors maps symbol -> error to return from QueryRange.
	Errors map[string]error
	// Calls records every QueryRange invocation in arrival order.
	Calls []QueryCall
}

// NewMockYahooClient creates an empty mock; configure it with WithSeries
// and WithError.
func NewMockYahooClient() *MockYahooClient {
	return &MockYahooClient{
		Responses: make(map[string]yahoo.Response),
		Errors:    make(map[string]error),
	}
}

// WithSeries configures the mock to serve the given closes for a symbol,
// one per calendar day starting at start.
func (m *MockYahooClient) WithSeries(symbol string, start time.Time, closes ...float64) *MockYahooClient {
	dates := make([]time.Time, len(closes))
	for i := range closes {
		dates[i] = start.AddDate(0, 0, i)
	}
	return m.WithSeriesAt(symbol, dates, closes)
}

// WithSeriesAt configures the mock to serve closes on explicit dates.
func (m *MockYahooClient) WithSeriesAt(symbol string, dates []time.Time, closes []float64) *MockYahooClient {
	m.Responses[symbol] = CreateChartResponse(symbol, dates, closes)
	return m
}

// WithError configures the mock to fail QueryRange for a symbol.
func (m *MockYahooClient) WithError(symbol string, err error) *MockYahooClient {
	m.Errors[symbol] = err
	return m
}

// QueryRange returns the configured response or error for the symbol.
func (m *MockYahooClient) QueryRange(_ context.Context, symbol string, start, end time.Time) (yahoo.Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, QueryCall{Symbol: symbol, Start: start, End: end})
	m.mu.Unlock()

	if err, ok := m.Errors[symbol]; ok {
		return yahoo.Response{}, err
	}
	if resp, ok := m.Responses[symbol]; ok {
		return resp, nil
	}
	return yahoo.Response{}, errNotConfigured(symbol)
}

// QueryCount returns how many QueryRange calls were made.
func (m *MockYahooClient) QueryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// ParseChart delegates to the real ParseChart method since it's pure logic with no side effects.
func (m *MockYahooClient) ParseChart(resp yahoo.Response) (yahoo.PriceChart, error) {
	client := yahoo.NewFinanceClient("")
	return client.ParseChart(resp)
}

// CreateChartResponse creates a chart API response serving the given closes
// on the given dates. Open/high/low mirror the close and volume is fixed;
// the return pipeline only reads closes.
func CreateChartResponse(symbol string, dates []time.Time, closes []float64) yahoo.Response {
	timestamps := make([]int64, len(dates))
	closePtrs := make([]*float64, len(closes))
	opens := make([]*float64, len(closes))
	highs := make([]*float64, len(closes))
	lows := make([]*float64, len(closes))
	volumes := make([]*int64, len(closes))
	for i := range dates {
		timestamps[i] = dates[i].UTC().Unix()
		v := closes[i]
		vol := int64(1000000)
		closePtrs[i] = &v
		opens[i] = &v
		highs[i] = &v
		lows[i] = &v
		volumes[i] = &vol
	}

	return yahoo.Response{
		Chart: yahoo.Chart{
			Result: []yahoo.Result{
				{
					Meta: yahoo.Meta{
						Symbol:   symbol,
						Currency: "USD",
					},
					Timestamp: timestamps,
					Indicators: yahoo.IndicatorsContainer{
						Quote: []yahoo.Quote{
							{
								Open:   opens,
								High:   highs,
								Low:    lows,
								Close:  closePtrs,
								Volume: volumes,
							},
						},
					},
				},
			},
		},
	}
}

type errNotConfigured string

func (e errNotConfigured) Error() string {
	return "no mock data configured for symbol " + string(e)
}
