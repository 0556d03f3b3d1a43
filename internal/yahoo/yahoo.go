// Package yahoo implements the price data source: a client for the Yahoo
// Finance v8 chart API returning daily OHLC series for a symbol and date
// range. Any per-call failure (HTTP error, API error payload, empty result)
// is returned to the caller, which treats it as non-fatal for the batch.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Client is the interface consumed by the aggregation pipeline. It is
// implemented by FinanceClient and by the test mock in internal/testutil.
type Client interface {
	QueryRange(ctx context.Context, symbol string, start, end time.Time) (Response, error)
	ParseChart(resp Response) (PriceChart, error)
}

// FinanceClient fetches daily price charts from the Yahoo Finance API.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewFinanceClient creates a client against the public Yahoo endpoint.
// An empty baseURL selects the default; tests point it at an httptest server.
func NewFinanceClient(baseURL string) *FinanceClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &FinanceClient{
		httpClient: &http.Client{},
		baseURL:    baseURL,
	}
}

// QueryRange fetches daily price data for a symbol within [start, end].
// The range is passed as Unix timestamps, matching the chart API's
// period-based query format.
func (c *FinanceClient) QueryRange(ctx context.Context, symbol string, start, end time.Time) (Response, error) {
	url := fmt.Sprintf(
		"%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		c.baseURL,
		symbol,
		start.Unix(),
		end.Unix(),
	)
	result, err := c.query(ctx, url)
	if err != nil {
		return Response{}, err
	}
	if len(result.Chart.Result) == 0 {
		return Response{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}
	return result, nil
}

// ParseChart converts a raw chart response into a PriceChart, dropping rows
// whose close price is null (non-trading days) and validating that the quote
// arrays line up with the timestamp array.
func (c *FinanceClient) ParseChart(resp Response) (PriceChart, error) {
	if len(resp.Chart.Result) == 0 {
		return PriceChart{}, fmt.Errorf("empty chart result")
	}
	result := resp.Chart.Result[0]

	if len(result.Timestamp) == 0 {
		return PriceChart{}, fmt.Errorf("no price data returned")
	}
	if len(result.Indicators.Quote) == 0 {
		return PriceChart{}, fmt.Errorf("no quote data returned")
	}
	quote := result.Indicators.Quote[0]
	if len(quote.Close) != len(result.Timestamp) {
		return PriceChart{}, fmt.Errorf("mismatched data lengths")
	}

	bars := make([]Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if quote.Close[i] == nil {
			continue
		}
		bar := Bar{
			Date:       time.Unix(ts, 0).UTC(),
			PriceClose: *quote.Close[i],
		}
		if i < len(quote.Open) && quote.Open[i] != nil {
			bar.PriceOpen = *quote.Open[i]
		}
		if i < len(quote.High) && quote.High[i] != nil {
			bar.PriceHigh = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			bar.PriceLow = *quote.Low[i]
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}
		bars = append(bars, bar)
	}

	return PriceChart{
		Currency:     result.Meta.Currency,
		Symbol:       result.Meta.Symbol,
		ExchangeName: result.Meta.ExchangeName,
		LongName:     result.Meta.LongName,
		Shortname:    result.Meta.Shortname,
		Bars:         bars,
	}, nil
}

// query executes a GET against the chart API and decodes the response.
// The User-Agent header mimics a browser, which the API requires.
func (c *FinanceClient) query(ctx context.Context, url string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s", *response.Chart.Error)
	}

	return response, nil
}
