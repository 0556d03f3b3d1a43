package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/themepulse/theme-returns-backend/internal/apperrors"
	"github.com/themepulse/theme-returns-backend/internal/model"
	"github.com/themepulse/theme-returns-backend/internal/timeseries"
	"github.com/themepulse/theme-returns-backend/internal/yahoo"
)

// LookbackBufferDays is the warm-up buffer subtracted from the requested
// start date when fetching prices. It guarantees a prior observation exists
// for the first requested day's lag-1 return; the buffer window itself is
// trimmed from all output.
const LookbackBufferDays = 7

// EffectiveStart returns the fetch-range start for a requested start date.
func EffectiveStart(requestedStart time.Time) time.Time {
	return requestedStart.AddDate(0, 0, -LookbackBufferDays)
}

// SymbolResult records the outcome for one theme member: either a computed
// return series or an explicit skip reason. Skips never abort the batch;
// they exist so callers and tests can see why a member contributed nothing.
type SymbolResult struct {
	Code       string
	Name       string
	Returns    timeseries.Series
	SkipReason error
}

// Skipped reports whether the symbol was dropped from the aggregation.
func (r SymbolResult) Skipped() bool {
	return r.SkipReason != nil
}

// StockSeries is one symbol's daily drill-down series, tagged "{name} ({code})".
type StockSeries struct {
	Label  string
	Series timeseries.Series
}

// ThemeResult is the aggregation outcome for one theme. Average is nil when
// no member symbol produced data, in which case the theme contributes
// nothing to the response.
type ThemeResult struct {
	Name         string
	Average      timeseries.Series
	StockSeries  []StockSeries
	MemberResult []SymbolResult
}

// ThemeService aggregates per-symbol returns into per-theme average series.
type ThemeService struct {
	directory   *DirectoryService
	yahooClient yahoo.Client
	concurrency int
	timeout     time.Duration
}

// NewThemeService creates a ThemeService. concurrency bounds the per-symbol
// fetch worker pool (1 = strictly sequential); timeout applies per fetch.
func NewThemeService(
	directory *DirectoryService,
	yahooClient yahoo.Client,
	concurrency int,
	timeout time.Duration,
) *ThemeService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ThemeService{
		directory:   directory,
		yahooClient: yahooClient,
		concurrency: concurrency,
		timeout:     timeout,
	}
}

// Aggregate fetches and computes returns for every member of the theme over
// [requestedStart - buffer, end] at the given timeframe.
//
// Members are processed by a bounded worker pool; results keep the theme's
// member order. A member whose fetch or computation fails is skipped with a
// reason and excluded from everything. The theme average is the per-date
// mean over the members that have a value on that date (a subset mean, not
// zero-filled). For daily requests each surviving member additionally
// retains its own daily return series, trimmed to the requested start and
// rounded for presentation.
func (s *ThemeService) Aggregate(
	ctx context.Context,
	theme model.Theme,
	requestedStart, end time.Time,
	timeframe model.Timeframe,
) ThemeResult {
	effectiveStart := EffectiveStart(requestedStart)

	results := make([]SymbolResult, len(theme.Codes))
	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)
	for i, code := range theme.Codes {
		i, code := i, code
		g.Go(func() error {
			results[i] = s.fetchSymbol(ctx, code, effectiveStart, end, timeframe)
			return nil
		})
	}
	// Workers never return errors; per-symbol failures are skip reasons.
	_ = g.Wait()

	result := ThemeResult{Name: theme.Name, MemberResult: results}

	var memberSeries []timeseries.Series
	for _, r := range results {
		if r.Skipped() {
			log.Printf("theme %s: symbol %s skipped: %v", theme.Name, r.Code, r.SkipReason)
			continue
		}
		memberSeries = append(memberSeries, r.Returns)

		if timeframe == model.TimeframeDaily {
			trimmed := r.Returns.TrimBefore(requestedStart)
			if len(trimmed) > 0 {
				result.StockSeries = append(result.StockSeries, StockSeries{
					Label:  fmt.Sprintf("%s (%s)", r.Name, r.Code),
					Series: trimmed.Round2(),
				})
			}
		}
	}

	if len(memberSeries) == 0 {
		return result
	}
	result.Average = timeseries.MeanByDate(memberSeries)
	return result
}

// fetchSymbol retrieves one symbol's prices and computes its return series,
// classifying every failure mode as a skip reason.
func (s *ThemeService) fetchSymbol(
	ctx context.Context,
	code string,
	effectiveStart, end time.Time,
	timeframe model.Timeframe,
) SymbolResult {
	result := SymbolResult{Code: code, Name: s.directory.Lookup(code)}

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.yahooClient.QueryRange(fetchCtx, code, effectiveStart, end)
	if err != nil {
		result.SkipReason = fmt.Errorf("fetch failed: %w", err)
		return result
	}

	chart, err := s.yahooClient.ParseChart(resp)
	if err != nil {
		result.SkipReason = fmt.Errorf("parse failed: %w", err)
		return result
	}

	closes := chart.CloseSeries()
	if len(closes) == 0 {
		result.SkipReason = apperrors.ErrNoPriceData
		return result
	}

	returns := ComputeReturns(closes, timeframe)
	if len(returns) == 0 {
		result.SkipReason = apperrors.ErrInsufficientPriceData
		return result
	}

	result.Returns = returns
	return result
}
