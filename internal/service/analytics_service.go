package service

import (
	"context"
	"fmt"
	"time"

	"github.com/themepulse/theme-returns-backend/internal/model"
)

const dateLayout = "2006-01-02"

// AnalyticsService runs the full stock-data pipeline: per-theme aggregation,
// alignment and correlation, and assembly of the wire-format response.
type AnalyticsService struct {
	themeService *ThemeService
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(themeService *ThemeService) *AnalyticsService {
	return &AnalyticsService{themeService: themeService}
}

// StockData processes a validated stock-data request. Themes are aggregated
// in request order; a theme whose members all failed is dropped silently,
// and only when no theme at all produced data does the request fail. The
// response is all-or-nothing: either the full payload or an error.
func (s *AnalyticsService) StockData(
	ctx context.Context,
	req model.StockDataRequest,
) (model.StockDataResponse, error) {
	requestedStart, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return model.StockDataResponse{}, fmt.Errorf("invalid startDate: %w", err)
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return model.StockDataResponse{}, fmt.Errorf("invalid endDate: %w", err)
	}

	timeframe := model.Timeframe(req.Timeframe)
	if req.Timeframe == "" {
		timeframe = model.TimeframeDaily
	}

	var averages []ThemeAverage
	var stockSeries []StockSeries
	for _, theme := range req.Themes {
		result := s.themeService.Aggregate(ctx, theme, requestedStart, end, timeframe)
		if len(result.Average) == 0 {
			continue
		}
		averages = append(averages, ThemeAverage{Name: result.Name, Series: result.Average})
		stockSeries = append(stockSeries, result.StockSeries...)
	}

	trimmed, matrix, err := Finalize(averages, requestedStart)
	if err != nil {
		return model.StockDataResponse{}, err
	}

	return assembleResponse(trimmed, stockSeries, matrix), nil
}

// assembleResponse flattens the pipeline outputs into wire records.
func assembleResponse(
	themes []ThemeAverage,
	stockSeries []StockSeries,
	matrix model.CorrelationMatrix,
) model.StockDataResponse {
	resp := model.StockDataResponse{
		ThemedReturns:     []model.ThemedReturn{},
		StockLevelReturns: []model.StockReturn{},
		CorrelationMatrix: matrix,
	}
	for _, t := range themes {
		for _, p := range t.Series {
			resp.ThemedReturns = append(resp.ThemedReturns, model.ThemedReturn{
				Date:   p.Date.Format(dateLayout),
				Sector: t.Name,
				Value:  p.Value,
			})
		}
	}
	for _, s := range stockSeries {
		for _, p := range s.Series {
			resp.StockLevelReturns = append(resp.StockLevelReturns, model.StockReturn{
				Date:      p.Date.Format(dateLayout),
				StockName: s.Label,
				Value:     p.Value,
			})
		}
	}
	return resp
}
