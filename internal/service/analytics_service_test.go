package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/themepulse/theme-returns-backend/internal/apperrors"
	"github.com/themepulse/theme-returns-backend/internal/model"
	"github.com/themepulse/theme-returns-backend/internal/service"
	"github.com/themepulse/theme-returns-backend/internal/testutil"
)

func TestAnalyticsService_StockData(t *testing.T) {
	t.Run("produces trimmed themed returns, drill-down and matrix", func(t *testing.T) {
		// Prices span 2024-01-01..2024-01-10 while the request starts on
		// 2024-01-08: the fetch uses the buffered start and the output
		// contains only dates >= 2024-01-08.
		mock := testutil.NewMockYahooClient().
			WithSeries("AAPL", testutil.Date(2024, 1, 1), 100, 101, 102, 103, 104, 105, 106, 107, 108, 109).
			WithSeries("MSFT", testutil.Date(2024, 1, 1), 200, 199, 198, 197, 196, 195, 194, 193, 192, 191)
		ts := newThemeService(t, mock, 2)
		svc := service.NewAnalyticsService(ts)

		req := model.StockDataRequest{
			Themes: []model.Theme{
				{Name: "Up", Codes: []string{"AAPL"}},
				{Name: "Down", Codes: []string{"MSFT"}},
			},
			StartDate: "2024-01-08",
			EndDate:   "2024-01-10",
			Timeframe: "D",
		}

		resp, err := svc.StockData(context.Background(), req)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if len(mock.Calls) != 2 {
			t.Fatalf("Expected 2 fetches, got %d", len(mock.Calls))
		}
		for _, call := range mock.Calls {
			if !call.Start.Equal(testutil.Date(2024, 1, 1)) {
				t.Errorf("Expected effective start 2024-01-01, got %s", call.Start)
			}
		}

		if len(resp.ThemedReturns) == 0 {
			t.Fatal("Expected themed returns")
		}
		for _, r := range resp.ThemedReturns {
			if r.Date < "2024-01-08" {
				t.Errorf("Themed return contains warm-up date %s", r.Date)
			}
		}
		for _, r := range resp.StockLevelReturns {
			if r.Date < "2024-01-08" {
				t.Errorf("Stock-level return contains warm-up date %s", r.Date)
			}
		}

		matrix := resp.CorrelationMatrix
		if matrix["Up"]["Down"] == nil || matrix["Down"]["Up"] == nil {
			t.Fatal("Expected a complete correlation matrix")
		}
		if !almostEqual(*matrix["Up"]["Down"], *matrix["Down"]["Up"]) {
			t.Error("Expected symmetric matrix")
		}
		if *matrix["Up"]["Up"] != 1.0 {
			t.Errorf("Expected unit diagonal, got %f", *matrix["Up"]["Up"])
		}
	})

	t.Run("drops themes whose members all failed", func(t *testing.T) {
		mock := testutil.NewMockYahooClient().
			WithSeries("AAPL", testutil.Date(2024, 1, 1), 100, 101, 102, 103, 104, 105, 106, 107, 108, 109).
			WithError("MSFT", errors.New("connection refused"))
		ts := newThemeService(t, mock, 1)
		svc := service.NewAnalyticsService(ts)

		req := model.StockDataRequest{
			Themes: []model.Theme{
				{Name: "Good", Codes: []string{"AAPL"}},
				{Name: "Bad", Codes: []string{"MSFT"}},
			},
			StartDate: "2024-01-08",
			EndDate:   "2024-01-10",
			Timeframe: "D",
		}

		resp, err := svc.StockData(context.Background(), req)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if _, ok := resp.CorrelationMatrix["Bad"]; ok {
			t.Error("Failed theme must not appear in the matrix")
		}
		for _, r := range resp.ThemedReturns {
			if r.Sector == "Bad" {
				t.Error("Failed theme must not appear in themed returns")
			}
		}
	})

	t.Run("fails when every symbol in every theme fails", func(t *testing.T) {
		mock := testutil.NewMockYahooClient().
			WithError("AAPL", errors.New("connection refused")).
			WithError("MSFT", errors.New("connection refused"))
		ts := newThemeService(t, mock, 1)
		svc := service.NewAnalyticsService(ts)

		req := model.StockDataRequest{
			Themes: []model.Theme{
				{Name: "T1", Codes: []string{"AAPL"}},
				{Name: "T2", Codes: []string{"MSFT"}},
			},
			StartDate: "2024-01-08",
			EndDate:   "2024-01-10",
			Timeframe: "D",
		}

		_, err := svc.StockData(context.Background(), req)
		if !errors.Is(err, apperrors.ErrNoThemeData) {
			t.Errorf("Expected ErrNoThemeData, got %v", err)
		}
	})

	t.Run("defaults to the daily timeframe", func(t *testing.T) {
		mock := testutil.NewMockYahooClient().
			WithSeries("AAPL", testutil.Date(2024, 1, 1), 100, 101, 102, 103, 104, 105, 106, 107, 108, 109)
		ts := newThemeService(t, mock, 1)
		svc := service.NewAnalyticsService(ts)

		req := model.StockDataRequest{
			Themes:    []model.Theme{{Name: "T1", Codes: []string{"AAPL"}}},
			StartDate: "2024-01-08",
			EndDate:   "2024-01-10",
		}

		resp, err := svc.StockData(context.Background(), req)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(resp.StockLevelReturns) == 0 {
			t.Error("Expected daily drill-down for defaulted timeframe")
		}
	})
}
