package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/themepulse/theme-returns-backend/internal/api/handlers"
	"github.com/themepulse/theme-returns-backend/internal/listing"
	"github.com/themepulse/theme-returns-backend/internal/model"
	"github.com/themepulse/theme-returns-backend/internal/repository"
	"github.com/themepulse/theme-returns-backend/internal/service"
	"github.com/themepulse/theme-returns-backend/internal/testutil"
)

func newTestDirectory(t *testing.T, client listing.Client, markets ...string) *service.DirectoryService {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repo := repository.NewSymbolRepository(db)
	dir := service.NewDirectoryService(client, repo, markets)
	dir.Refresh(context.Background())
	return dir
}

func TestStockHandler_AllStocks(t *testing.T) {
	t.Run("returns the full directory", func(t *testing.T) {
		client := testutil.NewMockListingClient().
			WithMarket("NASDAQ",
				model.Listing{Code: "AAPL", Name: "Apple Inc.", Market: "NASDAQ"},
				model.Listing{Code: "MSFT", Name: "Microsoft Corp.", Market: "NASDAQ"},
			)
		handler := handlers.NewStockHandler(newTestDirectory(t, client, "NASDAQ"))

		req := httptest.NewRequest(http.MethodGet, "/api/all-stocks", nil)
		w := httptest.NewRecorder()

		handler.AllStocks(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.AllStocksResponse
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response.Stocks) != 2 {
			t.Fatalf("Expected 2 stocks, got %d", len(response.Stocks))
		}
		if response.Stocks[0].Code != "AAPL" || response.Stocks[0].Name != "Apple Inc." {
			t.Errorf("Unexpected first stock: %+v", response.Stocks[0])
		}
	})

	t.Run("returns 500 when the directory failed to load", func(t *testing.T) {
		client := testutil.NewMockListingClient().
			WithMarketError("NASDAQ", errors.New("listing unavailable"))
		handler := handlers.NewStockHandler(newTestDirectory(t, client, "NASDAQ"))

		req := httptest.NewRequest(http.MethodGet, "/api/all-stocks", nil)
		w := httptest.NewRecorder()

		handler.AllStocks(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("Expected status 500, got %d", w.Code)
		}

		var response map[string]string
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}
		if _, hasError := response["error"]; !hasError {
			t.Error("Expected error field in response")
		}
	})
}
