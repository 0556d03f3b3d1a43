package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/themepulse/theme-returns-backend/internal/api/response"
	"github.com/themepulse/theme-returns-backend/internal/apperrors"
	"github.com/themepulse/theme-returns-backend/internal/model"
	"github.com/themepulse/theme-returns-backend/internal/service"
	"github.com/themepulse/theme-returns-backend/internal/validation"
)

// StockDataHandler handles HTTP requests for the return analytics pipeline.
type StockDataHandler struct {
	analyticsService *service.AnalyticsService
}

// NewStockDataHandler creates a new StockDataHandler with the provided service dependency.
func NewStockDataHandler(analyticsService *service.AnalyticsService) *StockDataHandler {
	return &StockDataHandler{
		analyticsService: analyticsService,
	}
}

// StockData handles POST requests computing themed return series, per-symbol
// daily drill-down and the cross-theme correlation matrix.
//
// Endpoint: POST /api/stock-data
// Body: {"themes": [{"name", "codes"}], "startDate", "endDate", "timeframe"}
// Response: 200 OK with themed_returns, stock_level_returns, correlation_matrix
// Error: 400 Bad Request on invalid input, 500 when no theme produced data
func (h *StockDataHandler) StockData(w http.ResponseWriter, r *http.Request) {
	var req model.StockDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateStockDataRequest(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	result, err := h.analyticsService.StockData(r.Context(), req)
	if err != nil {
		message := "failed to compute stock data"
		if errors.Is(err, apperrors.ErrNoThemeData) {
			message = "no computable data for the requested themes"
		}
		response.RespondError(w, http.StatusInternalServerError, message, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}
