package handlers

import (
	"net/http"

	"github.com/themepulse/theme-returns-backend/internal/api/response"
	"github.com/themepulse/theme-returns-backend/internal/apperrors"
	"github.com/themepulse/theme-returns-backend/internal/model"
	"github.com/themepulse/theme-returns-backend/internal/service"
)

// StockHandler handles HTTP requests for the symbol directory.
type StockHandler struct {
	directoryService *service.DirectoryService
}

// NewStockHandler creates a new StockHandler with the provided service dependency.
func NewStockHandler(directoryService *service.DirectoryService) *StockHandler {
	return &StockHandler{
		directoryService: directoryService,
	}
}

// AllStocks handles GET requests for the full symbol directory.
//
// Endpoint: GET /api/all-stocks
// Response: 200 OK with {"stocks": [{"Code", "Name"}, ...]}
// Error: 500 Internal Server Error when the directory could not be loaded
func (h *StockHandler) AllStocks(w http.ResponseWriter, r *http.Request) {
	if h.directoryService.Empty() {
		response.RespondError(w, http.StatusInternalServerError, "failed to load the symbol directory", apperrors.ErrDirectoryEmpty.Error())
		return
	}

	respondJSON(w, http.StatusOK, model.AllStocksResponse{
		Stocks: h.directoryService.Symbols(),
	})
}
