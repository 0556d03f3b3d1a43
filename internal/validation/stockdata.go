// Package validation validates incoming API requests before any price data
// is fetched.
package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/themepulse/theme-returns-backend/internal/apperrors"
	"github.com/themepulse/theme-returns-backend/internal/model"
)

const dateLayout = "2006-01-02"

// ValidateStockDataRequest checks a stock-data request for missing or
// malformed fields. It rejects empty theme lists, themes without a name or
// codes, missing or unparsable dates, inverted date ranges and unsupported
// timeframes. Validation runs before any fetching, so an invalid request
// never triggers upstream calls.
func ValidateStockDataRequest(req model.StockDataRequest) error {
	if strings.TrimSpace(req.StartDate) == "" {
		return fmt.Errorf("%w: startDate", apperrors.ErrMissingRequiredField)
	}
	if strings.TrimSpace(req.EndDate) == "" {
		return fmt.Errorf("%w: endDate", apperrors.ErrMissingRequiredField)
	}
	if len(req.Themes) == 0 {
		return fmt.Errorf("%w: themes", apperrors.ErrMissingRequiredField)
	}
	for i, theme := range req.Themes {
		if strings.TrimSpace(theme.Name) == "" {
			return fmt.Errorf("%w: themes[%d].name", apperrors.ErrMissingRequiredField, i)
		}
		if len(theme.Codes) == 0 {
			return fmt.Errorf("%w: themes[%d].codes", apperrors.ErrMissingRequiredField, i)
		}
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return fmt.Errorf("%w: startDate %q", apperrors.ErrInvalidDateRange, req.StartDate)
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return fmt.Errorf("%w: endDate %q", apperrors.ErrInvalidDateRange, req.EndDate)
	}
	if start.After(end) {
		return fmt.Errorf("%w: startDate is after endDate", apperrors.ErrInvalidDateRange)
	}

	if req.Timeframe != "" && !model.Timeframe(req.Timeframe).Valid() {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidTimeframe, req.Timeframe)
	}

	return nil
}
