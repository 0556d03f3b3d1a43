package service

import (
	"time"

	"github.com/themepulse/theme-returns-backend/internal/apperrors"
	"github.com/themepulse/theme-returns-backend/internal/model"
	"github.com/themepulse/theme-returns-backend/internal/timeseries"
)

// ThemeAverage pairs a theme name with its average return series.
type ThemeAverage struct {
	Name   string
	Series timeseries.Series
}

// Finalize aligns the per-theme average series onto a shared date index,
// truncates the warm-up window introduced by the effective start date, and
// computes the cross-theme correlation matrix over the truncated window
// using pairwise-complete observations.
//
// The returned series are each theme's own average, independently trimmed to
// the requested start and rounded for presentation; the correlation matrix
// is computed from the unrounded values. When nothing remains after
// truncation the request as a whole has no result and ErrNoThemeData is
// returned.
func Finalize(
	averages []ThemeAverage,
	requestedStart time.Time,
) ([]ThemeAverage, model.CorrelationMatrix, error) {
	if len(averages) == 0 {
		return nil, nil, apperrors.ErrNoThemeData
	}

	cols := make([]timeseries.Column, 0, len(averages))
	for _, a := range averages {
		cols = append(cols, timeseries.Column{Name: a.Name, Series: a.Series})
	}
	frame := timeseries.Join(cols).TrimBefore(requestedStart)
	if frame.Empty() {
		return nil, nil, apperrors.ErrNoThemeData
	}

	matrix := model.CorrelationMatrix(frame.Correlation())

	trimmed := make([]ThemeAverage, 0, len(averages))
	for _, a := range averages {
		trimmed = append(trimmed, ThemeAverage{
			Name:   a.Name,
			Series: a.Series.TrimBefore(requestedStart).Round2(),
		})
	}
	return trimmed, matrix, nil
}
