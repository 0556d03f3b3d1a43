package apperrors

import "errors"

// Request validation errors indicate that a request cannot be processed and
// is rejected before any price data is fetched.
var (
	// ErrMissingRequiredField indicates that startDate, endDate or the themes
	// list is missing from a stock-data request.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidTimeframe indicates an unsupported timeframe value.
	ErrInvalidTimeframe = errors.New("invalid timeframe")
)

// Computation errors indicate that a request was valid but produced no
// usable result.
var (
	// ErrNoThemeData indicates that no theme produced any return data, either
	// because every member symbol failed to fetch or because nothing remained
	// after trimming to the requested start date.
	ErrNoThemeData = errors.New("no computable data for the requested themes")
)

// Directory errors cover the symbol directory bootstrap.
var (
	// ErrDirectoryEmpty indicates that no market listing could be loaded and
	// no cached snapshot was available.
	ErrDirectoryEmpty = errors.New("symbol directory is empty")
)

// Price source errors classify why a symbol was skipped during aggregation.
// These never propagate past the theme aggregator.
var (
	// ErrNoPriceData indicates a valid fetch that returned zero rows.
	ErrNoPriceData = errors.New("no price data returned")

	// ErrInsufficientPriceData indicates a series too short to compute a
	// single return (fewer than two observations).
	ErrInsufficientPriceData = errors.New("insufficient price data")
)
