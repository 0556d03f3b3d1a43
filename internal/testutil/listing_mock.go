package testutil

import (
	"context"
	"fmt"

	"github.com/themepulse/theme-returns-backend/internal/model"
)

// MockListingClient is a mock implementation of listing.Client for testing.
// It serves predefined per-market listings.
type MockListingClient struct {
	// Listings maps market -> rows to return from ListSymbols.
	Listings map[string][]model.Listing
	// Errors maps market -> error to return from ListSymbols.
	Errors map[string]error
}

// NewMockListingClient creates an empty mock; configure it with WithMarket
// and WithMarketError.
func NewMockListingClient() *MockListingClient {
	return &MockListingClient{
		Listings: make(map[string][]model.Listing),
		Errors:   make(map[string]error),
	}
}

// WithMarket configures the rows served for a market.
func (m *MockListingClient) WithMarket(market string, listings ...model.Listing) *MockListingClient {
	m.Listings[market] = listings
	return m
}

// WithMarketError configures a market to fail.
func (m *MockListingClient) WithMarketError(market string, err error) *MockListingClient {
	m.Errors[market] = err
	return m
}

// ListSymbols returns the configured rows or error for the market.
func (m *MockListingClient) ListSymbols(_ context.Context, market string) ([]model.Listing, error) {
	if err, ok := m.Errors[market]; ok {
		return nil, err
	}
	if listings, ok := m.Listings[market]; ok {
		return listings, nil
	}
	return nil, fmt.Errorf("no mock listing configured for market %s", market)
}
