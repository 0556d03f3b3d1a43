// Package listing implements the market listing source used to bootstrap
// the symbol directory. It knows two upstream formats: the pipe-delimited
// Nasdaq Trader symbol directory files (NASDAQ, NYSE) and the KRX data API
// (KOSPI, KOSDAQ, Korean ETFs). A per-market failure is returned to the
// caller, which logs it and continues with the remaining markets.
package listing

import (
	"context"
	"fmt"
	"net/http"

	"github.com/themepulse/theme-returns-backend/internal/model"
)

// Known market identifiers, matching the configured market list.
const (
	MarketKOSPI  = "KOSPI"
	MarketKOSDAQ = "KOSDAQ"
	MarketETFKR  = "ETF/KR"
	MarketNASDAQ = "NASDAQ"
	MarketNYSE   = "NYSE"
)

const (
	defaultNasdaqBaseURL = "https://www.nasdaqtrader.com"
	defaultKRXBaseURL    = "http://data.krx.co.kr"
)

// Client is the interface consumed by the directory service. It is
// implemented by HTTPClient and by the test mock in internal/testutil.
type Client interface {
	ListSymbols(ctx context.Context, market string) ([]model.Listing, error)
}

// HTTPClient fetches market listings from their public sources.
type HTTPClient struct {
	httpClient    *http.Client
	nasdaqBaseURL string
	krxBaseURL    string
}

// NewHTTPClient creates a listing client. Empty base URLs select the public
// endpoints; tests point them at httptest servers.
func NewHTTPClient(nasdaqBaseURL, krxBaseURL string) *HTTPClient {
	if nasdaqBaseURL == "" {
		nasdaqBaseURL = defaultNasdaqBaseURL
	}
	if krxBaseURL == "" {
		krxBaseURL = defaultKRXBaseURL
	}
	return &HTTPClient{
		httpClient:    &http.Client{},
		nasdaqBaseURL: nasdaqBaseURL,
		krxBaseURL:    krxBaseURL,
	}
}

// ListSymbols fetches the listing for one market. Unknown markets are an
// error; so is any HTTP or parse failure. Rows are returned as-is, cleanup
// (dedup, empty-field filtering) happens in the directory service.
func (c *HTTPClient) ListSymbols(ctx context.Context, market string) ([]model.Listing, error) {
	switch market {
	case MarketNASDAQ:
		return c.fetchSymbolDirectory(ctx, market, "/dynamic/symdir/nasdaqlisted.txt", "")
	case MarketNYSE:
		// otherlisted.txt covers all non-Nasdaq US listings; exchange code N is NYSE.
		return c.fetchSymbolDirectory(ctx, market, "/dynamic/symdir/otherlisted.txt", "N")
	case MarketKOSPI:
		return c.fetchKRX(ctx, market, "dbms/MDC/STAT/standard/MDCSTAT01901", "STK")
	case MarketKOSDAQ:
		return c.fetchKRX(ctx, market, "dbms/MDC/STAT/standard/MDCSTAT01901", "KSQ")
	case MarketETFKR:
		return c.fetchKRX(ctx, market, "dbms/MDC/STAT/standard/MDCSTAT04601", "")
	default:
		return nil, fmt.Errorf("unknown market %q", market)
	}
}
