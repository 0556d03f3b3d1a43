package model

// StockDataRequest is the JSON body of POST /api/stock-data.
type StockDataRequest struct {
	Themes    []Theme `json:"themes"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	Timeframe string  `json:"timeframe"`
}

// ThemedReturn is one (date, theme, value) record of a theme's average
// return series. Value is a percent rounded to 2 decimals.
type ThemedReturn struct {
	Date   string  `json:"date"`
	Sector string  `json:"sector"`
	Value  float64 `json:"value"`
}

// StockReturn is one (date, stock, value) record of a single symbol's daily
// return series, tagged "{name} ({code})". Only produced for daily requests.
type StockReturn struct {
	Date      string  `json:"date"`
	StockName string  `json:"stock_name"`
	Value     float64 `json:"value"`
}

// CorrelationMatrix maps theme name -> theme name -> Pearson coefficient.
// A nil coefficient means fewer than two overlapping observations existed
// for the pair and is serialized as JSON null.
type CorrelationMatrix map[string]map[string]*float64

// StockDataResponse is the success payload of POST /api/stock-data.
type StockDataResponse struct {
	ThemedReturns     []ThemedReturn    `json:"themed_returns"`
	StockLevelReturns []StockReturn     `json:"stock_level_returns"`
	CorrelationMatrix CorrelationMatrix `json:"correlation_matrix"`
}

// AllStocksResponse is the success payload of GET /api/all-stocks.
type AllStocksResponse struct {
	Stocks []Symbol `json:"stocks"`
}
