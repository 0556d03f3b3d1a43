package listing

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/themepulse/theme-returns-backend/internal/model"
)

// fetchSymbolDirectory downloads and parses a Nasdaq Trader symbol directory
// file. The files are pipe-delimited with a header row and a trailing
// "File Creation Time" footer. When exchangeFilter is non-empty, only rows
// whose Exchange column matches are kept (used to select NYSE rows from
// otherlisted.txt).
func (c *HTTPClient) fetchSymbolDirectory(ctx context.Context, market, path, exchangeFilter string) ([]model.Listing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.nasdaqBaseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("symbol directory %s: unexpected status %d", path, resp.StatusCode)
	}

	var listings []model.Listing
	scanner := bufio.NewScanner(resp.Body)
	header := true
	exchangeCol := -1
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "File Creation Time") {
			break
		}
		fields := strings.Split(line, "|")
		if len(fields) < 2 {
			continue
		}
		if header {
			header = false
			for i, name := range fields {
				if name == "Exchange" {
					exchangeCol = i
				}
			}
			continue
		}
		if exchangeFilter != "" {
			if exchangeCol < 0 || exchangeCol >= len(fields) || fields[exchangeCol] != exchangeFilter {
				continue
			}
		}
		listings = append(listings, model.Listing{
			Code:   strings.TrimSpace(fields[0]),
			Name:   strings.TrimSpace(fields[1]),
			Market: market,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return listings, nil
}
