package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/themepulse/theme-returns-backend/internal/model"
)

const krxDataPath = "/comm/bldAttendant/getJsonData.cmd"

// krxResponse is the generic shape of the KRX data API: a single output
// block of rows keyed by screen-specific column names. Stock and ETF
// listings both report the short code and the abbreviated name under
// ISU_SRT_CD / ISU_ABBRV.
type krxResponse struct {
	OutBlock []struct {
		ShortCode string `json:"ISU_SRT_CD"`
		Name      string `json:"ISU_ABBRV"`
	} `json:"OutBlock_1"`
}

// fetchKRX queries one KRX data API screen (bld) and returns its rows.
// mktId selects the board for stock screens (STK = KOSPI, KSQ = KOSDAQ) and
// is empty for the ETF screen.
func (c *HTTPClient) fetchKRX(ctx context.Context, market, bld, mktID string) ([]model.Listing, error) {
	form := url.Values{}
	form.Set("bld", bld)
	form.Set("trdDd", time.Now().Format("20060102"))
	if mktID != "" {
		form.Set("mktId", mktID)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.krxBaseURL+krxDataPath,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("krx listing %s: unexpected status %d", market, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed krxResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("krx listing %s: %w", market, err)
	}

	listings := make([]model.Listing, 0, len(parsed.OutBlock))
	for _, row := range parsed.OutBlock {
		listings = append(listings, model.Listing{
			Code:   strings.TrimSpace(row.ShortCode),
			Name:   strings.TrimSpace(row.Name),
			Market: market,
		})
	}
	return listings, nil
}
