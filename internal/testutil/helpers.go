package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/themepulse/theme-returns-backend/internal/timeseries"
)

// Date builds a midnight-UTC date, the normalized form used throughout the
// series pipeline.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Series builds a series of consecutive calendar days starting at start.
func Series(start time.Time, values ...float64) timeseries.Series {
	out := make(timeseries.Series, len(values))
	for i, v := range values {
		out[i] = timeseries.Point{Date: timeseries.Day(start.AddDate(0, 0, i)), Value: v}
	}
	return out
}

// NewJSONRequest creates an HTTP request with a JSON-encoded body.
//
// Example:
//
//	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/stock-data", body)
func NewJSONRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}
