package model

// Symbol represents one tradable instrument in the symbol directory.
// The JSON field names are capitalized to match the wire format the
// web client expects from /api/all-stocks.
type Symbol struct {
	Code string `json:"Code"`
	Name string `json:"Name"`
}

// Listing represents one row returned by a market listing source before
// directory-level cleanup (dedup, empty-field filtering).
type Listing struct {
	Code   string
	Name   string
	Market string
}
