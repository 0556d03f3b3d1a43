package model

// Theme is a user-defined named group of ticker symbols treated as one
// analytic unit. Themes are supplied per request and never persisted.
type Theme struct {
	Name  string   `json:"name"`
	Codes []string `json:"codes"`
}
