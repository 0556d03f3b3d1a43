// Package repository provides data access for the symbol-cache database.
package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/themepulse/theme-returns-backend/internal/model"
)

// SymbolRepository persists symbol-directory snapshots. The cache holds the
// last successfully built directory and is only read back when every market
// listing fails at startup.
type SymbolRepository struct {
	db *sql.DB
}

// NewSymbolRepository creates a new SymbolRepository
func NewSymbolRepository(db *sql.DB) *SymbolRepository {
	return &SymbolRepository{db: db}
}

// ReplaceAll atomically replaces the cached snapshot with the given rows,
// preserving their order via the position column.
func (r *SymbolRepository) ReplaceAll(listings []model.Listing) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM symbols"); err != nil {
		return fmt.Errorf("failed to clear symbol cache: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO symbols (code, name, market, position, fetched_at) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i, l := range listings {
		if _, err := stmt.Exec(l.Code, l.Name, l.Market, i, now); err != nil {
			return fmt.Errorf("failed to insert symbol %s: %w", l.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit symbol cache: %w", err)
	}
	return nil
}

// LoadAll returns the cached snapshot in its original order. An empty cache
// yields an empty slice, not an error.
func (r *SymbolRepository) LoadAll() ([]model.Listing, error) {
	rows, err := r.db.Query("SELECT code, name, market FROM symbols ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query symbol cache: %w", err)
	}
	defer rows.Close()

	var listings []model.Listing
	for rows.Next() {
		var l model.Listing
		if err := rows.Scan(&l.Code, &l.Name, &l.Market); err != nil {
			return nil, fmt.Errorf("failed to scan symbol row: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read symbol cache: %w", err)
	}
	return listings, nil
}
