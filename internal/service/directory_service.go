package service

import (
	"context"
	"log"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/themepulse/theme-returns-backend/internal/listing"
	"github.com/themepulse/theme-returns-backend/internal/model"
	"github.com/themepulse/theme-returns-backend/internal/repository"
)

// DirectoryService owns the symbol directory: the deduplicated union of all
// configured market listings, built once at startup and exposed as an
// immutable snapshot. An optional scheduled refresh builds a new snapshot in
// the background and swaps it atomically, so readers always observe a
// consistent directory.
type DirectoryService struct {
	listingClient listing.Client
	symbolRepo    *repository.SymbolRepository
	markets       []string
	snapshot      atomic.Pointer[directorySnapshot]
}

// directorySnapshot is one immutable build of the directory.
type directorySnapshot struct {
	symbols []model.Symbol
	names   map[string]string
}

// NewDirectoryService creates a DirectoryService over the given listing
// source, cache repository and market list. The directory starts empty;
// call Refresh to populate it.
func NewDirectoryService(
	listingClient listing.Client,
	symbolRepo *repository.SymbolRepository,
	markets []string,
) *DirectoryService {
	s := &DirectoryService{
		listingClient: listingClient,
		symbolRepo:    symbolRepo,
		markets:       markets,
	}
	s.snapshot.Store(&directorySnapshot{names: map[string]string{}})
	return s
}

// Refresh rebuilds the directory from the configured markets and swaps in
// the new snapshot. A market whose listing fails is logged and skipped; the
// build succeeds with whatever markets responded. Only when every market
// fails does the service fall back to the last cached snapshot. Refresh
// itself never returns an error: an empty directory is a degraded but valid
// state in which lookups fall back to raw codes.
func (s *DirectoryService) Refresh(ctx context.Context) {
	runID := uuid.NewString()
	log.Printf("directory refresh %s: loading %d markets", runID, len(s.markets))

	var rows []model.Listing
	loaded := 0
	for _, market := range s.markets {
		listings, err := s.listingClient.ListSymbols(ctx, market)
		if err != nil {
			log.Printf("directory refresh %s: market %s failed, skipping: %v", runID, market, err)
			continue
		}
		rows = append(rows, listings...)
		loaded++
	}

	rows = cleanListings(rows)

	if loaded == 0 {
		cached, err := s.symbolRepo.LoadAll()
		if err != nil {
			log.Printf("directory refresh %s: cache read failed: %v", runID, err)
		} else if len(cached) > 0 {
			log.Printf("directory refresh %s: all markets failed, serving %d cached symbols", runID, len(cached))
			rows = cached
		}
	} else if len(rows) > 0 {
		if err := s.symbolRepo.ReplaceAll(rows); err != nil {
			log.Printf("directory refresh %s: cache write failed: %v", runID, err)
		}
	}

	snap := &directorySnapshot{
		symbols: make([]model.Symbol, 0, len(rows)),
		names:   make(map[string]string, len(rows)),
	}
	for _, l := range rows {
		snap.symbols = append(snap.symbols, model.Symbol{Code: l.Code, Name: l.Name})
		snap.names[l.Code] = l.Name
	}
	s.snapshot.Store(snap)

	log.Printf("directory refresh %s: done, %d symbols from %d/%d markets", runID, len(snap.symbols), loaded, len(s.markets))
}

// Symbols returns the directory as an ordered sequence of symbols.
func (s *DirectoryService) Symbols() []model.Symbol {
	return s.snapshot.Load().symbols
}

// Empty reports whether the directory holds no symbols.
func (s *DirectoryService) Empty() bool {
	return len(s.snapshot.Load().symbols) == 0
}

// Lookup resolves a code to its display name. Unknown codes (and every code
// when the directory is empty) degrade to the raw code.
func (s *DirectoryService) Lookup(code string) string {
	if name, ok := s.snapshot.Load().names[code]; ok {
		return name
	}
	return code
}

// cleanListings drops rows with a missing code or name and deduplicates by
// code, first occurrence winning. Market order therefore decides ties.
func cleanListings(rows []model.Listing) []model.Listing {
	seen := make(map[string]struct{}, len(rows))
	out := make([]model.Listing, 0, len(rows))
	for _, l := range rows {
		if l.Code == "" || l.Name == "" {
			continue
		}
		if _, ok := seen[l.Code]; ok {
			continue
		}
		seen[l.Code] = struct{}{}
		out = append(out, l)
	}
	return out
}
