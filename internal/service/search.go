package service

import (
	"context"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/anpos/pos-client/internal/db/repository"
	"github.com/anpos/pos-client/internal/models"
)

const (
	// searchLimit caps the primary LIKE query
	searchLimit = 50
	// fallbackScanLimit caps how many rows the accent-folding fallback
	// will pull into memory
	fallbackScanLimit = 500
)

// SearchService handles product lookup for the sell screen. Search
// never returns an error to the caller; failures are logged and show
// up as an empty result.
type SearchService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewSearchService creates a new product search service
func NewSearchService(repos *repository.Repositories, logger *zap.Logger) *SearchService {
	return &SearchService{
		repos:  repos,
		logger: logger,
	}
}

// SearchProducts matches term against product barcodes and names.
// Phase one is a plain case-insensitive substring query. When that
// finds nothing, phase two refetches a bounded window of rows and
// compares accent-folded forms, so Vietnamese names match queries
// typed without diacritics.
func (s *SearchService) SearchProducts(ctx context.Context, term string) []models.Product {
	term = strings.TrimSpace(term)
	if term == "" {
		return []models.Product{}
	}

	products, err := s.repos.Product.SearchLike(ctx, term, searchLimit)
	if err != nil {
		s.logger.Error("product search failed", zap.String("term", term), zap.Error(err))
		return []models.Product{}
	}
	if len(products) > 0 {
		return products
	}

	candidates, err := s.repos.Product.List(ctx, fallbackScanLimit)
	if err != nil {
		s.logger.Error("product search fallback failed", zap.String("term", term), zap.Error(err))
		return []models.Product{}
	}

	folded := foldDiacritics(term)
	matches := []models.Product{}
	for _, p := range candidates {
		if strings.Contains(foldDiacritics(p.Barcode), folded) ||
			strings.Contains(foldDiacritics(p.ItemName), folded) {
			matches = append(matches, p)
		}
	}

	return matches
}

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldDiacritics lowercases s and strips combining marks ("ê" -> "e")
func foldDiacritics(s string) string {
	folded, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}
