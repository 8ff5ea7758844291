package usecase

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/specwise/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// PhoneServiceConfig holds configuration for the phone service
type PhoneServiceConfig struct {
	CacheTTL    time.Duration
	SearchLimit int
}

// PhoneService resolves queries to candidate titles and titles to parsed
// specs, caching parsed specs per title.
type PhoneService struct {
	cache       domain.CacheRepository
	wiki        domain.WikiClient
	cacheTTL    time.Duration
	searchLimit int
}

// NewPhoneService creates a new phone service with dependencies
func NewPhoneService(cache domain.CacheRepository, wiki domain.WikiClient, config PhoneServiceConfig) *PhoneService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	searchLimit := config.SearchLimit
	if searchLimit <= 0 {
		searchLimit = 8
	}

	return &PhoneService{
		cache:       cache,
		wiki:        wiki,
		cacheTTL:    cacheTTL,
		searchLimit: searchLimit,
	}
}

// SearchPhones returns candidate titles for a free-text query. A collaborator
// failure degrades to an empty list; it is never surfaced as an error.
func (s *PhoneService) SearchPhones(ctx context.Context, query string) []domain.Candidate {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	candidates, err := s.wiki.Search(ctx, query)
	if err != nil {
		log.Printf("[PHONES] search %q failed: %v", query, err)
		return nil
	}

	if len(candidates) > s.searchLimit {
		candidates = candidates[:s.searchLimit]
	}
	return candidates
}

// GetPhone fetches and parses the article for a canonical title.
// Flow: check cache -> fetch article HTML -> parse infobox -> cache -> return.
// An article without a recognizable infobox still yields a valid spec holding
// only the identity field.
func (s *PhoneService) GetPhone(ctx context.Context, title string) (*domain.PhoneSpec, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.ErrInvalidRequest
	}

	cacheKey := s.cacheKey(title)
	if cached, err := s.getFromCache(ctx, cacheKey); err == nil && cached != nil {
		copied := *cached
		copied.Source = "cache"
		return &copied, nil
	}

	html, err := s.wiki.FetchArticleHTML(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("fetching article %q: %w", title, err)
	}

	spec := ParseInfobox(html, title)
	spec.Source = "wiki"

	if err := s.setInCache(ctx, cacheKey, spec); err != nil {
		log.Printf("[PHONES] caching spec for %q failed: %v", title, err)
	}

	return spec, nil
}

// CompareOutcome bundles everything a caller needs to render a comparison.
type CompareOutcome struct {
	SpecA    *domain.PhoneSpec       `json:"specA"`
	SpecB    *domain.PhoneSpec       `json:"specB"`
	MetricsA *domain.DerivedMetrics  `json:"metricsA"`
	MetricsB *domain.DerivedMetrics  `json:"metricsB"`
	Result   *domain.ComparisonResult `json:"result"`
}

// ComparePhones resolves both titles and compares them. Both fetches must
// succeed; a failure leaves no partial outcome.
func (s *PhoneService) ComparePhones(ctx context.Context, titleA, titleB string) (*CompareOutcome, error) {
	specA, err := s.GetPhone(ctx, titleA)
	if err != nil {
		return nil, err
	}
	specB, err := s.GetPhone(ctx, titleB)
	if err != nil {
		return nil, err
	}

	return &CompareOutcome{
		SpecA:    specA,
		SpecB:    specB,
		MetricsA: DeriveMetrics(specA),
		MetricsB: DeriveMetrics(specB),
		Result:   Compare(specA, specB),
	}, nil
}

// BuildSummaryPrompt renders two metric sets into the neutral-reviewer prompt
// sent to the external summarization proxy.
func BuildSummaryPrompt(a, b *domain.DerivedMetrics) string {
	return fmt.Sprintf(
		"You are a neutral smartphone reviewer. Compare two phones and return a crisp paragraph and 3 bullets of strengths for each.\n"+
			"A: %s. Specs: size %s in, %s Hz, RAM %s GB, storage %s GB, battery %s mAh, chipset %s.\n"+
			"B: %s. Specs: size %s in, %s Hz, RAM %s GB, storage %s GB, battery %s mAh, chipset %s.",
		a.Name, formatMetric(a.SizeInches), formatMetric(a.RefreshHz), formatMetric(a.RAMGB),
		formatMetric(a.StorageGB), formatMetric(a.BatteryMAh), a.Chipset,
		b.Name, formatMetric(b.SizeInches), formatMetric(b.RefreshHz), formatMetric(b.RAMGB),
		formatMetric(b.StorageGB), formatMetric(b.BatteryMAh), b.Chipset,
	)
}

// cacheKey normalizes a title into a cache key.
// Format: "phone:{normalized_title}"
func (s *PhoneService) cacheKey(title string) string {
	normalized := strings.ToLower(title)
	normalized = nonAlphanumericRegex.ReplaceAllString(normalized, "")
	normalized = multipleSpacesRegex.ReplaceAllString(normalized, " ")
	return "phone:" + strings.TrimSpace(normalized)
}

// getFromCache retrieves a parsed spec from cache
func (s *PhoneService) getFromCache(ctx context.Context, key string) (*domain.PhoneSpec, error) {
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	spec, ok := value.(*domain.PhoneSpec)
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return spec, nil
}

// setInCache stores a parsed spec in cache
func (s *PhoneService) setInCache(ctx context.Context, key string, spec *domain.PhoneSpec) error {
	spec.CachedAt = time.Now()
	return s.cache.Set(ctx, key, spec, s.cacheTTL)
}
