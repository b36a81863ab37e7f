package categorizer

import (
	"context"
	"fmt"
	"sort"
)

// DefaultVisibilityThreshold hides weak matches. Suggestions must score above it.
const DefaultVisibilityThreshold = 0.3

// Options tune an Engine. Zero values fall back to the defaults.
type Options struct {
	VisibilityThreshold float64
	HistorySize         int
}

// Engine scores content against a category catalog.
type Engine struct {
	visibility  float64
	historySize int
}

// NewEngine returns an Engine with opts applied over the defaults.
func NewEngine(opts Options) *Engine {
	e := &Engine{visibility: DefaultVisibilityThreshold, historySize: DefaultHistorySize}
	if opts.VisibilityThreshold > 0 {
		e.visibility = opts.VisibilityThreshold
	}
	if opts.HistorySize > 0 && opts.HistorySize < DefaultHistorySize {
		e.historySize = opts.HistorySize
	}
	return e
}

// HistorySize is the number of recent items per category the engine uses.
func (e *Engine) HistorySize() int {
	return e.historySize
}

// Suggest scores item against every category in catalog and returns the
// visible matches, highest confidence first. recent maps category IDs to
// items already filed there; a missing entry means the category is empty.
func (e *Engine) Suggest(item ContentItem, catalog []CategoryDescriptor, recent map[int64][]ContentItem) []CategorySuggestion {
	return e.SuggestAnalyzed(Analyze(item), catalog, recent)
}

// SuggestAnalyzed is Suggest for an analysis the caller already holds.
func (e *Engine) SuggestAnalyzed(analysis ContentAnalysis, catalog []CategoryDescriptor, recent map[int64][]ContentItem) []CategorySuggestion {
	suggestions := make([]CategorySuggestion, 0, len(catalog))
	for _, cat := range catalog {
		history := recent[cat.ID]
		if len(history) > e.historySize {
			history = history[:e.historySize]
		}
		confidence := ScoreCategory(analysis, cat, history)
		if confidence <= e.visibility {
			continue
		}
		suggestions = append(suggestions, CategorySuggestion{
			CategoryID:   cat.ID,
			CategoryName: cat.Name,
			Confidence:   confidence,
			Reasons:      GenerateReasons(analysis, cat),
		})
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})
	return suggestions
}

// CatalogSuggester binds an Engine to a catalog snapshot and a history source.
type CatalogSuggester struct {
	Engine  *Engine
	Catalog []CategoryDescriptor
	History HistoryProvider
}

// Suggest fetches recent items for each category, then scores item.
func (s *CatalogSuggester) Suggest(ctx context.Context, item ContentItem) ([]CategorySuggestion, error) {
	suggestions, _, err := s.SuggestWithAnalysis(ctx, item)
	return suggestions, err
}

// SuggestWithAnalysis is Suggest that also returns the analysis it scored.
func (s *CatalogSuggester) SuggestWithAnalysis(ctx context.Context, item ContentItem) ([]CategorySuggestion, ContentAnalysis, error) {
	recent, err := s.recentItems(ctx)
	if err != nil {
		return nil, ContentAnalysis{}, err
	}
	analysis := Analyze(item)
	return s.Engine.SuggestAnalyzed(analysis, s.Catalog, recent), analysis, nil
}

func (s *CatalogSuggester) recentItems(ctx context.Context) (map[int64][]ContentItem, error) {
	recent := make(map[int64][]ContentItem, len(s.Catalog))
	if s.History == nil {
		return recent, nil
	}
	for _, cat := range s.Catalog {
		items, err := s.History.RecentInCategory(ctx, cat.ID, s.Engine.HistorySize())
		if err != nil {
			return nil, fmt.Errorf("recent items for category %d: %w", cat.ID, err)
		}
		recent[cat.ID] = items
	}
	return recent, nil
}

var _ Suggester = (*CatalogSuggester)(nil)
