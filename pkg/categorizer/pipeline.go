package categorizer

import (
	"context"
	"fmt"
)

// Pipeline connects the engine to its collaborators. The catalog is read
// fresh on every call; nothing is cached between calls.
type Pipeline struct {
	Engine            *Engine
	Categories        CategoryProvider
	Contents          ContentProvider
	History           HistoryProvider
	Sink              AssignmentSink
	Threshold         float64
	ReviewSuggestions int
}

// Suggest analyzes one item and ranks the current catalog against it.
// Collaborator errors are returned to the caller.
func (p *Pipeline) Suggest(ctx context.Context, item ContentItem) ([]CategorySuggestion, ContentAnalysis, error) {
	catalog, err := p.Categories.ListCategories(ctx)
	if err != nil {
		return nil, ContentAnalysis{}, fmt.Errorf("list categories: %w", err)
	}
	s := &CatalogSuggester{Engine: p.Engine, Catalog: catalog, History: p.History}
	return s.SuggestWithAnalysis(ctx, item)
}

// AutoCategorize snapshots the catalog and up to limit uncategorized items,
// then runs the batch policy over the snapshot. Only the two snapshot reads
// can fail the whole run.
func (p *Pipeline) AutoCategorize(ctx context.Context, limit int) (BatchResult, error) {
	catalog, err := p.Categories.ListCategories(ctx)
	if err != nil {
		return BatchResult{}, fmt.Errorf("list categories: %w", err)
	}
	items, err := p.Contents.ListUncategorized(ctx, limit)
	if err != nil {
		return BatchResult{}, fmt.Errorf("list uncategorized content: %w", err)
	}

	suggester := &CatalogSuggester{Engine: p.Engine, Catalog: catalog, History: p.History}
	return NewAutoCategorizer(suggester, p.Sink, p.Threshold, p.ReviewSuggestions).Run(ctx, items), nil
}
