package categorizer

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

const (
	// DefaultAutoAssignThreshold must be strictly exceeded for an automatic assignment.
	DefaultAutoAssignThreshold = 0.8
	// DefaultReviewSuggestions is how many suggestions a review entry keeps.
	DefaultReviewSuggestions = 3
)

// AutoCategorizer decides, item by item, between automatic assignment and
// human review.
type AutoCategorizer struct {
	suggester         Suggester
	sink              AssignmentSink
	threshold         float64
	reviewSuggestions int
}

// NewAutoCategorizer wires a suggester and an assignment sink. A threshold
// or review size <= 0 selects the default.
func NewAutoCategorizer(s Suggester, sink AssignmentSink, threshold float64, reviewSuggestions int) *AutoCategorizer {
	if threshold <= 0 {
		threshold = DefaultAutoAssignThreshold
	}
	if reviewSuggestions <= 0 {
		reviewSuggestions = DefaultReviewSuggestions
	}
	return &AutoCategorizer{
		suggester:         s,
		sink:              sink,
		threshold:         threshold,
		reviewSuggestions: reviewSuggestions,
	}
}

// Run processes items sequentially and always runs to completion. A failure
// on one item is counted and logged; it never stops the batch.
func (a *AutoCategorizer) Run(ctx context.Context, items []ContentItem) BatchResult {
	result := BatchResult{Suggestions: []ReviewEntry{}}

	for _, item := range items {
		result.Processed++
		logger := log.WithFields(log.Fields{"content_id": item.ID, "title": item.Title})

		suggestions, err := a.suggest(ctx, item)
		if err != nil {
			result.Failed++
			logger.WithError(err).Warn("Failed to score content during auto-categorization")
			continue
		}
		if len(suggestions) == 0 {
			logger.Debug("No category suggestions, leaving content uncategorized")
			continue
		}

		top := suggestions[0]
		if top.Confidence > a.threshold {
			if err := a.sink.AssignCategory(ctx, item.ID, top.CategoryID); err != nil {
				result.Failed++
				logger.WithError(err).Errorf("Failed to assign category %d", top.CategoryID)
				continue
			}
			result.Categorized++
			logger.Infof("Auto-assigned category '%s' (confidence %.2f)", top.CategoryName, top.Confidence)
			continue
		}

		if len(suggestions) > a.reviewSuggestions {
			suggestions = suggestions[:a.reviewSuggestions]
		}
		result.Suggestions = append(result.Suggestions, ReviewEntry{
			ContentID:   item.ID,
			Title:       item.Title,
			Suggestions: suggestions,
		})
		logger.Debugf("Queued for review (top confidence %.2f)", top.Confidence)
	}

	log.WithFields(log.Fields{
		"processed":   result.Processed,
		"categorized": result.Categorized,
		"failed":      result.Failed,
		"review":      len(result.Suggestions),
	}).Info("Auto-categorization batch finished")
	return result
}

// suggest turns a panic in the suggester into an error for this item only.
func (a *AutoCategorizer) suggest(ctx context.Context, item ContentItem) (out []CategorySuggestion, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while scoring content %d: %v", item.ID, r)
		}
	}()
	return a.suggester.Suggest(ctx, item)
}
