package categorizer

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// Sub-score weights of the composite confidence.
const (
	keywordWeight     = 0.4
	descriptionWeight = 0.3
	typeWeight        = 0.2
	historyWeight     = 0.1

	neutralScore = 0.5

	// DefaultHistorySize is how many recent category items feed the historical pattern.
	DefaultHistorySize = 10

	wordsPerMinute  = 200
	longFormLength  = 1000
	shortFormLength = 500
	maxReasonTerms  = 3
)

// typeSynonyms lists the category-name fragments that signal affinity with a
// detected content type.
var typeSynonyms = map[ContentType][]string{
	TypeTutorial: {"tutorial", "how-to", "howto"},
	TypeNews:     {"news", "update", "announcement"},
	TypeReview:   {"review", "rating"},
	TypeGuide:    {"guide", "handbook"},
	TypeArticle:  {"article", "blog", "opinion"},
}

// Analyze derives keywords, structure, type and size figures for item.
func Analyze(item ContentItem) ContentAnalysis {
	words := len(strings.Fields(item.Body))
	minutes := 0
	if words > 0 {
		minutes = int(math.Ceil(float64(words) / wordsPerMinute))
	}
	return ContentAnalysis{
		TitleKeywords:   topKeywords(item.Title, MaxKeywords),
		ContentKeywords: topKeywords(item.Body, MaxContentKeywords),
		Structure:       AnalyzeStructure(item.Body),
		Type:            DetectType(item.Title, item.Body),
		CharacterLength: utf8.RuneCountInString(item.Body),
		ReadingMinutes:  minutes,
	}
}

// Keywords returns title keywords followed by content keywords, deduplicated.
func (a ContentAnalysis) Keywords() []string {
	return mergeKeywords(a.TitleKeywords, a.ContentKeywords)
}

// categoryKeywords extracts keywords from a category's name, description and hint.
func categoryKeywords(c CategoryDescriptor) []string {
	parts := []string{c.Name}
	if c.Description != nil {
		parts = append(parts, *c.Description)
	}
	if c.KeywordHint != nil {
		parts = append(parts, *c.KeywordHint)
	}
	return ExtractKeywords(strings.Join(parts, " "))
}

// typeAffinity is 1 when the category name mentions the detected type or a
// synonym of it, and neutral otherwise.
func typeAffinity(t ContentType, categoryName string) float64 {
	name := strings.ToLower(categoryName)
	if strings.Contains(name, string(t)) {
		return 1
	}
	if containsAny(name, typeSynonyms[t]...) {
		return 1
	}
	return neutralScore
}

// historicalPattern averages keyword overlap against recent items in the
// category. Only the first DefaultHistorySize items are considered.
func historicalPattern(keywords []string, recent []ContentItem) float64 {
	if len(recent) == 0 {
		return neutralScore
	}
	if len(recent) > DefaultHistorySize {
		recent = recent[:DefaultHistorySize]
	}
	var total float64
	for _, item := range recent {
		total += keywordOverlap(keywords, ExtractKeywords(item.Title+" "+item.Body))
	}
	return total / float64(len(recent))
}

// ScoreCategory computes the confidence, in [0, 1], that analysis belongs to category.
// recent holds items already in the category, newest first.
func ScoreCategory(analysis ContentAnalysis, category CategoryDescriptor, recent []ContentItem) float64 {
	keywords := analysis.Keywords()

	score := keywordWeight * keywordOverlap(keywords, categoryKeywords(category))
	if desc, ok := category.description(); ok {
		score += descriptionWeight * jaccard(strings.Join(analysis.ContentKeywords, " "), desc)
	}
	score += typeWeight * typeAffinity(analysis.Type, category.Name)
	score += historyWeight * historicalPattern(keywords, recent)

	return clamp(score)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// GenerateReasons explains a match in human-readable terms. It never affects confidence.
func GenerateReasons(analysis ContentAnalysis, category CategoryDescriptor) []string {
	var reasons []string

	matched := matchingKeywords(analysis.Keywords(), categoryKeywords(category))
	if len(matched) > maxReasonTerms {
		matched = matched[:maxReasonTerms]
	}
	if len(matched) > 0 {
		reasons = append(reasons, fmt.Sprintf("Matches keywords: %s", strings.Join(matched, ", ")))
	}

	if analysis.Type != TypeOther {
		reasons = append(reasons, fmt.Sprintf("Content type: %s", analysis.Type))
	}

	switch {
	case analysis.CharacterLength > longFormLength:
		reasons = append(reasons, "Long-form content")
	case analysis.CharacterLength < shortFormLength:
		reasons = append(reasons, "Short-form content")
	}
	return reasons
}
