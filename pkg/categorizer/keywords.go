package categorizer

import (
	"regexp"
	"sort"
	"strings"
)

const (
	// MaxKeywords caps ExtractKeywords and title keywords.
	MaxKeywords = 10
	// MaxContentKeywords caps the keywords taken from a body.
	MaxContentKeywords = 20

	minKeywordLength = 3
)

var nonWordExpr = regexp.MustCompile(`[^\w\s]`)

// stopWords is never mutated after init.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {},
	"at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {}, "is": {}, "are": {},
	"was": {}, "were": {}, "be": {}, "been": {}, "have": {}, "has": {}, "had": {},
	"do": {}, "does": {}, "did": {}, "will": {}, "would": {}, "could": {}, "should": {},
	"may": {}, "might": {}, "must": {}, "can": {}, "this": {}, "that": {}, "these": {},
	"those": {}, "i": {}, "you": {}, "he": {}, "she": {}, "it": {}, "we": {}, "they": {},
	"them": {}, "their": {}, "what": {}, "which": {}, "who": {}, "when": {}, "where": {},
	"why": {}, "how": {}, "not": {}, "from": {}, "into": {}, "about": {}, "your": {},
	"our": {}, "its": {}, "than": {}, "then": {}, "also": {}, "just": {},
}

// IsStopWord reports whether word is in the fixed stop-word set.
func IsStopWord(word string) bool {
	_, ok := stopWords[strings.ToLower(word)]
	return ok
}

// ExtractKeywords returns the ten most frequent significant tokens in text.
func ExtractKeywords(text string) []string {
	return topKeywords(text, MaxKeywords)
}

// tokenize lowercases text and splits it into words, punctuation removed.
func tokenize(text string) []string {
	text = nonWordExpr.ReplaceAllString(strings.ToLower(text), " ")
	return strings.Fields(text)
}

// topKeywords counts significant tokens and returns at most limit of them,
// most frequent first. Ties keep first-occurrence order.
func topKeywords(text string, limit int) []string {
	counts := make(map[string]int)
	var order []string
	for _, tok := range tokenize(text) {
		if len(tok) < minKeywordLength {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}
	return order
}

// fuzzyMatch reports whether one keyword contains the other.
func fuzzyMatch(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// matchingKeywords returns the keywords in words that fuzzy-match any of targets.
func matchingKeywords(words, targets []string) []string {
	var out []string
	for _, w := range words {
		for _, t := range targets {
			if fuzzyMatch(w, t) {
				out = append(out, w)
				break
			}
		}
	}
	return out
}

// keywordOverlap is the share of words that fuzzy-match targets, over the
// size of the larger list. It is not a Jaccard index.
func keywordOverlap(words, targets []string) float64 {
	denom := len(words)
	if len(targets) > denom {
		denom = len(targets)
	}
	if denom == 0 {
		return 0
	}
	return float64(len(matchingKeywords(words, targets))) / float64(denom)
}

// jaccard compares the unique lowercase whitespace-separated tokens of a and b.
func jaccard(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	union := len(setA)
	inter := 0
	for t := range setB {
		if _, ok := setA[t]; ok {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range strings.Fields(strings.ToLower(s)) {
		set[t] = struct{}{}
	}
	return set
}

// mergeKeywords appends b to a, skipping duplicates.
func mergeKeywords(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, k := range list {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}
