package categorizer

import (
	"regexp"
	"strings"
)

var yearExpr = regexp.MustCompile(`\b\d{4}\b`)

// typeRule is one entry of the detection decision list. Title and body
// passed to Match are already lowercased.
type typeRule struct {
	Type  ContentType
	Match func(title, body string) bool
}

// typeRules is evaluated in order; the first match wins.
var typeRules = []typeRule{
	{TypeTutorial, func(title, body string) bool {
		return containsAny(title, "how to", "tutorial", "step by step") ||
			containsAny(body, "step 1", "first,", "next,")
	}},
	{TypeNews, func(title, _ string) bool {
		return containsAny(title, "breaking", "news", "announcement", "update") ||
			yearExpr.MatchString(title)
	}},
	{TypeReview, func(title, body string) bool {
		return containsAny(title, "review", "rating", "stars") ||
			containsAny(body, "pros", "cons", "rating")
	}},
	{TypeGuide, func(title, body string) bool {
		return containsAny(title, "guide", "complete", "ultimate") ||
			containsAny(body, "guide", "complete guide")
	}},
}

// DetectType classifies content by walking typeRules. Content that matches
// no rule is an article.
func DetectType(title, body string) ContentType {
	title = strings.ToLower(title)
	body = strings.ToLower(body)
	for _, r := range typeRules {
		if r.Match(title, body) {
			return r.Type
		}
	}
	return TypeArticle
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
