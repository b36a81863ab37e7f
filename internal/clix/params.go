package clix

import (
	"strings"

	"github.com/spf13/pflag"
)

type PaginationParams struct {
	Limit  int
	Offset int
}

func ParsePagination(flags *pflag.FlagSet) (PaginationParams, error) {
	limit, _ := flags.GetInt("limit")
	offset, _ := flags.GetInt("offset")
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return PaginationParams{Limit: limit, Offset: offset}, nil
}

// ParseKeywords reads the comma separated --keywords flag and returns the
// normalized hint stored on a category, or nil when the flag was not set.
func ParseKeywords(flags *pflag.FlagSet) *string {
	if !flags.Changed("keywords") {
		return nil
	}
	raw, _ := flags.GetString("keywords")
	seen := make(map[string]bool)
	var keywords []string
	for _, k := range strings.Split(raw, ",") {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keywords = append(keywords, k)
	}
	joined := strings.Join(keywords, " ")
	return &joined
}
