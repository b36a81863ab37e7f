package categorizer

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	headingSelector = "h1, h2, h3, h4, h5, h6"
	listSelector    = "ul, ol, li"
	imageSelector   = "img"
	linkSelector    = "a[href]"
)

// Raw tag patterns catch markup the parser treats as text, such as tags
// inside comments, <script>, <noscript> or <textarea>.
var (
	headingTag = regexp.MustCompile(`(?i)<h[1-6]\b`)
	listTag    = regexp.MustCompile(`(?i)<(ul|ol|li)\b`)
	imageTag   = regexp.MustCompile(`(?i)<img\b`)
	linkTag    = regexp.MustCompile(`(?i)<a\s[^>]*\bhref\b`)
)

// AnalyzeStructure reports which HTML features appear anywhere in markup.
// Tag names match case-insensitively. Plain text yields all false.
func AnalyzeStructure(markup string) StructuralFlags {
	if !strings.Contains(markup, "<") {
		return StructuralFlags{}
	}
	flags := StructuralFlags{
		HasHeadings: headingTag.MatchString(markup),
		HasLists:    listTag.MatchString(markup),
		HasImages:   imageTag.MatchString(markup),
		HasLinks:    linkTag.MatchString(markup),
	}
	if flags.HasHeadings && flags.HasLists && flags.HasImages && flags.HasLinks {
		return flags
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return flags
	}
	flags.HasHeadings = flags.HasHeadings || doc.Find(headingSelector).Length() > 0
	flags.HasLists = flags.HasLists || doc.Find(listSelector).Length() > 0
	flags.HasImages = flags.HasImages || doc.Find(imageSelector).Length() > 0
	flags.HasLinks = flags.HasLinks || doc.Find(linkSelector).Length() > 0
	return flags
}
