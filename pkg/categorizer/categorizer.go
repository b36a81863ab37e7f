package categorizer

import "context"

// ContentType is the coarse kind of a piece of content.
type ContentType string

const (
	TypeArticle  ContentType = "article"
	TypeTutorial ContentType = "tutorial"
	TypeNews     ContentType = "news"
	TypeReview   ContentType = "review"
	TypeGuide    ContentType = "guide"
	// TypeOther is kept for forward compatibility. DetectType never returns it.
	TypeOther ContentType = "other"
)

// ContentItem holds the text being categorized.
type ContentItem struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// CategoryDescriptor is the read-only view of a category used for scoring.
// Description and KeywordHint are optional.
type CategoryDescriptor struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	KeywordHint *string `json:"keyword_hint,omitempty"`
}

// description returns the trimmed description and whether one is present.
func (c CategoryDescriptor) description() (string, bool) {
	if c.Description == nil || *c.Description == "" {
		return "", false
	}
	return *c.Description, true
}

// StructuralFlags records which markup features appear in a body.
type StructuralFlags struct {
	HasHeadings bool `json:"has_headings"`
	HasLists    bool `json:"has_lists"`
	HasImages   bool `json:"has_images"`
	HasLinks    bool `json:"has_links"`
}

// ContentAnalysis is derived from a ContentItem once per scoring call.
type ContentAnalysis struct {
	TitleKeywords   []string        `json:"title_keywords"`
	ContentKeywords []string        `json:"content_keywords"`
	Structure       StructuralFlags `json:"structure"`
	Type            ContentType     `json:"type"`
	CharacterLength int             `json:"character_length"`
	ReadingMinutes  int             `json:"reading_minutes"`
}

// CategorySuggestion is one ranked category match.
type CategorySuggestion struct {
	CategoryID   int64    `json:"category_id"`
	CategoryName string   `json:"category_name"`
	Confidence   float64  `json:"confidence"`
	Reasons      []string `json:"reasons"`
}

// ReviewEntry is an item that needs a human decision.
type ReviewEntry struct {
	ContentID   int64                `json:"content_id"`
	Title       string               `json:"title"`
	Suggestions []CategorySuggestion `json:"suggestions"`
}

// BatchResult summarizes one auto-categorization run.
type BatchResult struct {
	Processed   int           `json:"processed"`
	Categorized int           `json:"categorized"`
	Failed      int           `json:"failed"`
	Suggestions []ReviewEntry `json:"suggestions"`
}

// Suggester produces ranked category suggestions for one item.
type Suggester interface {
	Suggest(ctx context.Context, item ContentItem) ([]CategorySuggestion, error)
}

// CategoryProvider lists the category catalog.
type CategoryProvider interface {
	ListCategories(ctx context.Context) ([]CategoryDescriptor, error)
	GetCategory(ctx context.Context, id int64) (CategoryDescriptor, error)
}

// ContentProvider lists uncategorized content, newest first.
// A limit <= 0 means no cap.
type ContentProvider interface {
	ListUncategorized(ctx context.Context, limit int) ([]ContentItem, error)
}

// HistoryProvider returns the most recently created items already in a category.
type HistoryProvider interface {
	RecentInCategory(ctx context.Context, categoryID int64, limit int) ([]ContentItem, error)
}

// AssignmentSink persists a category assignment.
type AssignmentSink interface {
	AssignCategory(ctx context.Context, contentID, categoryID int64) error
}
