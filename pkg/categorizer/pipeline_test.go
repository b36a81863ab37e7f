package categorizer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCategories struct {
	catalog []CategoryDescriptor
	err     error
	calls   int
}

func (f *fakeCategories) ListCategories(context.Context) ([]CategoryDescriptor, error) {
	f.calls++
	return f.catalog, f.err
}

func (f *fakeCategories) GetCategory(_ context.Context, id int64) (CategoryDescriptor, error) {
	for _, c := range f.catalog {
		if c.ID == id {
			return c, nil
		}
	}
	return CategoryDescriptor{}, errors.New("not found")
}

type fakeContents struct {
	items []ContentItem
	err   error
	limit int
}

func (f *fakeContents) ListUncategorized(_ context.Context, limit int) ([]ContentItem, error) {
	f.limit = limit
	return f.items, f.err
}

func goTutorialCategory() CategoryDescriptor {
	return CategoryDescriptor{ID: 9, Name: "Golang Tutorial", Description: strPtr("golang tutorial")}
}

func TestPipeline_AutoCategorize(t *testing.T) {
	cats := &fakeCategories{catalog: []CategoryDescriptor{goTutorialCategory()}}
	contents := &fakeContents{items: []ContentItem{
		{ID: 1, Title: "Golang tutorial", Body: "golang tutorial"}, // 0.95, assigned
		{ID: 2, Title: "Weekly thoughts", Body: "some words"},      // 0.15, untouched
		{ID: 3, Title: "Golang notes", Body: "golang notes"},       // 0.45, review
	}}
	sink := &recordingSink{}
	p := &Pipeline{
		Engine:     NewEngine(Options{}),
		Categories: cats,
		Contents:   contents,
		History:    &fakeHistory{},
		Sink:       sink,
	}

	result, err := p.AutoCategorize(context.Background(), 50)
	require.NoError(t, err)

	assert.Equal(t, 50, contents.limit)
	assert.Equal(t, 1, cats.calls, "catalog is read once per batch")
	assert.Equal(t, 3, result.Processed)
	assert.Equal(t, 1, result.Categorized)
	assert.Equal(t, 0, result.Failed)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, int64(3), result.Suggestions[0].ContentID)
	assert.InDelta(t, 0.45, result.Suggestions[0].Suggestions[0].Confidence, 1e-9)
	assert.Equal(t, []assignment{{1, 9}}, sink.assigned)
}

func TestPipeline_AutoCategorize_HistoryFailureIsPerItem(t *testing.T) {
	p := &Pipeline{
		Engine:     NewEngine(Options{}),
		Categories: &fakeCategories{catalog: []CategoryDescriptor{goTutorialCategory()}},
		Contents:   &fakeContents{items: []ContentItem{{ID: 1}, {ID: 2}}},
		History:    &fakeHistory{err: errors.New("timeout")},
		Sink:       &recordingSink{},
	}

	result, err := p.AutoCategorize(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 2, result.Failed)
}

func TestPipeline_AutoCategorize_CollaboratorErrors(t *testing.T) {
	p := &Pipeline{
		Engine:     NewEngine(Options{}),
		Categories: &fakeCategories{err: errors.New("catalog unavailable")},
		Contents:   &fakeContents{},
		Sink:       &recordingSink{},
	}
	_, err := p.AutoCategorize(context.Background(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list categories")

	p.Categories = &fakeCategories{}
	p.Contents = &fakeContents{err: errors.New("query failed")}
	_, err = p.AutoCategorize(context.Background(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list uncategorized content")
}

func TestPipeline_Suggest(t *testing.T) {
	cats := &fakeCategories{catalog: []CategoryDescriptor{goTutorialCategory()}}
	p := &Pipeline{Engine: NewEngine(Options{}), Categories: cats, History: &fakeHistory{}}

	got, analysis, err := p.Suggest(context.Background(), ContentItem{ID: 1, Title: "Golang tutorial", Body: "golang tutorial"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 0.95, got[0].Confidence, 1e-9)
	assert.Equal(t, TypeTutorial, analysis.Type)
	assert.Equal(t, []string{"golang", "tutorial"}, analysis.TitleKeywords)

	// A second call reads the catalog again.
	_, _, err = p.Suggest(context.Background(), ContentItem{ID: 1, Title: "Golang tutorial", Body: "golang tutorial"})
	require.NoError(t, err)
	assert.Equal(t, 2, cats.calls)
}

func TestPipeline_Suggest_CatalogError(t *testing.T) {
	p := &Pipeline{Engine: NewEngine(Options{}), Categories: &fakeCategories{err: errors.New("boom")}}
	_, _, err := p.Suggest(context.Background(), ContentItem{})
	require.Error(t, err)
}

func TestPipeline_Suggest_HistoryError(t *testing.T) {
	p := &Pipeline{
		Engine:     NewEngine(Options{}),
		Categories: &fakeCategories{catalog: []CategoryDescriptor{goTutorialCategory()}},
		History:    &fakeHistory{err: errors.New("db down")},
	}
	_, _, err := p.Suggest(context.Background(), ContentItem{ID: 1, Title: "Golang tutorial"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recent items for category 9")
}
