package services

import (
	"context"
	"testing"

	"folio/internal/models"
	"folio/internal/store"
	"folio/internal/store/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateCategory(t *testing.T) {
	ps := new(mocks.PrimaryStore)
	svc := NewCategoryService(ps)

	ps.On("CreateCategory", mock.Anything, mock.MatchedBy(func(c *models.Category) bool {
		return c.Name == "Go Tutorials" && c.Slug == "go-tutorials" &&
			c.Description != nil && *c.Description == "golang guides" && c.Keywords == nil
	})).Return(nil).Once()

	c, err := svc.CreateCategory(context.Background(), CategoryParams{
		Name:        " Go Tutorials ",
		Description: strPtr(" golang guides "),
		Keywords:    strPtr("   "),
	})
	require.NoError(t, err)
	assert.Equal(t, "go-tutorials", c.Slug)
	ps.AssertExpectations(t)
}

func TestCreateCategory_Validation(t *testing.T) {
	svc := NewCategoryService(new(mocks.PrimaryStore))

	_, err := svc.CreateCategory(context.Background(), CategoryParams{Name: ""})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.CreateCategory(context.Background(), CategoryParams{Name: "???"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestCreateCategory_Duplicate(t *testing.T) {
	ps := new(mocks.PrimaryStore)
	ps.On("CreateCategory", mock.Anything, mock.Anything).Return(store.ErrDuplicate).Once()

	_, err := NewCategoryService(ps).CreateCategory(context.Background(), CategoryParams{Name: "News"})
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestDeleteCategory_NotFound(t *testing.T) {
	ps := new(mocks.PrimaryStore)
	ps.On("DeleteCategory", mock.Anything, int64(3)).Return(store.ErrNotFound).Once()

	err := NewCategoryService(ps).DeleteCategory(context.Background(), 3)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
