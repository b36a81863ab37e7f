package apihandlers

import (
	"fmt"
	"net/http"

	"folio/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *APIHandler) CreateCategoryHandler(c *gin.Context) {
	var req services.CategoryParams
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	category, err := h.Categories.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": category})
}

func (h *APIHandler) ListCategoriesHandler(c *gin.Context) {
	categories, err := h.Categories.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": categories})
}

func (h *APIHandler) GetCategoryHandler(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	category, err := h.Categories.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, fmt.Sprintf("Category not found with ID: %d", id))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": category})
}

func (h *APIHandler) UpdateCategoryHandler(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	var req services.CategoryParams
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	category, err := h.Categories.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, fmt.Sprintf("Category not found with ID: %d", id))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": category})
}

func (h *APIHandler) DeleteCategoryHandler(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := h.Categories.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err, fmt.Sprintf("Category not found with ID: %d", id))
		return
	}
	c.Status(http.StatusNoContent)
}
