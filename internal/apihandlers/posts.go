package apihandlers

import (
	"fmt"
	"net/http"
	"strconv"

	"folio/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *APIHandler) CreatePostHandler(c *gin.Context) {
	var req services.CreatePostParams
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	post, err := h.Posts.CreatePost(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Category not found")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": post})
}

func (h *APIHandler) ListPostsHandler(c *gin.Context) {
	params, err := parseListPostsParams(c)
	if err != nil {
		BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	posts, err := h.Posts.ListPosts(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": posts})
}

// parseListPostsParams reads limit, offset, sort_by, sort_order, category_id and status.
func parseListPostsParams(c *gin.Context) (services.ListPostsParams, error) {
	limit, err := parseIntQuery(c, "limit", 20)
	if err != nil {
		return services.ListPostsParams{}, err
	}
	offset, err := parseIntQuery(c, "offset", 0)
	if err != nil {
		return services.ListPostsParams{}, err
	}

	params := services.ListPostsParams{
		Limit:     limit,
		Offset:    offset,
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
		Status:    c.Query("status"),
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return services.ListPostsParams{}, fmt.Errorf("invalid category_id: %s", raw)
		}
		params.CategoryID = &id
	}
	return params, nil
}

func (h *APIHandler) GetPostHandler(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	post, err := h.Posts.GetPost(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, fmt.Sprintf("Post not found with ID: %d", id))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": post})
}

func (h *APIHandler) UpdatePostHandler(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	var req services.UpdatePostParams
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	post, err := h.Posts.UpdatePost(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, fmt.Sprintf("Post not found with ID: %d", id))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": post})
}

func (h *APIHandler) DeletePostHandler(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := h.Posts.DeletePost(c.Request.Context(), id); err != nil {
		respondError(c, err, fmt.Sprintf("Post not found with ID: %d", id))
		return
	}
	c.Status(http.StatusNoContent)
}
