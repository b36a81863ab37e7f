package apihandlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"folio/internal/app"
	"folio/internal/services"

	"github.com/gin-gonic/gin"
)

// Pinger reports backend health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type APIHandler struct {
	Posts          *services.PostService
	Categories     *services.CategoryService
	Categorization *services.CategorizationService
	Health         Pinger
	BatchLimit     int // used when a batch request names no limit
}

func NewAPIHandler(a *app.App) *APIHandler {
	return &APIHandler{
		Posts:          a.PostService,
		Categories:     a.CategoryService,
		Categorization: a.CategorizationService,
		Health:         a,
		BatchLimit:     a.Config.Categorization.BatchLimit,
	}
}

// RegisterRoutes mounts the API under /api/v1 and the health check at /health.
func (h *APIHandler) RegisterRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		posts := v1.Group("/posts")
		{
			posts.POST("", h.CreatePostHandler)
			posts.GET("", h.ListPostsHandler)
			posts.GET("/:id", h.GetPostHandler)
			posts.PUT("/:id", h.UpdatePostHandler)
			posts.DELETE("/:id", h.DeletePostHandler)
			posts.GET("/:id/suggestions", h.SuggestionsHandler)
			posts.POST("/:id/category", h.ApplyCategoryHandler)
		}

		categories := v1.Group("/categories")
		{
			categories.POST("", h.CreateCategoryHandler)
			categories.GET("", h.ListCategoriesHandler)
			categories.GET("/:id", h.GetCategoryHandler)
			categories.PUT("/:id", h.UpdateCategoryHandler)
			categories.DELETE("/:id", h.DeleteCategoryHandler)
		}

		v1.POST("/categorize/auto", h.AutoCategorizeHandler)
		v1.GET("/jobs/:id", h.GetJobHandler)
	}

	router.GET("/health", h.HealthHandler)
}

func (h *APIHandler) HealthHandler(c *gin.Context) {
	if h.Health != nil {
		if err := h.Health.Ping(c.Request.Context()); err != nil {
			JSONError(c, http.StatusServiceUnavailable, "unavailable", "database unreachable: "+err.Error())
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %s", name, raw)
	}
	return id, nil
}

// parseIntQuery reads an optional non-negative integer query parameter.
func parseIntQuery(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s: %s", name, raw)
	}
	return v, nil
}
