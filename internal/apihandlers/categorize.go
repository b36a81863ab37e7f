package apihandlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"folio/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type applyCategoryRequest struct {
	CategoryID int64 `json:"category_id" binding:"required,gt=0"`
}

type autoCategorizeRequest struct {
	Limit *int `json:"limit"`
	Async bool `json:"async"`
}

// SuggestionsHandler ranks the catalog against one post.
func (h *APIHandler) SuggestionsHandler(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	res, err := h.Categorization.SuggestForPost(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, fmt.Sprintf("Post not found with ID: %d", id))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": res})
}

// ApplyCategoryHandler assigns a category to a post by hand.
func (h *APIHandler) ApplyCategoryHandler(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	var req applyCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if err := h.Categorization.ApplyCategory(c.Request.Context(), id, req.CategoryID); err != nil {
		respondError(c, err, fmt.Sprintf("Post %d or category %d not found", id, req.CategoryID))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"post_id": id, "category_id": req.CategoryID}})
}

// AutoCategorizeHandler runs a batch inline, or enqueues it when async is set.
func (h *APIHandler) AutoCategorizeHandler(c *gin.Context) {
	var req autoCategorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	limit := h.BatchLimit
	if req.Limit != nil {
		if *req.Limit < 0 {
			BadRequest(c, "limit must not be negative")
			return
		}
		limit = *req.Limit
	}

	if req.Async {
		jobID, err := h.Categorization.EnqueueAutoCategorize(c.Request.Context(), limit)
		if err != nil {
			respondError(c, err, "")
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"data": gin.H{"job_id": jobID}})
		return
	}

	result, err := h.Categorization.AutoCategorize(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

// GetJobHandler returns a background job with its decoded batch result, if any.
func (h *APIHandler) GetJobHandler(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid job id: "+c.Param("id"))
		return
	}
	job, err := h.Categorization.GetJob(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, err, fmt.Sprintf("Job not found with ID: %s", jobID))
		return
	}
	result, err := services.JobResult(job)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"job_id":     job.JobID,
		"task_type":  job.TaskType,
		"status":     job.Status,
		"queue":      job.Queue,
		"result":     result,
		"created_at": job.CreatedAt,
		"updated_at": job.UpdatedAt,
	}})
}
