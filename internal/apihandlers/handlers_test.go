package apihandlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"folio/internal/models"
	"folio/internal/services"
	"folio/internal/store"
	"folio/internal/store/mocks"
	"folio/pkg/categorizer"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func newTestRouter(ps *mocks.PrimaryStore, jc *mocks.JobClient) *gin.Engine {
	gin.SetMode(gin.TestMode)
	var jobClient store.JobClient
	if jc != nil {
		jobClient = jc
	}
	h := &APIHandler{
		Posts:      services.NewPostService(ps),
		Categories: services.NewCategoryService(ps),
		Categorization: services.NewCategorizationService(services.CategorizationServiceDeps{
			PostStore:     ps,
			CategoryStore: ps,
			JobStore:      ps,
			JobClient:     jobClient,
		}),
		Health:     stubPinger{},
		BatchLimit: 50,
	}
	router := gin.New()
	h.RegisterRoutes(router)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) APIError {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestHealthHandler(t *testing.T) {
	router := newTestRouter(new(mocks.PrimaryStore), nil)
	w := doRequest(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCreatePostHandler(t *testing.T) {
	ps := new(mocks.PrimaryStore)
	ps.On("CreatePost", mock.Anything, mock.MatchedBy(func(p *models.Post) bool {
		return p.Title == "Hello" && p.Slug == "hello"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Post).ID = 12
	}).Return(nil).Once()

	w := doRequest(t, newTestRouter(ps, nil), http.MethodPost, "/api/v1/posts", map[string]string{"title": "Hello", "body": "hi"})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Data models.Post `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(12), resp.Data.ID)
	ps.AssertExpectations(t)
}

func TestCreatePostHandler_Validation(t *testing.T) {
	w := doRequest(t, newTestRouter(new(mocks.PrimaryStore), nil), http.MethodPost, "/api/v1/posts", map[string]string{"title": " "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "bad_request", decodeError(t, w).Code)
}

func TestGetPostHandler(t *testing.T) {
	ps := new(mocks.PrimaryStore)
	ps.On("GetPost", mock.Anything, int64(404)).Return(nil, store.ErrNotFound).Once()
	router := newTestRouter(ps, nil)

	w := doRequest(t, router, http.MethodGet, "/api/v1/posts/404", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decodeError(t, w).Code)

	w = doRequest(t, router, http.MethodGet, "/api/v1/posts/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPostsHandler(t *testing.T) {
	ps := new(mocks.PrimaryStore)
	cat := int64(3)
	ps.On("ListPosts", mock.Anything, store.ListPostsParams{
		Limit: 5, Offset: 0, SortBy: "created_at", SortOrder: "desc", CategoryID: &cat,
	}).Return([]*models.Post{{ID: 1, Title: "a"}}, nil).Once()
	router := newTestRouter(ps, nil)

	w := doRequest(t, router, http.MethodGet, "/api/v1/posts?limit=5&category_id=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Items []models.Post `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 1)

	w = doRequest(t, router, http.MethodGet, "/api/v1/posts?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	ps.AssertExpectations(t)
}

func TestCreateCategoryHandler_Conflict(t *testing.T) {
	ps := new(mocks.PrimaryStore)
	ps.On("CreateCategory", mock.Anything, mock.Anything).Return(store.ErrDuplicate).Once()

	w := doRequest(t, newTestRouter(ps, nil), http.MethodPost, "/api/v1/categories", map[string]string{"name": "News"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "conflict", decodeError(t, w).Code)
}

func TestSuggestionsHandler(t *testing.T) {
	ps := new(mocks.PrimaryStore)
	ps.On("GetPost", mock.Anything, int64(1)).Return(&models.Post{ID: 1, Title: "Golang tutorial", Body: "golang tutorial"}, nil).Once()
	ps.On("ListCategories", mock.Anything).Return([]*models.Category{
		{ID: 9, Name: "Golang Tutorial", Description: strPtr("golang tutorial")},
	}, nil).Once()
	ps.On("ListRecentPostsInCategory", mock.Anything, int64(9), mock.Anything).Return([]*models.Post{}, nil)
	ps.On("UpdatePostAnalysis", mock.Anything, int64(1), mock.Anything).Return(nil).Once()

	w := doRequest(t, newTestRouter(ps, nil), http.MethodGet, "/api/v1/posts/1/suggestions", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data services.SuggestionResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Suggestions, 1)
	assert.InDelta(t, 0.95, resp.Data.Suggestions[0].Confidence, 1e-9)
	assert.Equal(t, categorizer.TypeTutorial, resp.Data.Analysis.Type)
}

func TestApplyCategoryHandler(t *testing.T) {
	ps := new(mocks.PrimaryStore)
	ps.On("GetCategory", mock.Anything, int64(9)).Return(&models.Category{ID: 9}, nil).Once()
	ps.On("AssignCategory", mock.Anything, int64(3), int64(9)).Return(nil).Once()
	router := newTestRouter(ps, nil)

	w := doRequest(t, router, http.MethodPost, "/api/v1/posts/3/category", map[string]int64{"category_id": 9})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/v1/posts/3/category", map[string]int64{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	ps.AssertExpectations(t)
}

func TestAutoCategorizeHandler_Sync(t *testing.T) {
	ps := new(mocks.PrimaryStore)
	ps.On("ListCategories", mock.Anything).Return([]*models.Category{}, nil).Once()
	ps.On("ListUncategorizedPosts", mock.Anything, 50).Return([]*models.Post{{ID: 1, Title: "x"}}, nil).Once()

	// No body: the configured batch limit applies.
	w := doRequest(t, newTestRouter(ps, nil), http.MethodPost, "/api/v1/categorize/auto", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data categorizer.BatchResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.Processed)
	assert.Equal(t, 0, resp.Data.Categorized)
	ps.AssertExpectations(t)
}

func TestAutoCategorizeHandler_CatalogFailure(t *testing.T) {
	ps := new(mocks.PrimaryStore)
	ps.On("ListCategories", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	w := doRequest(t, newTestRouter(ps, nil), http.MethodPost, "/api/v1/categorize/auto", map[string]int{"limit": 10})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal_error", decodeError(t, w).Code)
}

func TestAutoCategorizeHandler_Async(t *testing.T) {
	jc := new(mocks.JobClient)
	id := uuid.New()
	jc.On("EnqueueAutoCategorize", mock.Anything, 10).Return(id, nil).Once()

	w := doRequest(t, newTestRouter(new(mocks.PrimaryStore), jc), http.MethodPost, "/api/v1/categorize/auto",
		map[string]any{"limit": 10, "async": true})
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), id.String())
	jc.AssertExpectations(t)
}

func TestGetJobHandler(t *testing.T) {
	ps := new(mocks.PrimaryStore)
	id := uuid.New()
	ps.On("GetJob", mock.Anything, id).Return(&models.BackgroundJob{
		JobID:    id,
		TaskType: "categorization:auto",
		Status:   models.JobStatusCompleted,
		JobData:  json.RawMessage(`{"processed":3,"categorized":1,"failed":1,"suggestions":[]}`),
	}, nil).Once()
	router := newTestRouter(ps, nil)

	w := doRequest(t, router, http.MethodGet, "/api/v1/jobs/"+id.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data struct {
			Status string                   `json:"status"`
			Result *categorizer.BatchResult `json:"result"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.JobStatusCompleted, resp.Data.Status)
	require.NotNil(t, resp.Data.Result)
	assert.Equal(t, 3, resp.Data.Result.Processed)

	w = doRequest(t, router, http.MethodGet, "/api/v1/jobs/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func strPtr(s string) *string { return &s }
