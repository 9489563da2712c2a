package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testPostID = "a8098c1a-f86e-11da-bd1a-00112444be1e"

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Post, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) CountByCategory(ctx context.Context) (map[models.Category]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[models.Category]int64), args.Error(1)
}

func newTestServer(mockRepo *MockPostRepository) (*fiber.App, *Server) {
	app := fiber.New()
	s := &Server{
		postRepo:    mockRepo,
		postService: service.NewPostService(mockRepo, nil),
	}
	return app, s
}

func samplePosts() []*models.Post {
	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	return []*models.Post{
		{ID: "p1", Title: "The Evolution of Web Design", Slug: "the-evolution-of-web-design", Excerpt: "trends", Category: models.CategoryWebDesign, PublishedAt: base},
		{ID: "p2", Title: "Learning React and TypeScript", Slug: "learning-react-and-typescript", Excerpt: "a journey", Category: models.CategoryTechnology, PublishedAt: base.AddDate(0, 0, -10)},
		{ID: "p3", Title: "AI in Everyday Technology", Slug: "ai-in-everyday-technology", Excerpt: "machine learning", Category: models.CategoryTechnology, PublishedAt: base.AddDate(0, 0, -31)},
	}
}

func decodePosts(t *testing.T, resp *http.Response) []*models.Post {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var posts []*models.Post
	require.NoError(t, json.Unmarshal(body, &posts))
	return posts
}

func TestGetPosts(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		expectedStatus int
		expectedIDs    []string
	}{
		{"all posts", "/posts", http.StatusOK, []string{"p1", "p2", "p3"}},
		{"category filter", "/posts?category=Technology", http.StatusOK, []string{"p2", "p3"}},
		{"case-insensitive search", "/posts?q=REACT", http.StatusOK, []string{"p2"}},
		{"search and category", "/posts?q=learning&category=Technology", http.StatusOK, []string{"p2", "p3"}},
		{"unknown category", "/posts?category=Cooking", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPostRepository)
			app, s := newTestServer(mockRepo)
			app.Get("/posts", s.GetPosts)
			if tt.expectedStatus == http.StatusOK {
				mockRepo.On("List", mock.Anything).Return(samplePosts(), nil)
			}

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.target, nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.expectedStatus == http.StatusOK {
				got := decodePosts(t, resp)
				ids := make([]string, 0, len(got))
				for _, p := range got {
					ids = append(ids, p.ID)
				}
				assert.Equal(t, tt.expectedIDs, ids)
			}
		})
	}
}

func TestGetPostsStoreFailure(t *testing.T) {
	mockRepo := new(MockPostRepository)
	app, s := newTestServer(mockRepo)
	app.Get("/posts", s.GetPosts)
	mockRepo.On("List", mock.Anything).
		Return([]*models.Post{}, models.NewTransportError(context.DeadlineExceeded))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/posts", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestGetPost(t *testing.T) {
	mockRepo := new(MockPostRepository)
	app, s := newTestServer(mockRepo)
	app.Get("/posts/:id", s.GetPost)

	mockRepo.On("GetByID", mock.Anything, testPostID).
		Return(&models.Post{ID: testPostID, Title: "Found"}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/posts/"+testPostID, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Malformed ids are rejected before any store contact.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/posts/not-a-uuid", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, "not-a-uuid")
}

func TestGetPostNotFound(t *testing.T) {
	mockRepo := new(MockPostRepository)
	app, s := newTestServer(mockRepo)
	app.Get("/posts/:id", s.GetPost)
	mockRepo.On("GetByID", mock.Anything, testPostID).
		Return(nil, models.NewNotFoundError("post", testPostID))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/posts/"+testPostID, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetPostBySlug(t *testing.T) {
	mockRepo := new(MockPostRepository)
	app, s := newTestServer(mockRepo)
	app.Get("/posts/slug/:slug", s.GetPostBySlug)
	mockRepo.On("GetBySlug", mock.Anything, "learning-react-and-typescript").
		Return(&models.Post{ID: "p2", Slug: "learning-react-and-typescript"}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/posts/slug/learning-react-and-typescript", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreatePost(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]interface{}
		mockSetup      func(m *MockPostRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]interface{}{
				"title":     "New Post",
				"excerpt":   "A summary",
				"content":   "Hello world",
				"category":  "Technology",
				"read_time": 6,
			},
			mockSetup: func(m *MockPostRepository) {
				m.On("Create", mock.Anything, mock.Anything).
					Run(func(args mock.Arguments) {
						post := args.Get(1).(*models.Post)
						post.ID = testPostID
						post.PublishedAt = time.Now().UTC()
					}).
					Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Missing Fields",
			body: map[string]interface{}{
				"title": "Only a Title",
			},
			mockSetup:      func(m *MockPostRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Bad Category",
			body: map[string]interface{}{
				"title":    "New Post",
				"excerpt":  "A summary",
				"content":  "Hello world",
				"category": "Cooking",
			},
			mockSetup:      func(m *MockPostRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Duplicate Slug",
			body: map[string]interface{}{
				"title":    "New Post",
				"excerpt":  "A summary",
				"content":  "Hello world",
				"category": "Technology",
			},
			mockSetup: func(m *MockPostRepository) {
				m.On("Create", mock.Anything, mock.Anything).
					Return(models.NewConflictError("A post with this slug already exists", nil))
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPostRepository)
			app, s := newTestServer(mockRepo)
			app.Post("/posts", s.CreatePost)
			tt.mockSetup(mockRepo)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusBadRequest {
				mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestCreatePostDerivesSlug(t *testing.T) {
	mockRepo := new(MockPostRepository)
	app, s := newTestServer(mockRepo)
	app.Post("/posts", s.CreatePost)

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Post) bool {
		return p.Slug == "hello-world-2024"
	})).Return(nil)

	body, _ := json.Marshal(map[string]interface{}{
		"title":    "Hello, World! 2024",
		"excerpt":  "A summary",
		"content":  "Hello world",
		"category": "Technology",
	})
	req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	mockRepo.AssertExpectations(t)
}

func TestUpdatePost(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]interface{}
		mockSetup      func(m *MockPostRepository)
		expectedStatus int
	}{
		{
			name: "Partial Update",
			body: map[string]interface{}{"title": "Renamed"},
			mockSetup: func(m *MockPostRepository) {
				m.On("Update", mock.Anything, testPostID, map[string]interface{}{"title": "Renamed"}).
					Return(&models.Post{ID: testPostID, Title: "Renamed"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "No Fields",
			body:           map[string]interface{}{},
			mockSetup:      func(m *MockPostRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Not Found",
			body: map[string]interface{}{"title": "Renamed"},
			mockSetup: func(m *MockPostRepository) {
				m.On("Update", mock.Anything, testPostID, mock.Anything).
					Return(nil, models.NewNotFoundError("post", testPostID))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPostRepository)
			app, s := newTestServer(mockRepo)
			app.Put("/posts/:id", s.UpdatePost)
			tt.mockSetup(mockRepo)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPut, "/posts/"+testPostID, bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestDeletePost(t *testing.T) {
	mockRepo := new(MockPostRepository)
	app, s := newTestServer(mockRepo)
	app.Delete("/posts/:id", s.DeletePost)
	mockRepo.On("Delete", mock.Anything, testPostID).Return(nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/posts/"+testPostID, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestDeletePostNotFound(t *testing.T) {
	mockRepo := new(MockPostRepository)
	app, s := newTestServer(mockRepo)
	app.Delete("/posts/:id", s.DeletePost)
	mockRepo.On("Delete", mock.Anything, testPostID).
		Return(models.NewNotFoundError("post", testPostID))

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/posts/"+testPostID, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetCategoryCounts(t *testing.T) {
	mockRepo := new(MockPostRepository)
	app, s := newTestServer(mockRepo)
	app.Get("/posts/categories", s.GetCategoryCounts)
	mockRepo.On("CountByCategory", mock.Anything).
		Return(map[models.Category]int64{models.CategoryTechnology: 2}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/posts/categories", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var counts map[models.Category]int64
	require.NoError(t, json.Unmarshal(body, &counts))

	// Every storable category is present, zero-filled when empty.
	assert.Equal(t, int64(2), counts[models.CategoryTechnology])
	assert.Equal(t, int64(0), counts[models.CategoryHistory])
	assert.Len(t, counts, len(models.Categories))
}
