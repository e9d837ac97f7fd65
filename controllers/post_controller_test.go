package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santosh-shetty/blog-api/models"
	"github.com/santosh-shetty/blog-api/repositories"
	"github.com/santosh-shetty/blog-api/repositories/mock"
	"github.com/santosh-shetty/blog-api/storage"
)

func imageUpload(filename string) repositories.ImageUpload {
	return repositories.ImageUpload{Filename: filename, Reader: strings.NewReader("fake image bytes")}
}

func setupPostTest(t *testing.T) (*gin.Engine, *mock.CategoryRepository, *mock.PostRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	images, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)
	categories, posts := mock.NewRepositories(images)

	categoryController := NewCategoryController(categories)
	postController := NewPostController(posts)
	router := gin.New()
	router.GET("/post", postController.List)
	router.POST("/post", postController.Create)
	router.GET("/post/:id", postController.Get)
	router.PUT("/post/:id", postController.Update)
	router.DELETE("/post/:id", postController.Delete)
	router.POST("/category", categoryController.Create)
	router.DELETE("/category/:id", categoryController.Delete)
	return router, categories, posts
}

// postMultipart sends a multipart form with the given fields and, when
// imageName is non-empty, an image file part.
func postMultipart(t *testing.T, router *gin.Engine, method, target string, fields map[string]string, imageName string) *httptest.ResponseRecorder {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if imageName != "" {
		fw, err := w.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createTechCategory(t *testing.T, router *gin.Engine) {
	t.Helper()
	w := postForm(router, http.MethodPost, "/category", url.Values{
		"title":       {"Tech"},
		"description": {"Tech posts"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestCreatePost(t *testing.T) {
	router, _, _ := setupPostTest(t)
	createTechCategory(t, router)

	w := postMultipart(t, router, http.MethodPost, "/post", map[string]string{
		"title":      "A",
		"content":    "B",
		"categoryId": "1",
		"status":     "1",
	}, "photo.png")

	assert.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "success", env.Status)

	var post models.Post
	require.NoError(t, json.Unmarshal(env.Data, &post))
	assert.NotZero(t, post.ID)
	assert.True(t, strings.HasSuffix(post.Image, ".png"))
	assert.False(t, post.CreatedAt.IsZero())

	// The blob exists at the stored path
	_, err := os.Stat(post.Image)
	assert.NoError(t, err)
}

func TestCreatePostMissingImage(t *testing.T) {
	router, _, _ := setupPostTest(t)
	createTechCategory(t, router)

	w := postMultipart(t, router, http.MethodPost, "/post", map[string]string{
		"title":      "A",
		"content":    "B",
		"categoryId": "1",
	}, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePostInvalidCategory(t *testing.T) {
	router, _, posts := setupPostTest(t)

	w := postMultipart(t, router, http.MethodPost, "/post", map[string]string{
		"title":      "A",
		"content":    "B",
		"categoryId": "42",
	}, "photo.png")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", decodeEnvelope(t, w).Status)

	all, err := posts.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGetPostNotFound(t *testing.T) {
	router, _, _ := setupPostTest(t)

	req := httptest.NewRequest(http.MethodGet, "/post/7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decodeEnvelope(t, w).Message, "7")
}

func TestUpdatePostWithoutImageKeepsPath(t *testing.T) {
	router, _, _ := setupPostTest(t)
	createTechCategory(t, router)

	w := postMultipart(t, router, http.MethodPost, "/post", map[string]string{
		"title":      "A",
		"content":    "B",
		"categoryId": "1",
	}, "photo.png")
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Post
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &created))

	time.Sleep(time.Millisecond)
	w = postMultipart(t, router, http.MethodPut, "/post/1", map[string]string{
		"title":      "A2",
		"content":    "B2",
		"categoryId": "1",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Post
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &updated))
	assert.Equal(t, created.Image, updated.Image)
	assert.Equal(t, "A2", updated.Title)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestUpdatePostWithImageReplacesPath(t *testing.T) {
	router, _, _ := setupPostTest(t)
	createTechCategory(t, router)

	w := postMultipart(t, router, http.MethodPost, "/post", map[string]string{
		"title":      "A",
		"content":    "B",
		"categoryId": "1",
	}, "first.png")
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Post
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &created))

	w = postMultipart(t, router, http.MethodPut, "/post/1", map[string]string{
		"title":      "A",
		"content":    "B",
		"categoryId": "1",
	}, "second.jpg")
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Post
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &updated))
	assert.NotEqual(t, created.Image, updated.Image)
	assert.True(t, strings.HasSuffix(updated.Image, ".jpg"))

	// The previous blob stays on disk; replacement does not clean it up
	_, err := os.Stat(created.Image)
	assert.NoError(t, err)
}

func TestUpdatePostNotFound(t *testing.T) {
	router, _, _ := setupPostTest(t)
	createTechCategory(t, router)

	w := postMultipart(t, router, http.MethodPut, "/post/3", map[string]string{
		"title":      "A",
		"content":    "B",
		"categoryId": "1",
	}, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeletePostRemovesBlob(t *testing.T) {
	router, _, _ := setupPostTest(t)
	createTechCategory(t, router)

	w := postMultipart(t, router, http.MethodPost, "/post", map[string]string{
		"title":      "A",
		"content":    "B",
		"categoryId": "1",
	}, "photo.png")
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Post
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &created))

	req := httptest.NewRequest(http.MethodDelete, "/post/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	_, err := os.Stat(created.Image)
	assert.True(t, os.IsNotExist(err))

	// Second delete of the same id reports NotFound
	req = httptest.NewRequest(http.MethodDelete, "/post/1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// End-to-end flow: the category cannot go away before its post does.
func TestCategoryPostLifecycle(t *testing.T) {
	router, _, _ := setupPostTest(t)
	createTechCategory(t, router)

	w := postMultipart(t, router, http.MethodPost, "/post", map[string]string{
		"title":      "A",
		"content":    "B",
		"categoryId": "1",
		"status":     "1",
	}, "photo.png")
	require.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest(http.MethodDelete, "/category/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/post/1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/category/1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
