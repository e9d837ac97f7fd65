package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/santosh-shetty/blog-api/models"
	"github.com/santosh-shetty/blog-api/repositories"
	"github.com/santosh-shetty/blog-api/utils"
)

// Uploaded images larger than this are rejected up front.
const maxImageSize = 10 * 1024 * 1024

// PostController manages CRUD operations for posts and their image uploads.
type PostController struct {
	posts repositories.PostRepository
}

// NewPostController creates a new PostController instance.
func NewPostController(posts repositories.PostRepository) *PostController {
	return &PostController{posts: posts}
}

// List returns all posts ordered by id.
func (p *PostController) List(ctx *gin.Context) {
	posts, err := p.posts.List(ctx.Request.Context())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to list posts")
		return
	}
	utils.Success(ctx, "success", posts)
}

// Create persists a new post. The image file is required and its blob is
// stored before the row referencing it.
func (p *PostController) Create(ctx *gin.Context) {
	fields, ok := parsePostForm(ctx)
	if !ok {
		return
	}

	header, err := ctx.FormFile("image")
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, "image file is required")
		return
	}
	upload, file, ok := openUpload(ctx, header)
	if !ok {
		return
	}
	defer file.Close()

	post := models.Post{
		Title:      fields.title,
		Content:    fields.content,
		CategoryID: fields.categoryID,
		Status:     fields.status,
	}
	if err := p.posts.Create(ctx.Request.Context(), &post, *upload); err != nil {
		if errors.Is(err, repositories.ErrInvalidCategory) {
			utils.Error(ctx, http.StatusBadRequest, fmt.Sprintf("category with id %d does not exist", fields.categoryID))
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to create post")
		return
	}
	utils.Created(ctx, "post created", post)
}

// Get returns a single post by id.
func (p *PostController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	post, err := p.posts.GetByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, fmt.Sprintf("post with id %d not found", id))
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to load post")
		return
	}
	utils.Success(ctx, "success", post)
}

// Update replaces the mutable fields of a post. A new image is optional; when
// absent the stored image path is retained.
func (p *PostController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	fields, ok := parsePostForm(ctx)
	if !ok {
		return
	}

	var upload *repositories.ImageUpload
	if header, err := ctx.FormFile("image"); err == nil {
		u, file, ok := openUpload(ctx, header)
		if !ok {
			return
		}
		defer file.Close()
		upload = u
	}

	post, err := p.posts.Update(ctx.Request.Context(), id, fields.title, fields.content, fields.categoryID, fields.status, upload)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, fmt.Sprintf("post with id %d not found", id))
			return
		}
		if errors.Is(err, repositories.ErrInvalidCategory) {
			utils.Error(ctx, http.StatusBadRequest, fmt.Sprintf("category with id %d does not exist", fields.categoryID))
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to update post")
		return
	}
	utils.Success(ctx, "post updated", post)
}

// Delete removes a post row and its image blob.
func (p *PostController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := p.posts.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, fmt.Sprintf("post with id %d not found", id))
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to delete post")
		return
	}
	utils.Success(ctx, "post deleted", nil)
}

type postFormFields struct {
	title      string
	content    string
	categoryID uint
	status     int
}

func parsePostForm(ctx *gin.Context) (postFormFields, bool) {
	var fields postFormFields

	fields.title = utils.SanitizeText(strings.TrimSpace(ctx.PostForm("title")))
	fields.content = utils.Sanitize(ctx.PostForm("content"))
	if fields.title == "" || fields.content == "" {
		utils.Error(ctx, http.StatusBadRequest, "title and content are required")
		return fields, false
	}

	rawCategory := strings.TrimSpace(ctx.PostForm("categoryId"))
	categoryID, err := strconv.ParseUint(rawCategory, 10, 32)
	if err != nil || categoryID == 0 {
		utils.Error(ctx, http.StatusBadRequest, "categoryId must be a positive integer")
		return fields, false
	}
	fields.categoryID = uint(categoryID)

	status, ok := parseStatus(ctx)
	if !ok {
		return fields, false
	}
	fields.status = status
	return fields, true
}

func openUpload(ctx *gin.Context, header *multipart.FileHeader) (*repositories.ImageUpload, multipart.File, bool) {
	if header.Size > maxImageSize {
		utils.Error(ctx, http.StatusBadRequest, "image exceeds the 10MB limit")
		return nil, nil, false
	}
	file, err := header.Open()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to read uploaded image")
		return nil, nil, false
	}
	return &repositories.ImageUpload{Filename: header.Filename, Reader: file}, file, true
}
