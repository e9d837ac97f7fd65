package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/santosh-shetty/blog-api/models"
	"github.com/santosh-shetty/blog-api/repositories"
	"github.com/santosh-shetty/blog-api/utils"
)

// CategoryController manages CRUD operations for categories.
type CategoryController struct {
	categories repositories.CategoryRepository
}

// NewCategoryController creates a new CategoryController instance.
func NewCategoryController(categories repositories.CategoryRepository) *CategoryController {
	return &CategoryController{categories: categories}
}

// List returns all categories ordered by id.
func (c *CategoryController) List(ctx *gin.Context) {
	categories, err := c.categories.List(ctx.Request.Context())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to list categories")
		return
	}
	utils.Success(ctx, "success", categories)
}

// Create persists a new category from form fields.
func (c *CategoryController) Create(ctx *gin.Context) {
	title := utils.SanitizeText(strings.TrimSpace(ctx.PostForm("title")))
	description := utils.SanitizeText(strings.TrimSpace(ctx.PostForm("description")))
	if title == "" || description == "" {
		utils.Error(ctx, http.StatusBadRequest, "title and description are required")
		return
	}
	status, ok := parseStatus(ctx)
	if !ok {
		return
	}

	category := models.Category{
		Title:       title,
		Description: description,
		Status:      status,
	}
	if err := c.categories.Create(ctx.Request.Context(), &category); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to create category")
		return
	}
	utils.Created(ctx, "category created", category)
}

// Get returns a single category by id.
func (c *CategoryController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	category, err := c.categories.GetByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, fmt.Sprintf("category with id %d not found", id))
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to load category")
		return
	}
	utils.Success(ctx, "success", category)
}

// Update replaces the mutable fields of a category.
func (c *CategoryController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	title := utils.SanitizeText(strings.TrimSpace(ctx.PostForm("title")))
	description := utils.SanitizeText(strings.TrimSpace(ctx.PostForm("description")))
	if title == "" || description == "" {
		utils.Error(ctx, http.StatusBadRequest, "title and description are required")
		return
	}
	status, ok := parseStatus(ctx)
	if !ok {
		return
	}

	category, err := c.categories.Update(ctx.Request.Context(), id, title, description, status)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, fmt.Sprintf("category with id %d not found", id))
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to update category")
		return
	}
	utils.Success(ctx, "category updated", category)
}

// Delete removes a category; blocked while posts reference it.
func (c *CategoryController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.categories.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, fmt.Sprintf("category with id %d not found", id))
			return
		}
		if errors.Is(err, repositories.ErrCategoryInUse) {
			utils.Error(ctx, http.StatusBadRequest, "category is referenced by existing posts")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to delete category")
		return
	}
	utils.Success(ctx, "category deleted", nil)
}

// parseID reads the :id path parameter; responds 400 on garbage.
func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// parseStatus reads the optional status form field, defaulting to 1.
// The default lives here, not in the store.
func parseStatus(ctx *gin.Context) (int, bool) {
	raw := strings.TrimSpace(ctx.PostForm("status"))
	if raw == "" {
		return 1, true
	}
	status, err := strconv.Atoi(raw)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, "status must be an integer")
		return 0, false
	}
	return status, true
}
