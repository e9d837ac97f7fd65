package repositories

import (
	"context"
	"io"

	"github.com/santosh-shetty/blog-api/models"
)

// ImageUpload carries the content of a multipart image file on its way to the
// image store.
type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	Update(ctx context.Context, id uint, title, description string, status int) (*models.Category, error)
	Delete(ctx context.Context, id uint) error
}

// PostRepository defines the interface for post data access. Create and Update
// accept the uploaded image; the blob is written before the row referencing it.
type PostRepository interface {
	List(ctx context.Context) ([]models.Post, error)
	Create(ctx context.Context, post *models.Post, image ImageUpload) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Update(ctx context.Context, id uint, title, content string, categoryID uint, status int, image *ImageUpload) (*models.Post, error)
	Delete(ctx context.Context, id uint) error
}
