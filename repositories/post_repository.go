package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/santosh-shetty/blog-api/models"
	"github.com/santosh-shetty/blog-api/storage"
	"github.com/santosh-shetty/blog-api/utils"
)

type postRepository struct {
	db     *gorm.DB
	images storage.ImageStore
}

// NewPostRepository creates a MySQL backed post repository that delegates
// image blobs to the given store.
func NewPostRepository(db *gorm.DB, images storage.ImageStore) PostRepository {
	return &postRepository{db: db, images: images}
}

func (r *postRepository) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).Order("id ASC").Find(&posts).Error
	return posts, err
}

// Create saves the image blob first and commits the row referencing its path
// afterwards. If the row commit fails the blob stays orphaned on disk; that is
// an accepted inconsistency, never a dangling row pointing at a missing blob.
func (r *postRepository) Create(ctx context.Context, post *models.Post, image ImageUpload) error {
	path, err := r.images.Save(image.Filename, image.Reader)
	if err != nil {
		return err
	}
	post.Image = path

	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		if isMySQLError(err, mysqlErrNoReferencedRow) {
			return ErrInvalidCategory
		}
		return err
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Update replaces the mutable fields. When a new image is supplied its blob is
// written before the row commit and the stored path swapped; the previous blob
// is left on disk untouched. Without a new image the path is retained.
func (r *postRepository) Update(ctx context.Context, id uint, title, content string, categoryID uint, status int, image *ImageUpload) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	post.Title = title
	post.Content = content
	post.CategoryID = categoryID
	post.Status = status

	if image != nil {
		path, err := r.images.Save(image.Filename, image.Reader)
		if err != nil {
			return nil, err
		}
		post.Image = path
	}

	if err := r.db.WithContext(ctx).Save(&post).Error; err != nil {
		if isMySQLError(err, mysqlErrNoReferencedRow) {
			return nil, ErrInvalidCategory
		}
		return nil, err
	}
	return &post, nil
}

// Delete removes the image blob best-effort and then the row. A blob that
// cannot be removed is logged and does not block the row deletion.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := r.images.Delete(post.Image); err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Warnf("failed to delete image blob %s for post %d: %v", post.Image, post.ID, err)
		}
	}

	return r.db.WithContext(ctx).Delete(&models.Post{}, id).Error
}
