package mock

import (
	"context"
	"sync"
	"time"

	"github.com/santosh-shetty/blog-api/models"
	"github.com/santosh-shetty/blog-api/repositories"
	"github.com/santosh-shetty/blog-api/storage"
)

// state is the shared in-memory table set so the referential guard between
// categories and posts behaves like the real store.
type state struct {
	mu             sync.RWMutex
	categories     map[uint]*models.Category
	posts          map[uint]*models.Post
	nextCategoryID uint
	nextPostID     uint
}

type CategoryRepository struct {
	s *state
}

type PostRepository struct {
	s      *state
	images storage.ImageStore
}

// NewRepositories returns linked in-memory repositories backed by the given
// image store.
func NewRepositories(images storage.ImageStore) (*CategoryRepository, *PostRepository) {
	s := &state{
		categories:     make(map[uint]*models.Category),
		posts:          make(map[uint]*models.Post),
		nextCategoryID: 1,
		nextPostID:     1,
	}
	return &CategoryRepository{s: s}, &PostRepository{s: s, images: images}
}

// CategoryRepository implementation

func (m *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	categories := []models.Category{}
	for id := uint(1); id < m.s.nextCategoryID; id++ {
		if c, exists := m.s.categories[id]; exists {
			categories = append(categories, *c)
		}
	}
	return categories, nil
}

func (m *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	category.ID = m.s.nextCategoryID
	m.s.nextCategoryID++
	category.CreatedAt = time.Now()
	stored := *category
	m.s.categories[category.ID] = &stored
	return nil
}

func (m *CategoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	category, exists := m.s.categories[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *category
	return &copied, nil
}

func (m *CategoryRepository) Update(ctx context.Context, id uint, title, description string, status int) (*models.Category, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	category, exists := m.s.categories[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	category.Title = title
	category.Description = description
	category.Status = status
	copied := *category
	return &copied, nil
}

func (m *CategoryRepository) Delete(ctx context.Context, id uint) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, exists := m.s.categories[id]; !exists {
		return repositories.ErrNotFound
	}
	for _, p := range m.s.posts {
		if p.CategoryID == id {
			return repositories.ErrCategoryInUse
		}
	}
	delete(m.s.categories, id)
	return nil
}

// PostRepository implementation

func (m *PostRepository) List(ctx context.Context) ([]models.Post, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	posts := []models.Post{}
	for id := uint(1); id < m.s.nextPostID; id++ {
		if p, exists := m.s.posts[id]; exists {
			posts = append(posts, *p)
		}
	}
	return posts, nil
}

func (m *PostRepository) Create(ctx context.Context, post *models.Post, image repositories.ImageUpload) error {
	path, err := m.images.Save(image.Filename, image.Reader)
	if err != nil {
		return err
	}

	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, exists := m.s.categories[post.CategoryID]; !exists {
		return repositories.ErrInvalidCategory
	}

	post.ID = m.s.nextPostID
	m.s.nextPostID++
	post.Image = path
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	stored := *post
	m.s.posts[post.ID] = &stored
	return nil
}

func (m *PostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	post, exists := m.s.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *post
	return &copied, nil
}

func (m *PostRepository) Update(ctx context.Context, id uint, title, content string, categoryID uint, status int, image *repositories.ImageUpload) (*models.Post, error) {
	var path string
	if image != nil {
		var err error
		path, err = m.images.Save(image.Filename, image.Reader)
		if err != nil {
			return nil, err
		}
	}

	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	post, exists := m.s.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	if _, exists := m.s.categories[categoryID]; !exists {
		return nil, repositories.ErrInvalidCategory
	}

	post.Title = title
	post.Content = content
	post.CategoryID = categoryID
	post.Status = status
	if image != nil {
		post.Image = path
	}
	post.UpdatedAt = time.Now()
	copied := *post
	return &copied, nil
}

func (m *PostRepository) Delete(ctx context.Context, id uint) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	post, exists := m.s.posts[id]
	if !exists {
		return repositories.ErrNotFound
	}
	_ = m.images.Delete(post.Image)
	delete(m.s.posts, id)
	return nil
}
