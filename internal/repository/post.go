package repository

import (
	"context"
	"errors"
	"strings"

	"nostagram/internal/cache"
	"nostagram/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	AddImages(ctx context.Context, postID uint, urls []string) ([]models.Image, error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListFeed(ctx context.Context, cursor *uint, limit int, search string) (Page[*models.Post], error)
	ListByAuthor(ctx context.Context, authorID uint, cursor *uint, limit int) (Page[*models.Post], error)
	Update(ctx context.Context, post *models.Post) error
	SetOGImage(ctx context.Context, postID uint, path string) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		cache.InvalidatePostsList(ctx)
	}
	return err
}

// AddImages inserts image rows for an existing post. Deliberately not wrapped
// in a transaction with Create: a crash between the two steps leaves a post
// without images, which cascade delete cleans up in the reverse direction.
func (r *postRepository) AddImages(ctx context.Context, postID uint, urls []string) ([]models.Image, error) {
	if len(urls) == 0 {
		return nil, nil
	}
	images := make([]models.Image, 0, len(urls))
	for _, u := range urls {
		images = append(images, models.Image{URL: u, PostID: postID})
	}
	if err := r.db.WithContext(ctx).Create(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		return r.withDetails(r.db.WithContext(ctx)).First(&post, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListFeed(ctx context.Context, cursor *uint, limit int, search string) (Page[*models.Post], error) {
	limit = ClampLimit(limit)

	q := r.withDetails(r.db.WithContext(ctx))
	if s := strings.TrimSpace(search); s != "" {
		// Case-insensitive substring filter narrows the set before pagination.
		q = q.Where("LOWER(posts.content) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var posts []*models.Post
	if err := applyCursor(q, "posts.id", cursor).
		Limit(limit + 1).
		Find(&posts).Error; err != nil {
		return Page[*models.Post]{}, err
	}
	return buildPage(posts, limit, func(p *models.Post) uint { return p.ID }), nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, cursor *uint, limit int) (Page[*models.Post], error) {
	limit = ClampLimit(limit)

	var posts []*models.Post
	q := r.withDetails(r.db.WithContext(ctx)).Where("posts.author_id = ?", authorID)
	if err := applyCursor(q, "posts.id", cursor).
		Limit(limit + 1).
		Find(&posts).Error; err != nil {
		return Page[*models.Post]{}, err
	}
	return buildPage(posts, limit, func(p *models.Post) uint { return p.ID }), nil
}

// withDetails adds subqueries to fetch counts in a single query.
func (r *postRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Select("posts.*, " +
			"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) as comments_count, " +
			"(SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id) as reactions_count").
		Preload("Author").
		Preload("Images").
		Preload("Reactions")
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.PostKey(post.ID))
	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *postRepository) SetOGImage(ctx context.Context, postID uint, path string) error {
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		Update("og_image", path).Error
	if err == nil {
		cache.Invalidate(ctx, cache.PostKey(postID))
	}
	return err
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.PostKey(id))
	cache.InvalidatePostsList(ctx)
	return nil
}
