package repository

import (
	"context"
	"errors"

	"nostagram/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint, cursor *uint, limit int) (Page[*models.Comment], error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("AudioPreset").
		Preload("Reactions").
		First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint, cursor *uint, limit int) (Page[*models.Comment], error) {
	limit = ClampLimit(limit)

	var comments []*models.Comment
	q := r.db.WithContext(ctx).
		Preload("User").
		Preload("AudioPreset").
		Preload("Reactions").
		Where("post_id = ?", postID)
	if err := applyCursor(q, "comments.id", cursor).
		Limit(limit + 1).
		Find(&comments).Error; err != nil {
		return Page[*models.Comment]{}, err
	}
	return buildPage(comments, limit, func(c *models.Comment) uint { return c.ID }), nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error
}
