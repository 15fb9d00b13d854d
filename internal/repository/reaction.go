package repository

import (
	"context"
	"errors"

	"nostagram/internal/cache"
	"nostagram/internal/models"

	"gorm.io/gorm"
)

// ToggleAction names the transition a reaction toggle performed.
type ToggleAction string

const (
	ToggleAdded   ToggleAction = "added"
	ToggleRemoved ToggleAction = "removed"
	ToggleUpdated ToggleAction = "updated"
)

// ToggleResult reports the outcome of a reaction toggle.
type ToggleResult struct {
	Action   ToggleAction     `json:"action"`
	Reaction *models.Reaction `json:"reaction,omitempty"`
}

// ReactionTarget identifies the post or comment being reacted to. Exactly one
// field is set.
type ReactionTarget struct {
	PostID    *uint
	CommentID *uint
}

// PostTarget builds a target for a post reaction.
func PostTarget(postID uint) ReactionTarget {
	return ReactionTarget{PostID: &postID}
}

// CommentTarget builds a target for a comment reaction.
func CommentTarget(commentID uint) ReactionTarget {
	return ReactionTarget{CommentID: &commentID}
}

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	Toggle(ctx context.Context, userID uint, target ReactionTarget, reactionType models.ReactionType) (*ToggleResult, error)
	Get(ctx context.Context, userID uint, target ReactionTarget) (*models.Reaction, error)
	CountForTarget(ctx context.Context, target ReactionTarget) (int64, error)
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new reaction repository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) targetScope(db *gorm.DB, userID uint, target ReactionTarget) *gorm.DB {
	db = db.Where("user_id = ?", userID)
	if target.PostID != nil {
		return db.Where("post_id = ?", *target.PostID)
	}
	return db.Where("comment_id = ?", *target.CommentID)
}

func (r *reactionRepository) Get(ctx context.Context, userID uint, target ReactionTarget) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.targetScope(r.db.WithContext(ctx), userID, target).First(&reaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reaction, nil
}

// Toggle performs the three-state reaction transition:
//   - no row for (user, target): insert, action "added"
//   - row with the same type: delete, action "removed"
//   - row with a different type: update in place, action "updated"
//
// Correctness under concurrent toggles rests on the unique (user, target)
// index, not application locking. A racing duplicate insert surfaces as a
// CONFLICT the client may retry; its next toggle re-reads current state.
func (r *reactionRepository) Toggle(ctx context.Context, userID uint, target ReactionTarget, reactionType models.ReactionType) (*ToggleResult, error) {
	existing, err := r.Get(ctx, userID, target)
	if err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)

	switch {
	case existing == nil:
		reaction := &models.Reaction{
			Type:      reactionType,
			UserID:    userID,
			PostID:    target.PostID,
			CommentID: target.CommentID,
		}
		if err := db.Create(reaction).Error; err != nil {
			if models.IsUniqueViolation(err) {
				return nil, models.NewConflictError("Reaction was just added by a concurrent request")
			}
			return nil, err
		}
		r.invalidateTarget(ctx, target)
		return &ToggleResult{Action: ToggleAdded, Reaction: reaction}, nil

	case existing.Type == reactionType:
		if err := db.Delete(&models.Reaction{}, existing.ID).Error; err != nil {
			return nil, err
		}
		r.invalidateTarget(ctx, target)
		return &ToggleResult{Action: ToggleRemoved}, nil

	default:
		existing.Type = reactionType
		if err := db.Model(&models.Reaction{}).
			Where("id = ?", existing.ID).
			Update("type", reactionType).Error; err != nil {
			return nil, err
		}
		r.invalidateTarget(ctx, target)
		return &ToggleResult{Action: ToggleUpdated, Reaction: existing}, nil
	}
}

func (r *reactionRepository) CountForTarget(ctx context.Context, target ReactionTarget) (int64, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&models.Reaction{})
	if target.PostID != nil {
		db = db.Where("post_id = ?", *target.PostID)
	} else {
		db = db.Where("comment_id = ?", *target.CommentID)
	}
	err := db.Count(&count).Error
	return count, err
}

func (r *reactionRepository) invalidateTarget(ctx context.Context, target ReactionTarget) {
	if target.PostID != nil {
		cache.Invalidate(ctx, cache.PostKey(*target.PostID))
	}
}
