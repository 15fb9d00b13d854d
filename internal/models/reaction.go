package models

import "time"

// ReactionType is the keyed emoji set users can react with.
type ReactionType string

const (
	ReactionLike  ReactionType = "like"
	ReactionLove  ReactionType = "love"
	ReactionHaha  ReactionType = "haha"
	ReactionWow   ReactionType = "wow"
	ReactionSad   ReactionType = "sad"
	ReactionAngry ReactionType = "angry"
)

// ValidReactionType reports whether t is one of the known reaction types.
func ValidReactionType(t ReactionType) bool {
	switch t {
	case ReactionLike, ReactionLove, ReactionHaha, ReactionWow, ReactionSad, ReactionAngry:
		return true
	}
	return false
}

// Reaction is a user's emoji reaction on a post or a comment. Exactly one of
// PostID / CommentID is set. Uniqueness per (user, target) is enforced by the
// storage layer, not application logic: NULL columns do not participate in
// conflicts, so the two partial unique indexes do not interfere.
type Reaction struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	Type      ReactionType `gorm:"size:16;not null" json:"type"`
	UserID    uint         `gorm:"not null;uniqueIndex:idx_reaction_user_post;uniqueIndex:idx_reaction_user_comment" json:"user_id"`
	PostID    *uint        `gorm:"uniqueIndex:idx_reaction_user_post" json:"post_id,omitempty"`
	CommentID *uint        `gorm:"uniqueIndex:idx_reaction_user_comment" json:"comment_id,omitempty"`
	User      User         `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
