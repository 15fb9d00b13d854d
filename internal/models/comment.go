package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a post. Content is optional when the
// comment carries an audio preset instead.
type Comment struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	Content       string       `json:"content"`
	PostID        uint         `gorm:"not null;index" json:"post_id"`
	UserID        uint         `gorm:"not null" json:"user_id"`
	User          User         `gorm:"foreignKey:UserID" json:"user"`
	AudioPresetID *uint        `json:"audio_preset_id,omitempty"`
	AudioPreset   *AudioPreset `gorm:"foreignKey:AudioPresetID" json:"audio_preset,omitempty"`
	Reactions     []Reaction   `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"reactions"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// AudioPreset is a reusable sound clip that can be attached to comments.
type AudioPreset struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	DisplayName string    `gorm:"not null" json:"display_name"`
	URL         string    `gorm:"not null" json:"url"`
	IsPublic    bool      `gorm:"default:true" json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
}
