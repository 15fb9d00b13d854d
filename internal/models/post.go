package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxPostContentLen is the upper bound for post content length in characters.
const MaxPostContentLen = 280

// Post represents a short text post, optionally with attached images.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Content  string `gorm:"type:text;not null" json:"content"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
	// OGImage is the path of the rendered share-card, if one was generated.
	OGImage string  `json:"og_image,omitempty"`
	Images  []Image `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"images"`
	// Reactions carries the post's reactions for feed rendering.
	Reactions []Reaction `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"reactions"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// ReactionsCount is not persisted; computed at query time
	ReactionsCount int            `gorm:"->" json:"reactions_count"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// Image is an uploaded media attachment owned by a post. The URL is an opaque
// storage reference (typically a Cloudinary public URL).
type Image struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	URL    string `gorm:"not null" json:"url"`
	PostID uint   `gorm:"not null;index" json:"post_id"`

	CreatedAt time.Time `json:"created_at"`
}
