package repository

import (
	"context"
	"fmt"
	"testing"

	"nostagram/internal/database"
	"nostagram/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.ConnectSQLite()
	require.NoError(t, err)
	return db
}

func mustCreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Name:     "Test " + username,
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func mustCreatePost(t *testing.T, db *gorm.DB, authorID uint, content string) *models.Post {
	t.Helper()
	post := &models.Post{Content: content, AuthorID: authorID}
	require.NoError(t, db.Create(post).Error)
	return post
}

func mustCreateComment(t *testing.T, db *gorm.DB, postID, userID uint, content string) *models.Comment {
	t.Helper()
	comment := &models.Comment{Content: content, PostID: postID, UserID: userID}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

func seedPosts(t *testing.T, db *gorm.DB, authorID uint, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		mustCreatePost(t, db, authorID, fmt.Sprintf("post %d", i))
	}
}

// drainFeed walks the feed cursor until exhaustion and returns every content
// string in order. Fails the test if pagination does not terminate.
func drainFeed(t *testing.T, repo PostRepository, limit int, search string) []string {
	t.Helper()

	var out []string
	var cursor *uint
	for steps := 0; ; steps++ {
		require.Less(t, steps, 100, "pagination did not terminate")

		page, err := repo.ListFeed(context.Background(), cursor, limit, search)
		require.NoError(t, err)
		require.LessOrEqual(t, len(page.Data), ClampLimit(limit))

		for _, p := range page.Data {
			out = append(out, p.Content)
		}
		if page.NextCursor == nil {
			return out
		}
		cursor = page.NextCursor
	}
}
