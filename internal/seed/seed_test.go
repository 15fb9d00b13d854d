package seed

import (
	"context"
	"testing"

	"nostagram/internal/database"
	"nostagram/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudioPresetsIdempotent(t *testing.T) {
	db, err := database.ConnectSQLite()
	require.NoError(t, err)

	created, err := AudioPresets(context.Background(), db)
	require.NoError(t, err)
	assert.Greater(t, created, 0)

	again, err := AudioPresets(context.Background(), db)
	require.NoError(t, err)
	assert.Zero(t, again)

	var count int64
	require.NoError(t, db.Model(&models.AudioPreset{}).Count(&count).Error)
	assert.Equal(t, int64(created), count)
}

func TestDemo(t *testing.T) {
	db, err := database.ConnectSQLite()
	require.NoError(t, err)

	opts := DemoOptions{Users: 3, PostsPerUser: 2, CommentsPerPost: 1}
	require.NoError(t, Demo(context.Background(), db, opts))

	var users, posts, comments int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)

	assert.Equal(t, int64(3), users)
	assert.Equal(t, int64(6), posts)
	assert.Equal(t, int64(6), comments)
}
