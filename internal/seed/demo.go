package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"nostagram/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoOptions controls the volume of generated demo data.
type DemoOptions struct {
	Users           int
	PostsPerUser    int
	CommentsPerPost int
	// MaxDays spreads created_at timestamps over this many days back.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts DemoOptions
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts DemoOptions) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a demo user with a bcrypt-hashed throwaway password.
func (f *Factory) CreateUser(ctx context.Context, overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(gofakeit.Password(true, true, true, true, false, 16)), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:     gofakeit.Name(),
		Username: fmt.Sprintf("%s%d", gofakeit.Username(), f.rng.Intn(10000)),
		Email:    gofakeit.Email(),
		Password: string(hashed),
		Bio:      gofakeit.Sentence(8),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost persists a demo post with a realistic created_at spread.
func (f *Factory) CreatePost(ctx context.Context, author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		Content:   gofakeit.Sentence(12),
		AuthorID:  author.ID,
		CreatedAt: f.spreadTime(),
	}
	for _, override := range overrides {
		override(post)
	}
	if err := f.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, err
	}
	if f.rng.Intn(3) == 0 {
		img := models.Image{
			URL:    fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
			PostID: post.ID,
		}
		if err := f.db.WithContext(ctx).Create(&img).Error; err != nil {
			return nil, err
		}
		post.Images = append(post.Images, img)
	}
	return post, nil
}

// CreateComment persists a demo comment on a post.
func (f *Factory) CreateComment(ctx context.Context, post *models.Post, author *models.User) (*models.Comment, error) {
	comment := &models.Comment{
		Content:   gofakeit.Sentence(8),
		PostID:    post.ID,
		UserID:    author.ID,
		CreatedAt: f.spreadTime(),
	}
	if err := f.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateReaction persists a random reaction by the user on the post.
func (f *Factory) CreateReaction(ctx context.Context, post *models.Post, user *models.User) (*models.Reaction, error) {
	types := []models.ReactionType{
		models.ReactionLike, models.ReactionLove, models.ReactionHaha,
		models.ReactionWow, models.ReactionSad, models.ReactionAngry,
	}
	reaction := &models.Reaction{
		Type:   types[f.rng.Intn(len(types))],
		UserID: user.ID,
		PostID: &post.ID,
	}
	if err := f.db.WithContext(ctx).Create(reaction).Error; err != nil {
		return nil, err
	}
	return reaction, nil
}

// Demo populates the database with a small social mesh of users, posts,
// comments, and reactions. Intended for development environments only.
func Demo(ctx context.Context, db *gorm.DB, opts DemoOptions) error {
	if opts.Users <= 0 {
		opts.Users = 8
	}
	if opts.PostsPerUser <= 0 {
		opts.PostsPerUser = 4
	}
	if opts.CommentsPerPost <= 0 {
		opts.CommentsPerPost = 2
	}

	f := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		u, err := f.CreateUser(ctx)
		if err != nil {
			return fmt.Errorf("seeding user %d: %w", i, err)
		}
		users = append(users, u)
	}

	for _, author := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			post, err := f.CreatePost(ctx, author)
			if err != nil {
				return fmt.Errorf("seeding post for user %d: %w", author.ID, err)
			}
			for j := 0; j < opts.CommentsPerPost; j++ {
				commenter := users[f.rng.Intn(len(users))]
				if _, err := f.CreateComment(ctx, post, commenter); err != nil {
					return fmt.Errorf("seeding comment on post %d: %w", post.ID, err)
				}
			}
			reactor := users[f.rng.Intn(len(users))]
			if reactor.ID != author.ID {
				if _, err := f.CreateReaction(ctx, post, reactor); err != nil {
					return fmt.Errorf("seeding reaction on post %d: %w", post.ID, err)
				}
			}
		}
	}
	return nil
}

func (f *Factory) spreadTime() time.Time {
	daysBack := f.rng.Intn(f.opts.MaxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}
