package service

import (
	"context"
	"strings"

	"nostagram/internal/media"
	"nostagram/internal/middleware"
	"nostagram/internal/models"
	"nostagram/internal/repository"
	"nostagram/internal/validation"
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	ogRender *media.OGRenderer
	isAdmin  func(ctx context.Context, userID uint) (bool, error)
}

type CreatePostInput struct {
	AuthorID  uint
	Content   string
	ImageURLs []string
}

type UpdatePostInput struct {
	UserID  uint
	PostID  uint
	Content string
}

type ListFeedInput struct {
	Cursor *uint
	Limit  int
	Search string
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	ogRender *media.OGRenderer,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		ogRender: ogRender,
		isAdmin:  isAdmin,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validation.ValidatePostContent(in.Content, len(in.ImageURLs)); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.Post{
		Content:  strings.TrimSpace(in.Content),
		AuthorID: in.AuthorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Image rows are written after the post; a failure here degrades the post
	// to text-only rather than failing the whole create.
	if len(in.ImageURLs) > 0 {
		images, err := s.postRepo.AddImages(ctx, post.ID, in.ImageURLs)
		if err != nil {
			middleware.Logger.ErrorContext(ctx, "failed to attach images to post",
				"post_id", post.ID, "error", err)
		} else {
			post.Images = images
		}
	}

	s.renderShareCard(ctx, post)

	return s.postRepo.GetByID(ctx, post.ID)
}

// renderShareCard draws the Open Graph card off the request path. The post is
// already committed; a render failure only costs the link preview.
func (s *PostService) renderShareCard(ctx context.Context, post *models.Post) {
	if s.ogRender == nil || !s.ogRender.Enabled() {
		return
	}

	handle := ""
	if author, err := s.userRepo.GetByID(ctx, post.AuthorID); err == nil {
		handle = author.Username
	}

	bg := context.WithoutCancel(ctx)
	go func() {
		rel, err := s.ogRender.Render(post.ID, handle, post.Content)
		if err != nil {
			middleware.Logger.ErrorContext(bg, "failed to render share card",
				"post_id", post.ID, "error", err)
			return
		}
		if err := s.postRepo.SetOGImage(bg, post.ID, rel); err != nil {
			middleware.Logger.ErrorContext(bg, "failed to store share card path",
				"post_id", post.ID, "error", err)
		}
	}()
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) ListFeed(ctx context.Context, in ListFeedInput) (repository.Page[*models.Post], error) {
	return s.postRepo.ListFeed(ctx, in.Cursor, in.Limit, in.Search)
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID uint, cursor *uint, limit int) (repository.Page[*models.Post], error) {
	return s.postRepo.ListByAuthor(ctx, authorID, cursor, limit)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own posts")
	}
	if err := validation.ValidatePostContent(in.Content, len(post.Images)); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post.Content = strings.TrimSpace(in.Content)
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.AuthorID != userID {
		if s.isAdmin == nil {
			return models.NewUnauthorizedError("You can only delete your own posts")
		}
		admin, err := s.isAdmin(ctx, userID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewUnauthorizedError("You can only delete your own posts")
		}
	}

	return s.postRepo.Delete(ctx, postID)
}
