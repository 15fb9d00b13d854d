package service

import (
	"context"
	"encoding/json"
	"strings"

	"nostagram/internal/middleware"
	"nostagram/internal/models"
	"nostagram/internal/push"
	"nostagram/internal/repository"
	"nostagram/internal/validation"
)

// PushDispatcher fans a notification out to a user's devices.
type PushDispatcher interface {
	SendToUser(ctx context.Context, userID uint, n push.Notification) (*push.Result, error)
}

// RealtimePublisher pushes a payload to a user's live websocket sessions.
type RealtimePublisher interface {
	PublishUser(ctx context.Context, userID uint, payload string) error
}

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	presetRepo  repository.PresetRepository
	dispatcher  PushDispatcher
	realtime    RealtimePublisher
	isAdmin     func(ctx context.Context, userID uint) (bool, error)
}

type CreateCommentInput struct {
	UserID        uint
	PostID        uint
	Content       string
	AudioPresetID *uint
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	presetRepo repository.PresetRepository,
	dispatcher PushDispatcher,
	realtime RealtimePublisher,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		presetRepo:  presetRepo,
		dispatcher:  dispatcher,
		realtime:    realtime,
		isAdmin:     isAdmin,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateCommentInput(in.Content, in.AudioPresetID); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if in.AudioPresetID != nil {
		preset, err := s.presetRepo.GetByID(ctx, *in.AudioPresetID)
		if err != nil {
			return nil, err
		}
		if !preset.IsPublic {
			return nil, models.NewValidationError("Audio preset is not available")
		}
	}

	comment := &models.Comment{
		Content:       strings.TrimSpace(in.Content),
		UserID:        in.UserID,
		PostID:        in.PostID,
		AudioPresetID: in.AudioPresetID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if post.AuthorID != in.UserID {
		s.notifyAuthor(ctx, post, comment)
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// notifyAuthor tells the post author about the new comment. Runs detached
// from the request; delivery failures never surface to the commenter.
func (s *CommentService) notifyAuthor(ctx context.Context, post *models.Post, comment *models.Comment) {
	bg := context.WithoutCancel(ctx)
	go func() {
		if s.realtime != nil {
			payload, err := json.Marshal(map[string]any{
				"type": "comment",
				"payload": map[string]any{
					"post_id":    post.ID,
					"comment_id": comment.ID,
					"user_id":    comment.UserID,
				},
			})
			if err == nil {
				if err := s.realtime.PublishUser(bg, post.AuthorID, string(payload)); err != nil {
					middleware.Logger.WarnContext(bg, "failed to publish comment event",
						"post_id", post.ID, "error", err)
				}
			}
		}

		if s.dispatcher != nil {
			_, err := s.dispatcher.SendToUser(bg, post.AuthorID, push.Notification{
				Title: "New comment",
				Body:  "Someone commented on your post",
				Data: map[string]string{
					"type":    "comment",
					"post_id": itoa(post.ID),
				},
			})
			if err != nil {
				middleware.Logger.WarnContext(bg, "failed to dispatch comment push",
					"post_id", post.ID, "error", err)
			}
		}
	}()
}

func (s *CommentService) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

func (s *CommentService) ListComments(ctx context.Context, postID uint, cursor *uint, limit int) (repository.Page[*models.Comment], error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return repository.Page[*models.Comment]{}, err
	}
	return s.commentRepo.ListByPost(ctx, postID, cursor, limit)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own comments")
	}
	if err := validation.ValidateCommentInput(in.Content, comment.AudioPresetID); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	comment.Content = strings.TrimSpace(in.Content)
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != userID {
		if s.isAdmin == nil {
			return nil, models.NewUnauthorizedError("You can only delete your own comments")
		}
		admin, err := s.isAdmin(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !admin {
			return nil, models.NewUnauthorizedError("You can only delete your own comments")
		}
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return nil, err
	}
	return comment, nil
}
