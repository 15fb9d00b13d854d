package service

import (
	"context"
	"encoding/json"
	"strconv"

	"nostagram/internal/middleware"
	"nostagram/internal/models"
	"nostagram/internal/observability"
	"nostagram/internal/push"
	"nostagram/internal/repository"
)

type ReactionService struct {
	reactionRepo repository.ReactionRepository
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
	userRepo     repository.UserRepository
	dispatcher   PushDispatcher
	realtime     RealtimePublisher
}

type ToggleReactionInput struct {
	UserID uint
	Type   models.ReactionType
}

func NewReactionService(
	reactionRepo repository.ReactionRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	dispatcher PushDispatcher,
	realtime RealtimePublisher,
) *ReactionService {
	return &ReactionService{
		reactionRepo: reactionRepo,
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		userRepo:     userRepo,
		dispatcher:   dispatcher,
		realtime:     realtime,
	}
}

// TogglePostReaction toggles the user's reaction on a post and notifies the
// author when a reaction lands.
func (s *ReactionService) TogglePostReaction(ctx context.Context, postID uint, in ToggleReactionInput) (*repository.ToggleResult, error) {
	if !models.ValidReactionType(in.Type) {
		return nil, models.NewValidationError("Unknown reaction type")
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	result, err := s.reactionRepo.Toggle(ctx, in.UserID, repository.PostTarget(postID), in.Type)
	if err != nil {
		return nil, err
	}
	observability.ReactionToggles.WithLabelValues(string(result.Action)).Inc()

	if result.Action == repository.ToggleAdded && post.AuthorID != in.UserID {
		s.notifyReaction(ctx, post.AuthorID, "post", postID, in)
	}
	return result, nil
}

// ToggleCommentReaction toggles the user's reaction on a comment.
func (s *ReactionService) ToggleCommentReaction(ctx context.Context, commentID uint, in ToggleReactionInput) (*repository.ToggleResult, error) {
	if !models.ValidReactionType(in.Type) {
		return nil, models.NewValidationError("Unknown reaction type")
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	result, err := s.reactionRepo.Toggle(ctx, in.UserID, repository.CommentTarget(commentID), in.Type)
	if err != nil {
		return nil, err
	}
	observability.ReactionToggles.WithLabelValues(string(result.Action)).Inc()

	if result.Action == repository.ToggleAdded && comment.UserID != in.UserID {
		s.notifyReaction(ctx, comment.UserID, "comment", commentID, in)
	}
	return result, nil
}

// notifyReaction runs the fan-out detached from the request so a slow or
// failing provider cannot delay or fail the toggle response.
func (s *ReactionService) notifyReaction(ctx context.Context, authorID uint, targetKind string, targetID uint, in ToggleReactionInput) {
	bg := context.WithoutCancel(ctx)
	go func() {
		if s.realtime != nil {
			payload, err := json.Marshal(map[string]any{
				"type": "reaction",
				"payload": map[string]any{
					"target":    targetKind,
					"target_id": targetID,
					"user_id":   in.UserID,
					"reaction":  in.Type,
				},
			})
			if err == nil {
				if err := s.realtime.PublishUser(bg, authorID, string(payload)); err != nil {
					middleware.Logger.WarnContext(bg, "failed to publish reaction event",
						"target", targetKind, "target_id", targetID, "error", err)
				}
			}
		}

		if s.dispatcher != nil {
			_, err := s.dispatcher.SendToUser(bg, authorID, push.Notification{
				Title: "New reaction",
				Body:  s.reactorName(bg, in.UserID) + " reacted " + string(in.Type) + " to your " + targetKind,
				Data: map[string]string{
					"type":      "reaction",
					"target":    targetKind,
					"target_id": itoa(targetID),
					"reaction":  string(in.Type),
				},
			})
			if err != nil {
				middleware.Logger.WarnContext(bg, "failed to dispatch reaction push",
					"target", targetKind, "target_id", targetID, "error", err)
			}
		}
	}()
}

// reactorName resolves the reacting user's display name for the push body,
// falling back to a generic label when the lookup cannot be served.
func (s *ReactionService) reactorName(ctx context.Context, userID uint) string {
	if s.userRepo == nil {
		return "Someone"
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || user == nil {
		return "Someone"
	}
	return user.Username
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
