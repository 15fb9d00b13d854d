package service

import (
	"context"
	"testing"

	"nostagram/internal/models"
	"nostagram/internal/push"
	"nostagram/internal/repository"

	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn       func(context.Context, *models.Post) error
	addImagesFn    func(context.Context, uint, []string) ([]models.Image, error)
	getByIDFn      func(context.Context, uint) (*models.Post, error)
	listFeedFn     func(context.Context, *uint, int, string) (repository.Page[*models.Post], error)
	listByAuthorFn func(context.Context, uint, *uint, int) (repository.Page[*models.Post], error)
	updateFn       func(context.Context, *models.Post) error
	setOGImageFn   func(context.Context, uint, string) error
	deleteFn       func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) AddImages(ctx context.Context, postID uint, urls []string) ([]models.Image, error) {
	return s.addImagesFn(ctx, postID, urls)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) ListFeed(ctx context.Context, cursor *uint, limit int, search string) (repository.Page[*models.Post], error) {
	return s.listFeedFn(ctx, cursor, limit, search)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID uint, cursor *uint, limit int) (repository.Page[*models.Post], error) {
	return s.listByAuthorFn(ctx, authorID, cursor, limit)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) SetOGImage(ctx context.Context, postID uint, path string) error {
	return s.setOGImageFn(ctx, postID, path)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		addImagesFn: func(_ context.Context, _ uint, _ []string) ([]models.Image, error) {
			return nil, nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, AuthorID: 1}, nil
		},
		listFeedFn: func(_ context.Context, _ *uint, _ int, _ string) (repository.Page[*models.Post], error) {
			return repository.Page[*models.Post]{}, nil
		},
		listByAuthorFn: func(_ context.Context, _ uint, _ *uint, _ int) (repository.Page[*models.Post], error) {
			return repository.Page[*models.Post]{}, nil
		},
		updateFn:     func(_ context.Context, _ *models.Post) error { return nil },
		setOGImageFn: func(_ context.Context, _ uint, _ string) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint, *uint, int) (repository.Page[*models.Comment], error)
	updateFn     func(context.Context, *models.Comment) error
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, cursor *uint, limit int) (repository.Page[*models.Comment], error) {
	return s.listByPostFn(ctx, postID, cursor, limit)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, UserID: 1, PostID: 1}, nil
		},
		listByPostFn: func(_ context.Context, _ uint, _ *uint, _ int) (repository.Page[*models.Comment], error) {
			return repository.Page[*models.Comment]{}, nil
		},
		updateFn: func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// reactionRepoStub is a stub for repository.ReactionRepository.
type reactionRepoStub struct {
	toggleFn func(context.Context, uint, repository.ReactionTarget, models.ReactionType) (*repository.ToggleResult, error)
	getFn    func(context.Context, uint, repository.ReactionTarget) (*models.Reaction, error)
	countFn  func(context.Context, repository.ReactionTarget) (int64, error)
}

func (s *reactionRepoStub) Toggle(ctx context.Context, userID uint, target repository.ReactionTarget, rt models.ReactionType) (*repository.ToggleResult, error) {
	return s.toggleFn(ctx, userID, target, rt)
}
func (s *reactionRepoStub) Get(ctx context.Context, userID uint, target repository.ReactionTarget) (*models.Reaction, error) {
	return s.getFn(ctx, userID, target)
}
func (s *reactionRepoStub) CountForTarget(ctx context.Context, target repository.ReactionTarget) (int64, error) {
	return s.countFn(ctx, target)
}

func noopReactionRepo() *reactionRepoStub {
	return &reactionRepoStub{
		toggleFn: func(_ context.Context, _ uint, _ repository.ReactionTarget, _ models.ReactionType) (*repository.ToggleResult, error) {
			return &repository.ToggleResult{Action: repository.ToggleAdded}, nil
		},
		getFn: func(_ context.Context, _ uint, _ repository.ReactionTarget) (*models.Reaction, error) {
			return nil, nil
		},
		countFn: func(_ context.Context, _ repository.ReactionTarget) (int64, error) { return 0, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
	isAdminFn       func(context.Context, uint) (bool, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) IsAdmin(ctx context.Context, id uint) (bool, error) {
	return s.isAdminFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn: func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "tester"}, nil
		},
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		isAdminFn:       func(_ context.Context, _ uint) (bool, error) { return false, nil },
	}
}

// presetRepoStub is a stub for repository.PresetRepository.
type presetRepoStub struct {
	createFn     func(context.Context, *models.AudioPreset) error
	getByIDFn    func(context.Context, uint) (*models.AudioPreset, error)
	listPublicFn func(context.Context, *uint, int, string) (repository.Page[*models.AudioPreset], error)
}

func (s *presetRepoStub) Create(ctx context.Context, preset *models.AudioPreset) error {
	return s.createFn(ctx, preset)
}
func (s *presetRepoStub) GetByID(ctx context.Context, id uint) (*models.AudioPreset, error) {
	return s.getByIDFn(ctx, id)
}
func (s *presetRepoStub) ListPublic(ctx context.Context, cursor *uint, limit int, search string) (repository.Page[*models.AudioPreset], error) {
	return s.listPublicFn(ctx, cursor, limit, search)
}

func noopPresetRepo() *presetRepoStub {
	return &presetRepoStub{
		createFn: func(_ context.Context, _ *models.AudioPreset) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.AudioPreset, error) {
			return &models.AudioPreset{ID: id, IsPublic: true}, nil
		},
		listPublicFn: func(_ context.Context, _ *uint, _ int, _ string) (repository.Page[*models.AudioPreset], error) {
			return repository.Page[*models.AudioPreset]{}, nil
		},
	}
}

// dispatcherStub records push dispatches.
type dispatcherStub struct {
	sent  chan uint
	notes chan push.Notification
}

func newDispatcherStub() *dispatcherStub {
	return &dispatcherStub{
		sent:  make(chan uint, 8),
		notes: make(chan push.Notification, 8),
	}
}

func (s *dispatcherStub) SendToUser(_ context.Context, userID uint, note push.Notification) (*push.Result, error) {
	s.sent <- userID
	s.notes <- note
	return &push.Result{Status: push.StatusSent, SuccessCount: 1}, nil
}

// realtimeStub records websocket publishes.
type realtimeStub struct {
	published chan uint
}

func newRealtimeStub() *realtimeStub {
	return &realtimeStub{published: make(chan uint, 8)}
}

func (s *realtimeStub) PublishUser(_ context.Context, userID uint, _ string) error {
	s.published <- userID
	return nil
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "VALIDATION_ERROR", appErr.Code)
}
