package repository

import (
	"context"
	"errors"

	"nostagram/internal/models"

	"gorm.io/gorm"
)

// PresetRepository defines the interface for audio preset data operations
type PresetRepository interface {
	Create(ctx context.Context, preset *models.AudioPreset) error
	GetByID(ctx context.Context, id uint) (*models.AudioPreset, error)
	ListPublic(ctx context.Context, cursor *uint, limit int, search string) (Page[*models.AudioPreset], error)
}

type presetRepository struct {
	db *gorm.DB
}

// NewPresetRepository creates a new audio preset repository
func NewPresetRepository(db *gorm.DB) PresetRepository {
	return &presetRepository{db: db}
}

func (r *presetRepository) Create(ctx context.Context, preset *models.AudioPreset) error {
	return r.db.WithContext(ctx).Create(preset).Error
}

func (r *presetRepository) GetByID(ctx context.Context, id uint) (*models.AudioPreset, error) {
	var preset models.AudioPreset
	err := r.db.WithContext(ctx).First(&preset, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Audio preset", id)
		}
		return nil, err
	}
	return &preset, nil
}

func (r *presetRepository) ListPublic(ctx context.Context, cursor *uint, limit int, search string) (Page[*models.AudioPreset], error) {
	limit = ClampLimit(limit)

	q := r.db.WithContext(ctx).Where("is_public = ?", true)
	if search != "" {
		q = q.Where("LOWER(display_name) LIKE ?", "%"+toLower(search)+"%")
	}

	var presets []*models.AudioPreset
	if err := applyCursor(q, "audio_presets.id", cursor).
		Limit(limit + 1).
		Find(&presets).Error; err != nil {
		return Page[*models.AudioPreset]{}, err
	}
	return buildPage(presets, limit, func(p *models.AudioPreset) uint { return p.ID }), nil
}
