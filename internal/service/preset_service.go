package service

import (
	"context"
	"strings"

	"nostagram/internal/models"
	"nostagram/internal/repository"
)

type PresetService struct {
	presetRepo repository.PresetRepository
}

type CreatePresetInput struct {
	DisplayName string
	URL         string
	IsPublic    bool
}

func NewPresetService(presetRepo repository.PresetRepository) *PresetService {
	return &PresetService{presetRepo: presetRepo}
}

func (s *PresetService) ListPresets(ctx context.Context, cursor *uint, limit int, search string) (repository.Page[*models.AudioPreset], error) {
	return s.presetRepo.ListPublic(ctx, cursor, limit, search)
}

// CreatePreset adds a new audio preset. Callers gate this behind the admin
// check.
func (s *PresetService) CreatePreset(ctx context.Context, in CreatePresetInput) (*models.AudioPreset, error) {
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	in.URL = strings.TrimSpace(in.URL)

	if in.DisplayName == "" {
		return nil, models.NewValidationError("Display name is required")
	}
	if in.URL == "" {
		return nil, models.NewValidationError("URL is required")
	}

	preset := &models.AudioPreset{
		DisplayName: in.DisplayName,
		URL:         in.URL,
		IsPublic:    in.IsPublic,
	}
	if err := s.presetRepo.Create(ctx, preset); err != nil {
		return nil, err
	}
	return preset, nil
}
