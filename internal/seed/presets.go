// Package seed provides helpers to create built-in, demo, and test data for
// the application database.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"nostagram/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed presets.yaml
var presetsYAML []byte

type presetEntry struct {
	DisplayName string `yaml:"display_name"`
	URL         string `yaml:"url"`
	IsPublic    bool   `yaml:"is_public"`
}

type presetFile struct {
	Presets []presetEntry `yaml:"presets"`
}

// AudioPresets seeds the built-in audio presets. Existing presets (matched by
// display name) are left untouched, so the seed is safe to run on every boot.
func AudioPresets(ctx context.Context, db *gorm.DB) (int, error) {
	var file presetFile
	if err := yaml.Unmarshal(presetsYAML, &file); err != nil {
		return 0, fmt.Errorf("parsing built-in presets: %w", err)
	}

	created := 0
	for _, entry := range file.Presets {
		var count int64
		if err := db.WithContext(ctx).
			Model(&models.AudioPreset{}).
			Where("display_name = ?", entry.DisplayName).
			Count(&count).Error; err != nil {
			return created, err
		}
		if count > 0 {
			continue
		}
		preset := models.AudioPreset{
			DisplayName: entry.DisplayName,
			URL:         entry.URL,
			IsPublic:    entry.IsPublic,
		}
		if err := db.WithContext(ctx).Create(&preset).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
