package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/campus-hq/portal-service/internal/models"
	"github.com/campus-hq/portal-service/internal/repositories"
)

// SettingsService exposes the portal-wide ads toggle. Writes are upserts,
// so flipping the flag twice to the same value is a no-op the reader
// cannot distinguish from a single write.
type SettingsService interface {
	GetAds(ctx context.Context) (*models.AdSettings, error)
	SetAds(ctx context.Context, enabled bool) (*models.AdSettings, error)
}

type settingsService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewSettingsService(repo repositories.Repository, logger *slog.Logger) SettingsService {
	return &settingsService{repo: repo, logger: logger}
}

func (s *settingsService) GetAds(ctx context.Context) (*models.AdSettings, error) {
	settings, err := s.repo.Settings().GetAds(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read ad settings: %w", err)
	}
	return settings, nil
}

func (s *settingsService) SetAds(ctx context.Context, enabled bool) (*models.AdSettings, error) {
	settings, err := s.repo.Settings().UpsertAds(ctx, enabled)
	if err != nil {
		return nil, fmt.Errorf("failed to update ad settings: %w", err)
	}
	s.logger.Info("ad settings updated", "enabled", enabled)
	return settings, nil
}
