package application

import (
	"context"

	"github.com/al426285/mone-routing/internal/connectivity"
	"github.com/al426285/mone-routing/internal/domain/apperr"
	"github.com/al426285/mone-routing/internal/domain/prefs"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PreferencesService owns the per-user preference use cases.
type PreferencesService struct {
	repo   prefs.Repository
	probe  connectivity.Probe
	logger *zap.Logger
}

// NewPreferencesService creates a new PreferencesService.
func NewPreferencesService(repo prefs.Repository, probe connectivity.Probe, logger *zap.Logger) *PreferencesService {
	return &PreferencesService{repo: repo, probe: probe, logger: logger}
}

// GetPreferences returns the user's preferences, falling back to the
// defaults for anything never set.
func (s *PreferencesService) GetPreferences(ctx context.Context, ownerID uuid.UUID) (prefs.Preferences, error) {
	stored, err := s.repo.Get(ctx, ownerID)
	if err != nil {
		return prefs.Preferences{}, err
	}
	result := prefs.Defaults()
	if stored == nil {
		return result, nil
	}
	if stored.DistanceUnit != "" {
		result.DistanceUnit = stored.DistanceUnit
	}
	if stored.CombustionUnit != "" {
		result.CombustionUnit = stored.CombustionUnit
	}
	if stored.ElectricUnit != "" {
		result.ElectricUnit = stored.ElectricUnit
	}
	if stored.DefaultMobilityType != "" {
		result.DefaultMobilityType = stored.DefaultMobilityType
	}
	if stored.DefaultRouteType != "" {
		result.DefaultRouteType = stored.DefaultRouteType
	}
	return result, nil
}

// SavePreferences validates and applies a partial preferences patch on
// top of the user's current values.
func (s *PreferencesService) SavePreferences(ctx context.Context, ownerID uuid.UUID, patch prefs.Patch) (prefs.Preferences, error) {
	if !s.probe.Online(ctx) {
		return prefs.Preferences{}, apperr.NewDatabaseUnavailable()
	}

	if err := patch.Validate(); err != nil {
		return prefs.Preferences{}, err
	}

	current, err := s.GetPreferences(ctx, ownerID)
	if err != nil {
		return prefs.Preferences{}, err
	}

	if patch.DistanceUnit != nil {
		current.DistanceUnit = *patch.DistanceUnit
	}
	if patch.CombustionUnit != nil {
		current.CombustionUnit = *patch.CombustionUnit
	}
	if patch.ElectricUnit != nil {
		current.ElectricUnit = *patch.ElectricUnit
	}
	if patch.DefaultMobilityType != nil {
		current.DefaultMobilityType = *patch.DefaultMobilityType
	}
	if patch.DefaultRouteType != nil {
		current.DefaultRouteType = *patch.DefaultRouteType
	}

	if err := s.repo.Save(ctx, ownerID, current); err != nil {
		return prefs.Preferences{}, err
	}
	s.logger.Debug("preferences saved", zap.String("owner_id", ownerID.String()))
	return current, nil
}
