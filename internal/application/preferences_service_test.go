package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/al426285/mone-routing/internal/domain/apperr"
	"github.com/al426285/mone-routing/internal/domain/prefs"
	"github.com/al426285/mone-routing/internal/domain/route"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memPrefsRepo is an in-memory prefs.Repository.
type memPrefsRepo struct {
	mu      sync.Mutex
	byOwner map[uuid.UUID]prefs.Preferences
}

func newMemPrefsRepo() *memPrefsRepo {
	return &memPrefsRepo{byOwner: map[uuid.UUID]prefs.Preferences{}}
}

func (r *memPrefsRepo) Get(ctx context.Context, ownerID uuid.UUID) (*prefs.Preferences, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byOwner[ownerID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memPrefsRepo) Save(ctx context.Context, ownerID uuid.UUID, p prefs.Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byOwner[ownerID] = p
	return nil
}

func newPrefsService(t *testing.T) (*PreferencesService, *switchProbe, uuid.UUID) {
	t.Helper()
	probe := &switchProbe{online: true}
	return NewPreferencesService(newMemPrefsRepo(), probe, zap.NewNop()), probe, uuid.New()
}

func TestPreferencesService_GetPreferences(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults when nothing was saved", func(t *testing.T) {
		s, _, owner := newPrefsService(t)

		p, err := s.GetPreferences(ctx, owner)
		require.NoError(t, err)
		require.Equal(t, prefs.Defaults(), p)
	})

	t.Run("saved values win over defaults field by field", func(t *testing.T) {
		s, _, owner := newPrefsService(t)

		unit := prefs.UnitMiles
		_, err := s.SavePreferences(ctx, owner, prefs.Patch{DistanceUnit: &unit})
		require.NoError(t, err)

		p, err := s.GetPreferences(ctx, owner)
		require.NoError(t, err)
		require.Equal(t, prefs.UnitMiles, p.DistanceUnit)
		require.Equal(t, prefs.Defaults().DefaultRouteType, p.DefaultRouteType)
	})
}

func TestPreferencesService_SavePreferences(t *testing.T) {
	ctx := context.Background()

	t.Run("applies a patch on top of current values", func(t *testing.T) {
		s, _, owner := newPrefsService(t)

		mob := route.MobilityBike
		_, err := s.SavePreferences(ctx, owner, prefs.Patch{DefaultMobilityType: &mob})
		require.NoError(t, err)

		unit := prefs.CombustionKmPerLiter
		p, err := s.SavePreferences(ctx, owner, prefs.Patch{CombustionUnit: &unit})
		require.NoError(t, err)
		require.Equal(t, route.MobilityBike, p.DefaultMobilityType, "earlier patches persist")
		require.Equal(t, prefs.CombustionKmPerLiter, p.CombustionUnit)
	})

	t.Run("rejects unknown units", func(t *testing.T) {
		s, _, owner := newPrefsService(t)

		unit := prefs.DistanceUnit("furlong")
		_, err := s.SavePreferences(ctx, owner, prefs.Patch{DistanceUnit: &unit})
		require.True(t, errors.Is(err, apperr.ErrInvalidConfiguration))
	})

	t.Run("rejects an electric unit in the combustion slot", func(t *testing.T) {
		s, _, owner := newPrefsService(t)

		unit := prefs.ElectricKwhPer100Km
		_, err := s.SavePreferences(ctx, owner, prefs.Patch{CombustionUnit: &unit})
		require.True(t, errors.Is(err, apperr.ErrInvalidConfiguration))
	})

	t.Run("offline saves are refused", func(t *testing.T) {
		s, probe, owner := newPrefsService(t)
		probe.online = false

		unit := prefs.UnitMiles
		_, err := s.SavePreferences(ctx, owner, prefs.Patch{DistanceUnit: &unit})
		require.True(t, errors.Is(err, apperr.ErrDatabaseUnavailable))
	})
}
