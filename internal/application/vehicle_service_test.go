package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/al426285/mone-routing/internal/cache"
	"github.com/al426285/mone-routing/internal/domain/apperr"
	"github.com/al426285/mone-routing/internal/domain/mobility"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memVehicleRepo is an in-memory mobility.Repository keyed by name.
type memVehicleRepo struct {
	mu     sync.Mutex
	byName map[string]*mobility.Profile
}

func newMemVehicleRepo() *memVehicleRepo {
	return &memVehicleRepo{byName: map[string]*mobility.Profile{}}
}

func (r *memVehicleRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*mobility.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*mobility.Profile
	for _, p := range r.byName {
		out = append(out, p)
	}
	return out, nil
}

func (r *memVehicleRepo) GetByName(ctx context.Context, ownerID uuid.UUID, name string) (*mobility.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byName[name], nil
}

func (r *memVehicleRepo) Save(ctx context.Context, ownerID uuid.UUID, p *mobility.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[p.Name()] = p
	return nil
}

func (r *memVehicleRepo) Update(ctx context.Context, ownerID uuid.UUID, name string, upd mobility.Update) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byName[name]
	if !ok {
		return apperr.NewNotFound("Vehicle", name)
	}

	newName := existing.Name()
	if upd.Name != nil {
		newName = *upd.Name
	}
	source := existing.FuelSource()
	if upd.FuelSource != nil {
		source = *upd.FuelSource
	}
	consumption := existing.Consumption()
	if upd.ConsumptionAmount != nil {
		consumption.Amount = *upd.ConsumptionAmount
	}
	favorite := existing.Favorite()
	if upd.Favorite != nil {
		favorite = *upd.Favorite
	}

	delete(r.byName, name)
	r.byName[newName] = mobility.Reconstruct(existing.Kind(), newName, source, consumption, favorite)
	return nil
}

func (r *memVehicleRepo) Delete(ctx context.Context, ownerID uuid.UUID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[name]; !ok {
		return apperr.NewNotFound("Vehicle", name)
	}
	delete(r.byName, name)
	return nil
}

type vehicleFixture struct {
	service   *VehicleService
	repo      *memVehicleRepo
	probe     *switchProbe
	publisher *spyPublisher
	owner     uuid.UUID
}

func newVehicleFixture(t *testing.T) *vehicleFixture {
	t.Helper()

	repo := newMemVehicleRepo()
	probe := &switchProbe{online: true}
	publisher := &spyPublisher{}
	vehicleCache := cache.NewResilient[VehicleDTO]("vehicle", cache.NewMemoryStore(), VehicleFetch(repo), zap.NewNop())

	return &vehicleFixture{
		service:   NewVehicleService(repo, vehicleCache, probe, publisher, zap.NewNop()),
		repo:      repo,
		probe:     probe,
		publisher: publisher,
		owner:     uuid.New(),
	}
}

func TestVehicleService_CreateVehicle(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a fuel car through the factory", func(t *testing.T) {
		f := newVehicleFixture(t)

		dto, err := f.service.CreateVehicle(ctx, f.owner, CreateVehicleRequest{
			Kind: "fuelCar", Name: "Seat Ibiza", FuelSource: "gasoline", ConsumptionAmount: fptr(5.2),
		})
		require.NoError(t, err)
		require.Equal(t, "Seat Ibiza", dto.Name)
		require.Equal(t, mobility.Consumption{Amount: 5.2, Unit: mobility.UnitLitersPer100Km}, dto.Consumption)
		require.Equal(t, []string{"vehicle-events"}, f.publisher.topics)
		require.Equal(t, []string{"vehicle.saved"}, f.publisher.types)
	})

	t.Run("factory invariants are enforced", func(t *testing.T) {
		f := newVehicleFixture(t)

		_, err := f.service.CreateVehicle(ctx, f.owner, CreateVehicleRequest{
			Kind: "fuelCar", Name: "Weird", FuelSource: "electric", ConsumptionAmount: fptr(5),
		})
		require.True(t, errors.Is(err, apperr.ErrInvalidConfiguration))
	})

	t.Run("duplicate names conflict", func(t *testing.T) {
		f := newVehicleFixture(t)

		_, err := f.service.CreateVehicle(ctx, f.owner, CreateVehicleRequest{Kind: "bike", Name: "Mine"})
		require.NoError(t, err)

		_, err = f.service.CreateVehicle(ctx, f.owner, CreateVehicleRequest{Kind: "walking", Name: "Mine"})
		require.True(t, errors.Is(err, apperr.ErrConflict))
	})

	t.Run("offline creation is refused", func(t *testing.T) {
		f := newVehicleFixture(t)
		f.probe.online = false

		_, err := f.service.CreateVehicle(ctx, f.owner, CreateVehicleRequest{Kind: "bike", Name: "Mine"})
		require.True(t, errors.Is(err, apperr.ErrDatabaseUnavailable))
	})
}

func TestVehicleService_UpdateVehicle(t *testing.T) {
	ctx := context.Background()

	t.Run("renames and re-reads under the new name", func(t *testing.T) {
		f := newVehicleFixture(t)
		_, err := f.service.CreateVehicle(ctx, f.owner, CreateVehicleRequest{
			Kind: "fuelCar", Name: "Old", FuelSource: "gasoline", ConsumptionAmount: fptr(6),
		})
		require.NoError(t, err)

		err = f.service.UpdateVehicle(ctx, f.owner, "Old", UpdateVehicleRequest{Name: sptr("New")})
		require.NoError(t, err)

		dto, err := f.service.GetVehicle(ctx, f.owner, "New")
		require.NoError(t, err)
		require.NotNil(t, dto)
		require.Equal(t, 6.0, dto.Consumption.Amount, "non-name fields survive a rename")

		old, err := f.service.GetVehicle(ctx, f.owner, "Old")
		require.NoError(t, err)
		require.Nil(t, old)
	})

	t.Run("a blank new name is rejected", func(t *testing.T) {
		f := newVehicleFixture(t)
		_, err := f.service.CreateVehicle(ctx, f.owner, CreateVehicleRequest{Kind: "bike", Name: "Mine"})
		require.NoError(t, err)

		err = f.service.UpdateVehicle(ctx, f.owner, "Mine", UpdateVehicleRequest{Name: sptr("   ")})
		require.True(t, errors.Is(err, apperr.ErrMissingField))
	})

	t.Run("an unknown fuel source is rejected", func(t *testing.T) {
		f := newVehicleFixture(t)
		_, err := f.service.CreateVehicle(ctx, f.owner, CreateVehicleRequest{
			Kind: "fuelCar", Name: "Car", FuelSource: "gasoline", ConsumptionAmount: fptr(6),
		})
		require.NoError(t, err)

		err = f.service.UpdateVehicle(ctx, f.owner, "Car", UpdateVehicleRequest{FuelSource: sptr("coal")})
		require.True(t, errors.Is(err, apperr.ErrInvalidConfiguration))
	})

	t.Run("updating a missing vehicle yields not-found", func(t *testing.T) {
		f := newVehicleFixture(t)

		err := f.service.UpdateVehicle(ctx, f.owner, "Ghost", UpdateVehicleRequest{Favorite: new(bool)})
		require.True(t, errors.Is(err, apperr.ErrNotFound))
	})
}

func TestVehicleService_DeleteVehicle(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes and publishes", func(t *testing.T) {
		f := newVehicleFixture(t)
		_, err := f.service.CreateVehicle(ctx, f.owner, CreateVehicleRequest{Kind: "bike", Name: "Mine"})
		require.NoError(t, err)

		require.NoError(t, f.service.DeleteVehicle(ctx, f.owner, "Mine"))
		require.Equal(t, []string{"vehicle.saved", "vehicle.deleted"}, f.publisher.types)

		dto, err := f.service.GetVehicle(ctx, f.owner, "Mine")
		require.NoError(t, err)
		require.Nil(t, dto)
	})

	t.Run("deleting a missing vehicle yields not-found", func(t *testing.T) {
		f := newVehicleFixture(t)

		err := f.service.DeleteVehicle(ctx, f.owner, "Ghost")
		require.True(t, errors.Is(err, apperr.ErrNotFound))
	})
}

func TestVehicleService_ListVehicles(t *testing.T) {
	ctx := context.Background()

	t.Run("reads through the resilient cache", func(t *testing.T) {
		f := newVehicleFixture(t)
		_, err := f.service.CreateVehicle(ctx, f.owner, CreateVehicleRequest{Kind: "bike", Name: "Mine"})
		require.NoError(t, err)

		dtos, err := f.service.ListVehicles(ctx, f.owner)
		require.NoError(t, err)
		require.Len(t, dtos, 1)

		// The cache refreshed on create now serves offline reads.
		f.probe.online = false
		dtos, err = f.service.ListVehicles(ctx, f.owner)
		require.NoError(t, err)
		require.Len(t, dtos, 1)
	})
}

func TestProfileFromDTO(t *testing.T) {
	dto := VehicleDTO{
		Kind: "electricCar", Name: "Zoe", FuelSource: "electric",
		Consumption: mobility.Consumption{Amount: 17, Unit: mobility.UnitKwhPer100Km},
		Favorite:    true,
	}

	p := ProfileFromDTO(dto)
	require.Equal(t, mobility.KindElectricVehicle, p.Kind())
	require.Equal(t, "Zoe", p.Name())
	require.Equal(t, mobility.FuelElectric, p.FuelSource())
	require.True(t, p.Favorite())
}
