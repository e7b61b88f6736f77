package application

import (
	"context"
	"strings"

	"github.com/al426285/mone-routing/internal/cache"
	"github.com/al426285/mone-routing/internal/connectivity"
	"github.com/al426285/mone-routing/internal/domain/apperr"
	"github.com/al426285/mone-routing/internal/domain/mobility"
	"github.com/al426285/mone-routing/internal/events"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateVehicleRequest holds the data needed to register a vehicle.
type CreateVehicleRequest struct {
	Kind              string   `json:"kind" binding:"required"`
	Name              string   `json:"name" binding:"required"`
	FuelSource        string   `json:"fuel_source"`
	ConsumptionAmount *float64 `json:"consumption_amount"`
	Favorite          bool     `json:"favorite"`
}

// VehicleDTO is the response (and cache) representation of a profile.
type VehicleDTO struct {
	Kind        string               `json:"kind"`
	Name        string               `json:"name"`
	FuelSource  string               `json:"fuel_source,omitempty"`
	Consumption mobility.Consumption `json:"consumption"`
	Favorite    bool                 `json:"favorite"`
}

// UpdateVehicleRequest is a partial vehicle mutation.
type UpdateVehicleRequest struct {
	Name              *string  `json:"name"`
	FuelSource        *string  `json:"fuel_source"`
	ConsumptionAmount *float64 `json:"consumption_amount"`
	Favorite          *bool    `json:"favorite"`
}

// VehicleService owns the vehicle catalogue use cases.
type VehicleService struct {
	repo      mobility.Repository
	cache     *cache.Resilient[VehicleDTO]
	probe     connectivity.Probe
	publisher EventPublisher
	logger    *zap.Logger
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(
	repo mobility.Repository,
	vehicleCache *cache.Resilient[VehicleDTO],
	probe connectivity.Probe,
	publisher EventPublisher,
	logger *zap.Logger,
) *VehicleService {
	return &VehicleService{
		repo:      repo,
		cache:     vehicleCache,
		probe:     probe,
		publisher: publisher,
		logger:    logger,
	}
}

// VehicleFetch adapts the repository to the cache's fetch function.
func VehicleFetch(repo mobility.Repository) cache.FetchFunc[VehicleDTO] {
	return func(ctx context.Context, ownerID uuid.UUID) ([]VehicleDTO, error) {
		profiles, err := repo.ListByOwner(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		dtos := make([]VehicleDTO, len(profiles))
		for i, p := range profiles {
			dtos[i] = toVehicleDTO(p)
		}
		return dtos, nil
	}
}

// ListVehicles returns the owner's vehicles through the resilient cache.
func (s *VehicleService) ListVehicles(ctx context.Context, ownerID uuid.UUID) ([]VehicleDTO, error) {
	return s.cache.Read(ctx, ownerID, s.probe.Online(ctx))
}

// GetVehicle returns one vehicle by name, or nil when absent.
func (s *VehicleService) GetVehicle(ctx context.Context, ownerID uuid.UUID, name string) (*VehicleDTO, error) {
	profile, err := s.repo.GetByName(ctx, ownerID, name)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}
	dto := toVehicleDTO(profile)
	return &dto, nil
}

// CreateVehicle builds a profile through the factory and persists it.
// Names are unique per owner.
func (s *VehicleService) CreateVehicle(ctx context.Context, ownerID uuid.UUID, req CreateVehicleRequest) (*VehicleDTO, error) {
	if !s.probe.Online(ctx) {
		return nil, apperr.NewDatabaseUnavailable()
	}

	profile, err := mobility.NewProfile(
		mobility.Kind(req.Kind),
		req.Name,
		mobility.FuelSource(req.FuelSource),
		req.ConsumptionAmount,
	)
	if err != nil {
		return nil, err
	}
	profile.SetFavorite(req.Favorite)

	existing, err := s.repo.GetByName(ctx, ownerID, profile.Name())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.NewConflict("a vehicle named " + profile.Name() + " already exists")
	}

	if err := s.repo.Save(ctx, ownerID, profile); err != nil {
		return nil, err
	}

	s.cache.Refresh(ctx, ownerID, true)
	dto := toVehicleDTO(profile)
	s.publisher.Publish(ctx, events.TopicVehicleEvents, events.VehicleSaved, ownerID.String()+"/"+profile.Name(), dto)

	return &dto, nil
}

// UpdateVehicle merges defined fields into a vehicle. Renaming re-keys
// the record, since identity is (ownerID, name).
func (s *VehicleService) UpdateVehicle(ctx context.Context, ownerID uuid.UUID, name string, req UpdateVehicleRequest) error {
	if !s.probe.Online(ctx) {
		return apperr.NewDatabaseUnavailable()
	}

	upd := mobility.Update{
		ConsumptionAmount: req.ConsumptionAmount,
		Favorite:          req.Favorite,
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			return apperr.NewMissingField("vehicle name")
		}
		upd.Name = &trimmed
	}
	if req.FuelSource != nil {
		source := mobility.FuelSource(*req.FuelSource)
		switch source {
		case mobility.FuelGasoline, mobility.FuelDiesel, mobility.FuelElectric:
		default:
			return apperr.NewInvalidConfiguration("unknown fuel source: " + *req.FuelSource)
		}
		upd.FuelSource = &source
	}

	if err := s.repo.Update(ctx, ownerID, name, upd); err != nil {
		return err
	}

	s.cache.Refresh(ctx, ownerID, true)
	return nil
}

// SetVehicleFavorite toggles the favorite flag of a vehicle.
func (s *VehicleService) SetVehicleFavorite(ctx context.Context, ownerID uuid.UUID, name string, favorite bool) error {
	return s.UpdateVehicle(ctx, ownerID, name, UpdateVehicleRequest{Favorite: &favorite})
}

// DeleteVehicle removes a vehicle by name, failing when it does not exist.
func (s *VehicleService) DeleteVehicle(ctx context.Context, ownerID uuid.UUID, name string) error {
	if !s.probe.Online(ctx) {
		return apperr.NewDatabaseUnavailable()
	}

	if err := s.repo.Delete(ctx, ownerID, name); err != nil {
		return err
	}

	s.cache.Refresh(ctx, ownerID, true)
	s.publisher.Publish(ctx, events.TopicVehicleEvents, events.VehicleDeleted, ownerID.String()+"/"+name, map[string]string{"name": name})
	return nil
}

func toVehicleDTO(p *mobility.Profile) VehicleDTO {
	return VehicleDTO{
		Kind:        string(p.Kind()),
		Name:        p.Name(),
		FuelSource:  string(p.FuelSource()),
		Consumption: p.Consumption(),
		Favorite:    p.Favorite(),
	}
}

// ProfileFromDTO rebuilds a domain profile from its DTO form, used when a
// plan request references a stored vehicle.
func ProfileFromDTO(dto VehicleDTO) *mobility.Profile {
	return mobility.Reconstruct(
		mobility.Kind(dto.Kind),
		dto.Name,
		mobility.FuelSource(dto.FuelSource),
		dto.Consumption,
		dto.Favorite,
	)
}
