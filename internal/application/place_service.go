package application

import (
	"context"
	"strings"

	"github.com/al426285/mone-routing/internal/cache"
	"github.com/al426285/mone-routing/internal/connectivity"
	"github.com/al426285/mone-routing/internal/domain/apperr"
	"github.com/al426285/mone-routing/internal/domain/place"
	"github.com/al426285/mone-routing/internal/domain/route"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreatePlaceRequest holds the data needed to save a place.
type CreatePlaceRequest struct {
	Name             string  `json:"name" binding:"required"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	ToponymicAddress string  `json:"toponymic_address"`
	Description      string  `json:"description"`
}

// UpdatePlaceRequest is a partial place mutation.
type UpdatePlaceRequest struct {
	Name             *string  `json:"name"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	ToponymicAddress *string  `json:"toponymic_address"`
	Description      *string  `json:"description"`
	Favorite         *bool    `json:"favorite"`
}

// PlaceService owns the saved-place use cases.
type PlaceService struct {
	repo     place.Repository
	geocoder route.Geocoder
	cache    *cache.Resilient[place.Place]
	probe    connectivity.Probe
	logger   *zap.Logger
}

// NewPlaceService creates a new PlaceService.
func NewPlaceService(
	repo place.Repository,
	geocoder route.Geocoder,
	placeCache *cache.Resilient[place.Place],
	probe connectivity.Probe,
	logger *zap.Logger,
) *PlaceService {
	return &PlaceService{
		repo:     repo,
		geocoder: geocoder,
		cache:    placeCache,
		probe:    probe,
		logger:   logger,
	}
}

// ListPlaces returns the owner's places through the resilient cache.
func (s *PlaceService) ListPlaces(ctx context.Context, ownerID uuid.UUID) ([]place.Place, error) {
	return s.cache.Read(ctx, ownerID, s.probe.Online(ctx))
}

// GetPlace returns one place, or nil when absent.
func (s *PlaceService) GetPlace(ctx context.Context, ownerID, id uuid.UUID) (*place.Place, error) {
	return s.repo.Get(ctx, ownerID, id)
}

// CreatePlace saves a place after checking uniqueness: a place with the
// same name or at the same point is rejected.
func (s *PlaceService) CreatePlace(ctx context.Context, ownerID uuid.UUID, req CreatePlaceRequest) (*place.Place, error) {
	if !s.probe.Online(ctx) {
		return nil, apperr.NewDatabaseUnavailable()
	}

	entity, err := place.New(req.Name, req.Latitude, req.Longitude, req.ToponymicAddress, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.ensureUnique(ctx, ownerID, entity); err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, ownerID, entity)
	if err != nil {
		return nil, err
	}
	entity.ID = id

	s.cache.Refresh(ctx, ownerID, true)
	return entity, nil
}

// UpdatePlace merges defined fields into a place.
func (s *PlaceService) UpdatePlace(ctx context.Context, ownerID, id uuid.UUID, req UpdatePlaceRequest) error {
	if !s.probe.Online(ctx) {
		return apperr.NewDatabaseUnavailable()
	}

	existing, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperr.NewNotFound("Place", id.String())
	}

	if (req.Latitude != nil && (*req.Latitude < -90 || *req.Latitude > 90)) ||
		(req.Longitude != nil && (*req.Longitude < -180 || *req.Longitude > 180)) {
		return apperr.NewInvalidCoordinates("place coordinates out of range")
	}

	err = s.repo.Update(ctx, ownerID, id, place.Update{
		Name:             req.Name,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		ToponymicAddress: req.ToponymicAddress,
		Description:      req.Description,
		Favorite:         req.Favorite,
	})
	if err != nil {
		return err
	}

	s.cache.Refresh(ctx, ownerID, true)
	return nil
}

// SetPlaceFavorite toggles the favorite flag of a place.
func (s *PlaceService) SetPlaceFavorite(ctx context.Context, ownerID, id uuid.UUID, favorite bool) error {
	return s.UpdatePlace(ctx, ownerID, id, UpdatePlaceRequest{Favorite: &favorite})
}

// DeletePlace removes a place, failing when it does not exist.
func (s *PlaceService) DeletePlace(ctx context.Context, ownerID, id uuid.UUID) error {
	if !s.probe.Online(ctx) {
		return apperr.NewDatabaseUnavailable()
	}

	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}

	s.cache.Refresh(ctx, ownerID, true)
	return nil
}

// Suggest resolves free text to the single best toponym match, or nil.
func (s *PlaceService) Suggest(ctx context.Context, text string) (*route.GeocodeMatch, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, apperr.NewMissingField("search text")
	}
	return s.geocoder.Geocode(ctx, trimmed)
}

func (s *PlaceService) ensureUnique(ctx context.Context, ownerID uuid.UUID, candidate *place.Place) error {
	existing, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return err
	}
	for _, p := range existing {
		if strings.EqualFold(p.Name, candidate.Name) {
			return apperr.NewConflict("a place named " + candidate.Name + " is already saved")
		}
		if p.Latitude == candidate.Latitude && p.Longitude == candidate.Longitude {
			return apperr.NewConflict("a place at these coordinates is already saved")
		}
	}
	return nil
}
