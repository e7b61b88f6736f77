package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/al426285/mone-routing/internal/domain/apperr"
	"github.com/al426285/mone-routing/internal/domain/place"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlaceModel is the GORM model for the places table.
type PlaceModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID          uuid.UUID `gorm:"type:uuid;index;not null"`
	Name             string    `gorm:"not null;size:120"`
	Latitude         float64   `gorm:"not null"`
	Longitude        float64   `gorm:"not null"`
	ToponymicAddress string    `gorm:"size:300"`
	Description      string    `gorm:"size:500"`
	Favorite         bool      `gorm:"not null;default:false"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (PlaceModel) TableName() string {
	return "places"
}

// GormPlaceRepository is the GORM-based implementation of place.Repository.
type GormPlaceRepository struct {
	db *gorm.DB
}

// NewGormPlaceRepository creates a new GormPlaceRepository.
func NewGormPlaceRepository(db *gorm.DB) *GormPlaceRepository {
	return &GormPlaceRepository{db: db}
}

// Create persists a new place and returns its server-assigned id.
func (r *GormPlaceRepository) Create(ctx context.Context, ownerID uuid.UUID, p *place.Place) (uuid.UUID, error) {
	model := PlaceModel{
		ID:               uuid.New(),
		OwnerID:          ownerID,
		Name:             p.Name,
		Latitude:         p.Latitude,
		Longitude:        p.Longitude,
		ToponymicAddress: p.ToponymicAddress,
		Description:      p.Description,
		Favorite:         p.Favorite,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to save place: %w", err)
	}
	return model.ID, nil
}

// List returns the owner's places, newest first.
func (r *GormPlaceRepository) List(ctx context.Context, ownerID uuid.UUID) ([]place.Place, error) {
	var models []PlaceModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}

	places := make([]place.Place, len(models))
	for i, m := range models {
		places[i] = toPlace(&m)
	}
	return places, nil
}

// Get retrieves one place, or (nil, nil) when absent.
func (r *GormPlaceRepository) Get(ctx context.Context, ownerID, id uuid.UUID) (*place.Place, error) {
	var model PlaceModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find place: %w", err)
	}
	p := toPlace(&model)
	return &p, nil
}

// Update merges only defined fields into the stored place.
func (r *GormPlaceRepository) Update(ctx context.Context, ownerID, id uuid.UUID, upd place.Update) error {
	columns := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if upd.Name != nil {
		if trimmed := strings.TrimSpace(*upd.Name); trimmed != "" {
			columns["name"] = trimmed
		}
	}
	if upd.Latitude != nil {
		columns["latitude"] = *upd.Latitude
	}
	if upd.Longitude != nil {
		columns["longitude"] = *upd.Longitude
	}
	if upd.ToponymicAddress != nil {
		columns["toponymic_address"] = *upd.ToponymicAddress
	}
	if upd.Description != nil {
		columns["description"] = *upd.Description
	}
	if upd.Favorite != nil {
		columns["favorite"] = *upd.Favorite
	}

	result := r.db.WithContext(ctx).
		Model(&PlaceModel{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(columns)
	if result.Error != nil {
		return fmt.Errorf("failed to update place: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NewNotFound("Place", id.String())
	}
	return nil
}

// Delete removes a place, failing when it does not exist.
func (r *GormPlaceRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&PlaceModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete place: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NewNotFound("Place", id.String())
	}
	return nil
}

func toPlace(m *PlaceModel) place.Place {
	return place.Place{
		ID:               m.ID,
		Name:             m.Name,
		Latitude:         m.Latitude,
		Longitude:        m.Longitude,
		ToponymicAddress: m.ToponymicAddress,
		Description:      m.Description,
		Favorite:         m.Favorite,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
