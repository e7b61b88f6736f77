package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/al426285/mone-routing/internal/domain/apperr"
	"github.com/al426285/mone-routing/internal/domain/mobility"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VehicleModel is the GORM model for the vehicles table. Identity is
// (owner_id, name), enforced by the composite unique index.
type VehicleModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_vehicles_owner_name"`
	Name              string    `gorm:"not null;size:120;uniqueIndex:idx_vehicles_owner_name"`
	Kind              string    `gorm:"not null;size:20"`
	FuelSource        string    `gorm:"size:20"`
	ConsumptionAmount float64   `gorm:"not null"`
	ConsumptionUnit   string    `gorm:"not null;size:20"`
	Favorite          bool      `gorm:"not null;default:false"`
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (VehicleModel) TableName() string {
	return "vehicles"
}

// GormVehicleRepository is the GORM-based implementation of mobility.Repository.
type GormVehicleRepository struct {
	db *gorm.DB
}

// NewGormVehicleRepository creates a new GormVehicleRepository.
func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

// ListByOwner returns the owner's vehicles, newest first.
func (r *GormVehicleRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*mobility.Profile, error) {
	var models []VehicleModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	profiles := make([]*mobility.Profile, len(models))
	for i, m := range models {
		profiles[i] = toProfile(&m)
	}
	return profiles, nil
}

// GetByName retrieves one vehicle, or (nil, nil) when absent.
func (r *GormVehicleRepository) GetByName(ctx context.Context, ownerID uuid.UUID, name string) (*mobility.Profile, error) {
	var model VehicleModel
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND name = ?", ownerID, name).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find vehicle: %w", err)
	}
	return toProfile(&model), nil
}

// Save persists a new vehicle.
func (r *GormVehicleRepository) Save(ctx context.Context, ownerID uuid.UUID, p *mobility.Profile) error {
	model := toVehicleModel(ownerID, p)
	model.ID = uuid.New()
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save vehicle: %w", err)
	}
	return nil
}

// Update mutates a vehicle in place. A name change is a delete+recreate
// inside one transaction, since (owner_id, name) is the identity.
func (r *GormVehicleRepository) Update(ctx context.Context, ownerID uuid.UUID, name string, upd mobility.Update) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model VehicleModel
		err := tx.Where("owner_id = ? AND name = ?", ownerID, name).First(&model).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NewNotFound("Vehicle", name)
		}
		if err != nil {
			return fmt.Errorf("failed to find vehicle: %w", err)
		}

		if upd.FuelSource != nil {
			model.FuelSource = string(*upd.FuelSource)
		}
		if upd.ConsumptionAmount != nil {
			model.ConsumptionAmount = *upd.ConsumptionAmount
		}
		if upd.Favorite != nil {
			model.Favorite = *upd.Favorite
		}
		model.UpdatedAt = time.Now().UTC()

		if upd.Name != nil && *upd.Name != model.Name {
			if err := tx.Delete(&VehicleModel{}, "id = ?", model.ID).Error; err != nil {
				return fmt.Errorf("failed to replace vehicle: %w", err)
			}
			model.ID = uuid.New()
			model.Name = *upd.Name
			if err := tx.Create(&model).Error; err != nil {
				return fmt.Errorf("failed to recreate vehicle: %w", err)
			}
			return nil
		}

		if err := tx.Save(&model).Error; err != nil {
			return fmt.Errorf("failed to update vehicle: %w", err)
		}
		return nil
	})
}

// Delete removes a vehicle by name, failing when it does not exist.
func (r *GormVehicleRepository) Delete(ctx context.Context, ownerID uuid.UUID, name string) error {
	result := r.db.WithContext(ctx).
		Where("owner_id = ? AND name = ?", ownerID, name).
		Delete(&VehicleModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete vehicle: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NewNotFound("Vehicle", name)
	}
	return nil
}

func toProfile(m *VehicleModel) *mobility.Profile {
	return mobility.Reconstruct(
		mobility.Kind(m.Kind),
		m.Name,
		mobility.FuelSource(m.FuelSource),
		mobility.Consumption{
			Amount: m.ConsumptionAmount,
			Unit:   mobility.ConsumptionUnit(m.ConsumptionUnit),
		},
		m.Favorite,
	)
}

func toVehicleModel(ownerID uuid.UUID, p *mobility.Profile) *VehicleModel {
	consumption := p.Consumption()
	return &VehicleModel{
		OwnerID:           ownerID,
		Name:              p.Name(),
		Kind:              string(p.Kind()),
		FuelSource:        string(p.FuelSource()),
		ConsumptionAmount: consumption.Amount,
		ConsumptionUnit:   string(consumption.Unit),
		Favorite:          p.Favorite(),
	}
}
