package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/al426285/mone-routing/internal/domain/prefs"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreferencesModel is the GORM model for the user_preferences table, one
// row per user.
type PreferencesModel struct {
	OwnerID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	DistanceUnit        string    `gorm:"not null;size:5"`
	CombustionUnit      string    `gorm:"not null;size:20"`
	ElectricUnit        string    `gorm:"not null;size:20"`
	DefaultMobilityType string    `gorm:"not null;size:20"`
	DefaultRouteType    string    `gorm:"not null;size:20"`
	CreatedAt           time.Time `gorm:"not null"`
	UpdatedAt           time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (PreferencesModel) TableName() string {
	return "user_preferences"
}

// GormPreferencesRepository is the GORM-based implementation of prefs.Repository.
type GormPreferencesRepository struct {
	db *gorm.DB
}

// NewGormPreferencesRepository creates a new GormPreferencesRepository.
func NewGormPreferencesRepository(db *gorm.DB) *GormPreferencesRepository {
	return &GormPreferencesRepository{db: db}
}

// Get retrieves the user's stored preferences, or (nil, nil) when unset.
func (r *GormPreferencesRepository) Get(ctx context.Context, ownerID uuid.UUID) (*prefs.Preferences, error) {
	var model PreferencesModel
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find preferences: %w", err)
	}
	return &prefs.Preferences{
		DistanceUnit:        prefs.DistanceUnit(model.DistanceUnit),
		CombustionUnit:      prefs.ConsumptionUnit(model.CombustionUnit),
		ElectricUnit:        prefs.ConsumptionUnit(model.ElectricUnit),
		DefaultMobilityType: model.DefaultMobilityType,
		DefaultRouteType:    model.DefaultRouteType,
	}, nil
}

// Save upserts the user's preferences row.
func (r *GormPreferencesRepository) Save(ctx context.Context, ownerID uuid.UUID, p prefs.Preferences) error {
	model := PreferencesModel{
		OwnerID:             ownerID,
		DistanceUnit:        string(p.DistanceUnit),
		CombustionUnit:      string(p.CombustionUnit),
		ElectricUnit:        string(p.ElectricUnit),
		DefaultMobilityType: p.DefaultMobilityType,
		DefaultRouteType:    p.DefaultRouteType,
		UpdatedAt:           time.Now().UTC(),
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "owner_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"distance_unit",
				"combustion_unit",
				"electric_unit",
				"default_mobility_type",
				"default_route_type",
				"updated_at",
			}),
		}).
		Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}
