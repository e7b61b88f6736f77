package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/al426285/mone-routing/internal/domain/apperr"
	"github.com/al426285/mone-routing/internal/domain/route"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RouteModel is the GORM model for the saved_routes table.
type RouteModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Name         string    `gorm:"not null;size:120"`
	Origin       string    `gorm:"not null;size:200"`
	Destination  string    `gorm:"not null;size:200"`
	MobilityType string    `gorm:"not null;size:20"`
	RouteType    string    `gorm:"not null;size:20"`
	Favorite     bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (RouteModel) TableName() string {
	return "saved_routes"
}

// GormRouteRepository is the GORM-based implementation of route.Repository.
type GormRouteRepository struct {
	db *gorm.DB
}

// NewGormRouteRepository creates a new GormRouteRepository.
func NewGormRouteRepository(db *gorm.DB) *GormRouteRepository {
	return &GormRouteRepository{db: db}
}

// Create persists a new saved route and returns its server-assigned id.
func (r *GormRouteRepository) Create(ctx context.Context, ownerID uuid.UUID, s *route.Saved) (uuid.UUID, error) {
	model := RouteModel{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Name:         s.Name,
		Origin:       s.Origin,
		Destination:  s.Destination,
		MobilityType: s.MobilityType,
		RouteType:    s.RouteType,
		Favorite:     s.Favorite,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to save route: %w", err)
	}
	return model.ID, nil
}

// List returns the owner's saved routes, newest first.
func (r *GormRouteRepository) List(ctx context.Context, ownerID uuid.UUID) ([]route.Saved, error) {
	var models []RouteModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}

	routes := make([]route.Saved, len(models))
	for i, m := range models {
		routes[i] = toSavedRoute(&m)
	}
	return routes, nil
}

// Get retrieves one saved route, or (nil, nil) when absent.
func (r *GormRouteRepository) Get(ctx context.Context, ownerID, id uuid.UUID) (*route.Saved, error) {
	var model RouteModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find route: %w", err)
	}
	saved := toSavedRoute(&model)
	return &saved, nil
}

// Update merges only defined fields into the stored route. A blank name
// is skipped rather than applied so favorite-only updates keep working.
func (r *GormRouteRepository) Update(ctx context.Context, ownerID, id uuid.UUID, upd route.SavedUpdate) error {
	columns := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if upd.Name != nil {
		if trimmed := strings.TrimSpace(*upd.Name); trimmed != "" {
			columns["name"] = trimmed
		}
	}
	if upd.Origin != nil {
		columns["origin"] = *upd.Origin
	}
	if upd.Destination != nil {
		columns["destination"] = *upd.Destination
	}
	if upd.MobilityType != nil {
		columns["mobility_type"] = *upd.MobilityType
	}
	if upd.RouteType != nil {
		columns["route_type"] = *upd.RouteType
	}
	if upd.Favorite != nil {
		columns["favorite"] = *upd.Favorite
	}

	result := r.db.WithContext(ctx).
		Model(&RouteModel{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(columns)
	if result.Error != nil {
		return fmt.Errorf("failed to update route: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NewNotFound("Route", id.String())
	}
	return nil
}

// Delete removes a saved route, failing when it does not exist.
func (r *GormRouteRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&RouteModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete route: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NewNotFound("Route", id.String())
	}
	return nil
}

func toSavedRoute(m *RouteModel) route.Saved {
	return route.Saved{
		ID:           m.ID,
		Name:         m.Name,
		Origin:       m.Origin,
		Destination:  m.Destination,
		MobilityType: m.MobilityType,
		RouteType:    m.RouteType,
		Favorite:     m.Favorite,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
