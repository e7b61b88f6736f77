package route

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Saved is the persisted projection of a user-chosen route.
type Saved struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	MobilityType string    `json:"mobility_type"`
	RouteType    string    `json:"route_type"`
	Favorite     bool      `json:"favorite"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SavedUpdate is a partial saved-route mutation; nil fields are left
// untouched. A pointer to a blank name is ignored rather than applied so
// favorite-only updates never fail (observed behavior, kept as is).
type SavedUpdate struct {
	Name         *string
	Origin       *string
	Destination  *string
	MobilityType *string
	RouteType    *string
	Favorite     *bool
}

// Repository persists saved routes, namespaced by owner.
type Repository interface {
	Create(ctx context.Context, ownerID uuid.UUID, s *Saved) (uuid.UUID, error)
	// List returns the owner's routes ordered by creation time, descending.
	List(ctx context.Context, ownerID uuid.UUID) ([]Saved, error)
	// Get returns (nil, nil) when the route does not exist.
	Get(ctx context.Context, ownerID, id uuid.UUID) (*Saved, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, upd SavedUpdate) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}
