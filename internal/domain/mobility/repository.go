package mobility

import (
	"context"

	"github.com/google/uuid"
)

// Update is a partial vehicle mutation; nil fields are left untouched.
type Update struct {
	Name              *string
	FuelSource        *FuelSource
	ConsumptionAmount *float64
	Favorite          *bool
}

// Repository persists mobility profiles, namespaced by owner.
type Repository interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Profile, error)
	// GetByName returns (nil, nil) when the vehicle does not exist.
	GetByName(ctx context.Context, ownerID uuid.UUID, name string) (*Profile, error)
	Save(ctx context.Context, ownerID uuid.UUID, p *Profile) error
	// Update fails with a not-found error when the vehicle is absent. A name
	// change is a delete+recreate at the storage boundary, since identity is
	// (ownerID, name).
	Update(ctx context.Context, ownerID uuid.UUID, name string, upd Update) error
	Delete(ctx context.Context, ownerID uuid.UUID, name string) error
}
