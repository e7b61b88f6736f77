// Package place models user-saved places.
package place

import (
	"context"
	"strings"
	"time"

	"github.com/al426285/mone-routing/internal/domain/apperr"
	"github.com/google/uuid"
)

// Place is a named point the user saved for reuse as origin or destination.
type Place struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	ToponymicAddress string    `json:"toponymic_address,omitempty"`
	Description      string    `json:"description,omitempty"`
	Favorite         bool      `json:"favorite"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// New builds a place, validating name and coordinate ranges.
func New(name string, latitude, longitude float64, toponymicAddress, description string) (*Place, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, apperr.NewMissingField("place name")
	}
	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return nil, apperr.NewInvalidCoordinates("place coordinates out of range")
	}
	return &Place{
		Name:             trimmed,
		Latitude:         latitude,
		Longitude:        longitude,
		ToponymicAddress: strings.TrimSpace(toponymicAddress),
		Description:      strings.TrimSpace(description),
	}, nil
}

// Update is a partial place mutation; nil fields are left untouched.
type Update struct {
	Name             *string
	Latitude         *float64
	Longitude        *float64
	ToponymicAddress *string
	Description      *string
	Favorite         *bool
}

// Repository persists places, namespaced by owner.
type Repository interface {
	Create(ctx context.Context, ownerID uuid.UUID, p *Place) (uuid.UUID, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]Place, error)
	// Get returns (nil, nil) when the place does not exist.
	Get(ctx context.Context, ownerID, id uuid.UUID) (*Place, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, upd Update) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}
