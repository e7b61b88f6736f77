// Package prefs models per-user unit and routing preferences.
package prefs

import (
	"context"

	"github.com/al426285/mone-routing/internal/domain/apperr"
	"github.com/al426285/mone-routing/internal/domain/route"
	"github.com/google/uuid"
)

// DistanceUnit is the unit used when displaying distances.
type DistanceUnit string

const (
	UnitMeters     DistanceUnit = "m"
	UnitKilometers DistanceUnit = "km"
	UnitMiles      DistanceUnit = "mi"
)

// ConsumptionUnit values accepted per energy family.
type ConsumptionUnit string

const (
	CombustionLitersPer100Km ConsumptionUnit = "L/100km"
	CombustionKmPerLiter     ConsumptionUnit = "km/L"
	ElectricKwhPer100Km      ConsumptionUnit = "kWh/100km"
	ElectricKmPerKwh         ConsumptionUnit = "km/kWh"
)

// Preferences holds the user's display units and routing defaults.
type Preferences struct {
	DistanceUnit        DistanceUnit    `json:"distance_unit"`
	CombustionUnit      ConsumptionUnit `json:"combustion_consumption_unit"`
	ElectricUnit        ConsumptionUnit `json:"electric_consumption_unit"`
	DefaultMobilityType string          `json:"default_mobility_type"`
	DefaultRouteType    string          `json:"default_route_type"`
}

// Defaults returns the preferences applied when the user set nothing.
func Defaults() Preferences {
	return Preferences{
		DistanceUnit:        UnitKilometers,
		CombustionUnit:      CombustionLitersPer100Km,
		ElectricUnit:        ElectricKwhPer100Km,
		DefaultMobilityType: route.MobilityVehicle,
		DefaultRouteType:    route.TypeFastest,
	}
}

// Patch is a partial preferences mutation; nil fields are left untouched.
type Patch struct {
	DistanceUnit        *DistanceUnit
	CombustionUnit      *ConsumptionUnit
	ElectricUnit        *ConsumptionUnit
	DefaultMobilityType *string
	DefaultRouteType    *string
}

// Validate rejects unknown unit or type values before anything is stored.
func (p Patch) Validate() error {
	if p.DistanceUnit != nil {
		switch *p.DistanceUnit {
		case UnitMeters, UnitKilometers, UnitMiles:
		default:
			return apperr.NewInvalidConfiguration("unknown distance unit: " + string(*p.DistanceUnit))
		}
	}
	if p.CombustionUnit != nil {
		switch *p.CombustionUnit {
		case CombustionLitersPer100Km, CombustionKmPerLiter:
		default:
			return apperr.NewInvalidConfiguration("unknown combustion consumption unit: " + string(*p.CombustionUnit))
		}
	}
	if p.ElectricUnit != nil {
		switch *p.ElectricUnit {
		case ElectricKwhPer100Km, ElectricKmPerKwh:
		default:
			return apperr.NewInvalidConfiguration("unknown electric consumption unit: " + string(*p.ElectricUnit))
		}
	}
	if p.DefaultMobilityType != nil {
		switch *p.DefaultMobilityType {
		case route.MobilityVehicle, route.MobilityBike, route.MobilityWalk:
		default:
			return apperr.NewInvalidConfiguration("unknown mobility type: " + *p.DefaultMobilityType)
		}
	}
	if p.DefaultRouteType != nil {
		switch *p.DefaultRouteType {
		case route.TypeFastest, route.TypeShortest, route.TypeScenic:
		default:
			return apperr.NewInvalidConfiguration("unknown route type: " + *p.DefaultRouteType)
		}
	}
	return nil
}

// Repository persists one preferences row per user.
type Repository interface {
	// Get returns (nil, nil) when the user never saved preferences.
	Get(ctx context.Context, ownerID uuid.UUID) (*Preferences, error)
	Save(ctx context.Context, ownerID uuid.UUID, p Preferences) error
}
