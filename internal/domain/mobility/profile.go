// Package mobility models the polymorphic mobility method (bike, walker,
// fuel vehicle, electric vehicle) and its consumption semantics.
package mobility

import (
	"strings"

	"github.com/al426285/mone-routing/internal/domain/apperr"
)

// Kind tags the mobility profile variant.
type Kind string

const (
	KindBike            Kind = "bike"
	KindWalker          Kind = "walking"
	KindFuelVehicle     Kind = "fuelCar"
	KindElectricVehicle Kind = "electricCar"
)

// IsValid reports whether the kind is a known variant.
func (k Kind) IsValid() bool {
	switch k {
	case KindBike, KindWalker, KindFuelVehicle, KindElectricVehicle:
		return true
	}
	return false
}

// Motorized reports whether the variant burns fuel or electricity.
func (k Kind) Motorized() bool {
	return k == KindFuelVehicle || k == KindElectricVehicle
}

// FuelSource is the energy source of a motorized profile.
type FuelSource string

const (
	FuelGasoline FuelSource = "gasoline"
	FuelDiesel   FuelSource = "diesel"
	FuelElectric FuelSource = "electric"
)

// ConsumptionUnit is the unit of the consumption descriptor.
type ConsumptionUnit string

const (
	UnitLitersPer100Km ConsumptionUnit = "L/100km"
	UnitKwhPer100Km    ConsumptionUnit = "kWh/100km"
	UnitKcalPerMinute  ConsumptionUnit = "kcal/min"
)

// Consumption describes how much energy the profile burns, and in what unit.
type Consumption struct {
	Amount float64         `json:"amount"`
	Unit   ConsumptionUnit `json:"unit"`
}

// Default consumption amounts applied when the caller does not supply one.
const (
	defaultBikeKcalPerMin   = 6.0
	defaultWalkerKcalPerMin = 4.5
	defaultCarLitersPer100  = 6.5
)

// Profile is the mobility method chosen for a route. It is built
// exclusively through NewProfile, which enforces the per-variant
// invariants; Reconstruct rebuilds trusted persisted values.
type Profile struct {
	kind        Kind
	name        string
	fuelSource  FuelSource
	consumption Consumption
	favorite    bool
}

// NewProfile validates and builds a profile.
//
// Invariants enforced here and nowhere else:
//   - name must be trimmed non-empty;
//   - fuel vehicles accept only gasoline or diesel, with a non-negative
//     consumption in L/100km;
//   - electric vehicles are forced to the electric source, with a
//     non-negative consumption in kWh/100km;
//   - bikes and walkers carry no fuel source and burn kcal/min; a missing
//     amount falls back to the per-variant default.
func NewProfile(kind Kind, name string, fuelSource FuelSource, consumptionAmount *float64) (*Profile, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, apperr.NewInvalidConfiguration("profile name is required")
	}
	if !kind.IsValid() {
		return nil, apperr.NewInvalidConfiguration("unknown mobility kind: " + string(kind))
	}

	p := &Profile{kind: kind, name: trimmed}

	switch kind {
	case KindFuelVehicle:
		if fuelSource != FuelGasoline && fuelSource != FuelDiesel {
			return nil, apperr.NewInvalidConfiguration("fuel vehicle can only be gasoline or diesel")
		}
		if consumptionAmount == nil || *consumptionAmount < 0 {
			return nil, apperr.NewInvalidConfiguration("fuel vehicle requires a non-negative consumption")
		}
		p.fuelSource = fuelSource
		p.consumption = Consumption{Amount: *consumptionAmount, Unit: UnitLitersPer100Km}

	case KindElectricVehicle:
		if consumptionAmount == nil || *consumptionAmount < 0 {
			return nil, apperr.NewInvalidConfiguration("electric vehicle requires a non-negative consumption")
		}
		p.fuelSource = FuelElectric
		p.consumption = Consumption{Amount: *consumptionAmount, Unit: UnitKwhPer100Km}

	case KindBike, KindWalker:
		// Caller-supplied fuel source is ignored for human-powered variants.
		amount := defaultBikeKcalPerMin
		if kind == KindWalker {
			amount = defaultWalkerKcalPerMin
		}
		if consumptionAmount != nil && *consumptionAmount >= 0 {
			amount = *consumptionAmount
		}
		p.consumption = Consumption{Amount: amount, Unit: UnitKcalPerMinute}
	}

	return p, nil
}

// Reconstruct rebuilds a Profile from persistence data without validation.
func Reconstruct(kind Kind, name string, fuelSource FuelSource, consumption Consumption, favorite bool) *Profile {
	return &Profile{
		kind:        kind,
		name:        name,
		fuelSource:  fuelSource,
		consumption: consumption,
		favorite:    favorite,
	}
}

// DefaultProfile returns the fallback profile for a mobility type when the
// caller selects no vehicle: a stock gasoline car, bike or walker.
func DefaultProfile(mobilityType string) *Profile {
	switch strings.ToLower(strings.TrimSpace(mobilityType)) {
	case "bike":
		return Reconstruct(KindBike, "Bicycle (default)", "", Consumption{Amount: defaultBikeKcalPerMin, Unit: UnitKcalPerMinute}, false)
	case "walk":
		return Reconstruct(KindWalker, "Walking (default)", "", Consumption{Amount: defaultWalkerKcalPerMin, Unit: UnitKcalPerMinute}, false)
	default:
		return Reconstruct(KindFuelVehicle, "Default car", FuelGasoline, Consumption{Amount: defaultCarLitersPer100, Unit: UnitLitersPer100Km}, false)
	}
}

// Kind returns the variant tag.
func (p *Profile) Kind() Kind { return p.kind }

// Name returns the profile's display name. Identity is (ownerID, name).
func (p *Profile) Name() string { return p.name }

// FuelSource returns the energy source, empty for bikes and walkers.
func (p *Profile) FuelSource() FuelSource { return p.fuelSource }

// Consumption returns the consumption descriptor.
func (p *Profile) Consumption() Consumption { return p.consumption }

// Favorite reports whether the owner flagged the profile as favorite.
func (p *Profile) Favorite() bool { return p.favorite }

// SetFavorite toggles the favorite flag. Independent of identity.
func (p *Profile) SetFavorite(favorite bool) { p.favorite = favorite }
