package route

import (
	"github.com/al426285/mone-routing/internal/domain/mobility"
)

// CurrencyCalories marks a caloric cost figure instead of a monetary one.
const CurrencyCalories = "kcal"

// defaultCurrency is used when the price feed did not report one.
const defaultCurrency = "EUR"

// Estimator derives a cost figure from a computed route, a mobility
// profile and a price snapshot. It is pure: no I/O, no mutation.
type Estimator struct{}

// NewEstimator creates a cost estimator.
func NewEstimator() *Estimator { return &Estimator{} }

// Estimate returns the cost of traversing the route with the given
// profile, and the currency of that figure.
//
// A nil cost is a valid degraded result: it is returned when the snapshot
// is missing, the needed price is absent, or the profile's consumption
// unit does not match its variant. The estimator never guesses a unit
// conversion it cannot justify.
func (e *Estimator) Estimate(rt Route, profile *mobility.Profile, snapshot *PriceSnapshot) (*float64, string) {
	if profile == nil {
		return nil, ""
	}

	consumption := profile.Consumption()
	distanceKm := rt.DistanceMeters / 1000

	switch profile.Kind() {
	case mobility.KindFuelVehicle:
		if consumption.Unit != mobility.UnitLitersPer100Km {
			return nil, monetaryCurrency(snapshot)
		}
		price := fuelPrice(profile.FuelSource(), snapshot)
		if price == nil {
			return nil, monetaryCurrency(snapshot)
		}
		liters := distanceKm / 100 * consumption.Amount
		cost := liters * *price
		return &cost, monetaryCurrency(snapshot)

	case mobility.KindElectricVehicle:
		if consumption.Unit != mobility.UnitKwhPer100Km {
			return nil, monetaryCurrency(snapshot)
		}
		if snapshot == nil || snapshot.ElectricityPerKwh == nil {
			return nil, monetaryCurrency(snapshot)
		}
		kwh := distanceKm / 100 * consumption.Amount
		cost := kwh * *snapshot.ElectricityPerKwh
		return &cost, monetaryCurrency(snapshot)

	case mobility.KindBike, mobility.KindWalker:
		if consumption.Unit != mobility.UnitKcalPerMinute {
			return nil, CurrencyCalories
		}
		cost := rt.DurationMinutes * consumption.Amount
		return &cost, CurrencyCalories
	}

	return nil, ""
}

// fuelPrice picks the per-liter price for the source, substituting the
// other fuel's price when the primary one is missing.
func fuelPrice(source mobility.FuelSource, snapshot *PriceSnapshot) *float64 {
	if snapshot == nil {
		return nil
	}
	if source == mobility.FuelDiesel {
		if snapshot.DieselPerLiter != nil {
			return snapshot.DieselPerLiter
		}
		return snapshot.GasolinePerLiter
	}
	if snapshot.GasolinePerLiter != nil {
		return snapshot.GasolinePerLiter
	}
	return snapshot.DieselPerLiter
}

func monetaryCurrency(snapshot *PriceSnapshot) string {
	if snapshot != nil && snapshot.Currency != "" {
		return snapshot.Currency
	}
	return defaultCurrency
}
