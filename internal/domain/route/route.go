// Package route holds the core route planning values: coordinates,
// requests, computed routes, price snapshots and the cost estimator.
package route

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/al426285/mone-routing/internal/domain/apperr"
)

// Mobility and route type values accepted in requests.
const (
	MobilityVehicle = "vehicle"
	MobilityBike    = "bike"
	MobilityWalk    = "walk"

	TypeFastest  = "fastest"
	TypeShortest = "shortest"
	TypeScenic   = "scenic"
)

// Coordinates is an immutable geographic point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// List returns the point as [lon, lat] for external API compatibility.
func (c Coordinates) List() []float64 { return []float64{c.Lon, c.Lat} }

// ParseCoordinates parses a "lat,lon" string and range-checks both values.
func ParseCoordinates(value string) (Coordinates, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return Coordinates{}, apperr.NewInvalidCoordinates(fmt.Sprintf("expected \"lat,lon\", got %q", value))
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinates{}, apperr.NewInvalidCoordinates(fmt.Sprintf("invalid latitude %q", parts[0]))
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinates{}, apperr.NewInvalidCoordinates(fmt.Sprintf("invalid longitude %q", parts[1]))
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Coordinates{}, apperr.NewInvalidCoordinates(fmt.Sprintf("coordinates out of range: %s", value))
	}
	return Coordinates{Lat: lat, Lon: lon}, nil
}

// Request describes a route to plan.
type Request struct {
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	MobilityType string `json:"mobility_type"`
	RouteType    string `json:"route_type"`
}

// Normalize trims all fields and applies the default mobility and route type.
func (r *Request) Normalize() {
	r.Origin = strings.TrimSpace(r.Origin)
	r.Destination = strings.TrimSpace(r.Destination)
	r.MobilityType = strings.ToLower(strings.TrimSpace(r.MobilityType))
	r.RouteType = strings.ToLower(strings.TrimSpace(r.RouteType))
	if r.MobilityType == "" {
		r.MobilityType = MobilityVehicle
	}
	if r.RouteType == "" {
		r.RouteType = TypeFastest
	}
}

// Validate checks that every required field is present.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Origin) == "" {
		return apperr.NewMissingField("origin")
	}
	if strings.TrimSpace(r.Destination) == "" {
		return apperr.NewMissingField("destination")
	}
	if strings.TrimSpace(r.MobilityType) == "" {
		return apperr.NewMissingField("mobility type")
	}
	if strings.TrimSpace(r.RouteType) == "" {
		return apperr.NewMissingField("route type")
	}
	return nil
}

// Route is a computed route. It is never mutated after construction; cost
// decoration goes through WithCost, which returns a copy.
type Route struct {
	DistanceMeters  float64       `json:"distance_meters"`
	DurationMinutes float64       `json:"duration_minutes"`
	Polyline        []Coordinates `json:"polyline"`
	Steps           []string      `json:"steps"`
	MobilityType    string        `json:"mobility_type"`
	RouteType       string        `json:"route_type"`
	Cost            *float64      `json:"cost"`
	Currency        string        `json:"currency,omitempty"`
}

// WithCost returns a copy of the route decorated with a cost figure. The
// receiver is left untouched so it can serve as the base route.
func (r Route) WithCost(cost *float64, currency string) Route {
	decorated := r
	decorated.Cost = cost
	decorated.Currency = currency
	return decorated
}

// PriceSnapshot is a point-in-time set of per-unit energy prices. Any of
// the price fields may be absent.
type PriceSnapshot struct {
	GasolinePerLiter  *float64  `json:"gasoline_per_liter,omitempty"`
	DieselPerLiter    *float64  `json:"diesel_per_liter,omitempty"`
	ElectricityPerKwh *float64  `json:"electricity_per_kwh,omitempty"`
	Currency          string    `json:"currency"`
	Timestamp         time.Time `json:"timestamp"`
}
