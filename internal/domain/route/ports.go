package route

import "context"

// Provider computes routes against an external directions service.
// Implementations normalize any transport failure, non-2xx response or
// malformed payload into a route-provider-unavailable error, so callers
// never distinguish timeout from 5xx from bad JSON.
type Provider interface {
	Directions(ctx context.Context, origin, destination Coordinates, mobilityType, routeType string) (*Route, error)
}

// PriceGateway fetches current energy prices. It may fail independently of
// the route provider; the orchestrator treats that failure as non-fatal.
type PriceGateway interface {
	Latest(ctx context.Context) (*PriceSnapshot, error)
}

// GeocodeMatch is the zero-or-one best match for a free-text place lookup.
type GeocodeMatch struct {
	Label       string      `json:"label"`
	Coordinates Coordinates `json:"coordinates"`
}

// Geocoder resolves free text to a coordinate pair.
type Geocoder interface {
	// Geocode returns (nil, nil) when the text resolves to nothing.
	Geocode(ctx context.Context, text string) (*GeocodeMatch, error)
}
