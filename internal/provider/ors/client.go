// Package ors adapts the OpenRouteService directions and geocoding APIs
// to the domain provider ports.
package ors

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/al426285/mone-routing/internal/domain/apperr"
	"github.com/al426285/mone-routing/internal/domain/route"
	"go.uber.org/zap"
)

// Client calls OpenRouteService. Safe for concurrent use.
type Client struct {
	session *http.Client
	baseURL string
	apiKey  string
	logger  *zap.Logger
}

// NewClient builds a client for the given base URL and API key.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("ors: api key is empty")
	}
	if baseURL == "" {
		baseURL = "https://api.openrouteservice.org"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		session: &http.Client{Timeout: timeout},
		baseURL: baseURL,
		apiKey:  apiKey,
		logger:  logger,
	}, nil
}

// orsProfile maps a mobility type onto an ORS routing profile.
func orsProfile(mobilityType string) string {
	switch mobilityType {
	case route.MobilityBike:
		return "cycling-regular"
	case route.MobilityWalk:
		return "foot-walking"
	default:
		return "driving-car"
	}
}

// orsPreference maps a route type onto an ORS preference.
func orsPreference(routeType string) string {
	switch routeType {
	case route.TypeShortest:
		return "shortest"
	case route.TypeScenic:
		return "recommended"
	default:
		return "fastest"
	}
}

type directionsRequest struct {
	Coordinates  [][]float64 `json:"coordinates"`
	Preference   string      `json:"preference"`
	Instructions bool        `json:"instructions"`
}

type directionsResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"summary"`
			Segments []struct {
				Steps []struct {
					Instruction string `json:"instruction"`
				} `json:"steps"`
			} `json:"segments"`
		} `json:"properties"`
	} `json:"features"`
}

// Directions computes a route between two already-validated coordinate
// pairs. Every failure mode (transport error, non-2xx, non-JSON body,
// missing feature) surfaces as the single route-provider-unavailable kind.
func (c *Client) Directions(ctx context.Context, origin, destination route.Coordinates, mobilityType, routeType string) (*route.Route, error) {
	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", c.baseURL, orsProfile(mobilityType))

	payload, err := json.Marshal(directionsRequest{
		Coordinates:  [][]float64{origin.List(), destination.List()},
		Preference:   orsPreference(routeType),
		Instructions: true,
	})
	if err != nil {
		return nil, apperr.NewRouteProviderUnavailable("encode directions request: " + err.Error())
	}

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		c.logger.Warn("ors directions call failed", zap.Error(err))
		return nil, apperr.NewRouteProviderUnavailable("route provider request failed")
	}
	defer resp.Body.Close()

	if !jsonContentType(resp) {
		return nil, apperr.NewRouteProviderUnavailable("route provider returned a non-JSON response")
	}

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, apperr.NewRouteProviderUnavailable("decode directions response: " + err.Error())
	}
	if len(decoded.Features) == 0 {
		return nil, apperr.NewRouteProviderUnavailable("route provider returned no routes")
	}

	feature := decoded.Features[0]

	polyline := make([]route.Coordinates, 0, len(feature.Geometry.Coordinates))
	for _, pair := range feature.Geometry.Coordinates {
		if len(pair) != 2 {
			continue
		}
		polyline = append(polyline, route.Coordinates{Lon: pair[0], Lat: pair[1]})
	}

	var steps []string
	for _, segment := range feature.Properties.Segments {
		for _, step := range segment.Steps {
			if step.Instruction != "" {
				steps = append(steps, step.Instruction)
			}
		}
	}

	return &route.Route{
		DistanceMeters:  feature.Properties.Summary.Distance,
		DurationMinutes: feature.Properties.Summary.Duration / 60,
		Polyline:        polyline,
		Steps:           steps,
		MobilityType:    mobilityType,
		RouteType:       routeType,
	}, nil
}

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Label string `json:"label"`
		} `json:"properties"`
	} `json:"features"`
}

// Geocode resolves free text to the single best match, or nil when the
// text resolves to nothing.
func (c *Client) Geocode(ctx context.Context, text string) (*route.GeocodeMatch, error) {
	endpoint := c.baseURL + "/geocode/search"

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := url.Values{}
		q.Set("text", text)
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		c.logger.Warn("ors geocode call failed", zap.Error(err))
		return nil, apperr.NewRouteProviderUnavailable("geocoding request failed")
	}
	defer resp.Body.Close()

	if !jsonContentType(resp) {
		return nil, apperr.NewRouteProviderUnavailable("geocoder returned a non-JSON response")
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, apperr.NewRouteProviderUnavailable("decode geocode response: " + err.Error())
	}
	if len(decoded.Features) == 0 {
		return nil, nil
	}
	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return nil, apperr.NewRouteProviderUnavailable("geocoder returned a malformed coordinate pair")
	}
	return &route.GeocodeMatch{
		Label:       decoded.Features[0].Properties.Label,
		Coordinates: route.Coordinates{Lon: coords[0], Lat: coords[1]},
	}, nil
}
