package ors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/al426285/mone-routing/internal/domain/apperr"
	"github.com/al426285/mone-routing/internal/domain/route"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const directionsBody = `{
	"features": [{
		"geometry": {"coordinates": [[-0.05, 39.98], [-0.06, 39.99]]},
		"properties": {
			"summary": {"distance": 4200, "duration": 600},
			"segments": [{"steps": [
				{"instruction": "Head north"},
				{"instruction": "Turn left"}
			]}]
		}
	}]
}`

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, "test-key", 5*time.Second, zap.NewNop())
	require.NoError(t, err)
	return client, srv
}

func TestNewClient(t *testing.T) {
	t.Run("requires an api key", func(t *testing.T) {
		_, err := NewClient("", "", time.Second, zap.NewNop())
		require.Error(t, err)
	})

	t.Run("defaults the base url", func(t *testing.T) {
		c, err := NewClient("", "key", time.Second, zap.NewNop())
		require.NoError(t, err)
		require.Equal(t, "https://api.openrouteservice.org", c.baseURL)
	})
}

func TestClient_Directions(t *testing.T) {
	ctx := context.Background()
	origin := route.Coordinates{Lat: 39.98, Lon: -0.05}
	destination := route.Coordinates{Lat: 39.99, Lon: -0.06}

	t.Run("decodes a successful response", func(t *testing.T) {
		var gotPath string
		var gotBody directionsRequest
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			require.Equal(t, "test-key", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.Header().Set("Content-Type", "application/geo+json; charset=utf-8")
			_, _ = w.Write([]byte(directionsBody))
		}))

		rt, err := client.Directions(ctx, origin, destination, route.MobilityBike, route.TypeShortest)
		require.NoError(t, err)

		require.Equal(t, "/v2/directions/cycling-regular/geojson", gotPath)
		require.Equal(t, [][]float64{{-0.05, 39.98}, {-0.06, 39.99}}, gotBody.Coordinates)
		require.Equal(t, "shortest", gotBody.Preference)

		require.Equal(t, 4200.0, rt.DistanceMeters)
		require.InDelta(t, 10.0, rt.DurationMinutes, 1e-9)
		require.Len(t, rt.Polyline, 2)
		require.Equal(t, route.Coordinates{Lat: 39.98, Lon: -0.05}, rt.Polyline[0])
		require.Equal(t, []string{"Head north", "Turn left"}, rt.Steps)
		require.Equal(t, route.MobilityBike, rt.MobilityType)
		require.Equal(t, route.TypeShortest, rt.RouteType)
	})

	t.Run("maps mobility and route types onto provider profiles", func(t *testing.T) {
		var gotPath string
		var gotBody directionsRequest
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(directionsBody))
		}))

		_, err := client.Directions(ctx, origin, destination, route.MobilityVehicle, route.TypeScenic)
		require.NoError(t, err)
		require.Equal(t, "/v2/directions/driving-car/geojson", gotPath)
		require.Equal(t, "recommended", gotBody.Preference)

		_, err = client.Directions(ctx, origin, destination, route.MobilityWalk, route.TypeFastest)
		require.NoError(t, err)
		require.Equal(t, "/v2/directions/foot-walking/geojson", gotPath)
		require.Equal(t, "fastest", gotBody.Preference)
	})

	t.Run("server error surfaces as provider-unavailable", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))

		_, err := client.Directions(ctx, origin, destination, route.MobilityBike, route.TypeFastest)
		require.Error(t, err)
		require.True(t, errors.Is(err, apperr.ErrRouteProviderUnavailable))
	})

	t.Run("non-JSON body surfaces as provider-unavailable", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html>gateway error</html>"))
		}))

		_, err := client.Directions(ctx, origin, destination, route.MobilityBike, route.TypeFastest)
		require.True(t, errors.Is(err, apperr.ErrRouteProviderUnavailable))
	})

	t.Run("empty feature list surfaces as provider-unavailable", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"features": []}`))
		}))

		_, err := client.Directions(ctx, origin, destination, route.MobilityBike, route.TypeFastest)
		require.True(t, errors.Is(err, apperr.ErrRouteProviderUnavailable))
	})

	t.Run("retries transient server failures", func(t *testing.T) {
		var calls atomic.Int32
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				http.Error(w, "busy", http.StatusServiceUnavailable)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(directionsBody))
		}))

		_, err := client.Directions(ctx, origin, destination, route.MobilityBike, route.TypeFastest)
		require.NoError(t, err)
		require.Equal(t, int32(3), calls.Load())
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		var calls atomic.Int32
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			http.Error(w, "bad request", http.StatusBadRequest)
		}))

		_, err := client.Directions(ctx, origin, destination, route.MobilityBike, route.TypeFastest)
		require.True(t, errors.Is(err, apperr.ErrRouteProviderUnavailable))
		require.Equal(t, int32(1), calls.Load())
	})
}

func TestClient_Geocode(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the best match", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/geocode/search", r.URL.Path)
			require.Equal(t, "Castellón", r.URL.Query().Get("text"))
			require.Equal(t, "1", r.URL.Query().Get("size"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"features": [{
				"geometry": {"coordinates": [-0.05, 39.98]},
				"properties": {"label": "Castellón de la Plana, Spain"}
			}]}`))
		}))

		match, err := client.Geocode(ctx, "Castellón")
		require.NoError(t, err)
		require.NotNil(t, match)
		require.Equal(t, "Castellón de la Plana, Spain", match.Label)
		require.Equal(t, route.Coordinates{Lat: 39.98, Lon: -0.05}, match.Coordinates)
	})

	t.Run("no features means no match, not an error", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"features": []}`))
		}))

		match, err := client.Geocode(ctx, "nowhere at all")
		require.NoError(t, err)
		require.Nil(t, match)
	})

	t.Run("transport failure surfaces as provider-unavailable", func(t *testing.T) {
		client, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		_, err := client.Geocode(ctx, "Castellón")
		require.True(t, errors.Is(err, apperr.ErrRouteProviderUnavailable))
	})
}
