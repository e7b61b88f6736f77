package price

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/al426285/mone-routing/internal/domain/apperr"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestGateway(t *testing.T, handler http.Handler) (*Gateway, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g, err := NewGateway(srv.URL, 2*time.Second, zap.NewNop())
	require.NoError(t, err)
	return g, srv
}

func TestNewGateway(t *testing.T) {
	_, err := NewGateway("", time.Second, zap.NewNop())
	require.Error(t, err)
}

func TestGateway_Latest(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes a full snapshot", func(t *testing.T) {
		g, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"gasolinePerLiter": 1.52,
				"dieselPerLiter": 1.41,
				"electricityPerKwh": 0.24,
				"currency": "EUR",
				"timestamp": "2026-08-30T08:00:00Z"
			}`))
		}))

		snapshot, err := g.Latest(ctx)
		require.NoError(t, err)
		require.Equal(t, 1.52, *snapshot.GasolinePerLiter)
		require.Equal(t, 1.41, *snapshot.DieselPerLiter)
		require.Equal(t, 0.24, *snapshot.ElectricityPerKwh)
		require.Equal(t, "EUR", snapshot.Currency)
		require.Equal(t, time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC), snapshot.Timestamp)
	})

	t.Run("absent prices stay nil", func(t *testing.T) {
		g, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"gasolinePerLiter": 1.52, "currency": "EUR"}`))
		}))

		snapshot, err := g.Latest(ctx)
		require.NoError(t, err)
		require.NotNil(t, snapshot.GasolinePerLiter)
		require.Nil(t, snapshot.DieselPerLiter)
		require.Nil(t, snapshot.ElectricityPerKwh)
		require.False(t, snapshot.Timestamp.IsZero(), "a missing feed timestamp falls back to now")
	})

	t.Run("server error maps to price-api-unavailable", func(t *testing.T) {
		g, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		}))

		_, err := g.Latest(ctx)
		require.True(t, errors.Is(err, apperr.ErrPriceAPIUnavailable))
	})

	t.Run("non-JSON body maps to price-api-unavailable", func(t *testing.T) {
		g, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte("maintenance"))
		}))

		_, err := g.Latest(ctx)
		require.True(t, errors.Is(err, apperr.ErrPriceAPIUnavailable))
	})

	t.Run("transport failure maps to price-api-unavailable", func(t *testing.T) {
		g, srv := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		_, err := g.Latest(ctx)
		require.True(t, errors.Is(err, apperr.ErrPriceAPIUnavailable))
	})
}
