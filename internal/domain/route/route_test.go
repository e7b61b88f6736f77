package route

import (
	"errors"
	"testing"

	"github.com/al426285/mone-routing/internal/domain/apperr"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinates(t *testing.T) {
	t.Run("parses a valid pair", func(t *testing.T) {
		c, err := ParseCoordinates("39.9864, -0.0513")
		require.NoError(t, err)
		require.Equal(t, Coordinates{Lat: 39.9864, Lon: -0.0513}, c)
	})

	t.Run("list form is lon first", func(t *testing.T) {
		c := Coordinates{Lat: 39.9864, Lon: -0.0513}
		require.Equal(t, []float64{-0.0513, 39.9864}, c.List())
	})

	tests := []struct {
		name  string
		input string
	}{
		{"missing comma", "39.9864 -0.0513"},
		{"too many parts", "39.9,-0.05,12"},
		{"non-numeric latitude", "north,-0.05"},
		{"non-numeric longitude", "39.9,east"},
		{"latitude above range", "90.1,0"},
		{"latitude below range", "-90.1,0"},
		{"longitude above range", "0,180.1"},
		{"longitude below range", "0,-180.1"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCoordinates(tt.input)
			require.Error(t, err)
			require.True(t, errors.Is(err, apperr.ErrInvalidCoordinates))
		})
	}

	t.Run("boundary values are accepted", func(t *testing.T) {
		_, err := ParseCoordinates("90,-180")
		require.NoError(t, err)
		_, err = ParseCoordinates("-90,180")
		require.NoError(t, err)
	})
}

func TestRequest_Normalize(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		r := Request{Origin: " 39.9,-0.05 ", Destination: "40.0,-0.1"}
		r.Normalize()
		require.Equal(t, "39.9,-0.05", r.Origin)
		require.Equal(t, MobilityVehicle, r.MobilityType)
		require.Equal(t, TypeFastest, r.RouteType)
	})

	t.Run("lowercases the type fields", func(t *testing.T) {
		r := Request{Origin: "a", Destination: "b", MobilityType: " Bike ", RouteType: "SHORTEST"}
		r.Normalize()
		require.Equal(t, MobilityBike, r.MobilityType)
		require.Equal(t, TypeShortest, r.RouteType)
	})
}

func TestRequest_Validate(t *testing.T) {
	t.Run("rejects blank origin", func(t *testing.T) {
		r := Request{Destination: "40,0", MobilityType: MobilityBike, RouteType: TypeFastest}
		err := r.Validate()
		require.True(t, errors.Is(err, apperr.ErrMissingField))
	})

	t.Run("rejects blank destination", func(t *testing.T) {
		r := Request{Origin: "39,0", MobilityType: MobilityBike, RouteType: TypeFastest}
		err := r.Validate()
		require.True(t, errors.Is(err, apperr.ErrMissingField))
	})

	t.Run("accepts a full request", func(t *testing.T) {
		r := Request{Origin: "39,0", Destination: "40,0", MobilityType: MobilityWalk, RouteType: TypeScenic}
		require.NoError(t, r.Validate())
	})
}

func TestRoute_WithCost(t *testing.T) {
	base := Route{DistanceMeters: 1000, DurationMinutes: 12, MobilityType: MobilityBike, RouteType: TypeFastest}
	cost := 3.5

	decorated := base.WithCost(&cost, "EUR")

	require.Equal(t, &cost, decorated.Cost)
	require.Equal(t, "EUR", decorated.Currency)
	require.Nil(t, base.Cost, "the base route must stay cost-free")
	require.Empty(t, base.Currency)
}
