package ors

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/al426285/mone-routing/internal/domain/apperr"
	"github.com/al426285/mone-routing/internal/domain/route"
	"github.com/stretchr/testify/require"
)

// providerStub records the last call and serves a scripted result.
type providerStub struct {
	calls       int
	hadDeadline bool
	result      *route.Route
	err         error
}

func (s *providerStub) Directions(ctx context.Context, origin, destination route.Coordinates, mobilityType, routeType string) (*route.Route, error) {
	s.calls++
	_, s.hadDeadline = ctx.Deadline()
	return s.result, s.err
}

func TestProxy_Delegates(t *testing.T) {
	stub := &providerStub{result: &route.Route{DistanceMeters: 1200}}
	p := NewProxy(stub, 0)

	rt, err := p.Directions(context.Background(), route.Coordinates{}, route.Coordinates{}, route.MobilityBike, route.TypeFastest)
	require.NoError(t, err)
	require.Equal(t, stub.result, rt)
	require.Equal(t, 1, stub.calls)
}

func TestProxy_GuardsInputs(t *testing.T) {
	stub := &providerStub{}
	p := NewProxy(stub, 0)

	_, err := p.Directions(context.Background(), route.Coordinates{}, route.Coordinates{}, "", route.TypeFastest)
	require.True(t, errors.Is(err, apperr.ErrMissingField))

	_, err = p.Directions(context.Background(), route.Coordinates{}, route.Coordinates{}, route.MobilityBike, "")
	require.True(t, errors.Is(err, apperr.ErrMissingField))

	require.Zero(t, stub.calls, "guard failures must not reach the provider")
}

func TestProxy_BoundsCallsWithTimeout(t *testing.T) {
	stub := &providerStub{result: &route.Route{}}

	p := NewProxy(stub, time.Second)
	_, err := p.Directions(context.Background(), route.Coordinates{}, route.Coordinates{}, route.MobilityBike, route.TypeFastest)
	require.NoError(t, err)
	require.True(t, stub.hadDeadline)

	p = NewProxy(stub, 0)
	_, err = p.Directions(context.Background(), route.Coordinates{}, route.Coordinates{}, route.MobilityBike, route.TypeFastest)
	require.NoError(t, err)
	require.False(t, stub.hadDeadline)
}

func TestProxy_PropagatesErrorsUnchanged(t *testing.T) {
	stub := &providerStub{err: apperr.NewRouteProviderUnavailable("down")}
	p := NewProxy(stub, 0)

	_, err := p.Directions(context.Background(), route.Coordinates{}, route.Coordinates{}, route.MobilityBike, route.TypeFastest)
	require.True(t, errors.Is(err, apperr.ErrRouteProviderUnavailable))
}
