package ors

import (
	"context"
	"time"

	"github.com/al426285/mone-routing/internal/domain/apperr"
	"github.com/al426285/mone-routing/internal/domain/route"
)

// Proxy wraps a route provider without changing its contract: it guards
// inputs and bounds each call with a timeout, delegating 1:1 otherwise.
// It is the substitution seam — production wraps the HTTP client, tests
// wrap a stub.
type Proxy struct {
	inner   route.Provider
	timeout time.Duration
}

// NewProxy wraps inner. A zero timeout leaves calls unbounded (the
// transport client still carries its own).
func NewProxy(inner route.Provider, timeout time.Duration) *Proxy {
	return &Proxy{inner: inner, timeout: timeout}
}

// Directions delegates to the wrapped provider.
func (p *Proxy) Directions(ctx context.Context, origin, destination route.Coordinates, mobilityType, routeType string) (*route.Route, error) {
	if mobilityType == "" {
		return nil, apperr.NewMissingField("mobility type")
	}
	if routeType == "" {
		return nil, apperr.NewMissingField("route type")
	}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	return p.inner.Directions(ctx, origin, destination, mobilityType, routeType)
}
