package application

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/al426285/mone-routing/internal/cache"
	"github.com/al426285/mone-routing/internal/connectivity"
	"github.com/al426285/mone-routing/internal/domain/apperr"
	"github.com/al426285/mone-routing/internal/domain/mobility"
	"github.com/al426285/mone-routing/internal/domain/route"
	"github.com/al426285/mone-routing/internal/events"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventPublisher is the best-effort lifecycle event sink.
type EventPublisher interface {
	Publish(ctx context.Context, topic, eventType, key string, data any)
}

// PlanResult is the outcome of one planning call: the cost-decorated
// route, the undecorated base route (so cost can be recomputed locally
// when the vehicle selection changes without re-calling the provider),
// the price snapshot when one was available and the request token.
type PlanResult struct {
	Route         route.Route          `json:"route"`
	BaseRoute     route.Route          `json:"base_route"`
	PriceSnapshot *route.PriceSnapshot `json:"price_snapshot,omitempty"`
	Token         int64                `json:"token"`
}

// RouteService composes the route provider, price gateway and cost
// estimator into the single "plan a priced route" operation, and owns
// the saved-route CRUD contracts.
type RouteService struct {
	provider  route.Provider
	prices    route.PriceGateway
	estimator *route.Estimator
	repo      route.Repository
	cache     *cache.Resilient[route.Saved]
	probe     connectivity.Probe
	publisher EventPublisher
	logger    *zap.Logger

	// seq stamps every plan with a process-monotonic token; callers
	// discard results whose token is older than their latest issue.
	seq atomic.Int64
}

// NewRouteService wires the orchestrator. The provider is expected to be
// proxied already; pass a stub provider in tests.
func NewRouteService(
	provider route.Provider,
	prices route.PriceGateway,
	estimator *route.Estimator,
	repo route.Repository,
	routeCache *cache.Resilient[route.Saved],
	probe connectivity.Probe,
	publisher EventPublisher,
	logger *zap.Logger,
) *RouteService {
	return &RouteService{
		provider:  provider,
		prices:    prices,
		estimator: estimator,
		repo:      repo,
		cache:     routeCache,
		probe:     probe,
		publisher: publisher,
		logger:    logger,
	}
}

// PlanRoute validates the request, fetches the route, and decorates it
// with a cost estimate. Provider failure is fatal; price feed failure
// degrades the result to a nil cost. PlanRoute never persists.
func (s *RouteService) PlanRoute(ctx context.Context, req route.Request, profile *mobility.Profile) (*PlanResult, error) {
	token := s.seq.Add(1)

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Both coordinates must parse and range-check before any network call.
	origin, err := route.ParseCoordinates(req.Origin)
	if err != nil {
		return nil, err
	}
	destination, err := route.ParseCoordinates(req.Destination)
	if err != nil {
		return nil, err
	}

	if profile == nil {
		profile = mobility.DefaultProfile(req.MobilityType)
	}

	base, err := s.provider.Directions(ctx, origin, destination, req.MobilityType, req.RouteType)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.prices.Latest(ctx)
	if err != nil {
		// Degraded result: route without a cost figure.
		s.logger.Debug("price snapshot unavailable, planning without cost", zap.Error(err))
		snapshot = nil
	}

	cost, currency := s.estimator.Estimate(*base, profile, snapshot)

	return &PlanResult{
		Route:         base.WithCost(cost, currency),
		BaseRoute:     *base,
		PriceSnapshot: snapshot,
		Token:         token,
	}, nil
}

// PlanAndSave plans a route and persists it under the given name in one
// explicit call. Persistence requires connectivity up front.
func (s *RouteService) PlanAndSave(ctx context.Context, ownerID uuid.UUID, req route.Request, profile *mobility.Profile, name string) (*PlanResult, *route.Saved, error) {
	if !s.probe.Online(ctx) {
		return nil, nil, apperr.NewDatabaseUnavailable()
	}
	// Reject a doomed save before spending a provider call.
	if strings.TrimSpace(name) == "" {
		return nil, nil, apperr.NewMissingField("route name")
	}

	result, err := s.PlanRoute(ctx, req, profile)
	if err != nil {
		return nil, nil, err
	}

	saved, err := s.SaveRoute(ctx, ownerID, name, req)
	if err != nil {
		return nil, nil, err
	}
	return result, saved, nil
}

// SaveRoute persists a route record. The name is required and trimmed.
func (s *RouteService) SaveRoute(ctx context.Context, ownerID uuid.UUID, name string, req route.Request) (*route.Saved, error) {
	if !s.probe.Online(ctx) {
		return nil, apperr.NewDatabaseUnavailable()
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, apperr.NewMissingField("route name")
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	saved := &route.Saved{
		Name:         trimmed,
		Origin:       req.Origin,
		Destination:  req.Destination,
		MobilityType: req.MobilityType,
		RouteType:    req.RouteType,
	}
	id, err := s.repo.Create(ctx, ownerID, saved)
	if err != nil {
		return nil, err
	}
	saved.ID = id

	s.cache.Refresh(ctx, ownerID, true)
	s.publisher.Publish(ctx, events.TopicRouteEvents, events.RouteSaved, id.String(), saved)

	return saved, nil
}

// ListRoutes returns the owner's saved routes through the resilient cache.
func (s *RouteService) ListRoutes(ctx context.Context, ownerID uuid.UUID) ([]route.Saved, error) {
	return s.cache.Read(ctx, ownerID, s.probe.Online(ctx))
}

// GetRoute returns one saved route, or nil when absent.
func (s *RouteService) GetRoute(ctx context.Context, ownerID, id uuid.UUID) (*route.Saved, error) {
	return s.repo.Get(ctx, ownerID, id)
}

// UpdateRoute merges defined fields into a saved route. A blank name in
// the update is treated as "no name change" so favorite-only updates
// never fail; kept as observed pending product clarification.
func (s *RouteService) UpdateRoute(ctx context.Context, ownerID, id uuid.UUID, upd route.SavedUpdate) error {
	if !s.probe.Online(ctx) {
		return apperr.NewDatabaseUnavailable()
	}

	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		upd.Name = nil
	}

	existing, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperr.NewNotFound("Route", id.String())
	}

	if err := s.repo.Update(ctx, ownerID, id, upd); err != nil {
		return err
	}

	s.cache.Refresh(ctx, ownerID, true)
	return nil
}

// SetRouteFavorite toggles the favorite flag of a saved route.
func (s *RouteService) SetRouteFavorite(ctx context.Context, ownerID, id uuid.UUID, favorite bool) error {
	return s.UpdateRoute(ctx, ownerID, id, route.SavedUpdate{Favorite: &favorite})
}

// DeleteRoute removes a saved route, failing when it does not exist.
func (s *RouteService) DeleteRoute(ctx context.Context, ownerID, id uuid.UUID) error {
	if !s.probe.Online(ctx) {
		return apperr.NewDatabaseUnavailable()
	}

	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}

	s.cache.Refresh(ctx, ownerID, true)
	s.publisher.Publish(ctx, events.TopicRouteEvents, events.RouteDeleted, id.String(), map[string]string{"id": id.String()})
	return nil
}
