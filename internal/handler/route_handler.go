// Package handler exposes the HTTP surface of the service.
package handler

import (
	"github.com/al426285/mone-routing/internal/application"
	"github.com/al426285/mone-routing/internal/domain/mobility"
	"github.com/al426285/mone-routing/internal/domain/route"
	"github.com/al426285/mone-routing/internal/platform/httpx"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PlanRouteRequest is the body of a plan call. The vehicle is optional;
// when named, the caller's stored vehicle drives the cost estimate,
// otherwise the mode's default profile does.
type PlanRouteRequest struct {
	Origin       string `json:"origin" binding:"required"`
	Destination  string `json:"destination" binding:"required"`
	MobilityType string `json:"mobility_type"`
	RouteType    string `json:"route_type"`
	VehicleName  string `json:"vehicle_name"`
}

// SaveRouteRequest is the body of a plan-and-save or save call.
type SaveRouteRequest struct {
	PlanRouteRequest
	Name string `json:"name" binding:"required"`
}

// UpdateRouteRequest is the body of a partial saved-route update.
type UpdateRouteRequest struct {
	Name         *string `json:"name"`
	Origin       *string `json:"origin"`
	Destination  *string `json:"destination"`
	MobilityType *string `json:"mobility_type"`
	RouteType    *string `json:"route_type"`
	Favorite     *bool   `json:"favorite"`
}

// FavoriteRequest toggles a favorite flag.
type FavoriteRequest struct {
	Favorite bool `json:"favorite"`
}

// RouteHandler handles HTTP requests for route planning and saved routes.
type RouteHandler struct {
	routes   *application.RouteService
	vehicles *application.VehicleService
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(routes *application.RouteService, vehicles *application.VehicleService) *RouteHandler {
	return &RouteHandler{routes: routes, vehicles: vehicles}
}

// RegisterRoutes registers all route endpoints on the given group.
func (h *RouteHandler) RegisterRoutes(r *gin.RouterGroup, auth gin.HandlerFunc) {
	routes := r.Group("/api/v1/routes")
	routes.Use(auth)
	{
		routes.POST("/plan", h.PlanRoute)
		routes.POST("", h.PlanAndSave)
		routes.GET("", h.ListRoutes)
		routes.GET("/:id", h.GetRoute)
		routes.PATCH("/:id", h.UpdateRoute)
		routes.PUT("/:id/favorite", h.SetFavorite)
		routes.DELETE("/:id", h.DeleteRoute)
	}
}

// PlanRoute handles POST /api/v1/routes/plan.
func (h *RouteHandler) PlanRoute(c *gin.Context) {
	ownerID, ok := httpx.GetUserID(c)
	if !ok {
		httpx.Error(c, errUnauthorized)
		return
	}

	var req PlanRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	profile, err := h.resolveProfile(c, ownerID, req.VehicleName)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	result, err := h.routes.PlanRoute(c.Request.Context(), route.Request{
		Origin:       req.Origin,
		Destination:  req.Destination,
		MobilityType: req.MobilityType,
		RouteType:    req.RouteType,
	}, profile)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	httpx.OK(c, result)
}

// PlanAndSave handles POST /api/v1/routes.
func (h *RouteHandler) PlanAndSave(c *gin.Context) {
	ownerID, ok := httpx.GetUserID(c)
	if !ok {
		httpx.Error(c, errUnauthorized)
		return
	}

	var req SaveRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	profile, err := h.resolveProfile(c, ownerID, req.VehicleName)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	result, saved, err := h.routes.PlanAndSave(c.Request.Context(), ownerID, route.Request{
		Origin:       req.Origin,
		Destination:  req.Destination,
		MobilityType: req.MobilityType,
		RouteType:    req.RouteType,
	}, profile, req.Name)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	httpx.Created(c, gin.H{"plan": result, "saved": saved})
}

// ListRoutes handles GET /api/v1/routes.
func (h *RouteHandler) ListRoutes(c *gin.Context) {
	ownerID, ok := httpx.GetUserID(c)
	if !ok {
		httpx.Error(c, errUnauthorized)
		return
	}

	routes, err := h.routes.ListRoutes(c.Request.Context(), ownerID)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.OK(c, routes)
}

// GetRoute handles GET /api/v1/routes/:id.
func (h *RouteHandler) GetRoute(c *gin.Context) {
	ownerID, ok := httpx.GetUserID(c)
	if !ok {
		httpx.Error(c, errUnauthorized)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpx.BadRequest(c, "invalid route ID")
		return
	}

	saved, err := h.routes.GetRoute(c.Request.Context(), ownerID, id)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.OK(c, saved)
}

// UpdateRoute handles PATCH /api/v1/routes/:id.
func (h *RouteHandler) UpdateRoute(c *gin.Context) {
	ownerID, ok := httpx.GetUserID(c)
	if !ok {
		httpx.Error(c, errUnauthorized)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpx.BadRequest(c, "invalid route ID")
		return
	}

	var req UpdateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	err = h.routes.UpdateRoute(c.Request.Context(), ownerID, id, route.SavedUpdate{
		Name:         req.Name,
		Origin:       req.Origin,
		Destination:  req.Destination,
		MobilityType: req.MobilityType,
		RouteType:    req.RouteType,
		Favorite:     req.Favorite,
	})
	if err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.NoContent(c)
}

// SetFavorite handles PUT /api/v1/routes/:id/favorite.
func (h *RouteHandler) SetFavorite(c *gin.Context) {
	ownerID, ok := httpx.GetUserID(c)
	if !ok {
		httpx.Error(c, errUnauthorized)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpx.BadRequest(c, "invalid route ID")
		return
	}

	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	if err := h.routes.SetRouteFavorite(c.Request.Context(), ownerID, id, req.Favorite); err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.NoContent(c)
}

// DeleteRoute handles DELETE /api/v1/routes/:id.
func (h *RouteHandler) DeleteRoute(c *gin.Context) {
	ownerID, ok := httpx.GetUserID(c)
	if !ok {
		httpx.Error(c, errUnauthorized)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpx.BadRequest(c, "invalid route ID")
		return
	}

	if err := h.routes.DeleteRoute(c.Request.Context(), ownerID, id); err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.NoContent(c)
}

// resolveProfile loads the named vehicle, or nil when none was named so
// the orchestrator falls back to the mode default.
func (h *RouteHandler) resolveProfile(c *gin.Context, ownerID uuid.UUID, vehicleName string) (*mobility.Profile, error) {
	if vehicleName == "" {
		return nil, nil
	}
	dto, err := h.vehicles.GetVehicle(c.Request.Context(), ownerID, vehicleName)
	if err != nil {
		return nil, err
	}
	if dto == nil {
		return nil, errVehicleNotFound(vehicleName)
	}
	return application.ProfileFromDTO(*dto), nil
}
