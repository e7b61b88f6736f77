package handler

import (
	"github.com/al426285/mone-routing/internal/application"
	"github.com/al426285/mone-routing/internal/platform/httpx"
	"github.com/gin-gonic/gin"
)

// VehicleHandler handles HTTP requests for the vehicle catalogue.
type VehicleHandler struct {
	vehicles *application.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vehicles *application.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

// RegisterRoutes registers all vehicle endpoints on the given group.
func (h *VehicleHandler) RegisterRoutes(r *gin.RouterGroup, auth gin.HandlerFunc) {
	vehicles := r.Group("/api/v1/vehicles")
	vehicles.Use(auth)
	{
		vehicles.POST("", h.CreateVehicle)
		vehicles.GET("", h.ListVehicles)
		vehicles.GET("/:name", h.GetVehicle)
		vehicles.PATCH("/:name", h.UpdateVehicle)
		vehicles.PUT("/:name/favorite", h.SetFavorite)
		vehicles.DELETE("/:name", h.DeleteVehicle)
	}
}

// CreateVehicle handles POST /api/v1/vehicles.
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	ownerID, ok := httpx.GetUserID(c)
	if !ok {
		httpx.Error(c, errUnauthorized)
		return
	}

	var req application.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	dto, err := h.vehicles.CreateVehicle(c.Request.Context(), ownerID, req)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.Created(c, dto)
}

// ListVehicles handles GET /api/v1/vehicles.
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	ownerID, ok := httpx.GetUserID(c)
	if !ok {
		httpx.Error(c, errUnauthorized)
		return
	}

	dtos, err := h.vehicles.ListVehicles(c.Request.Context(), ownerID)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.OK(c, dtos)
}

// GetVehicle handles GET /api/v1/vehicles/:name.
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	ownerID, ok := httpx.GetUserID(c)
	if !ok {
		httpx.Error(c, errUnauthorized)
		return
	}
	name := c.Param("name")

	dto, err := h.vehicles.GetVehicle(c.Request.Context(), ownerID, name)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	if dto == nil {
		httpx.Error(c, errVehicleNotFound(name))
		return
	}
	httpx.OK(c, dto)
}

// UpdateVehicle handles PATCH /api/v1/vehicles/:name.
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	ownerID, ok := httpx.GetUserID(c)
	if !ok {
		httpx.Error(c, errUnauthorized)
		return
	}
	name := c.Param("name")

	var req application.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	if err := h.vehicles.UpdateVehicle(c.Request.Context(), ownerID, name, req); err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.NoContent(c)
}

// SetFavorite handles PUT /api/v1/vehicles/:name/favorite.
func (h *VehicleHandler) SetFavorite(c *gin.Context) {
	ownerID, ok := httpx.GetUserID(c)
	if !ok {
		httpx.Error(c, errUnauthorized)
		return
	}
	name := c.Param("name")

	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	if err := h.vehicles.SetVehicleFavorite(c.Request.Context(), ownerID, name, req.Favorite); err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.NoContent(c)
}

// DeleteVehicle handles DELETE /api/v1/vehicles/:name.
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	ownerID, ok := httpx.GetUserID(c)
	if !ok {
		httpx.Error(c, errUnauthorized)
		return
	}
	name := c.Param("name")

	if err := h.vehicles.DeleteVehicle(c.Request.Context(), ownerID, name); err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.NoContent(c)
}
