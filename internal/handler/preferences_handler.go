package handler

import (
	"github.com/al426285/mone-routing/internal/application"
	"github.com/al426285/mone-routing/internal/domain/prefs"
	"github.com/al426285/mone-routing/internal/platform/httpx"
	"github.com/gin-gonic/gin"
)

// UpdatePreferencesRequest is a partial preferences mutation.
type UpdatePreferencesRequest struct {
	DistanceUnit        *string `json:"distance_unit"`
	CombustionUnit      *string `json:"combustion_consumption_unit"`
	ElectricUnit        *string `json:"electric_consumption_unit"`
	DefaultMobilityType *string `json:"default_mobility_type"`
	DefaultRouteType    *string `json:"default_route_type"`
}

// PreferencesHandler handles HTTP requests for user preferences.
type PreferencesHandler struct {
	preferences *application.PreferencesService
}

// NewPreferencesHandler creates a new PreferencesHandler.
func NewPreferencesHandler(preferences *application.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{preferences: preferences}
}

// RegisterRoutes registers all preferences endpoints on the given group.
func (h *PreferencesHandler) RegisterRoutes(r *gin.RouterGroup, auth gin.HandlerFunc) {
	preferences := r.Group("/api/v1/preferences")
	preferences.Use(auth)
	{
		preferences.GET("", h.GetPreferences)
		preferences.PATCH("", h.UpdatePreferences)
	}
}

// GetPreferences handles GET /api/v1/preferences.
func (h *PreferencesHandler) GetPreferences(c *gin.Context) {
	ownerID, ok := httpx.GetUserID(c)
	if !ok {
		httpx.Error(c, errUnauthorized)
		return
	}

	p, err := h.preferences.GetPreferences(c.Request.Context(), ownerID)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.OK(c, p)
}

// UpdatePreferences handles PATCH /api/v1/preferences.
func (h *PreferencesHandler) UpdatePreferences(c *gin.Context) {
	ownerID, ok := httpx.GetUserID(c)
	if !ok {
		httpx.Error(c, errUnauthorized)
		return
	}

	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	saved, err := h.preferences.SavePreferences(c.Request.Context(), ownerID, toPatch(req))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.OK(c, saved)
}

func toPatch(req UpdatePreferencesRequest) prefs.Patch {
	var patch prefs.Patch
	if req.DistanceUnit != nil {
		v := prefs.DistanceUnit(*req.DistanceUnit)
		patch.DistanceUnit = &v
	}
	if req.CombustionUnit != nil {
		v := prefs.ConsumptionUnit(*req.CombustionUnit)
		patch.CombustionUnit = &v
	}
	if req.ElectricUnit != nil {
		v := prefs.ConsumptionUnit(*req.ElectricUnit)
		patch.ElectricUnit = &v
	}
	patch.DefaultMobilityType = req.DefaultMobilityType
	patch.DefaultRouteType = req.DefaultRouteType
	return patch
}
