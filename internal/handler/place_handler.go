package handler

import (
	"github.com/al426285/mone-routing/internal/application"
	"github.com/al426285/mone-routing/internal/platform/httpx"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PlaceHandler handles HTTP requests for saved places.
type PlaceHandler struct {
	places *application.PlaceService
}

// NewPlaceHandler creates a new PlaceHandler.
func NewPlaceHandler(places *application.PlaceService) *PlaceHandler {
	return &PlaceHandler{places: places}
}

// RegisterRoutes registers all place endpoints on the given group.
func (h *PlaceHandler) RegisterRoutes(r *gin.RouterGroup, auth gin.HandlerFunc) {
	places := r.Group("/api/v1/places")
	places.Use(auth)
	{
		places.POST("", h.CreatePlace)
		places.GET("", h.ListPlaces)
		places.GET("/suggest", h.Suggest)
		places.GET("/:id", h.GetPlace)
		places.PATCH("/:id", h.UpdatePlace)
		places.PUT("/:id/favorite", h.SetFavorite)
		places.DELETE("/:id", h.DeletePlace)
	}
}

// CreatePlace handles POST /api/v1/places.
func (h *PlaceHandler) CreatePlace(c *gin.Context) {
	ownerID, ok := httpx.GetUserID(c)
	if !ok {
		httpx.Error(c, errUnauthorized)
		return
	}

	var req application.CreatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	created, err := h.places.CreatePlace(c.Request.Context(), ownerID, req)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.Created(c, created)
}

// ListPlaces handles GET /api/v1/places.
func (h *PlaceHandler) ListPlaces(c *gin.Context) {
	ownerID, ok := httpx.GetUserID(c)
	if !ok {
		httpx.Error(c, errUnauthorized)
		return
	}

	places, err := h.places.ListPlaces(c.Request.Context(), ownerID)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.OK(c, places)
}

// Suggest handles GET /api/v1/places/suggest?text=...
func (h *PlaceHandler) Suggest(c *gin.Context) {
	if _, ok := httpx.GetUserID(c); !ok {
		httpx.Error(c, errUnauthorized)
		return
	}

	match, err := h.places.Suggest(c.Request.Context(), c.Query("text"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.OK(c, match)
}

// GetPlace handles GET /api/v1/places/:id.
func (h *PlaceHandler) GetPlace(c *gin.Context) {
	ownerID, ok := httpx.GetUserID(c)
	if !ok {
		httpx.Error(c, errUnauthorized)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpx.BadRequest(c, "invalid place ID")
		return
	}

	found, err := h.places.GetPlace(c.Request.Context(), ownerID, id)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.OK(c, found)
}

// UpdatePlace handles PATCH /api/v1/places/:id.
func (h *PlaceHandler) UpdatePlace(c *gin.Context) {
	ownerID, ok := httpx.GetUserID(c)
	if !ok {
		httpx.Error(c, errUnauthorized)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpx.BadRequest(c, "invalid place ID")
		return
	}

	var req application.UpdatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	if err := h.places.UpdatePlace(c.Request.Context(), ownerID, id, req); err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.NoContent(c)
}

// SetFavorite handles PUT /api/v1/places/:id/favorite.
func (h *PlaceHandler) SetFavorite(c *gin.Context) {
	ownerID, ok := httpx.GetUserID(c)
	if !ok {
		httpx.Error(c, errUnauthorized)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpx.BadRequest(c, "invalid place ID")
		return
	}

	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	if err := h.places.SetPlaceFavorite(c.Request.Context(), ownerID, id, req.Favorite); err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.NoContent(c)
}

// DeletePlace handles DELETE /api/v1/places/:id.
func (h *PlaceHandler) DeletePlace(c *gin.Context) {
	ownerID, ok := httpx.GetUserID(c)
	if !ok {
		httpx.Error(c, errUnauthorized)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpx.BadRequest(c, "invalid place ID")
		return
	}

	if err := h.places.DeletePlace(c.Request.Context(), ownerID, id); err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.NoContent(c)
}
