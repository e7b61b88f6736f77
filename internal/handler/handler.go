package handler

import (
	"net/http"

	"github.com/al426285/mone-routing/internal/domain/apperr"
	"github.com/gin-gonic/gin"
)

var errUnauthorized = apperr.NewUnauthorized("missing or invalid credentials")

func errVehicleNotFound(name string) *apperr.Error {
	return apperr.NewNotFound("Vehicle", name)
}

// Health responds to liveness probes.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
