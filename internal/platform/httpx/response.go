// Package httpx holds the HTTP response envelope and the gin middleware
// chain shared by all handlers.
package httpx

import (
	"net/http"

	"github.com/al426285/mone-routing/internal/domain/apperr"
	"github.com/gin-gonic/gin"
)

// envelope is the uniform response body.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *errorBody  `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OK writes a 200 response with data.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

// Created writes a 201 response with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, envelope{Success: true, Data: data})
}

// NoContent writes a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 response with a message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, envelope{
		Success: false,
		Error:   &errorBody{Code: string(apperr.CodeMissingField), Message: message},
	})
}

// Error maps a coded application error onto its HTTP status.
func Error(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), envelope{
		Success: false,
		Error: &errorBody{
			Code:    string(apperr.CodeOf(err)),
			Message: err.Error(),
		},
	})
}
