package controllers

import (
	"errors"
	"log"
	"net/http"

	"caltrack/services"

	"github.com/gin-gonic/gin"
)

// Every response carries the same envelope: {success, data} on the happy
// path, {success, message} on failure.

func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": true, "message": message})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Unrecognized errors are logged with full context and returned as a generic
// failure.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		respondError(c, http.StatusNotFound, "record not found")
	case errors.Is(err, services.ErrAuthentication):
		respondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrConflict):
		respondError(c, http.StatusConflict, "the request conflicted with a concurrent update, please retry")
	default:
		log.Printf("%s %s: internal error: %v", c.Request.Method, c.Request.URL.Path, err)
		respondError(c, http.StatusInternalServerError, "something went wrong")
	}
}
