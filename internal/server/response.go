package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mtslabs/mts/internal/service"
	"github.com/mtslabs/mts/internal/store"
)

// abortWithError maps service and store errors onto HTTP statuses: missing
// rows are 404, constraint collisions are 409, rejected input is 400 and
// everything else is a 500 that only reaches the log in full.
func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "the requested resource could not be found"})
	case errors.Is(err, store.ErrNotUnique),
		errors.Is(err, store.ErrForeignKey),
		errors.Is(err, store.ErrConstraint):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNameEmpty),
		errors.Is(err, service.ErrNameTooLong),
		errors.Is(err, service.ErrTitleTooLong),
		errors.Is(err, service.ErrNegativeSq),
		errors.Is(err, service.ErrDuplicateSq):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, service.ErrInvalidToken):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotAdmin):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		logrus.Errorf("internal error: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "the server has encountered an internal error"})
	}
}
