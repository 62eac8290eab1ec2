package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JayR61/congregation-connect/internal/middleware"
	"github.com/JayR61/congregation-connect/internal/models"
	appErrors "github.com/JayR61/congregation-connect/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	return middleware.ClaimsFromContext(c)
}

// actorFromContext returns the caller; the zero Actor when unauthenticated.
func actorFromContext(c *gin.Context) models.Actor {
	return claimsFromContext(c).Actor()
}

func invalidPayload(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message)
}
