// internal/handlers/handlers.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/meridianmade/storefront/internal/repository"
	"github.com/meridianmade/storefront/internal/services"
	"github.com/meridianmade/storefront/internal/utils"
)

// respondServiceError maps service errors onto the response envelope:
// client-correctable failures become 4xx, everything else is a 5xx the client
// may retry.
func respondServiceError(c *gin.Context, err error, resource string) {
	switch {
	case services.IsValidationError(err):
		utils.BadRequestResponse(c, err.Error(), nil)
	case errors.Is(err, repository.ErrNotFound):
		utils.NotFoundResponse(c, resource)
	default:
		logrus.WithError(err).WithField("path", c.Request.URL.Path).
			Error("Unexpected service error")
		utils.InternalErrorResponse(c, "")
	}
}
