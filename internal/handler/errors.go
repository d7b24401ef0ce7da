package handler

import (
	"errors"

	"messagely/internal/apperror"

	"github.com/gin-gonic/gin"
)

// respondError renders err as {"error": {"message", "status"}}.
// Anything that is not an *apperror.Error is an internal failure.
func respondError(c *gin.Context, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		_ = c.Error(err) // picked up by the request logger
		appErr = apperror.Internal()
	}
	c.AbortWithStatusJSON(appErr.Status(), appErr.Response())
}
