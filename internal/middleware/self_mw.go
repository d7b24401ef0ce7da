package middleware

import (
	"messagely/internal/apperror"
	"messagely/internal/policy"

	"github.com/gin-gonic/gin"
)

// EnsureCorrectUser only lets the authenticated user through to routes
// whose :param names them. Must run after JWTAuthMiddleware.
func EnsureCorrectUser(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !policy.CanViewUser(CurrentUser(c), c.Param(param)) {
			abortWith(c, apperror.Forbidden("Cannot access other users' data"))
			return
		}
		c.Next()
	}
}
