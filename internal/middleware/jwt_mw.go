package middleware

import (
	"errors"
	"net/http"
	"strings"

	"messagely/internal/apperror"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	AuthUserKey = "authUser"
	tokenField  = "_token"
)

// TokenVerifier resolves a bearer token to the username it was issued for
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// JWTAuthMiddleware rejects requests without a valid token with 401.
// The token is read from the Authorization header, then a _token query
// parameter, then a _token field in the JSON body.
func JWTAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := verifier.VerifyToken(extractToken(c))
		if err != nil {
			abortWith(c, err)
			return
		}

		c.Set(AuthUserKey, username)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return ""
		}
		return parts[1]
	}

	if token := c.Query(tokenField); token != "" {
		return token
	}

	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return ""
	}
	var body struct {
		Token string `json:"_token"`
	}
	// ShouldBindBodyWith caches the body so handlers can bind it again
	if err := c.ShouldBindBodyWith(&body, binding.JSON); err != nil {
		return ""
	}
	return body.Token
}

// CurrentUser returns the authenticated username, or "" outside JWTAuthMiddleware
func CurrentUser(c *gin.Context) string {
	return c.GetString(AuthUserKey)
}

func abortWith(c *gin.Context, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = apperror.Unauthorized("")
	}
	c.AbortWithStatusJSON(appErr.Status(), appErr.Response())
}
