// middleware/authorize.go

package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/warden/logging"
	"github.com/dev-mohitbeniwal/warden/model"
)

// Authorizer decides authorization requests. Satisfied by *warden.Client.
type Authorizer interface {
	Authorize(ctx context.Context, req *model.AuthorizationRequest) error
}

// RequestBuilder assembles the authorization request for one HTTP request,
// typically from a principal placed in the context by an authentication
// middleware.
type RequestBuilder func(c *gin.Context) (*model.AuthorizationRequest, error)

// PrincipalKey is the context key under which the middleware stores the
// authorized principal for downstream handlers.
const PrincipalKey = "warden.principal"

// Authorize guards a route group: requests whose authorization fails are
// rejected with 403, malformed ones with 400.
func Authorize(authorizer Authorizer, build RequestBuilder) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := build(c)
		if err != nil {
			logger.Warn("Failed to build authorization request",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid authorization request"})
			c.Abort()
			return
		}

		if err := authorizer.Authorize(c.Request.Context(), req); err != nil {
			logger.Warn("Access denied",
				zap.Error(err),
				zap.String("login", req.Principal.Account.Login),
				zap.String("action", req.Action),
				zap.String("path", c.Request.URL.Path))
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set(PrincipalKey, req.Principal)
		c.Next()
	}
}
