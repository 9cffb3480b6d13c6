// middleware/authorize_test.go
package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	warden_errors "github.com/dev-mohitbeniwal/warden/errors"
	"github.com/dev-mohitbeniwal/warden/middleware"
	"github.com/dev-mohitbeniwal/warden/model"
)

type stubAuthorizer struct {
	err error
}

func (s stubAuthorizer) Authorize(ctx context.Context, req *model.AuthorizationRequest) error {
	return s.err
}

func buildRequest(c *gin.Context) (*model.AuthorizationRequest, error) {
	principal := &model.Principal{
		Account: &model.Account{UUID: "uuid-a", Login: "alice", ApprovedForProvisioning: true},
	}
	return model.NewAuthorizationRequest(principal, "read", &model.Resource{Owner: principal}, &model.Conditions{ActiveRoles: []string{}})
}

func newRouter(authorizer middleware.Authorizer, build middleware.RequestBuilder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/things", middleware.Authorize(authorizer, build), func(c *gin.Context) {
		principal, ok := c.Get(middleware.PrincipalKey)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "principal missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"login": principal.(*model.Principal).Account.Login})
	})
	return router
}

func TestAuthorizeMiddleware(t *testing.T) {
	t.Run("Allowed_SetsPrincipal", func(t *testing.T) {
		router := newRouter(stubAuthorizer{}, buildRequest)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/things", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"login": "alice"}`, recorder.Body.String())
	})

	t.Run("Denied_Returns403", func(t *testing.T) {
		router := newRouter(stubAuthorizer{err: warden_errors.ErrNoMatchingRoleTag}, buildRequest)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/things", nil))

		assert.Equal(t, http.StatusForbidden, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "error")
	})

	t.Run("BuilderError_Returns400", func(t *testing.T) {
		failing := func(c *gin.Context) (*model.AuthorizationRequest, error) {
			return nil, fmt.Errorf("no principal in context")
		}
		router := newRouter(stubAuthorizer{}, failing)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/things", nil))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
