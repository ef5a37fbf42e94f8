package middleware

import (
	"context"
	"net/http"

	"huddle/internal/services"
	"huddle/internal/transport/httpdto"
	"huddle/pkg/logger"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// Authenticate resolves the Authorization header on every request. Requests
// without Token credentials continue anonymously; malformed or unknown tokens
// are rejected with 401.
func Authenticate(authn *services.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := authn.Resolve(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			status := services.HTTPStatus(err)
			if status == http.StatusInternalServerError {
				_ = c.Error(err)
				c.AbortWithStatusJSON(status, httpdto.NewDetailResponse("internal server error"))
				return
			}
			unauthorized(c, err.Error())
			return
		}

		if p != nil {
			c.Set(principalKey, p)
			ctx := context.WithValue(c.Request.Context(), logger.MemberIdKey, p.Member.ID.String())
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// IsAuthenticated allows only requests that resolved to a principal.
func IsAuthenticated(p *services.Principal) bool {
	return p != nil
}

// Require guards a route with a permission predicate over the resolved
// principal. Anonymous requests failing it get 401.
func Require(allowed func(*services.Principal) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := PrincipalFromContext(c)
		if !allowed(p) {
			if p == nil {
				unauthorized(c, "Authentication credentials were not provided.")
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, httpdto.NewDetailResponse("You do not have permission to perform this action."))
			return
		}
		c.Next()
	}
}

// PrincipalFromContext returns the principal set by Authenticate.
func PrincipalFromContext(c *gin.Context) (*services.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*services.Principal)
	return p, ok && p != nil
}

func unauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", services.TokenKeyword)
	c.AbortWithStatusJSON(http.StatusUnauthorized, httpdto.NewDetailResponse(detail))
}
