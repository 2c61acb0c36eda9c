package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smiledesk/dental-api/internal/authz"
	"github.com/smiledesk/dental-api/internal/handler"
	"github.com/smiledesk/dental-api/internal/model"
	"github.com/smiledesk/dental-api/pkg/metrics"
)

const (
	ContextUserID    = "userID"
	ContextClinicID  = "clinicID"
	ContextUserEmail = "userEmail"
	ContextGrants    = "grants"
)

// TokenValidator is the slice of the auth service the middleware needs.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*model.TokenClaims, error)
}

type AuthMiddleware struct {
	authService TokenValidator
	resolver    *authz.Resolver
	metrics     *metrics.Metrics
}

func NewAuthMiddleware(authService TokenValidator, resolver *authz.Resolver) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		resolver:    resolver,
	}
}

// WithMetrics enables authorization outcome counters.
func (m *AuthMiddleware) WithMetrics(mt *metrics.Metrics) *AuthMiddleware {
	m.metrics = mt
	return m
}

// Authenticate verifies the JWT token and sets user info in context
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid authorization format"))
			c.Abort()
			return
		}

		claims, err := m.authService.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID.String())
		c.Set(ContextClinicID, claims.ClinicID.String())
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextGrants, claims.Grants())
		c.Next()
	}
}

// RequireAccess enforces an access requirement against the grants set by
// Authenticate. A declared permissions requirement is authoritative; the
// roles list is only the legacy fallback.
func (m *AuthMiddleware) RequireAccess(req authz.Requirement) gin.HandlerFunc {
	return func(c *gin.Context) {
		grants := grantsFromContext(c)
		if !m.resolver.Evaluate(req, grants) {
			if m.metrics != nil {
				m.metrics.AccessDenied.WithLabelValues(c.FullPath()).Inc()
			}
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("permission denied"))
			c.Abort()
			return
		}
		if m.metrics != nil {
			m.metrics.AccessGranted.WithLabelValues(c.FullPath()).Inc()
		}
		c.Next()
	}
}

// RequireAny allows the request when any one of the permissions is granted.
func (m *AuthMiddleware) RequireAny(permissions ...string) gin.HandlerFunc {
	return m.RequireAccess(authz.Requirement{
		Permissions: permissions,
		Combinator:  authz.CombinatorAny,
	})
}

// RequireAll allows the request only when every permission is granted.
func (m *AuthMiddleware) RequireAll(permissions ...string) gin.HandlerFunc {
	return m.RequireAccess(authz.Requirement{
		Permissions: permissions,
		Combinator:  authz.CombinatorAll,
	})
}

// RequireRoles is the legacy role-based guard for routes that have not
// moved to fine-grained permissions yet.
func (m *AuthMiddleware) RequireRoles(roles ...string) gin.HandlerFunc {
	return m.RequireAccess(authz.Requirement{Roles: roles})
}

func grantsFromContext(c *gin.Context) []string {
	v, exists := c.Get(ContextGrants)
	if !exists {
		return nil
	}
	grants, ok := v.([]string)
	if !ok {
		return nil
	}
	return grants
}
