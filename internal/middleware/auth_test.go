package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/smiledesk/dental-api/internal/authz"
	"github.com/smiledesk/dental-api/internal/model"
)

type stubValidator struct {
	claims *model.TokenClaims
	err    error
}

func (s *stubValidator) ValidateToken(_ context.Context, _ string) (*model.TokenClaims, error) {
	return s.claims, s.err
}

func newTestRouter(validator TokenValidator, guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(validator, authz.NewResolver(nil))

	r := gin.New()
	r.GET("/protected", m.Authenticate(), guard, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doRequest(r *gin.Engine, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w
}

func claimsWith(roles, permissions []string) *model.TokenClaims {
	return &model.TokenClaims{
		UserID:      uuid.New(),
		Email:       "dentist@clinic.test",
		Roles:       roles,
		Permissions: permissions,
	}
}

func TestAuthenticateRejectsBadHeaders(t *testing.T) {
	m := NewAuthMiddleware(&stubValidator{err: errors.New("bad token")}, authz.NewResolver(nil))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", m.Authenticate(), func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "invalid token", header: "Bearer bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRequireAnyAllowsMatchingPermission(t *testing.T) {
	validator := &stubValidator{claims: claimsWith(nil, []string{authz.PermViewPatient})}
	m := NewAuthMiddleware(validator, authz.NewResolver(nil))
	r := newTestRouter(validator, m.RequireAny(authz.PermViewPatient, authz.PermManagePatient))

	assert.Equal(t, http.StatusOK, doRequest(r, "Bearer token").Code)
}

func TestRequireAllDeniesPartialGrants(t *testing.T) {
	validator := &stubValidator{claims: claimsWith(nil, []string{authz.PermViewPatient})}
	m := NewAuthMiddleware(validator, authz.NewResolver(nil))
	r := newTestRouter(validator, m.RequireAll(authz.PermViewPatient, authz.PermManagePatient))

	assert.Equal(t, http.StatusForbidden, doRequest(r, "Bearer token").Code)
}

func TestAdminRoleBypassesGuard(t *testing.T) {
	validator := &stubValidator{claims: claimsWith([]string{authz.RoleAdmin}, nil)}
	m := NewAuthMiddleware(validator, authz.NewResolver(nil))
	r := newTestRouter(validator, m.RequireAll(authz.PermManageAccounting, authz.PermManageWarehouse))

	assert.Equal(t, http.StatusOK, doRequest(r, "Bearer token").Code)
}

func TestPermissionsRequirementBeatsRoles(t *testing.T) {
	// User has the fallback role but not the declared permission: the
	// permissions requirement decides, so access is denied.
	validator := &stubValidator{claims: claimsWith([]string{"ROLE_RECEPTIONIST"}, nil)}
	m := NewAuthMiddleware(validator, authz.NewResolver(nil))
	r := newTestRouter(validator, m.RequireAccess(authz.Requirement{
		Permissions: []string{authz.PermManageAccounting},
		Combinator:  authz.CombinatorAny,
		Roles:       []string{"ROLE_RECEPTIONIST"},
	}))

	assert.Equal(t, http.StatusForbidden, doRequest(r, "Bearer token").Code)
}

func TestRequireRolesLegacyFallback(t *testing.T) {
	validator := &stubValidator{claims: claimsWith([]string{"ROLE_RECEPTIONIST"}, nil)}
	m := NewAuthMiddleware(validator, authz.NewResolver(nil))
	r := newTestRouter(validator, m.RequireRoles("ROLE_RECEPTIONIST", "ROLE_MANAGER"))

	assert.Equal(t, http.StatusOK, doRequest(r, "Bearer token").Code)
}

func TestRequireAccessDeniesRemovedLegacyPermission(t *testing.T) {
	validator := &stubValidator{claims: claimsWith(nil, []string{"SHIFT_RENEWAL_MANAGE"})}
	m := NewAuthMiddleware(validator, authz.NewResolver(nil))
	r := newTestRouter(validator, m.RequireAny("SHIFT_RENEWAL_MANAGE"))

	assert.Equal(t, http.StatusForbidden, doRequest(r, "Bearer token").Code)
}
