package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckPermission(t *testing.T) {
	r := NewResolver(nil)

	tests := []struct {
		name     string
		grants   []string
		required string
		want     bool
	}{
		{
			name:     "direct match",
			grants:   []string{PermViewPatient},
			required: PermViewPatient,
			want:     true,
		},
		{
			name:     "missing grant",
			grants:   []string{PermViewPatient},
			required: PermManagePatient,
			want:     false,
		},
		{
			name:     "admin bypass",
			grants:   []string{RoleAdmin},
			required: PermManageAccounting,
			want:     true,
		},
		{
			name:     "legacy name translated before checking",
			grants:   []string{PermViewAppointment},
			required: "VIEW_CALENDAR",
			want:     true,
		},
		{
			name:     "unknown key checked directly",
			grants:   []string{"CUSTOM_GRANT"},
			required: "CUSTOM_GRANT",
			want:     true,
		},
		{
			name:     "empty grant set",
			grants:   nil,
			required: PermViewPatient,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.CheckPermission(tt.grants, tt.required))
		})
	}
}

func TestCheckPermission_RemovedFeature(t *testing.T) {
	r := NewResolver(nil)

	// Even a user holding every schedule grant is denied a removed feature.
	grants := []string{PermManageSchedule, PermViewSchedule, "SHIFT_RENEWAL_MANAGE"}
	assert.False(t, r.CheckPermission(grants, "SHIFT_RENEWAL_MANAGE"))

	// Admin bypass still wins over the removed sentinel.
	assert.True(t, r.CheckPermission([]string{RoleAdmin}, "SHIFT_RENEWAL_MANAGE"))
}

func TestLegacyTranslationMatchesCurrentKey(t *testing.T) {
	r := NewResolver(nil)
	grants := []string{PermViewAppointment}

	for legacy, current := range DefaultMappingTable() {
		if current == PermissionRemoved {
			assert.False(t, r.CheckPermission(grants, legacy), legacy)
			continue
		}
		assert.Equal(t,
			r.CheckPermission(grants, current),
			r.CheckPermission(grants, legacy),
			"legacy %q must resolve like %q", legacy, current)
	}
}

func TestCheckAnyVsAllSemantics(t *testing.T) {
	r := NewResolver(nil)
	grants := []string{PermViewPatient}
	required := []string{PermViewPatient, PermManagePatient}

	assert.True(t, r.CheckAnyPermission(grants, required))
	assert.False(t, r.CheckAllPermissions(grants, required))
}

func TestEmptyGrantSetAlwaysDenied(t *testing.T) {
	r := NewResolver(nil)

	assert.False(t, r.CheckAnyPermission(nil, []string{PermViewPatient}))
	assert.False(t, r.CheckAllPermissions(nil, []string{PermViewPatient}))
	assert.False(t, r.CheckAnyPermission([]string{}, []string{PermViewPatient}))
	assert.False(t, r.CheckAllPermissions([]string{}, []string{PermViewPatient}))

	// Empty grants beats even an empty requirement list.
	assert.False(t, r.CheckAllPermissions(nil, nil))
}

func TestEmptyRequirementList(t *testing.T) {
	r := NewResolver(nil)
	grants := []string{PermViewPatient}

	// ALL over an empty list is vacuously true for a user with grants.
	assert.True(t, r.CheckAllPermissions(grants, nil))
	// ANY over an empty list has no candidate to match.
	assert.False(t, r.CheckAnyPermission(grants, nil))
}

func TestAdminBypassAllOperations(t *testing.T) {
	r := NewResolver(nil)
	grants := []string{RoleAdmin}
	required := []string{PermManageWarehouse, PermManageAccounting, "SHIFT_RENEWAL_MANAGE"}

	assert.True(t, r.CheckPermission(grants, PermManageBlog))
	assert.True(t, r.CheckAnyPermission(grants, required))
	assert.True(t, r.CheckAllPermissions(grants, required))
	assert.True(t, r.CheckAnyRole(grants, []string{"ROLE_MANAGER"}))
}

func TestEvaluatePriority(t *testing.T) {
	r := NewResolver(nil)

	// Permissions requirement is authoritative: the matching role must not
	// rescue a failing permission check.
	req := Requirement{
		Permissions: []string{PermManageAccounting},
		Combinator:  CombinatorAny,
		Roles:       []string{"ROLE_RECEPTIONIST"},
	}
	grants := []string{"ROLE_RECEPTIONIST", PermViewAppointment}
	assert.False(t, r.Evaluate(req, grants))

	// Roles are only consulted when no permissions were declared.
	legacy := Requirement{Roles: []string{"ROLE_RECEPTIONIST"}}
	assert.True(t, r.Evaluate(legacy, grants))
	assert.False(t, r.Evaluate(legacy, []string{PermViewAppointment}))
}

func TestEvaluateCombinators(t *testing.T) {
	r := NewResolver(nil)
	grants := []string{PermViewTreatmentPlan}

	anyReq := Requirement{
		Permissions: []string{PermViewTreatmentPlan, PermManageTreatmentPlan},
		Combinator:  CombinatorAny,
	}
	allReq := Requirement{
		Permissions: []string{PermViewTreatmentPlan, PermManageTreatmentPlan},
		Combinator:  CombinatorAll,
	}

	assert.True(t, r.Evaluate(anyReq, grants))
	assert.False(t, r.Evaluate(allReq, grants))

	// No declaration at all admits any authenticated user.
	assert.True(t, r.Evaluate(Requirement{}, grants))
}

func TestCustomMappingTable(t *testing.T) {
	r := NewResolver(MappingTable{
		"OLD_NAME": "NEW_NAME",
		"GONE":     PermissionRemoved,
	})

	assert.True(t, r.CheckPermission([]string{"NEW_NAME"}, "OLD_NAME"))
	assert.False(t, r.CheckPermission([]string{"GONE", "NEW_NAME"}, "GONE"))
}
