package authz

// RoleAdmin bypasses every fine-grained permission check. Roles and
// permissions travel in the same flat grant set, so the marker is checked
// alongside ordinary permissions.
const RoleAdmin = "ROLE_ADMIN"

// PermissionRemoved is the mapping sentinel for legacy permissions whose
// feature no longer exists. A requirement that translates to it is always
// denied, for every user.
const PermissionRemoved = "__REMOVED__"

// Current permission identifiers.
const (
	PermManageAppointment   = "MANAGE_APPOINTMENT"
	PermViewAppointment     = "VIEW_APPOINTMENT"
	PermManagePatient       = "MANAGE_PATIENT"
	PermViewPatient         = "VIEW_PATIENT"
	PermManageTreatmentPlan = "MANAGE_TREATMENT_PLAN"
	PermViewTreatmentPlan   = "VIEW_TREATMENT_PLAN"
	PermManageWarehouse     = "MANAGE_WAREHOUSE"
	PermViewWarehouse       = "VIEW_WAREHOUSE"
	PermManageAccounting    = "MANAGE_ACCOUNTING"
	PermViewAccounting      = "VIEW_ACCOUNTING"
	PermManageSchedule      = "MANAGE_SCHEDULE"
	PermViewSchedule        = "VIEW_SCHEDULE"
	PermManageLeave         = "MANAGE_LEAVE"
	PermManageOvertime      = "MANAGE_OVERTIME"
	PermManageEmployee      = "MANAGE_EMPLOYEE"
	PermViewEmployee        = "VIEW_EMPLOYEE"
	PermManageNotification  = "MANAGE_NOTIFICATION"
	PermManageBlog          = "MANAGE_BLOG"
)

// MappingTable translates a legacy permission name to its current
// equivalent, or to PermissionRemoved when the feature was dropped.
// The table is versioned configuration: built once at startup, handed to
// the resolver, and never mutated afterwards.
type MappingTable map[string]string

// DefaultMappingTable returns the mapping shipped with this release.
func DefaultMappingTable() MappingTable {
	return MappingTable{
		"APPOINTMENT_MANAGE":     PermManageAppointment,
		"APPOINTMENT_VIEW":       PermViewAppointment,
		"VIEW_CALENDAR":          PermViewAppointment,
		"PATIENT_MANAGE":         PermManagePatient,
		"PATIENT_VIEW":           PermViewPatient,
		"VIEW_PATIENT_RECORD":    PermViewPatient,
		"TREATMENT_MANAGE":       PermManageTreatmentPlan,
		"TREATMENT_VIEW":         PermViewTreatmentPlan,
		"INVENTORY_MANAGE":       PermManageWarehouse,
		"INVENTORY_VIEW":         PermViewWarehouse,
		"FINANCE_MANAGE":         PermManageAccounting,
		"FINANCE_VIEW":           PermViewAccounting,
		"SHIFT_MANAGE":           PermManageSchedule,
		"SHIFT_VIEW":             PermViewSchedule,
		"STAFF_MANAGE":           PermManageEmployee,
		"STAFF_VIEW":             PermViewEmployee,
		"LEAVE_MANAGE":           PermManageLeave,
		"OVERTIME_MANAGE":        PermManageOvertime,
		"SHIFT_RENEWAL_MANAGE":   PermissionRemoved,
		"SHIFT_RENEWAL_APPROVE":  PermissionRemoved,
		"LEGACY_REPORT_DOWNLOAD": PermissionRemoved,
	}
}
