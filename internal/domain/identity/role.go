package identity

// Role is the fixed set of access profiles in the system. Roles are not
// user-definable; permissions per role are compiled in.
type Role string

const (
	RoleAdministrator Role = "administrator" // Full access, user management
	RoleSupervisor    Role = "supervisor"    // Portfolio oversight, payment review
	RoleAdvisor       Role = "advisor"       // Works an assigned client portfolio
	RoleClient        Role = "client"        // Self-service portal access
)

// AllRoles lists every assignable role
var AllRoles = []Role{RoleAdministrator, RoleSupervisor, RoleAdvisor, RoleClient}

// IsValid checks if the role is one of the fixed profiles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdministrator, RoleSupervisor, RoleAdvisor, RoleClient:
		return true
	}
	return false
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// Permission identifies an operation grant checked by the HTTP layer
type Permission string

const (
	PermissionClientsRead      Permission = "clients:read"
	PermissionClientsWrite     Permission = "clients:write"
	PermissionDebtsRead        Permission = "debts:read"
	PermissionDebtsWrite       Permission = "debts:write"
	PermissionDelinquencyRead  Permission = "delinquency:read"
	PermissionDelinquencyWrite Permission = "delinquency:write"
	PermissionPaymentsRead     Permission = "payments:read"
	PermissionPaymentsWrite    Permission = "payments:write"
	PermissionPaymentsReview   Permission = "payments:review"
	PermissionAssignmentsRead  Permission = "assignments:read"
	PermissionAssignmentsWrite Permission = "assignments:write"
	PermissionCreditRead       Permission = "credit:read"
	PermissionCreditWrite      Permission = "credit:write"
	PermissionEvaluationsRead  Permission = "evaluations:read"
	PermissionEvaluationsWrite Permission = "evaluations:write"
	PermissionReportsRead      Permission = "reports:read"
	PermissionUsersRead        Permission = "users:read"
	PermissionUsersWrite       Permission = "users:write"
	PermissionPortalRead       Permission = "portal:read"
)

// rolePermissions maps each role to the operations it may perform.
// Administrators are handled separately: they hold every permission.
var rolePermissions = map[Role][]Permission{
	RoleSupervisor: {
		PermissionClientsRead,
		PermissionClientsWrite,
		PermissionDebtsRead,
		PermissionDebtsWrite,
		PermissionDelinquencyRead,
		PermissionDelinquencyWrite,
		PermissionPaymentsRead,
		PermissionPaymentsReview,
		PermissionAssignmentsRead,
		PermissionAssignmentsWrite,
		PermissionCreditRead,
		PermissionCreditWrite,
		PermissionEvaluationsRead,
		PermissionEvaluationsWrite,
		PermissionReportsRead,
	},
	RoleAdvisor: {
		PermissionClientsRead,
		PermissionDebtsRead,
		PermissionDelinquencyRead,
		PermissionDelinquencyWrite,
		PermissionPaymentsRead,
		PermissionPaymentsWrite,
		PermissionAssignmentsRead,
	},
	RoleClient: {
		PermissionPortalRead,
	},
}

// Permissions returns the operations granted to the role
func (r Role) Permissions() []Permission {
	if r == RoleAdministrator {
		all := make([]Permission, 0, 20)
		all = append(all,
			PermissionClientsRead, PermissionClientsWrite,
			PermissionDebtsRead, PermissionDebtsWrite,
			PermissionDelinquencyRead, PermissionDelinquencyWrite,
			PermissionPaymentsRead, PermissionPaymentsWrite, PermissionPaymentsReview,
			PermissionAssignmentsRead, PermissionAssignmentsWrite,
			PermissionCreditRead, PermissionCreditWrite,
			PermissionEvaluationsRead, PermissionEvaluationsWrite,
			PermissionReportsRead,
			PermissionUsersRead, PermissionUsersWrite,
			PermissionPortalRead,
		)
		return all
	}
	perms := rolePermissions[r]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// HasPermission checks whether the role grants the given operation
func (r Role) HasPermission(p Permission) bool {
	if r == RoleAdministrator {
		return true
	}
	for _, granted := range rolePermissions[r] {
		if granted == p {
			return true
		}
	}
	return false
}

// IsStaff reports whether the role belongs to back-office personnel
func (r Role) IsStaff() bool {
	return r == RoleAdministrator || r == RoleSupervisor || r == RoleAdvisor
}
