package domain

// Role is the closed set of user roles. Keeping it typed means the access
// policy can be a total function over (role, action) instead of ad hoc
// string comparisons in every handler.
type Role string

const (
	RoleClient  Role = "client"
	RoleSeller  Role = "seller"
	RoleCurator Role = "curator"
	RoleAdmin   Role = "admin"
)

// ValidRoles returns the set of valid user roles.
func ValidRoles() []Role {
	return []Role{RoleClient, RoleSeller, RoleCurator, RoleAdmin}
}

// IsValidRole checks whether the given role string is a valid user role.
func IsValidRole(role Role) bool {
	for _, r := range ValidRoles() {
		if r == role {
			return true
		}
	}
	return false
}

// RegistrableRoles are the roles a user may pick at signup. Admin accounts
// are only created by another admin.
func RegistrableRoles() []Role {
	return []Role{RoleClient, RoleSeller, RoleCurator}
}

func IsRegistrableRole(role Role) bool {
	for _, r := range RegistrableRoles() {
		if r == role {
			return true
		}
	}
	return false
}
