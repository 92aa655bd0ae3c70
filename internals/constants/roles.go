package constants

// Role values carried in the JWT "role" claim. Uppercase to match what the
// frontend routes on.
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleStaff   = "STAFF"
	RoleChef    = "CHEF"
)

// Error message templates for role middleware
const (
	ErrOnlyManagersCanAccess = "Only managers or admins may access %s."
	ErrOnlyChefsCanAccess    = "Only chefs may access %s."
	ErrOnlyAdminsCanAccess   = "Only admins may access %s."
)

var (
	AllRoles = []string{
		RoleAdmin,
		RoleManager,
		RoleStaff,
		RoleChef,
	}

	// Roles the manager dashboard may administer (accounts listing excludes ADMIN)
	ManageableRoles = []string{
		RoleManager,
		RoleStaff,
		RoleChef,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
