package domain

// Role represents a user role in the system
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleManager Role = "Manager"
	RoleStaff   Role = "Staff"
	RoleUser    Role = "User"
)

// ParseRole validates a role string from a request
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleStaff, RoleUser:
		return Role(s), true
	}
	return "", false
}

// AuthenticatedUser carries the identity extracted from a verified token
type AuthenticatedUser struct {
	ID   uint
	Name string
	Role Role
}

// IsStaff reports whether the role may operate the POS surface
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleStaff
}
