package models

// User roles
const (
	RoleAdmin = "admin" // Full access, admin panel
	RoleBeta  = "beta"  // Beta tester - skips email verification
	RoleUser  = "user"  // Regular user
)

// IsValidRole reports whether a role name is one of the known roles
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleBeta || role == RoleUser
}

// SkipsEmailVerification checks if a role may use the API before verifying
// its email address
func SkipsEmailVerification(role string) bool {
	return role == RoleAdmin || role == RoleBeta
}
