package domain

// Role is the closed set of caller roles.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleZoneAdmin  Role = "zone_admin"
	RoleNormalUser Role = "normal_user"
)

// Valid reports whether the role is a member of the closed enum.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleZoneAdmin, RoleNormalUser:
		return true
	}
	return false
}

// ResourceCategory names a protected resource class.
type ResourceCategory string

const (
	CategoryPlots ResourceCategory = "plots"
	CategoryZones ResourceCategory = "zones"
	CategoryUsers ResourceCategory = "users"
)

// AccessLevel is the access granted for a resource category.
type AccessLevel string

const (
	AccessNone  AccessLevel = "none"
	AccessRead  AccessLevel = "read"
	AccessWrite AccessLevel = "write"
)

// Includes reports whether the granted level satisfies the required one.
// Write access subsumes read.
func (a AccessLevel) Includes(required AccessLevel) bool {
	switch required {
	case AccessRead:
		return a == AccessRead || a == AccessWrite
	case AccessWrite:
		return a == AccessWrite
	}
	return false
}

// PermissionSet maps resource categories to granted access levels.
// Derived from the role at issuance, never client-supplied.
type PermissionSet map[ResourceCategory]AccessLevel
