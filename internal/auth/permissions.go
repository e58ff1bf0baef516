package auth

import "github.com/spec-kit/plot-service/internal/domain"

// permissionTable is the fixed role-to-permission mapping. It is a total
// function of the role: every valid role has an entry for every category.
var permissionTable = map[domain.Role]domain.PermissionSet{
	domain.RoleSuperAdmin: {
		domain.CategoryPlots: domain.AccessWrite,
		domain.CategoryZones: domain.AccessWrite,
		domain.CategoryUsers: domain.AccessWrite,
	},
	domain.RoleZoneAdmin: {
		domain.CategoryPlots: domain.AccessWrite,
		domain.CategoryZones: domain.AccessWrite,
		domain.CategoryUsers: domain.AccessNone,
	},
	domain.RoleNormalUser: {
		domain.CategoryPlots: domain.AccessRead,
		domain.CategoryZones: domain.AccessRead,
		domain.CategoryUsers: domain.AccessNone,
	},
}

// PermissionsForRole derives the permission set for a role. Unknown roles
// get an all-none set, keeping the function total.
func PermissionsForRole(role domain.Role) domain.PermissionSet {
	perms := domain.PermissionSet{
		domain.CategoryPlots: domain.AccessNone,
		domain.CategoryZones: domain.AccessNone,
		domain.CategoryUsers: domain.AccessNone,
	}
	for category, level := range permissionTable[role] {
		perms[category] = level
	}
	return perms
}

// DenyReason explains a negative authorization decision.
type DenyReason string

const (
	DenyInsufficientPermission DenyReason = "insufficient_permission"
	DenyZoneMismatch           DenyReason = "zone_mismatch"
)

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

// Allow is the positive decision.
var Allow = Decision{Allowed: true}

func deny(reason DenyReason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Authorize evaluates whether the claims permit the required access on a
// resource category, optionally scoped to a target zone. targetZone may be
// empty when the operation has no zone target.
//
// Unknown categories are denied outright. The zone check runs only after
// the base permission check passes: zone admins are restricted to their own
// zone for both reads and writes, while super admins and normal users are
// never zone-restricted.
func Authorize(claims *Claims, category domain.ResourceCategory, required domain.AccessLevel, targetZone string) Decision {
	if claims == nil {
		return deny(DenyInsufficientPermission)
	}
	granted, ok := claims.Permissions[category]
	if !ok || !granted.Includes(required) {
		return deny(DenyInsufficientPermission)
	}
	if claims.Role == domain.RoleZoneAdmin && targetZone != "" && targetZone != claims.Zone {
		return deny(DenyZoneMismatch)
	}
	return Allow
}
