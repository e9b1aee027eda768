package domain

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("role must be %q or %q", RoleUser, RoleAdmin)
	}
}

// AdminPolicy decides which signals grant admin access.
type AdminPolicy string

const (
	// AdminPolicyProviderSuperAdmin accepts the profile role or the identity provider's super-admin flag.
	AdminPolicyProviderSuperAdmin AdminPolicy = "allow_provider_super_admin"
	// AdminPolicyProfileRoleOnly accepts the profile role alone.
	AdminPolicyProfileRoleOnly AdminPolicy = "require_profile_role_only"
)

func ParseAdminPolicy(raw string) (AdminPolicy, error) {
	switch AdminPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", AdminPolicyProviderSuperAdmin:
		return AdminPolicyProviderSuperAdmin, nil
	case AdminPolicyProfileRoleOnly:
		return AdminPolicyProfileRoleOnly, nil
	default:
		return "", fmt.Errorf("unknown admin auth policy %q", raw)
	}
}

func (p AdminPolicy) Grants(profileRole Role, identity Identity) bool {
	if profileRole == RoleAdmin {
		return true
	}
	return p == AdminPolicyProviderSuperAdmin && identity.IsSuperAdmin
}
