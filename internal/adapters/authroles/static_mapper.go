package authroles

import (
	domainauth "github.com/docai/flow-studio/internal/domain/auth"
)

// StaticRoleMapper maps IdP groups to application roles by simple string
// membership. Admin wins over creator, creator over user; members of no
// configured group fall back to the plain user role.
type StaticRoleMapper struct {
	AdminGroup   string
	CreatorGroup string
	UserGroup    string
}

func (m StaticRoleMapper) Map(groups []string) domainauth.Role {
	for _, g := range groups {
		if m.AdminGroup != "" && g == m.AdminGroup {
			return domainauth.RoleAdmin
		}
	}
	for _, g := range groups {
		if m.CreatorGroup != "" && g == m.CreatorGroup {
			return domainauth.RoleCreator
		}
	}
	return domainauth.RoleUser
}
