package models

type UserRole string

const (
	OrgAdminRole  UserRole = "ORG_ADMIN_ROLE"
	OrgUserRole   UserRole = "ORG_USER_ROLE"
	UserRoleAdmin UserRole = "PLATFORM_ADMIN"
)

var roleHumanName = map[UserRole]string{
	OrgAdminRole:  "Organization administrator",
	OrgUserRole:   "Organization user",
	UserRoleAdmin: "Platform administrator",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsOrgAdmin() bool {
	return r == OrgAdminRole
}

func (r UserRole) IsPlatformAdmin() bool {
	return r == UserRoleAdmin
}

const SystemUser = "System"
