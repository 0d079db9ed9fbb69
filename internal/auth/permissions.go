package auth

import "github.com/spec-kit/job-portal/internal/domain"

// Section names an admin-panel capability area gated by the permission matrix.
type Section string

const (
	SectionAll          Section = "all"
	SectionUsers        Section = "users"
	SectionJobs         Section = "jobs"
	SectionEmployers    Section = "employers"
	SectionApplications Section = "applications"
	SectionSupport      Section = "support"
	SectionReports      Section = "reports"
	SectionSettings     Section = "settings"
)

// PermissionSet holds the boolean capabilities of a role. The zero value
// grants nothing, which is the fallback for unrecognized roles.
type PermissionSet struct {
	CanAccessAll          bool
	CanAccessUsers        bool
	CanAccessJobs         bool
	CanAccessEmployers    bool
	CanAccessApplications bool
	CanAccessSupport      bool
	CanAccessReports      bool
	CanAccessSettings     bool
}

// rolePermissions is static configuration; it is never mutated at runtime.
// Every enumerated role has an entry, non-admin roles deliberately carry the
// zero set.
var rolePermissions = map[domain.Role]PermissionSet{
	domain.RoleAdmin: {
		CanAccessAll:          true,
		CanAccessUsers:        true,
		CanAccessJobs:         true,
		CanAccessEmployers:    true,
		CanAccessApplications: true,
		CanAccessSupport:      true,
		CanAccessReports:      true,
		CanAccessSettings:     true,
	},
	domain.RoleSupportAdmin: {
		CanAccessUsers:        true,
		CanAccessApplications: true,
		CanAccessSupport:      true,
	},
	domain.RoleContentAdmin: {
		CanAccessJobs:      true,
		CanAccessEmployers: true,
		CanAccessReports:   true,
	},
	domain.RoleEmployer:  {},
	domain.RoleCandidate: {},
}

// sectionPriority fixes the order in which DefaultRedirectPath picks a
// landing section for roles without full access.
var sectionPriority = []struct {
	Section Section
	Path    string
}{
	{SectionUsers, "/admin/users"},
	{SectionJobs, "/admin/jobs"},
	{SectionEmployers, "/admin/employers"},
	{SectionApplications, "/admin/applications"},
	{SectionSupport, "/admin/support"},
	{SectionReports, "/admin/reports"},
	{SectionSettings, "/admin/settings"},
}

// GetPermissions returns the capability set for a role. Unknown roles get
// the zero set (fail-closed).
func GetPermissions(role domain.Role) PermissionSet {
	return rolePermissions[role]
}

// CanAccess reports whether the role may enter the named section. A role
// with CanAccessAll passes every section check.
func CanAccess(role domain.Role, section Section) bool {
	perms := GetPermissions(role)
	if perms.CanAccessAll {
		return true
	}
	switch section {
	case SectionAll:
		return perms.CanAccessAll
	case SectionUsers:
		return perms.CanAccessUsers
	case SectionJobs:
		return perms.CanAccessJobs
	case SectionEmployers:
		return perms.CanAccessEmployers
	case SectionApplications:
		return perms.CanAccessApplications
	case SectionSupport:
		return perms.CanAccessSupport
	case SectionReports:
		return perms.CanAccessReports
	case SectionSettings:
		return perms.CanAccessSettings
	}
	return false
}

// IsAdminRole reports whether the role belongs to the admin tier.
func IsAdminRole(role domain.Role) bool {
	switch role {
	case domain.RoleAdmin, domain.RoleSupportAdmin, domain.RoleContentAdmin:
		return true
	}
	return false
}

// DefaultRedirectPath computes where a just-authenticated or just-denied
// account should land: full-access admins go to the panel root, restricted
// admins to their first permitted section, business roles to their
// coming-soon pages, anything else back to login.
func DefaultRedirectPath(role domain.Role) string {
	perms := GetPermissions(role)
	if perms.CanAccessAll {
		return "/admin"
	}
	for _, entry := range sectionPriority {
		if CanAccess(role, entry.Section) {
			return entry.Path
		}
	}
	switch role {
	case domain.RoleEmployer:
		return "/auth/employer/coming-soon"
	case domain.RoleCandidate:
		return "/auth/candidate/coming-soon"
	}
	return "/auth/login"
}
