package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/job-portal/internal/auth"
	"github.com/spec-kit/job-portal/internal/domain"
)

func TestGetPermissionsUnknownRoleIsZero(t *testing.T) {
	perms := auth.GetPermissions(domain.Role("SOMETHING_ELSE"))
	assert.Equal(t, auth.PermissionSet{}, perms)
}

func TestCanAccessFailClosed(t *testing.T) {
	sections := []auth.Section{
		auth.SectionAll, auth.SectionUsers, auth.SectionJobs, auth.SectionEmployers,
		auth.SectionApplications, auth.SectionSupport, auth.SectionReports, auth.SectionSettings,
	}

	for _, role := range []domain.Role{domain.RoleCandidate, domain.RoleEmployer, domain.Role("UNKNOWN"), domain.Role("")} {
		for _, section := range sections {
			assert.False(t, auth.CanAccess(role, section), "role=%s section=%s", role, section)
		}
	}
}

func TestCanAccessAdminTiers(t *testing.T) {
	for _, section := range []auth.Section{auth.SectionUsers, auth.SectionJobs, auth.SectionSettings} {
		assert.True(t, auth.CanAccess(domain.RoleAdmin, section))
	}

	assert.True(t, auth.CanAccess(domain.RoleSupportAdmin, auth.SectionUsers))
	assert.True(t, auth.CanAccess(domain.RoleSupportAdmin, auth.SectionSupport))
	assert.False(t, auth.CanAccess(domain.RoleSupportAdmin, auth.SectionJobs))
	assert.False(t, auth.CanAccess(domain.RoleSupportAdmin, auth.SectionSettings))

	assert.True(t, auth.CanAccess(domain.RoleContentAdmin, auth.SectionJobs))
	assert.True(t, auth.CanAccess(domain.RoleContentAdmin, auth.SectionEmployers))
	assert.False(t, auth.CanAccess(domain.RoleContentAdmin, auth.SectionUsers))

	// Unknown section is denied even for the full-access role's tiers.
	assert.False(t, auth.CanAccess(domain.RoleSupportAdmin, auth.Section("billing")))
}

func TestIsAdminRole(t *testing.T) {
	assert.True(t, auth.IsAdminRole(domain.RoleAdmin))
	assert.True(t, auth.IsAdminRole(domain.RoleSupportAdmin))
	assert.True(t, auth.IsAdminRole(domain.RoleContentAdmin))
	assert.False(t, auth.IsAdminRole(domain.RoleEmployer))
	assert.False(t, auth.IsAdminRole(domain.RoleCandidate))
	assert.False(t, auth.IsAdminRole(domain.Role("UNKNOWN")))
}

func TestDefaultRedirectPath(t *testing.T) {
	tests := []struct {
		role domain.Role
		want string
	}{
		{domain.RoleAdmin, "/admin"},
		{domain.RoleSupportAdmin, "/admin/users"},
		{domain.RoleContentAdmin, "/admin/jobs"},
		{domain.RoleEmployer, "/auth/employer/coming-soon"},
		{domain.RoleCandidate, "/auth/candidate/coming-soon"},
		{domain.Role("UNKNOWN"), "/auth/login"},
		{domain.Role(""), "/auth/login"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, auth.DefaultRedirectPath(tt.role), "role=%s", tt.role)
	}
}
