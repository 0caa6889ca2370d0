package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoleClasses(t *testing.T) {
	cases := []struct {
		role          Role
		declarant     bool
		analyst       bool
		decisionMaker bool
		canClassify   bool
	}{
		{RoleMother, true, false, false, false},
		{RoleAunt, true, false, false, false},
		{RoleEducator, true, false, false, false},
		{RolePsychologist, false, true, false, true},
		{RoleDirector, false, false, true, true},
		{RoleAdmin, false, false, true, true},
	}

	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			require.True(t, tc.role.Valid())
			require.Equal(t, tc.declarant, tc.role.IsDeclarant())
			require.Equal(t, tc.analyst, tc.role.IsAnalyst())
			require.Equal(t, tc.decisionMaker, tc.role.IsDecisionMaker())
			require.Equal(t, tc.canClassify, tc.role.CanClassify())
		})
	}
}

func TestInvalidRole(t *testing.T) {
	r := Role("psychologue")
	require.False(t, r.Valid())
	require.False(t, r.IsDeclarant())
	require.False(t, r.CanClassify())
	require.False(t, r.CanDecide())
}

func TestIdentityVisibility(t *testing.T) {
	require.False(t, RoleMother.CanViewIdentity())
	require.False(t, RoleEducator.CanViewIdentity())
	require.True(t, RolePsychologist.CanViewIdentity())
	require.True(t, RoleDirector.CanViewIdentity())
	require.True(t, RoleAdmin.CanViewIdentity())
}
