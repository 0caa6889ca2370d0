package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hbenali/childguard/internal/features/auth"
)

func TestListFilterRestrictsDeclarants(t *testing.T) {
	for _, role := range []auth.Role{auth.RoleMother, auth.RoleAunt, auth.RoleEducator} {
		viewer := testUser(role)
		filter := ListFilter(viewer, ListQuery{})
		require.Equal(t, viewer.ID, filter["declarantId"], "role %s", role)
	}
}

func TestListFilterDeclarantRestrictionSurvivesExplicitFilters(t *testing.T) {
	viewer := testUser(auth.RoleMother)
	filter := ListFilter(viewer, ListQuery{Status: "pending", Village: "Antsirabe"})

	require.Equal(t, viewer.ID, filter["declarantId"])
	require.Equal(t, "pending", filter["status"])
	require.Equal(t, "antsirabe", filter["village"])
}

func TestListFilterPrivilegedRolesSeeEverything(t *testing.T) {
	for _, role := range []auth.Role{auth.RolePsychologist, auth.RoleDirector, auth.RoleAdmin} {
		filter := ListFilter(testUser(role), ListQuery{})
		require.NotContains(t, filter, "declarantId", "role %s", role)
	}
}

func TestListFilterOptionalFields(t *testing.T) {
	filter := ListFilter(testUser(auth.RoleDirector), ListQuery{
		Status:       "in_progress",
		Urgency:      "critical",
		IncidentType: "abuse",
	})

	require.Equal(t, "in_progress", filter["status"])
	require.Equal(t, "critical", filter["urgency"])
	require.Equal(t, "abuse", filter["incidentType"])
	require.NotContains(t, filter, "village")
}

func TestCanRead(t *testing.T) {
	now := time.Now().UTC()
	declarant := testUser(auth.RoleMother)
	r := testReport(t, declarant, UrgencyLow, now)

	require.True(t, CanRead(declarant, r))

	other := testUser(auth.RoleAunt)
	other.ID = primitive.NewObjectID()
	require.False(t, CanRead(other, r))

	require.True(t, CanRead(testUser(auth.RolePsychologist), r))
	require.True(t, CanRead(testUser(auth.RoleDirector), r))
}
