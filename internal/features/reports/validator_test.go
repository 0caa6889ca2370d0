package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/hbenali/childguard/pkg/errors"
)

func validCreateRequest() *CreateReportRequest {
	age := 7
	return &CreateReportRequest{
		ChildName:    "Jane Doe",
		ChildAge:     &age,
		Gender:       "female",
		Village:      "Antsirabe",
		IncidentType: "neglect",
		IncidentDate: "2026-08-10",
		Urgency:      "medium",
		Description:  "the child has been left unattended for days",
	}
}

func TestValidateCreateReportRequestValid(t *testing.T) {
	req := validCreateRequest()
	incidentDate, err := ValidateCreateReportRequest(req)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC), incidentDate)
	require.Equal(t, "antsirabe", req.Village)
}

func TestValidateCreateReportRequestAcceptsRFC3339(t *testing.T) {
	req := validCreateRequest()
	req.IncidentDate = "2026-08-10T14:30:00Z"
	incidentDate, err := ValidateCreateReportRequest(req)
	require.NoError(t, err)
	require.Equal(t, 14, incidentDate.Hour())
}

func TestValidateCreateReportRequestCollectsAllViolations(t *testing.T) {
	age := 25
	req := &CreateReportRequest{
		ChildName:    "   ",
		ChildAge:     &age,
		Gender:       "unknown",
		Village:      "",
		IncidentType: "gossip",
		IncidentDate: "not-a-date",
		Urgency:      "extreme",
		Description:  "too short",
	}

	_, err := ValidateCreateReportRequest(req)
	require.True(t, apperrors.IsValidation(err))

	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	for _, field := range []string{"childName", "childAge", "gender", "village", "incidentType", "incidentDate", "urgency", "description"} {
		require.Contains(t, ve.Fields, field)
	}
}

func TestValidateCreateReportRequestFieldRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateReportRequest)
		field  string
	}{
		{"missing child name", func(r *CreateReportRequest) { r.ChildName = "" }, "childName"},
		{"negative age", func(r *CreateReportRequest) { n := -1; r.ChildAge = &n }, "childAge"},
		{"age above 18", func(r *CreateReportRequest) { n := 19; r.ChildAge = &n }, "childAge"},
		{"missing incident date", func(r *CreateReportRequest) { r.IncidentDate = "" }, "incidentDate"},
		{"bad urgency", func(r *CreateReportRequest) { r.Urgency = "severe" }, "urgency"},
		{"short description", func(r *CreateReportRequest) { r.Description = "short" }, "description"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest()
			tc.mutate(req)

			_, err := ValidateCreateReportRequest(req)
			var ve *apperrors.ValidationError
			require.ErrorAs(t, err, &ve)
			require.Contains(t, ve.Fields, tc.field)
			require.Len(t, ve.Fields, 1)
		})
	}
}

func TestValidateCreateReportRequestNilAgeAllowed(t *testing.T) {
	req := validCreateRequest()
	req.ChildAge = nil
	_, err := ValidateCreateReportRequest(req)
	require.NoError(t, err)
}
