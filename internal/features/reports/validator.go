package reports

import (
	"strings"
	"time"

	apperrors "github.com/hbenali/childguard/pkg/errors"
)

const minDescriptionLength = 10

// ValidateCreateReportRequest validates every field and returns a
// ValidationError listing all violations, never just the first. On
// success it also returns the parsed incident date.
func ValidateCreateReportRequest(req *CreateReportRequest) (time.Time, error) {
	req.ChildName = strings.TrimSpace(req.ChildName)
	req.Village = strings.TrimSpace(strings.ToLower(req.Village))
	req.Program = strings.TrimSpace(req.Program)
	req.Description = strings.TrimSpace(req.Description)
	req.OffenderName = strings.TrimSpace(req.OffenderName)
	req.OffenderRole = strings.TrimSpace(req.OffenderRole)

	ve := apperrors.NewValidationError()

	if req.ChildName == "" {
		ve.Add("childName", "child name is required")
	}
	if req.ChildAge != nil && (*req.ChildAge < 0 || *req.ChildAge > 18) {
		ve.Add("childAge", "age must be between 0 and 18")
	}
	switch Gender(req.Gender) {
	case GenderMale, GenderFemale, GenderOther:
	default:
		ve.Add("gender", "gender must be one of: male, female, other")
	}
	if req.Village == "" {
		ve.Add("village", "village is required")
	}
	switch IncidentType(req.IncidentType) {
	case IncidentHealth, IncidentBehavior, IncidentViolence, IncidentNeglect, IncidentAbuse, IncidentOther:
	default:
		ve.Add("incidentType", "incident type must be one of: health, behavior, violence, neglect, abuse, other")
	}

	var incidentDate time.Time
	if req.IncidentDate == "" {
		ve.Add("incidentDate", "incident date is required")
	} else {
		parsed, err := parseDate(req.IncidentDate)
		if err != nil {
			ve.Add("incidentDate", "incident date must be an RFC 3339 timestamp or YYYY-MM-DD")
		} else {
			incidentDate = parsed
		}
	}

	switch UrgencyLevel(req.Urgency) {
	case UrgencyLow, UrgencyMedium, UrgencyCritical:
	default:
		ve.Add("urgency", "urgency must be one of: low, medium, critical")
	}
	if len(req.Description) < minDescriptionLength {
		ve.Add("description", "description must be at least 10 characters")
	}

	if ve.HasErrors() {
		return time.Time{}, ve
	}
	return incidentDate, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
