package reports

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/hbenali/childguard/internal/features/auth"
)

// ListFilter computes the server-side query filter for listing reports.
// Declarant-class viewers are always restricted to their own submissions;
// the restriction is a confidentiality boundary, so it is applied here and
// never left to the client. Privileged viewers see everything, narrowed by
// the optional explicit filters.
func ListFilter(viewer *auth.User, q ListQuery) bson.M {
	filter := bson.M{}

	if viewer.Role.IsDeclarant() {
		filter["declarantId"] = viewer.ID
	}

	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.Urgency != "" {
		filter["urgency"] = q.Urgency
	}
	if q.Village != "" {
		filter["village"] = strings.ToLower(q.Village)
	}
	if q.IncidentType != "" {
		filter["incidentType"] = q.IncidentType
	}

	return filter
}

// CanRead reports whether a viewer may fetch a single report. Same
// boundary as ListFilter: declarants read only what they filed.
func CanRead(viewer *auth.User, r *Report) bool {
	if viewer.Role.IsDeclarant() {
		return r.DeclarantID == viewer.ID
	}
	return true
}
