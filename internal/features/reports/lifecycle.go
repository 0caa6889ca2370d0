package reports

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hbenali/childguard/internal/features/auth"
	apperrors "github.com/hbenali/childguard/pkg/errors"
)

// History actions. One entry is appended per legal transition.
const (
	ActionCreated       = "report_created"
	ActionClassified    = "classification"
	ActionAssigned      = "assignment"
	ActionStepStarted   = "workflow_step_started"
	ActionStepCompleted = "workflow_step_completed"
	ActionDecision      = "decision"
)

// urgencyDeadlineDays is the per-urgency threshold after which an open
// report is flagged overdue.
var urgencyDeadlineDays = map[UrgencyLevel]int{
	UrgencyLow:      30,
	UrgencyMedium:   14,
	UrgencyCritical: 3,
}

// classificationStatus maps each classification to the status it drives.
var classificationStatus = map[ClassificationType]Status{
	ClassificationSafeguarding:  StatusSafeguarding,
	ClassificationTakenInCharge: StatusTakenInCharge,
	ClassificationFalseReport:   StatusFalseReport,
}

// classifiableStatuses are the only statuses from which classification
// (and assignment) is legal.
var classifiableStatuses = []Status{StatusPending, StatusInProgress}

// The six fixed case-management stages.
var workflowTemplates = []struct {
	Title       string
	Description string
}{
	{"Initial review", "Review the report and confirm the information provided"},
	{"Information gathering", "Collect statements and supporting evidence"},
	{"Risk assessment", "Evaluate the immediate risk to the child"},
	{"Intervention plan", "Define the protection measures to put in place"},
	{"Implementation and follow-up", "Carry out the plan and track progress"},
	{"Case review and closure", "Review outcomes and prepare the case for closure"},
}

// WorkflowStepCount is fixed; step numbers run 1..6.
const WorkflowStepCount = 6

// GenerateReportID builds the human-readable identifier for the given
// month and 1-based monthly sequence, e.g. SOS-202608-0007.
func GenerateReportID(t time.Time, seq int) string {
	return fmt.Sprintf("SOS-%d%02d-%04d", t.Year(), int(t.Month()), seq)
}

// NewWorkflow returns the fixed six pending steps of a fresh report.
func NewWorkflow() []WorkflowStep {
	steps := make([]WorkflowStep, 0, WorkflowStepCount)
	for i, tmpl := range workflowTemplates {
		steps = append(steps, WorkflowStep{
			StepNumber:  i + 1,
			Title:       tmpl.Title,
			Description: tmpl.Description,
			Status:      StepPending,
		})
	}
	return steps
}

// NewReport constructs a pending report from an already-validated request.
// The history starts with exactly one entry attributed to the declarant.
func NewReport(req *CreateReportRequest, incidentDate time.Time, declarantID primitive.ObjectID, reportID string, now time.Time) *Report {
	return &Report{
		ReportID:     reportID,
		DeclarantID:  declarantID,
		IsAnonymous:  req.IsAnonymous,
		ChildName:    req.ChildName,
		ChildAge:     req.ChildAge,
		Gender:       Gender(req.Gender),
		Village:      req.Village,
		Program:      req.Program,
		IncidentType: IncidentType(req.IncidentType),
		IncidentDate: incidentDate,
		Urgency:      UrgencyLevel(req.Urgency),
		Description:  req.Description,
		OffenderName: req.OffenderName,
		OffenderRole: req.OffenderRole,
		Attachments:  []Attachment{},
		Status:       StatusPending,
		Workflow:     NewWorkflow(),
		History: []HistoryEntry{{
			Action:  ActionCreated,
			ActorID: declarantID,
			At:      now,
			Details: "report filed",
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DaysSinceCreation returns whole days elapsed since the report was filed.
func DaysSinceCreation(r *Report, now time.Time) int {
	days := int(now.Sub(r.CreatedAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// IsOverdue reports whether the report has been open longer than its
// urgency deadline. Always false once closed.
func IsOverdue(r *Report, now time.Time) bool {
	if r.Status == StatusClosed {
		return false
	}
	deadline, ok := urgencyDeadlineDays[r.Urgency]
	if !ok {
		deadline = urgencyDeadlineDays[UrgencyLow]
	}
	return DaysSinceCreation(r, now) > deadline
}

// PriorityForUrgency maps the report urgency to a notification priority.
func PriorityForUrgency(u UrgencyLevel) string {
	switch u {
	case UrgencyCritical:
		return "urgent"
	case UrgencyMedium:
		return "high"
	default:
		return "normal"
	}
}

func statusAllowed(s Status, allowed []Status) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}

func appendHistory(r *Report, action string, actorID primitive.ObjectID, details string, now time.Time) {
	r.History = append(r.History, HistoryEntry{
		Action:  action,
		ActorID: actorID,
		At:      now,
		Details: details,
	})
	r.UpdatedAt = now
}

// Classify applies an analyst's classification. Legal only while the
// report is pending or in progress; the classification drives the status.
func Classify(r *Report, actor *auth.User, classification ClassificationType, notes string, now time.Time) error {
	if !actor.Role.CanClassify() {
		return apperrors.Forbidden(string(actor.Role), "classify report")
	}

	newStatus, ok := classificationStatus[classification]
	if !ok {
		ve := apperrors.NewValidationError()
		ve.Add("classification", "classification must be one of: safeguarding, taken_in_charge, false_report")
		return ve
	}

	if !statusAllowed(r.Status, classifiableStatuses) {
		return apperrors.InvalidState("classify report", string(r.Status))
	}

	r.Classification = &Classification{
		Type:  classification,
		By:    actor.ID,
		At:    now,
		Notes: notes,
	}
	r.Status = newStatus
	appendHistory(r, ActionClassified, actor.ID, fmt.Sprintf("classified as %s", classification), now)
	return nil
}

// Assign sets the responsible analyst and moves the report to in_progress.
// Reassignment while already in progress is allowed and simply swaps the
// assignee.
func Assign(r *Report, actor *auth.User, target *auth.User, now time.Time) error {
	if !actor.Role.CanClassify() {
		return apperrors.Forbidden(string(actor.Role), "assign report")
	}

	if target == nil {
		return apperrors.NotFoundf("analyst")
	}
	if !target.IsActive || !target.Role.IsAnalyst() {
		ve := apperrors.NewValidationError()
		ve.Add("analystId", "target must be an active analyst")
		return ve
	}

	if !statusAllowed(r.Status, classifiableStatuses) {
		return apperrors.InvalidState("assign report", string(r.Status))
	}

	r.AssignedTo = &target.ID
	r.AssignedAt = &now
	r.Status = StatusInProgress
	appendHistory(r, ActionAssigned, actor.ID, fmt.Sprintf("assigned to %s", target.FullName()), now)
	return nil
}

func findStep(r *Report, stepNumber int) *WorkflowStep {
	for i := range r.Workflow {
		if r.Workflow[i].StepNumber == stepNumber {
			return &r.Workflow[i]
		}
	}
	return nil
}

// StartStep moves one workflow step from pending to in progress. Steps are
// not required to complete in order; starting step 3 before step 1 is
// legal.
func StartStep(r *Report, actor *auth.User, stepNumber int, now time.Time) error {
	if stepNumber < 1 || stepNumber > WorkflowStepCount {
		ve := apperrors.NewValidationError()
		ve.Add("stepNumber", fmt.Sprintf("step number must be between 1 and %d", WorkflowStepCount))
		return ve
	}

	if r.Status == StatusClosed {
		return apperrors.InvalidState("start workflow step", string(r.Status))
	}

	step := findStep(r, stepNumber)
	if step == nil {
		return apperrors.NotFoundf("workflow step")
	}
	if step.Status != StepPending {
		return apperrors.InvalidState(fmt.Sprintf("start step %d", stepNumber), string(step.Status))
	}

	step.Status = StepInProgress
	step.StartedAt = &now
	appendHistory(r, ActionStepStarted, actor.ID, fmt.Sprintf("started step %d: %s", stepNumber, step.Title), now)
	return nil
}

// CompleteStep finishes an in-progress workflow step.
func CompleteStep(r *Report, actor *auth.User, stepNumber int, notes string, now time.Time) error {
	if stepNumber < 1 || stepNumber > WorkflowStepCount {
		ve := apperrors.NewValidationError()
		ve.Add("stepNumber", fmt.Sprintf("step number must be between 1 and %d", WorkflowStepCount))
		return ve
	}

	step := findStep(r, stepNumber)
	if step == nil || step.Status != StepInProgress {
		current := string(StepPending)
		if step != nil {
			current = string(step.Status)
		}
		return apperrors.InvalidState(fmt.Sprintf("complete step %d", stepNumber), current)
	}

	step.Status = StepCompleted
	step.CompletedAt = &now
	step.CompletedBy = &actor.ID
	step.Notes = notes
	appendHistory(r, ActionStepCompleted, actor.ID, fmt.Sprintf("completed step %d: %s", stepNumber, step.Title), now)
	return nil
}

// Decide records the final disposition. A close decision makes the report
// terminal; closed reports reject any further decision.
func Decide(r *Report, actor *auth.User, decisionType DecisionType, details string, now time.Time) error {
	if !actor.Role.CanDecide() {
		return apperrors.Forbidden(string(actor.Role), "issue decision")
	}

	switch decisionType {
	case DecisionValidate, DecisionEscalate, DecisionClose:
	default:
		ve := apperrors.NewValidationError()
		ve.Add("decision", "decision must be one of: validate, escalate, close")
		return ve
	}

	if r.Status == StatusClosed {
		return apperrors.InvalidState("issue decision", string(r.Status))
	}

	r.Decision = &Decision{
		Type:    decisionType,
		Details: details,
		By:      actor.ID,
		At:      now,
	}
	if decisionType == DecisionClose {
		r.Status = StatusClosed
	}
	appendHistory(r, ActionDecision, actor.ID, fmt.Sprintf("decision: %s", decisionType), now)
	return nil
}

// ProjectedStepStatus reports a step whose deadline has passed and which
// is not completed as overdue. Read-time only; the stored value is never
// rewritten.
func ProjectedStepStatus(step *WorkflowStep, now time.Time) StepStatus {
	if step.Status != StepCompleted && step.Deadline != nil && now.After(*step.Deadline) {
		return StepOverdue
	}
	return step.Status
}

// View builds the redacted, computed projection of a report for a viewer.
// The declarant of an anonymous report is hidden from everyone except the
// author and privileged roles.
func View(r *Report, viewer *auth.User, now time.Time) ReportView {
	view := ReportView{
		Report:            *r,
		DaysSinceCreation: DaysSinceCreation(r, now),
		IsOverdue:         IsOverdue(r, now),
	}

	view.Workflow = make([]WorkflowStep, len(r.Workflow))
	copy(view.Workflow, r.Workflow)
	for i := range view.Workflow {
		view.Workflow[i].Status = ProjectedStepStatus(&view.Workflow[i], now)
	}

	if !r.IsAnonymous || viewer.ID == r.DeclarantID || viewer.Role.CanViewIdentity() {
		id := r.DeclarantID
		view.DeclarantID = &id
	}
	return view
}
