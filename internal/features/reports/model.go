package reports

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status is the primary state of a report.
type Status string

const (
	StatusPending       Status = "pending"
	StatusInProgress    Status = "in_progress"
	StatusTakenInCharge Status = "taken_in_charge"
	StatusSafeguarding  Status = "safeguarding"
	StatusFalseReport   Status = "false_report"
	StatusClosed        Status = "closed"
)

// Classification values an analyst may apply. Each maps to a status.
type ClassificationType string

const (
	ClassificationSafeguarding  ClassificationType = "safeguarding"
	ClassificationTakenInCharge ClassificationType = "taken_in_charge"
	ClassificationFalseReport   ClassificationType = "false_report"
)

// DecisionType is the final disposition issued by a decision-maker.
type DecisionType string

const (
	DecisionValidate DecisionType = "validate"
	DecisionEscalate DecisionType = "escalate"
	DecisionClose    DecisionType = "close"
)

type UrgencyLevel string

const (
	UrgencyLow      UrgencyLevel = "low"
	UrgencyMedium   UrgencyLevel = "medium"
	UrgencyCritical UrgencyLevel = "critical"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type IncidentType string

const (
	IncidentHealth   IncidentType = "health"
	IncidentBehavior IncidentType = "behavior"
	IncidentViolence IncidentType = "violence"
	IncidentNeglect  IncidentType = "neglect"
	IncidentAbuse    IncidentType = "abuse"
	IncidentOther    IncidentType = "other"
)

type StepStatus string

const (
	StepPending    StepStatus = "pending"
	StepInProgress StepStatus = "in_progress"
	StepCompleted  StepStatus = "completed"
	// StepOverdue is a read-time projection, never stored
	StepOverdue StepStatus = "overdue"
)

// WorkflowStep is one of the six fixed case-management stages, tracked
// independently of the top-level status.
type WorkflowStep struct {
	StepNumber  int                 `bson:"stepNumber" json:"stepNumber"`
	Title       string              `bson:"title" json:"title"`
	Description string              `bson:"description" json:"description"`
	Status      StepStatus          `bson:"status" json:"status"`
	StartedAt   *time.Time          `bson:"startedAt,omitempty" json:"startedAt,omitempty"`
	CompletedAt *time.Time          `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	Deadline    *time.Time          `bson:"deadline,omitempty" json:"deadline,omitempty"`
	Notes       string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CompletedBy *primitive.ObjectID `bson:"completedBy,omitempty" json:"completedBy,omitempty"`
}

// HistoryEntry is one line of the append-only audit trail. Entries are
// only ever pushed, never mutated or removed.
type HistoryEntry struct {
	Action  string             `bson:"action" json:"action"`
	ActorID primitive.ObjectID `bson:"actorId" json:"actorId"`
	At      time.Time          `bson:"at" json:"at"`
	Details string             `bson:"details,omitempty" json:"details,omitempty"`
}

// Attachment describes one uploaded file, as returned by the storage
// collaborator.
type Attachment struct {
	FileName     string `bson:"fileName" json:"fileName"`
	OriginalName string `bson:"originalName" json:"originalName"`
	MimeType     string `bson:"mimeType" json:"mimeType"`
	Size         int64  `bson:"size" json:"size"`
	URL          string `bson:"url" json:"url"`
}

type Classification struct {
	Type  ClassificationType `bson:"type" json:"type"`
	By    primitive.ObjectID `bson:"by" json:"by"`
	At    time.Time          `bson:"at" json:"at"`
	Notes string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

type Decision struct {
	Type    DecisionType       `bson:"type" json:"type"`
	Details string             `bson:"details,omitempty" json:"details,omitempty"`
	By      primitive.ObjectID `bson:"by" json:"by"`
	At      time.Time          `bson:"at" json:"at"`
}

// Report is a single case record.
type Report struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReportID    string             `bson:"reportId" json:"reportId"`
	DeclarantID primitive.ObjectID `bson:"declarantId" json:"declarantId"`
	IsAnonymous bool               `bson:"isAnonymous" json:"isAnonymous"`

	ChildName string `bson:"childName" json:"childName"`
	ChildAge  *int   `bson:"childAge,omitempty" json:"childAge,omitempty"`
	Gender    Gender `bson:"gender" json:"gender"`

	Village string `bson:"village" json:"village"`
	Program string `bson:"program,omitempty" json:"program,omitempty"`

	IncidentType IncidentType `bson:"incidentType" json:"incidentType"`
	IncidentDate time.Time    `bson:"incidentDate" json:"incidentDate"`
	Urgency      UrgencyLevel `bson:"urgency" json:"urgency"`
	Description  string       `bson:"description" json:"description"`
	OffenderName string       `bson:"offenderName,omitempty" json:"offenderName,omitempty"`
	OffenderRole string       `bson:"offenderRole,omitempty" json:"offenderRole,omitempty"`

	Attachments []Attachment `bson:"attachments" json:"attachments"`

	Status         Status              `bson:"status" json:"status"`
	Classification *Classification     `bson:"classification,omitempty" json:"classification,omitempty"`
	AssignedTo     *primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	AssignedAt     *time.Time          `bson:"assignedAt,omitempty" json:"assignedAt,omitempty"`
	Workflow       []WorkflowStep      `bson:"workflow" json:"workflow"`
	Decision       *Decision           `bson:"decision,omitempty" json:"decision,omitempty"`
	History        []HistoryEntry      `bson:"history" json:"history"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Request DTOs

type CreateReportRequest struct {
	IsAnonymous  bool   `json:"isAnonymous"`
	ChildName    string `json:"childName"`
	ChildAge     *int   `json:"childAge"`
	Gender       string `json:"gender"`
	Village      string `json:"village"`
	Program      string `json:"program"`
	IncidentType string `json:"incidentType"`
	IncidentDate string `json:"incidentDate"` // RFC 3339 or YYYY-MM-DD
	Urgency      string `json:"urgency"`
	Description  string `json:"description"`
	OffenderName string `json:"offenderName"`
	OffenderRole string `json:"offenderRole"`
}

type ClassifyRequest struct {
	Classification string `json:"classification" binding:"required"`
	Notes          string `json:"notes"`
}

type AssignRequest struct {
	AnalystID string `json:"analystId" binding:"required"`
}

type CompleteStepRequest struct {
	Notes string `json:"notes"`
}

type DecisionRequest struct {
	Decision string `json:"decision" binding:"required"`
	Details  string `json:"details"`
}

type ListQuery struct {
	Status       string `form:"status"`
	Urgency      string `form:"urgency"`
	Village      string `form:"village"`
	IncidentType string `form:"incidentType"`
	Page         int    `form:"page,default=1"`
	Limit        int    `form:"limit,default=20"`
}

// Response DTOs

// ReportView is the redacted, computed projection returned to clients.
// DeclarantID is nil for anonymous reports unless the viewer is the author
// or holds a privileged role. Overdue flags are computed, never stored.
type ReportView struct {
	Report
	DeclarantID       *primitive.ObjectID `json:"declarantId"`
	DaysSinceCreation int                 `json:"daysSinceCreation"`
	IsOverdue         bool                `json:"isOverdue"`
}

type StatusCount struct {
	Status Status `bson:"_id" json:"status"`
	Count  int64  `bson:"count" json:"count"`
}

type UrgencyCount struct {
	Urgency UrgencyLevel `bson:"_id" json:"urgency"`
	Count   int64        `bson:"count" json:"count"`
}

type Stats struct {
	Total     int64          `json:"total"`
	ByStatus  []StatusCount  `json:"byStatus"`
	ByUrgency []UrgencyCount `json:"byUrgency"`
}
