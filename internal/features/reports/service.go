package reports

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hbenali/childguard/internal/features/auth"
	"github.com/hbenali/childguard/internal/pkg/pagination"
	apperrors "github.com/hbenali/childguard/pkg/errors"
)

// Notifier receives lifecycle events for fan-out. Implementations must be
// best-effort: a returned error is logged, never propagated, so a push
// failure can never roll back a committed transition.
type Notifier interface {
	ReportCreated(ctx context.Context, r *Report) error
	ReportClassified(ctx context.Context, r *Report) error
	ReportAssigned(ctx context.Context, r *Report) error
	DecisionMade(ctx context.Context, r *Report) error
}

const idGenerationRetries = 3

// Service orchestrates the report lifecycle: it loads the document, runs
// the pure transition rules, persists the result through a guarded update,
// then emits notifications.
type Service struct {
	repo     *Repository
	users    *auth.Repository
	notifier Notifier
}

func NewService(repo *Repository, users *auth.Repository, notifier Notifier) *Service {
	return &Service{repo: repo, users: users, notifier: notifier}
}

func (s *Service) notify(name string, err error) {
	if err != nil {
		log.Printf("notification %s failed: %v", name, err)
	}
}

// Create validates the request, generates the monthly report id and stores
// the new pending report. A duplicate id (two creations racing in the same
// month) is retried with the next sequence instead of failing.
func (s *Service) Create(ctx context.Context, declarant *auth.User, req *CreateReportRequest, attachments []Attachment) (*Report, error) {
	incidentDate, err := ValidateCreateReportRequest(req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	count, err := s.repo.CountForMonth(ctx, now)
	if err != nil {
		return nil, err
	}

	seq := int(count) + 1
	var report *Report
	for attempt := 0; attempt < idGenerationRetries; attempt++ {
		report = NewReport(req, incidentDate, declarant.ID, GenerateReportID(now, seq), now)
		if len(attachments) > 0 {
			report.Attachments = attachments
		}

		err = s.repo.Insert(ctx, report)
		if err == nil {
			break
		}
		if !apperrors.IsConflict(err) {
			return nil, err
		}
		seq++
	}
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notify("report_created", s.notifier.ReportCreated(ctx, report))
	}
	return report, nil
}

// Get loads a single report for a viewer. Declarants can only read their
// own submissions; denied reads surface as not-found so the existence of
// other declarants' reports is not leaked.
func (s *Service) Get(ctx context.Context, viewer *auth.User, id primitive.ObjectID) (*ReportView, error) {
	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanRead(viewer, report) {
		return nil, apperrors.NotFoundf("report")
	}

	view := View(report, viewer, time.Now())
	return &view, nil
}

// List returns the viewer's slice of reports under the access filter.
func (s *Service) List(ctx context.Context, viewer *auth.User, q ListQuery) ([]ReportView, int64, error) {
	p := pagination.New(q.Page, q.Limit, 0)

	reports, total, err := s.repo.List(ctx, ListFilter(viewer, q), p.Page, p.Limit)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	views := make([]ReportView, 0, len(reports))
	for i := range reports {
		views = append(views, View(&reports[i], viewer, now))
	}
	return views, total, nil
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}

func lastHistory(r *Report) HistoryEntry {
	return r.History[len(r.History)-1]
}

// Classify applies a classification and moves the report to the status it
// drives.
func (s *Service) Classify(ctx context.Context, actor *auth.User, id primitive.ObjectID, req *ClassifyRequest) (*Report, error) {
	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := Classify(report, actor, ClassificationType(req.Classification), req.Notes, now); err != nil {
		return nil, err
	}

	set := bson.M{
		"classification": report.Classification,
		"status":         report.Status,
		"updatedAt":      now,
	}
	if err := s.repo.ApplyTransition(ctx, id, classifiableStatuses, set, lastHistory(report)); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notify("report_classified", s.notifier.ReportClassified(ctx, report))
	}
	return report, nil
}

// Assign sets the responsible analyst. Reassignment is idempotent with
// respect to status.
func (s *Service) Assign(ctx context.Context, actor *auth.User, id primitive.ObjectID, req *AssignRequest) (*Report, error) {
	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	analystID, err := primitive.ObjectIDFromHex(req.AnalystID)
	if err != nil {
		ve := apperrors.NewValidationError()
		ve.Add("analystId", "invalid analyst id")
		return nil, ve
	}
	target, err := s.users.GetUserByID(ctx, analystID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFoundf("analyst")
		}
		return nil, err
	}

	now := time.Now()
	if err := Assign(report, actor, target, now); err != nil {
		return nil, err
	}

	set := bson.M{
		"assignedTo": report.AssignedTo,
		"assignedAt": report.AssignedAt,
		"status":     report.Status,
		"updatedAt":  now,
	}
	if err := s.repo.ApplyTransition(ctx, id, classifiableStatuses, set, lastHistory(report)); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notify("report_assigned", s.notifier.ReportAssigned(ctx, report))
	}
	return report, nil
}

// StartStep moves one workflow step to in progress.
func (s *Service) StartStep(ctx context.Context, actor *auth.User, id primitive.ObjectID, stepNumber int) (*Report, error) {
	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := StartStep(report, actor, stepNumber, now); err != nil {
		return nil, err
	}

	stepSet := bson.M{
		"status":    StepInProgress,
		"startedAt": now,
	}
	if err := s.repo.ApplyStepTransition(ctx, id, stepNumber, StepPending, stepSet, lastHistory(report)); err != nil {
		return nil, err
	}
	return report, nil
}

// CompleteStep finishes an in-progress workflow step.
func (s *Service) CompleteStep(ctx context.Context, actor *auth.User, id primitive.ObjectID, stepNumber int, req *CompleteStepRequest) (*Report, error) {
	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := CompleteStep(report, actor, stepNumber, req.Notes, now); err != nil {
		return nil, err
	}

	stepSet := bson.M{
		"status":      StepCompleted,
		"completedAt": now,
		"completedBy": actor.ID,
		"notes":       req.Notes,
	}
	if err := s.repo.ApplyStepTransition(ctx, id, stepNumber, StepInProgress, stepSet, lastHistory(report)); err != nil {
		return nil, err
	}
	return report, nil
}

// Decide records the final disposition; a close decision is terminal.
func (s *Service) Decide(ctx context.Context, actor *auth.User, id primitive.ObjectID, req *DecisionRequest) (*Report, error) {
	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := Decide(report, actor, DecisionType(req.Decision), req.Details, now); err != nil {
		return nil, err
	}

	openStatuses := []Status{StatusPending, StatusInProgress, StatusTakenInCharge, StatusSafeguarding, StatusFalseReport}
	set := bson.M{
		"decision":  report.Decision,
		"status":    report.Status,
		"updatedAt": now,
	}
	if err := s.repo.ApplyTransition(ctx, id, openStatuses, set, lastHistory(report)); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notify("decision_made", s.notifier.DecisionMade(ctx, report))
	}
	return report, nil
}
