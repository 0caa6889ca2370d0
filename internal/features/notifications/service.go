package notifications

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hbenali/childguard/internal/features/auth"
)

// Store persists notification batches.
type Store interface {
	CreateMany(ctx context.Context, notifications []Notification) error
}

// UserDirectory resolves the staff members a fan-out addresses.
type UserDirectory interface {
	FindActiveByRoles(ctx context.Context, roles []auth.Role) ([]auth.User, error)
}

// Publisher pushes a payload to a realtime address. Pushes are best effort;
// a failed push never fails the operation that triggered it.
type Publisher interface {
	Publish(address string, payload interface{}) error
}

// ReportEvent carries the report fields the fan-out policies need. The
// report feature builds it so this package stays decoupled from report
// internals.
type ReportEvent struct {
	ReportID    primitive.ObjectID
	ReportRef   string
	Village     string
	Urgency     string
	ChildName   string
	DeclarantID primitive.ObjectID
	AssigneeID  *primitive.ObjectID
	Status      string
	Decision    string
}

type Service struct {
	store     Store
	users     UserDirectory
	publisher Publisher
}

func NewService(store Store, users UserDirectory, publisher Publisher) *Service {
	return &Service{
		store:     store,
		users:     users,
		publisher: publisher,
	}
}

func priorityForUrgency(urgency string) string {
	switch urgency {
	case "critical":
		return PriorityUrgent
	case "medium":
		return PriorityHigh
	default:
		return PriorityNormal
	}
}

func reportLink(id primitive.ObjectID) string {
	return "/reports/" + id.Hex()
}

func (s *Service) deliver(ctx context.Context, notifications []Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	if err := s.store.CreateMany(ctx, notifications); err != nil {
		return err
	}
	if s.publisher == nil {
		return nil
	}
	for _, n := range notifications {
		if err := s.publisher.Publish("user:"+n.RecipientID.Hex(), n); err != nil {
			log.Printf("notification push to %s failed: %v", n.RecipientID.Hex(), err)
		}
	}
	return nil
}

// ReportCreated notifies every active psychologist and director that a new
// report was filed. The recipient set is global, not scoped to the village.
func (s *Service) ReportCreated(ctx context.Context, ev ReportEvent) error {
	recipients, err := s.users.FindActiveByRoles(ctx, auth.AnalystNotifyRoles)
	if err != nil {
		return err
	}

	priority := priorityForUrgency(ev.Urgency)
	notifications := make([]Notification, 0, len(recipients))
	for _, recipient := range recipients {
		notifications = append(notifications, Notification{
			RecipientID: recipient.ID,
			Type:        TypeNewReport,
			Title:       "New report filed",
			Message:     fmt.Sprintf("Report %s was filed in %s with %s urgency", ev.ReportRef, ev.Village, ev.Urgency),
			ReportID:    ev.ReportID,
			ReportRef:   ev.ReportRef,
			Priority:    priority,
			Link:        reportLink(ev.ReportID),
		})
	}
	if err := s.deliver(ctx, notifications); err != nil {
		return err
	}

	// Dashboards subscribe to the role and village broadcast addresses
	// rather than a personal one.
	if s.publisher != nil {
		for _, role := range auth.AnalystNotifyRoles {
			if err := s.publisher.Publish("role:"+string(role), ev); err != nil {
				log.Printf("notification push to role %s failed: %v", role, err)
			}
		}
		if ev.Village != "" {
			if err := s.publisher.Publish("village:"+ev.Village, ev); err != nil {
				log.Printf("notification push to village %s failed: %v", ev.Village, err)
			}
		}
	}
	return nil
}

// ReportClassified tells the declarant how their report was classified.
func (s *Service) ReportClassified(ctx context.Context, ev ReportEvent) error {
	return s.deliver(ctx, []Notification{{
		RecipientID: ev.DeclarantID,
		Type:        TypeReportClassified,
		Title:       "Your report was reviewed",
		Message:     fmt.Sprintf("Report %s is now %s", ev.ReportRef, ev.Status),
		ReportID:    ev.ReportID,
		ReportRef:   ev.ReportRef,
		Priority:    PriorityNormal,
		Link:        reportLink(ev.ReportID),
	}})
}

// ReportAssigned tells the analyst a case now sits with them. The priority
// follows the report urgency so a critical case surfaces first.
func (s *Service) ReportAssigned(ctx context.Context, ev ReportEvent) error {
	if ev.AssigneeID == nil {
		return nil
	}
	return s.deliver(ctx, []Notification{{
		RecipientID: *ev.AssigneeID,
		Type:        TypeReportAssigned,
		Title:       "Report assigned to you",
		Message:     fmt.Sprintf("Report %s (%s urgency) has been assigned to you", ev.ReportRef, ev.Urgency),
		ReportID:    ev.ReportID,
		ReportRef:   ev.ReportRef,
		Priority:    priorityForUrgency(ev.Urgency),
		Link:        reportLink(ev.ReportID),
	}})
}

// DecisionMade notifies the declarant and the assigned analyst of the final
// decision.
func (s *Service) DecisionMade(ctx context.Context, ev ReportEvent) error {
	notifications := []Notification{{
		RecipientID: ev.DeclarantID,
		Type:        TypeDecisionMade,
		Title:       "Decision issued on your report",
		Message:     fmt.Sprintf("A decision (%s) was issued on report %s", ev.Decision, ev.ReportRef),
		ReportID:    ev.ReportID,
		ReportRef:   ev.ReportRef,
		Priority:    PriorityHigh,
		Link:        reportLink(ev.ReportID),
	}}

	if ev.AssigneeID != nil && *ev.AssigneeID != ev.DeclarantID {
		notifications = append(notifications, Notification{
			RecipientID: *ev.AssigneeID,
			Type:        TypeDecisionMade,
			Title:       "Decision issued",
			Message:     fmt.Sprintf("A decision (%s) was issued on report %s", ev.Decision, ev.ReportRef),
			ReportID:    ev.ReportID,
			ReportRef:   ev.ReportRef,
			Priority:    PriorityHigh,
			Link:        reportLink(ev.ReportID),
		})
	}
	return s.deliver(ctx, notifications)
}
