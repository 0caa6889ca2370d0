package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hbenali/childguard/internal/features/auth"
)

type fakeStore struct {
	created []Notification
	err     error
}

func (f *fakeStore) CreateMany(_ context.Context, notifications []Notification) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, notifications...)
	return nil
}

type fakeDirectory struct {
	users []auth.User
	roles []auth.Role
}

func (f *fakeDirectory) FindActiveByRoles(_ context.Context, roles []auth.Role) ([]auth.User, error) {
	f.roles = roles
	return f.users, nil
}

type fakePublisher struct {
	addresses []string
	err       error
}

func (f *fakePublisher) Publish(address string, _ interface{}) error {
	f.addresses = append(f.addresses, address)
	return f.err
}

func staffMember(role auth.Role) auth.User {
	return auth.User{
		ID:       primitive.NewObjectID(),
		Role:     role,
		IsActive: true,
	}
}

func sampleEvent() ReportEvent {
	return ReportEvent{
		ReportID:    primitive.NewObjectID(),
		ReportRef:   "SOS-202608-0001",
		Village:     "antsirabe",
		Urgency:     "critical",
		DeclarantID: primitive.NewObjectID(),
	}
}

func TestReportCreatedFansOutToAnalystsAndDirectors(t *testing.T) {
	store := &fakeStore{}
	psychologist := staffMember(auth.RolePsychologist)
	director := staffMember(auth.RoleDirector)
	directory := &fakeDirectory{users: []auth.User{psychologist, director}}
	publisher := &fakePublisher{}
	svc := NewService(store, directory, publisher)

	ev := sampleEvent()
	require.NoError(t, svc.ReportCreated(context.Background(), ev))

	require.Equal(t, auth.AnalystNotifyRoles, directory.roles)
	require.Len(t, store.created, 2)
	recipients := []primitive.ObjectID{store.created[0].RecipientID, store.created[1].RecipientID}
	require.Contains(t, recipients, psychologist.ID)
	require.Contains(t, recipients, director.ID)

	for _, n := range store.created {
		require.Equal(t, TypeNewReport, n.Type)
		require.Equal(t, PriorityUrgent, n.Priority)
		require.Equal(t, ev.ReportRef, n.ReportRef)
		require.Equal(t, "/reports/"+ev.ReportID.Hex(), n.Link)
	}
	// Two personal pushes plus the role and village broadcasts.
	require.Len(t, publisher.addresses, 5)
	require.Contains(t, publisher.addresses, "user:"+psychologist.ID.Hex())
	require.Contains(t, publisher.addresses, "user:"+director.ID.Hex())
	require.Contains(t, publisher.addresses, "role:psychologist")
	require.Contains(t, publisher.addresses, "role:director")
	require.Contains(t, publisher.addresses, "village:"+ev.Village)
}

func TestReportCreatedPriorityFollowsUrgency(t *testing.T) {
	cases := map[string]string{
		"critical": PriorityUrgent,
		"medium":   PriorityHigh,
		"low":      PriorityNormal,
	}

	for urgency, want := range cases {
		store := &fakeStore{}
		directory := &fakeDirectory{users: []auth.User{staffMember(auth.RolePsychologist)}}
		svc := NewService(store, directory, nil)

		ev := sampleEvent()
		ev.Urgency = urgency
		require.NoError(t, svc.ReportCreated(context.Background(), ev))
		require.Equal(t, want, store.created[0].Priority, urgency)
	}
}

func TestReportClassifiedNotifiesDeclarant(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, &fakeDirectory{}, nil)

	ev := sampleEvent()
	ev.Status = "safeguarding"
	require.NoError(t, svc.ReportClassified(context.Background(), ev))

	require.Len(t, store.created, 1)
	require.Equal(t, ev.DeclarantID, store.created[0].RecipientID)
	require.Equal(t, TypeReportClassified, store.created[0].Type)
	require.Equal(t, PriorityNormal, store.created[0].Priority)
	require.Contains(t, store.created[0].Message, "safeguarding")
}

func TestReportAssignedNotifiesAssignee(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, &fakeDirectory{}, nil)

	assignee := primitive.NewObjectID()
	ev := sampleEvent()
	ev.AssigneeID = &assignee
	require.NoError(t, svc.ReportAssigned(context.Background(), ev))

	require.Len(t, store.created, 1)
	require.Equal(t, assignee, store.created[0].RecipientID)
	require.Equal(t, TypeReportAssigned, store.created[0].Type)
	require.Equal(t, PriorityUrgent, store.created[0].Priority)
}

func TestReportAssignedWithoutAssigneeIsNoOp(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, &fakeDirectory{}, nil)

	require.NoError(t, svc.ReportAssigned(context.Background(), sampleEvent()))
	require.Empty(t, store.created)
}

func TestDecisionMadeNotifiesDeclarantAndAssignee(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, &fakeDirectory{}, nil)

	assignee := primitive.NewObjectID()
	ev := sampleEvent()
	ev.AssigneeID = &assignee
	ev.Decision = "close"
	require.NoError(t, svc.DecisionMade(context.Background(), ev))

	require.Len(t, store.created, 2)
	recipients := []primitive.ObjectID{store.created[0].RecipientID, store.created[1].RecipientID}
	require.Contains(t, recipients, ev.DeclarantID)
	require.Contains(t, recipients, assignee)
	for _, n := range store.created {
		require.Equal(t, PriorityHigh, n.Priority)
		require.Contains(t, n.Message, "close")
	}
}

func TestDecisionMadeWithoutAssigneeNotifiesDeclarantOnly(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, &fakeDirectory{}, nil)

	ev := sampleEvent()
	ev.Decision = "validate"
	require.NoError(t, svc.DecisionMade(context.Background(), ev))
	require.Len(t, store.created, 1)
	require.Equal(t, ev.DeclarantID, store.created[0].RecipientID)
}

func TestPublishFailureDoesNotFailDelivery(t *testing.T) {
	store := &fakeStore{}
	publisher := &fakePublisher{err: errors.New("socket closed")}
	directory := &fakeDirectory{users: []auth.User{staffMember(auth.RoleDirector)}}
	svc := NewService(store, directory, publisher)

	require.NoError(t, svc.ReportCreated(context.Background(), sampleEvent()))
	require.Len(t, store.created, 1)
}

func TestStoreFailureIsReturned(t *testing.T) {
	store := &fakeStore{err: errors.New("insert failed")}
	directory := &fakeDirectory{users: []auth.User{staffMember(auth.RoleDirector)}}
	svc := NewService(store, directory, nil)

	require.Error(t, svc.ReportCreated(context.Background(), sampleEvent()))
}
