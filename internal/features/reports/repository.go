package reports

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/hbenali/childguard/pkg/errors"
)

// Repository handles report persistence. Every transition is written as a
// single conditional update: the filter guards the legal source state, the
// update applies the new fields and pushes the history entry, so a report
// can never end up half-transitioned.
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("reports")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "reportId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "declarantId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "village", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	})

	return &Repository{collection: collection}
}

// Insert stores a new report. A duplicate reportId surfaces as a
// ConflictError so the caller can retry with the next sequence.
func (r *Repository) Insert(ctx context.Context, report *Report) error {
	result, err := r.collection.InsertOne(ctx, report)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.Conflict("report id already taken")
		}
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		report.ID = oid
	}
	return nil
}

// CountForMonth counts reports created in the month containing t. Feeds
// the monthly reportId sequence.
func (r *Repository) CountForMonth(ctx context.Context, t time.Time) (int64, error) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 1, 0)

	return r.collection.CountDocuments(ctx, bson.M{
		"createdAt": bson.M{"$gte": start, "$lt": end},
	})
}

func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*Report, error) {
	var report Report
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFoundf("report")
		}
		return nil, err
	}
	return &report, nil
}

// List returns reports matching an access filter, newest first.
func (r *Repository) List(ctx context.Context, filter bson.M, page, limit int) ([]Report, int64, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var reports []Report
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

// ApplyTransition performs one guarded transition: the filter includes the
// legal source statuses, the update sets the new fields and appends the
// history entry in the same command. A guard miss on an existing report
// means a concurrent transition won the race.
func (r *Repository) ApplyTransition(ctx context.Context, id primitive.ObjectID, fromStatuses []Status, set bson.M, entry HistoryEntry) error {
	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$in": fromStatuses},
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{
		"$set":  set,
		"$push": bson.M{"history": entry},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		exists, countErr := r.collection.CountDocuments(ctx, bson.M{"_id": id})
		if countErr == nil && exists == 0 {
			return apperrors.NotFoundf("report")
		}
		return apperrors.Conflict("report was modified concurrently")
	}
	return nil
}

// ApplyStepTransition updates one workflow step in place, guarded by the
// step's expected current status.
func (r *Repository) ApplyStepTransition(ctx context.Context, id primitive.ObjectID, stepNumber int, fromStep StepStatus, stepSet bson.M, entry HistoryEntry) error {
	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$ne": StatusClosed},
		"workflow": bson.M{"$elemMatch": bson.M{
			"stepNumber": stepNumber,
			"status":     fromStep,
		}},
	}

	set := bson.M{"updatedAt": entry.At}
	for field, value := range stepSet {
		set["workflow.$[s]."+field] = value
	}

	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"s.stepNumber": stepNumber}},
	})

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{
		"$set":  set,
		"$push": bson.M{"history": entry},
	}, opts)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		exists, countErr := r.collection.CountDocuments(ctx, bson.M{"_id": id})
		if countErr == nil && exists == 0 {
			return apperrors.NotFoundf("report")
		}
		return apperrors.Conflict("workflow step was modified concurrently")
	}
	return nil
}

// Stats aggregates report counts for the dashboard.
func (r *Repository) Stats(ctx context.Context) (*Stats, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	byStatus, err := r.groupCounts(ctx, "$status")
	if err != nil {
		return nil, err
	}
	byUrgency, err := r.groupCounts(ctx, "$urgency")
	if err != nil {
		return nil, err
	}

	stats := &Stats{Total: total, ByStatus: []StatusCount{}, ByUrgency: []UrgencyCount{}}
	for _, g := range byStatus {
		stats.ByStatus = append(stats.ByStatus, StatusCount{Status: Status(g.Key), Count: g.Count})
	}
	for _, g := range byUrgency {
		stats.ByUrgency = append(stats.ByUrgency, UrgencyCount{Urgency: UrgencyLevel(g.Key), Count: g.Count})
	}
	return stats, nil
}

type groupCount struct {
	Key   string `bson:"_id"`
	Count int64  `bson:"count"`
}

func (r *Repository) groupCounts(ctx context.Context, field string) ([]groupCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": field, "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []groupCount
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}
