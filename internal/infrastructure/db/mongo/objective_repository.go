package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teamokr/okr-system/internal/core/domain"
	"github.com/teamokr/okr-system/internal/core/ports"
)

const collectionObjectives = "objectives"

type ObjectiveRepository struct {
	col        *mongo.Collection
	keyResults *mongo.Collection
}

func NewObjectiveRepository(db *mongo.Database) *ObjectiveRepository {
	return &ObjectiveRepository{
		col:        db.Collection(collectionObjectives),
		keyResults: db.Collection(collectionKeyResults),
	}
}

type objectiveDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	UserID      primitive.ObjectID `bson:"user_id"`
	PeriodID    primitive.ObjectID `bson:"okr_period_id"`
	Status      string             `bson:"status"`
	Progress    int                `bson:"progress"`
	DueDate     *time.Time         `bson:"due_date,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d *objectiveDoc) toDomain() *domain.Objective {
	return &domain.Objective{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		UserID:      d.UserID.Hex(),
		PeriodID:    d.PeriodID.Hex(),
		Status:      domain.ObjectiveStatus(d.Status),
		Progress:    d.Progress,
		DueDate:     d.DueDate,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *ObjectiveRepository) toDoc(o *domain.Objective) (*objectiveDoc, error) {
	userOID, err := primitive.ObjectIDFromHex(o.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	periodOID, err := primitive.ObjectIDFromHex(o.PeriodID)
	if err != nil {
		return nil, domain.ErrPeriodNotFound
	}
	return &objectiveDoc{
		Title:       o.Title,
		Description: o.Description,
		UserID:      userOID,
		PeriodID:    periodOID,
		Status:      string(o.Status),
		Progress:    o.Progress,
		DueDate:     o.DueDate,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}, nil
}

func (r *ObjectiveRepository) Create(ctx context.Context, o *domain.Objective) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := r.toDoc(o)
	if err != nil {
		return err
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert objective: %w", err)
	}
	o.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *ObjectiveRepository) FindByID(ctx context.Context, id string) (*domain.Objective, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrObjectiveNotFound
	}

	var doc objectiveDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrObjectiveNotFound
		}
		return nil, fmt.Errorf("find objective: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ObjectiveRepository) Update(ctx context.Context, o *domain.Objective) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(o.ID)
	if err != nil {
		return domain.ErrObjectiveNotFound
	}
	periodOID, err := primitive.ObjectIDFromHex(o.PeriodID)
	if err != nil {
		return domain.ErrPeriodNotFound
	}

	set := bson.M{
		"title":         o.Title,
		"description":   o.Description,
		"okr_period_id": periodOID,
		"status":        string(o.Status),
		"progress":      o.Progress,
		"updated_at":    o.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if o.DueDate != nil {
		set["due_date"] = *o.DueDate
	} else {
		update["$unset"] = bson.M{"due_date": ""}
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update objective: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrObjectiveNotFound
	}
	return nil
}

// Delete removes the objective and all of its key results. On a replica
// set both deletes run inside one transaction; against a standalone
// server the key results go first, so a partial failure can never leave a
// key result referencing a missing objective.
func (r *ObjectiveRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrObjectiveNotFound
	}

	sess, err := r.col.Database().Client().StartSession()
	if err != nil {
		return r.deleteOrdered(ctx, oid)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.keyResults.DeleteMany(sc, bson.M{"objective_id": oid}); err != nil {
			return nil, err
		}
		res, err := r.col.DeleteOne(sc, bson.M{"_id": oid})
		if err != nil {
			return nil, err
		}
		if res.DeletedCount == 0 {
			return nil, domain.ErrObjectiveNotFound
		}
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrObjectiveNotFound) {
			return domain.ErrObjectiveNotFound
		}
		if transactionsUnsupported(err) {
			return r.deleteOrdered(ctx, oid)
		}
		return fmt.Errorf("delete objective: %w", err)
	}
	return nil
}

func (r *ObjectiveRepository) deleteOrdered(ctx context.Context, oid primitive.ObjectID) error {
	if _, err := r.keyResults.DeleteMany(ctx, bson.M{"objective_id": oid}); err != nil {
		return fmt.Errorf("delete key results: %w", err)
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete objective: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrObjectiveNotFound
	}
	return nil
}

func transactionsUnsupported(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		return ce.Code == 20 || strings.Contains(ce.Message, "replica set")
	}
	return false
}

func (r *ObjectiveRepository) List(ctx context.Context, filter ports.ObjectiveFilter) ([]*domain.Objective, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query, err := r.buildFilter(filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count objectives: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		opts.SetSkip(int64((filter.Page - 1) * filter.Limit)).SetLimit(int64(filter.Limit))
	}

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list objectives: %w", err)
	}
	defer cur.Close(ctx)

	items, err := decodeObjectives(ctx, cur)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *ObjectiveRepository) FindForOwners(ctx context.Context, ownerIDs []string, periodID string) ([]*domain.Objective, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query, err := r.buildFilter(ports.ObjectiveFilter{OwnerIDs: ownerIDs, PeriodID: periodID})
	if err != nil {
		return nil, err
	}

	cur, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find objectives for owners: %w", err)
	}
	defer cur.Close(ctx)

	return decodeObjectives(ctx, cur)
}

func (r *ObjectiveRepository) FindIDsByOwners(ctx context.Context, ownerIDs []string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query, err := r.buildFilter(ports.ObjectiveFilter{OwnerIDs: ownerIDs})
	if err != nil {
		return nil, err
	}

	cur, err := r.col.Find(ctx, query, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("find objective ids: %w", err)
	}
	defer cur.Close(ctx)

	ids := []string{}
	for cur.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode objective id: %w", err)
		}
		ids = append(ids, doc.ID.Hex())
	}
	return ids, cur.Err()
}

// buildFilter translates an ObjectiveFilter into a Mongo query. A nil
// OwnerIDs slice means no owner restriction; an empty one matches nothing.
func (r *ObjectiveRepository) buildFilter(filter ports.ObjectiveFilter) (bson.M, error) {
	query := bson.M{}

	if filter.OwnerIDs != nil {
		ownerOIDs := make([]primitive.ObjectID, 0, len(filter.OwnerIDs))
		for _, id := range filter.OwnerIDs {
			oid, err := primitive.ObjectIDFromHex(id)
			if err != nil {
				continue
			}
			ownerOIDs = append(ownerOIDs, oid)
		}
		query["user_id"] = bson.M{"$in": ownerOIDs}
	}

	if filter.PeriodID != "" {
		periodOID, err := primitive.ObjectIDFromHex(filter.PeriodID)
		if err != nil {
			return nil, domain.ErrPeriodNotFound
		}
		query["okr_period_id"] = periodOID
	}

	if filter.Status != "" {
		query["status"] = filter.Status
	}

	return query, nil
}

func decodeObjectives(ctx context.Context, cur *mongo.Cursor) ([]*domain.Objective, error) {
	objectives := []*domain.Objective{}
	for cur.Next(ctx) {
		var doc objectiveDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode objective: %w", err)
		}
		objectives = append(objectives, doc.toDomain())
	}
	return objectives, cur.Err()
}

// EnsureIndexes creates the owner/period, status, and due date indexes.
func (r *ObjectiveRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "okr_period_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "due_date", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
