package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teamokr/okr-system/internal/core/domain"
	"github.com/teamokr/okr-system/internal/core/ports"
)

const collectionKeyResults = "key_results"

type KeyResultRepository struct {
	col *mongo.Collection
}

func NewKeyResultRepository(db *mongo.Database) *KeyResultRepository {
	return &KeyResultRepository{col: db.Collection(collectionKeyResults)}
}

type keyResultDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description,omitempty"`
	ObjectiveID  primitive.ObjectID `bson:"objective_id"`
	Type         string             `bson:"type"`
	TargetValue  float64            `bson:"target_value"`
	CurrentValue float64            `bson:"current_value"`
	Unit         string             `bson:"unit,omitempty"`
	Status       string             `bson:"status"`
	Progress     int                `bson:"progress"`
	DueDate      *time.Time         `bson:"due_date,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d *keyResultDoc) toDomain() *domain.KeyResult {
	return &domain.KeyResult{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Description:  d.Description,
		ObjectiveID:  d.ObjectiveID.Hex(),
		Type:         domain.KeyResultType(d.Type),
		TargetValue:  d.TargetValue,
		CurrentValue: d.CurrentValue,
		Unit:         d.Unit,
		Status:       domain.KeyResultStatus(d.Status),
		Progress:     d.Progress,
		DueDate:      d.DueDate,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (r *KeyResultRepository) Create(ctx context.Context, kr *domain.KeyResult) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	objectiveOID, err := primitive.ObjectIDFromHex(kr.ObjectiveID)
	if err != nil {
		return domain.ErrObjectiveNotFound
	}

	doc := keyResultDoc{
		Title:        kr.Title,
		Description:  kr.Description,
		ObjectiveID:  objectiveOID,
		Type:         string(kr.Type),
		TargetValue:  kr.TargetValue,
		CurrentValue: kr.CurrentValue,
		Unit:         kr.Unit,
		Status:       string(kr.Status),
		Progress:     kr.Progress,
		DueDate:      kr.DueDate,
		CreatedAt:    kr.CreatedAt,
		UpdatedAt:    kr.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert key result: %w", err)
	}
	kr.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *KeyResultRepository) FindByID(ctx context.Context, id string) (*domain.KeyResult, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrKeyResultNotFound
	}

	var doc keyResultDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrKeyResultNotFound
		}
		return nil, fmt.Errorf("find key result: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *KeyResultRepository) Update(ctx context.Context, kr *domain.KeyResult) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(kr.ID)
	if err != nil {
		return domain.ErrKeyResultNotFound
	}

	set := bson.M{
		"title":         kr.Title,
		"description":   kr.Description,
		"type":          string(kr.Type),
		"target_value":  kr.TargetValue,
		"current_value": kr.CurrentValue,
		"unit":          kr.Unit,
		"status":        string(kr.Status),
		"progress":      kr.Progress,
		"updated_at":    kr.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if kr.DueDate != nil {
		set["due_date"] = *kr.DueDate
	} else {
		update["$unset"] = bson.M{"due_date": ""}
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update key result: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrKeyResultNotFound
	}
	return nil
}

func (r *KeyResultRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrKeyResultNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete key result: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrKeyResultNotFound
	}
	return nil
}

func (r *KeyResultRepository) List(ctx context.Context, filter ports.KeyResultFilter) ([]*domain.KeyResult, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.ObjectiveIDs != nil {
		query["objective_id"] = bson.M{"$in": toObjectIDs(filter.ObjectiveIDs)}
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count key results: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		opts.SetSkip(int64((filter.Page - 1) * filter.Limit)).SetLimit(int64(filter.Limit))
	}

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list key results: %w", err)
	}
	defer cur.Close(ctx)

	items, err := decodeKeyResults(ctx, cur)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *KeyResultRepository) FindByObjective(ctx context.Context, objectiveID string) ([]*domain.KeyResult, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(objectiveID)
	if err != nil {
		return nil, domain.ErrObjectiveNotFound
	}

	cur, err := r.col.Find(ctx, bson.M{"objective_id": oid},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find key results by objective: %w", err)
	}
	defer cur.Close(ctx)

	return decodeKeyResults(ctx, cur)
}

func (r *KeyResultRepository) FindRecentByObjectives(ctx context.Context, objectiveIDs []string, limit int) ([]*domain.KeyResult, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx,
		bson.M{"objective_id": bson.M{"$in": toObjectIDs(objectiveIDs)}},
		options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}}).SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("find recent key results: %w", err)
	}
	defer cur.Close(ctx)

	return decodeKeyResults(ctx, cur)
}

func toObjectIDs(ids []string) []primitive.ObjectID {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	return oids
}

func decodeKeyResults(ctx context.Context, cur *mongo.Cursor) ([]*domain.KeyResult, error) {
	keyResults := []*domain.KeyResult{}
	for cur.Next(ctx) {
		var doc keyResultDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode key result: %w", err)
		}
		keyResults = append(keyResults, doc.toDomain())
	}
	return keyResults, cur.Err()
}

// EnsureIndexes creates the parent objective, status, and recency indexes.
func (r *KeyResultRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "objective_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "updated_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
