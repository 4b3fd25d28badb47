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
)

const collectionPeriods = "okr_periods"

type PeriodRepository struct {
	col *mongo.Collection
}

func NewPeriodRepository(db *mongo.Database) *PeriodRepository {
	return &PeriodRepository{col: db.Collection(collectionPeriods)}
}

type periodDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Type      string             `bson:"type"`
	StartDate time.Time          `bson:"start_date"`
	EndDate   time.Time          `bson:"end_date"`
	IsActive  bool               `bson:"is_active"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *periodDoc) toDomain() *domain.Period {
	return &domain.Period{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Type:      domain.PeriodType(d.Type),
		StartDate: d.StartDate,
		EndDate:   d.EndDate,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *PeriodRepository) Create(ctx context.Context, p *domain.Period) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := periodDoc{
		Name:      p.Name,
		Type:      string(p.Type),
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert period: %w", err)
	}
	p.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *PeriodRepository) Update(ctx context.Context, p *domain.Period) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return domain.ErrPeriodNotFound
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":       p.Name,
		"type":       string(p.Type),
		"start_date": p.StartDate,
		"end_date":   p.EndDate,
		"updated_at": p.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update period: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPeriodNotFound
	}
	return nil
}

func (r *PeriodRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPeriodNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete period: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPeriodNotFound
	}
	return nil
}

func (r *PeriodRepository) FindByID(ctx context.Context, id string) (*domain.Period, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPeriodNotFound
	}

	var doc periodDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPeriodNotFound
		}
		return nil, fmt.Errorf("find period: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns all periods, most recent start date first.
func (r *PeriodRepository) List(ctx context.Context) ([]*domain.Period, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "start_date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	defer cur.Close(ctx)

	periods := []*domain.Period{}
	for cur.Next(ctx) {
		var doc periodDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode period: %w", err)
		}
		periods = append(periods, doc.toDomain())
	}
	return periods, cur.Err()
}

// FindActive returns the active period, (nil, nil) when none is flagged.
// Sorting by start date descending makes the result deterministic if
// legacy data has several flagged rows.
func (r *PeriodRepository) FindActive(ctx context.Context) (*domain.Period, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc periodDoc
	err := r.col.FindOne(ctx, bson.M{"is_active": true},
		options.FindOne().SetSort(bson.D{{Key: "start_date", Value: -1}})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find active period: %w", err)
	}
	return doc.toDomain(), nil
}

// SetActive flags one period active and clears every other flag. The
// clear runs first so a failure can only leave zero active periods,
// never two.
func (r *PeriodRepository) SetActive(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPeriodNotFound
	}

	if _, err := r.col.UpdateMany(ctx, bson.M{"_id": bson.M{"$ne": oid}}, bson.M{"$set": bson.M{"is_active": false}}); err != nil {
		return fmt.Errorf("deactivate periods: %w", err)
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"is_active":  true,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("activate period: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPeriodNotFound
	}
	return nil
}

// EnsureIndexes creates the active flag and name indexes.
func (r *PeriodRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "is_active", Value: 1}}},
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "start_date", Value: 1}, {Key: "end_date", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
