package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/teamokr/okr-system/internal/core/domain"
)

const collectionRoles = "roles"

// Seed populates reference and demo data idempotently: the three role
// rows, the current year's periods, and the demo accounts. Roles must
// exist before any user is created; the call order below guarantees it.
func Seed(ctx context.Context, db *mongo.Database, demoPassword string) error {
	if err := ensureRoles(ctx, db); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}
	if err := ensurePeriods(ctx, db); err != nil {
		return fmt.Errorf("seed periods: %w", err)
	}
	if err := ensureDemoUsers(ctx, db, demoPassword); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	return nil
}

// ensureRoles upserts the fixed role rows: 1=admin, 2=manager, 3=employee.
func ensureRoles(ctx context.Context, db *mongo.Database) error {
	roles := []domain.Role{
		{ID: 1, Name: domain.RoleAdmin, DisplayName: "Administrator", Description: "Full system access and user management capabilities"},
		{ID: 2, Name: domain.RoleManager, DisplayName: "Manager", Description: "Can manage team OKRs and view subordinate progress"},
		{ID: 3, Name: domain.RoleEmployee, DisplayName: "Employee", Description: "Can create and manage own OKRs"},
	}

	col := db.Collection(collectionRoles)
	for _, role := range roles {
		_, err := col.UpdateOne(ctx,
			bson.M{"_id": role.ID},
			bson.M{"$set": bson.M{
				"name":         role.Name,
				"display_name": role.DisplayName,
				"description":  role.Description,
			}},
			options.Update().SetUpsert(true))
		if err != nil {
			return err
		}
	}
	return nil
}

// ensurePeriods inserts the four quarters of the current year plus an
// annual period, flagging the quarter containing today as active.
// Existing periods are left untouched.
func ensurePeriods(ctx context.Context, db *mongo.Database) error {
	now := time.Now().UTC()
	year := now.Year()

	type seedPeriod struct {
		name       string
		periodType domain.PeriodType
		start, end time.Time
	}

	quarter := func(q, startMonth, endMonth, endDay int) seedPeriod {
		return seedPeriod{
			name:       fmt.Sprintf("Q%d %d", q, year),
			periodType: domain.PeriodQuarterly,
			start:      time.Date(year, time.Month(startMonth), 1, 0, 0, 0, 0, time.UTC),
			end:        time.Date(year, time.Month(endMonth), endDay, 0, 0, 0, 0, time.UTC),
		}
	}

	periods := []seedPeriod{
		quarter(1, 1, 3, 31),
		quarter(2, 4, 6, 30),
		quarter(3, 7, 9, 30),
		quarter(4, 10, 12, 31),
		{
			name:       fmt.Sprintf("%d Annual", year),
			periodType: domain.PeriodYearly,
			start:      time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC),
			end:        time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	col := db.Collection(collectionPeriods)
	for _, p := range periods {
		active := p.periodType == domain.PeriodQuarterly &&
			!now.Before(p.start) && now.Before(p.end.AddDate(0, 0, 1))

		_, err := col.UpdateOne(ctx,
			bson.M{"name": p.name},
			bson.M{"$setOnInsert": periodDoc{
				Name:      p.name,
				Type:      string(p.periodType),
				StartDate: p.start,
				EndDate:   p.end,
				IsActive:  active,
				CreatedAt: now,
				UpdatedAt: now,
			}},
			options.Update().SetUpsert(true))
		if err != nil {
			return err
		}
	}
	return nil
}

// ensureDemoUsers creates the admin, manager, and employee demo accounts.
// The employee reports to the manager. Existing accounts are never
// overwritten.
func ensureDemoUsers(ctx context.Context, db *mongo.Database, password string) error {
	if password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	col := db.Collection(collectionUsers)
	now := time.Now().UTC()

	insert := func(name, email, role, position string, managerID *primitive.ObjectID) (primitive.ObjectID, error) {
		var existing userDoc
		err := col.FindOne(ctx, bson.M{"email": email}).Decode(&existing)
		if err == nil {
			return existing.ID, nil
		}
		if err != mongo.ErrNoDocuments {
			return primitive.NilObjectID, err
		}

		doc := userDoc{
			Name:         name,
			Email:        email,
			PasswordHash: string(hash),
			RoleID:       domain.RoleID(role),
			Position:     position,
			ManagerID:    managerID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		res, err := col.InsertOne(ctx, doc)
		if err != nil {
			return primitive.NilObjectID, err
		}
		return res.InsertedID.(primitive.ObjectID), nil
	}

	if _, err := insert("Admin User", "admin@example.com", domain.RoleAdmin, "System Administrator", nil); err != nil {
		return err
	}
	managerID, err := insert("Manager User", "manager@example.com", domain.RoleManager, "Team Manager", nil)
	if err != nil {
		return err
	}
	if _, err := insert("Employee User", "employee@example.com", domain.RoleEmployee, "Software Developer", &managerID); err != nil {
		return err
	}
	return nil
}
