package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vlosev/teamops-app/internal/domain"
	"vlosev/teamops-app/internal/repository"
)

const facilityCollectionName = "facility_days"

// mongoFacilityRepository implements repository.FacilityRepository
type mongoFacilityRepository struct {
	collection *mongo.Collection
}

// NewMongoFacilityRepository creates a new Facility repository.
func NewMongoFacilityRepository(db *mongo.Database) repository.FacilityRepository {
	return &mongoFacilityRepository{
		collection: db.Collection(facilityCollectionName),
	}
}

// Upsert stores availability for one (facility, date) pair, replacing any
// previous document for that pair.
func (r *mongoFacilityRepository) Upsert(ctx context.Context, day *domain.FacilityDay) error {
	if day.Facility == "" || day.Date.IsZero() {
		return errors.New("facility day requires facility name and date")
	}
	day.Date = day.Date.UTC().Truncate(24 * time.Hour)

	filter := bson.M{"facility": day.Facility, "date": day.Date}
	update := bson.M{
		"$set": bson.M{
			"equipment": day.Equipment,
			"slots":     day.Slots,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetByDate retrieves every facility's availability for one calendar day.
// Returns an empty slice (not ErrNotFound) when nothing is recorded: absent
// availability is a normal "no signal" condition, not an error.
func (r *mongoFacilityRepository) GetByDate(ctx context.Context, date time.Time) ([]domain.FacilityDay, error) {
	var days []domain.FacilityDay
	filter := bson.M{"date": date.UTC().Truncate(24 * time.Hour)}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &days); err != nil {
		return nil, err
	}
	return days, nil
}

// EnsureFacilityIndexes creates necessary indexes. Call during startup.
func EnsureFacilityIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "facility", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "date", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
