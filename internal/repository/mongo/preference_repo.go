package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vlosev/teamops-app/internal/domain"
	"vlosev/teamops-app/internal/repository"
)

const (
	preferenceCollectionName        = "preference_profiles"
	preferenceCounterCollectionName = "preference_counters"
)

// mongoPreferenceRepository implements repository.PreferenceRepository.
// Profiles are stored one document per coach, keyed by the coach's user id.
// The intensity promotion counters live in their own small collection keyed
// by (userId, type, intensity).
type mongoPreferenceRepository struct {
	profiles *mongo.Collection
	counters *mongo.Collection
}

// NewMongoPreferenceRepository creates a new Preference repository.
func NewMongoPreferenceRepository(db *mongo.Database) repository.PreferenceRepository {
	return &mongoPreferenceRepository{
		profiles: db.Collection(preferenceCollectionName),
		counters: db.Collection(preferenceCounterCollectionName),
	}
}

// Get retrieves a coach's profile. Both a missing document and one that no
// longer decodes cleanly are reported as ErrNotFound: a corrupt stored
// profile must degrade to "no profile", never surface to resolution.
func (r *mongoPreferenceRepository) Get(ctx context.Context, userID primitive.ObjectID) (*domain.PreferenceProfile, error) {
	var profile domain.PreferenceProfile
	filter := bson.M{"_id": userID}
	err := r.profiles.FindOne(ctx, filter).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		var decodeErr *bsoncodec.DecodeError
		if errors.As(err, &decodeErr) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Set stores the whole profile in one replace; the document is small and a
// full replace keeps export/import round-trips lossless.
func (r *mongoPreferenceRepository) Set(ctx context.Context, profile *domain.PreferenceProfile) error {
	if profile.UserID == primitive.NilObjectID {
		return errors.New("preference profile requires a user ID")
	}
	profile.UpdatedAt = time.Now().UTC()

	filter := bson.M{"_id": profile.UserID}
	opts := options.Replace().SetUpsert(true)
	_, err := r.profiles.ReplaceOne(ctx, filter, profile, opts)
	return err
}

// Delete removes a coach's profile and all their promotion counters. This is
// the explicit reset operation; profiles are never deleted implicitly.
func (r *mongoPreferenceRepository) Delete(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := r.profiles.DeleteOne(ctx, bson.M{"_id": userID}); err != nil {
		return err
	}
	_, err := r.counters.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}

// counterDoc is the persisted shape of one promotion counter.
type counterDoc struct {
	UserID    primitive.ObjectID `bson:"userId"`
	Type      domain.WorkoutType `bson:"type"`
	Intensity domain.Intensity   `bson:"intensity"`
	Count     int                `bson:"count"`
}

// GetIntensityCounter returns the current mismatch count for one
// (user, type, intensity) key; zero when no counter exists yet.
func (r *mongoPreferenceRepository) GetIntensityCounter(ctx context.Context, userID primitive.ObjectID, workoutType domain.WorkoutType, intensity domain.Intensity) (int, error) {
	var doc counterDoc
	filter := bson.M{"userId": userID, "type": workoutType, "intensity": intensity}
	err := r.counters.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, err
	}
	return doc.Count, nil
}

// SetIntensityCounter upserts the mismatch count for one key.
func (r *mongoPreferenceRepository) SetIntensityCounter(ctx context.Context, userID primitive.ObjectID, workoutType domain.WorkoutType, intensity domain.Intensity, count int) error {
	filter := bson.M{"userId": userID, "type": workoutType, "intensity": intensity}
	update := bson.M{"$set": bson.M{"count": count}}
	opts := options.Update().SetUpsert(true)
	_, err := r.counters.UpdateOne(ctx, filter, update, opts)
	return err
}

// EnsurePreferenceIndexes creates necessary indexes. Call during startup.
func EnsurePreferenceIndexes(ctx context.Context, counters *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "type", Value: 1}, {Key: "intensity", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = counters.Indexes().CreateMany(ctx, indexes)
}
