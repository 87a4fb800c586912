package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vlosev/teamops-app/internal/domain"
	"vlosev/teamops-app/internal/repository"
)

const sessionCollectionName = "sessions"

// mongoSessionRepository implements repository.SessionRepository
type mongoSessionRepository struct {
	collection *mongo.Collection
}

// NewMongoSessionRepository creates a new Session repository.
func NewMongoSessionRepository(db *mongo.Database) repository.SessionRepository {
	return &mongoSessionRepository{
		collection: db.Collection(sessionCollectionName),
	}
}

// Create inserts a new session.
func (r *mongoSessionRepository) Create(ctx context.Context, session *domain.Session) (primitive.ObjectID, error) {
	if session.CoachID == primitive.NilObjectID || session.Name == "" {
		return primitive.NilObjectID, errors.New("session requires coachId and name")
	}
	session.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, session)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted session ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single session by its ID.
func (r *mongoSessionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Session, error) {
	var session domain.Session
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// GetByCoachID retrieves all sessions created by a coach, newest first.
func (r *mongoSessionRepository) GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.Session, error) {
	var sessions []domain.Session
	filter := bson.M{"coachId": coachID}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "startTime", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Update replaces a session's mutable fields.
func (r *mongoSessionRepository) Update(ctx context.Context, session *domain.Session) error {
	if session.ID == primitive.NilObjectID {
		return errors.New("session ID is required for update")
	}

	filter := bson.M{"_id": session.ID}
	updateDoc := bson.M{
		"$set": bson.M{
			"name":        session.Name,
			"type":        session.Type,
			"date":        session.Date,
			"startTime":   session.StartTime,
			"durationMin": session.DurationMin,
			"teamIds":     session.TeamIDs,
			"playerIds":   session.PlayerIDs,
			"intensity":   session.Intensity,
			"equipment":   session.Equipment,
			"tags":        session.Tags,
			"notes":       session.Notes,
			"confirmed":   session.Confirmed,
			"updatedAt":   time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a session, ensuring coach ownership at the DB level.
func (r *mongoSessionRepository) Delete(ctx context.Context, id primitive.ObjectID, coachID primitive.ObjectID) error {
	if id == primitive.NilObjectID || coachID == primitive.NilObjectID {
		return errors.New("session ID and coach ID are required for deletion")
	}

	filter := bson.M{
		"_id":     id,
		"coachId": coachID,
	}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		// Session not found OR not owned by this coach.
		return repository.ErrNotFound
	}
	return nil
}

// TypeFrequencies aggregates a coach's confirmed sessions into the
// historical-usage tuples the defaults engine reads. Mongo's $dayOfWeek is
// 1-based starting at Sunday, so the projection shifts it to match Go's
// time.Weekday (0 = Sunday).
func (r *mongoSessionRepository) TypeFrequencies(ctx context.Context, coachID primitive.ObjectID) ([]domain.TypeFrequency, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"coachId": coachID, "confirmed": true}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"type":      "$type",
				"dayOfWeek": bson.M{"$dayOfWeek": "$date"},
				"startTime": "$startTime",
			},
			"frequency": bson.M{"$sum": 1},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":       0,
			"type":      "$_id.type",
			"dayOfWeek": bson.M{"$subtract": bson.A{"$_id.dayOfWeek", 1}},
			"startTime": "$_id.startTime",
			"frequency": 1,
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []domain.TypeFrequency
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// EnsureSessionIndexes creates necessary indexes. Call during startup.
func EnsureSessionIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "coachId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "coachId", Value: 1}, {Key: "confirmed", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
