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

const eventCollectionName = "events"

// mongoEventRepository implements repository.EventRepository
type mongoEventRepository struct {
	collection *mongo.Collection
}

// NewMongoEventRepository creates a new Event repository.
func NewMongoEventRepository(db *mongo.Database) repository.EventRepository {
	return &mongoEventRepository{
		collection: db.Collection(eventCollectionName),
	}
}

// Create inserts a new schedule event.
func (r *mongoEventRepository) Create(ctx context.Context, event *domain.Event) (primitive.ObjectID, error) {
	if event.TeamID == primitive.NilObjectID || event.Kind == "" {
		return primitive.NilObjectID, errors.New("event requires teamId and kind")
	}
	event.ID = primitive.NewObjectID()
	event.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted event ID")
	}
	return insertedID, nil
}

// ListBetween retrieves a team's events whose start falls in [from, to).
func (r *mongoEventRepository) ListBetween(ctx context.Context, teamID primitive.ObjectID, from, to time.Time) ([]domain.Event, error) {
	var events []domain.Event
	filter := bson.M{
		"teamId":   teamID,
		"startsAt": bson.M{"$gte": from, "$lt": to},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "startsAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// EnsureEventIndexes creates necessary indexes. Call during startup.
func EnsureEventIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "teamId", Value: 1}, {Key: "startsAt", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
