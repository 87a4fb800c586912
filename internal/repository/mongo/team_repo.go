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

const teamCollectionName = "teams"

// mongoTeamRepository implements repository.TeamRepository
type mongoTeamRepository struct {
	collection *mongo.Collection
}

// NewMongoTeamRepository creates a new Team repository.
func NewMongoTeamRepository(db *mongo.Database) repository.TeamRepository {
	return &mongoTeamRepository{
		collection: db.Collection(teamCollectionName),
	}
}

// Create inserts a new team with its embedded roster.
func (r *mongoTeamRepository) Create(ctx context.Context, team *domain.Team) (primitive.ObjectID, error) {
	if team.Name == "" {
		return primitive.NilObjectID, errors.New("team requires a name")
	}
	team.ID = primitive.NewObjectID()
	for i := range team.Roster {
		if team.Roster[i].ID.IsZero() {
			team.Roster[i].ID = primitive.NewObjectID()
		}
	}
	now := time.Now().UTC()
	team.CreatedAt = now
	team.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, team)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted team ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single team (roster included).
func (r *mongoTeamRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Team, error) {
	var team domain.Team
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&team)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &team, nil
}

// GetByCoachID retrieves all teams a coach manages.
func (r *mongoTeamRepository) GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.Team, error) {
	var teams []domain.Team
	filter := bson.M{"coachIds": coachID}
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// Update replaces a team's mutable fields (name, sport, roster).
func (r *mongoTeamRepository) Update(ctx context.Context, team *domain.Team) error {
	if team.ID == primitive.NilObjectID {
		return errors.New("team ID is required for update")
	}
	for i := range team.Roster {
		if team.Roster[i].ID.IsZero() {
			team.Roster[i].ID = primitive.NewObjectID()
		}
	}

	filter := bson.M{"_id": team.ID}
	updateDoc := bson.M{
		"$set": bson.M{
			"name":      team.Name,
			"sport":     team.Sport,
			"roster":    team.Roster,
			"updatedAt": time.Now().UTC(),
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

// EnsureTeamIndexes creates necessary indexes. Call during startup.
func EnsureTeamIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "coachIds", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
