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

const userCollectionName = "users"

// mongoUserRepository implements repository.UserRepository
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new User repository.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(userCollectionName),
	}
}

// Create inserts a new user.
func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if user.Email == "" || user.PasswordHash == "" {
		return primitive.NilObjectID, errors.New("user requires email and password hash")
	}
	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted user ID")
	}
	return insertedID, nil
}

// GetByEmail retrieves a user by their unique email address.
func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	filter := bson.M{"email": email}
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by their ID.
func (r *mongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var user domain.User
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// AddTeamToCoach links a team to the coach's managed list.
func (r *mongoUserRepository) AddTeamToCoach(ctx context.Context, coachID, teamID primitive.ObjectID) error {
	filter := bson.M{"_id": coachID, "role": domain.RoleCoach}
	update := bson.M{
		"$addToSet": bson.M{"teamIds": teamID},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureUserIndexes creates necessary indexes. Call during startup.
func EnsureUserIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
