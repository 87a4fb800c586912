package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vlosev/teamops-app/internal/domain"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with staff accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	AddTeamToCoach(ctx context.Context, coachID, teamID primitive.ObjectID) error
}

// TeamRepository defines the interface for team and roster data.
type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Team, error)
	GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.Team, error)
	Update(ctx context.Context, team *domain.Team) error
}

// SessionRepository defines the interface for training-session data. Besides
// plain CRUD it exposes the historical-frequency aggregation the defaults
// engine consumes.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Session, error)
	GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.Session, error)
	Update(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id primitive.ObjectID, coachID primitive.ObjectID) error
	// TypeFrequencies aggregates confirmed sessions of one coach into
	// (type, weekday, startTime, frequency) tuples.
	TypeFrequencies(ctx context.Context, coachID primitive.ObjectID) ([]domain.TypeFrequency, error)
}

// EventRepository defines the interface for schedule events (games and
// practices) near a planning date.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) (primitive.ObjectID, error)
	ListBetween(ctx context.Context, teamID primitive.ObjectID, from, to time.Time) ([]domain.Event, error)
}

// FacilityRepository defines the interface for facility availability.
type FacilityRepository interface {
	Upsert(ctx context.Context, day *domain.FacilityDay) error
	GetByDate(ctx context.Context, date time.Time) ([]domain.FacilityDay, error)
}

// PreferenceRepository defines the interface for the per-coach preference
// store. Get returns ErrNotFound when no profile exists yet; a stored
// document that fails to decode is reported the same way, so a corrupt
// profile degrades to "no profile" instead of failing resolution.
//
// The intensity counters back the learner's promotion threshold. They are
// deliberately external to the profile document so an import/export of the
// profile never carries half-accumulated counter state.
type PreferenceRepository interface {
	Get(ctx context.Context, userID primitive.ObjectID) (*domain.PreferenceProfile, error)
	Set(ctx context.Context, profile *domain.PreferenceProfile) error
	Delete(ctx context.Context, userID primitive.ObjectID) error

	GetIntensityCounter(ctx context.Context, userID primitive.ObjectID, workoutType domain.WorkoutType, intensity domain.Intensity) (int, error)
	SetIntensityCounter(ctx context.Context, userID primitive.ObjectID, workoutType domain.WorkoutType, intensity domain.Intensity, count int) error
}
