package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session represents a planned training session for a team.
// Sessions are what the session-builder UI creates and what the Smart
// Defaults engine pre-fills.
type Session struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	CoachID     primitive.ObjectID   `bson:"coachId" json:"coachId"` // Who created the session
	Name        string               `bson:"name" json:"name"`       // e.g., "U16 Falcons Strength Training - Mar 15"
	Type        WorkoutType          `bson:"type" json:"type"`
	Date        time.Time            `bson:"date" json:"date"`           // Calendar day (time portion normalized to midnight UTC)
	StartTime   string               `bson:"startTime" json:"startTime"` // "15:04" wall-clock start
	DurationMin int                  `bson:"durationMin" json:"durationMin"`
	TeamIDs     []primitive.ObjectID `bson:"teamIds,omitempty" json:"teamIds,omitempty"`
	PlayerIDs   []primitive.ObjectID `bson:"playerIds,omitempty" json:"playerIds,omitempty"`
	Intensity   Intensity            `bson:"intensity" json:"intensity"`
	Equipment   []string             `bson:"equipment,omitempty" json:"equipment,omitempty"`
	Tags        []string             `bson:"tags,omitempty" json:"tags,omitempty"`
	Notes       string               `bson:"notes,omitempty" json:"notes,omitempty"`
	// Confirmed marks a session the coach explicitly saved (as opposed to a
	// draft). Only confirmed sessions feed the preference learner.
	Confirmed bool      `bson:"confirmed" json:"confirmed"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// TypeFrequency is an aggregated historical-usage record: how often a coach
// scheduled sessions of a given type on a given weekday, and at what time.
// Produced by the session repository's aggregation pipeline and consumed by
// the defaults engine as its "history" signal.
type TypeFrequency struct {
	Type      WorkoutType  `bson:"type" json:"type"`
	DayOfWeek time.Weekday `bson:"dayOfWeek" json:"dayOfWeek"`
	StartTime string       `bson:"startTime" json:"startTime"`
	Frequency int          `bson:"frequency" json:"frequency"`
}
