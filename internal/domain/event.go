package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is an entry on the team schedule (a game or an existing practice).
// The defaults engine only reads events near the date being planned, e.g.
// to lower intensity the day before a game.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TeamID    primitive.ObjectID `bson:"teamId" json:"teamId"`
	Kind      EventKind          `bson:"kind" json:"kind"`
	Title     string             `bson:"title,omitempty" json:"title,omitempty"`
	StartsAt  time.Time          `bson:"startsAt" json:"startsAt"`
	EndsAt    time.Time          `bson:"endsAt" json:"endsAt"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
