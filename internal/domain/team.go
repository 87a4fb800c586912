package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Team represents a squad managed by one or more coaches.
type Team struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name      string               `bson:"name" json:"name"` // e.g., "U16 Falcons"
	Sport     string               `bson:"sport,omitempty" json:"sport,omitempty"`
	CoachIDs  []primitive.ObjectID `bson:"coachIds,omitempty" json:"coachIds,omitempty"`
	Roster    []Player             `bson:"roster,omitempty" json:"roster,omitempty"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Player is a roster entry. Players are embedded in their team document;
// they are not standalone users of the system.
type Player struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Position  string             `bson:"position,omitempty" json:"position,omitempty"`
	Available bool               `bson:"available" json:"available"` // false: sick, travelling, etc.
	Injured   bool               `bson:"injured" json:"injured"`
}

// CanTrain reports whether the player should be included in a session roster.
func (p *Player) CanTrain() bool {
	return p.Available && !p.Injured
}
