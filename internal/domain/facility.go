package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FacilityDay describes what a facility offers on one calendar day: which
// equipment is on site and which time slots are bookable.
type FacilityDay struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Facility  string             `bson:"facility" json:"facility"` // e.g., "Main Gym"
	Date      time.Time          `bson:"date" json:"date"`         // Calendar day, midnight UTC
	Equipment []string           `bson:"equipment,omitempty" json:"equipment,omitempty"`
	Slots     []FacilitySlot     `bson:"slots,omitempty" json:"slots,omitempty"`
}

// FacilitySlot is one bookable window within a facility day.
type FacilitySlot struct {
	Start     string `bson:"start" json:"start"` // "15:04"
	End       string `bson:"end" json:"end"`     // "15:04"
	Available bool   `bson:"available" json:"available"`
}

// Covers reports whether the wall-clock time t ("15:04") falls inside the
// slot. Start is inclusive, End exclusive. Times compare lexicographically
// because they are zero-padded 24h strings.
func (s *FacilitySlot) Covers(t string) bool {
	return t >= s.Start && t < s.End
}
