package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bounds for the learned preference lists. Survivorship in both lists is
// positional (most-recent-first for the MRU lists, insertion order for
// equipment), never frequency based.
const (
	MaxPreferredEquipment = 10
	MaxRecentEntries      = 5
)

// PreferenceProfile holds the per-coach learned defaults. It is the only
// durable output of the Smart Defaults subsystem: resolvers read a snapshot
// of it, and only the preference learner writes it back.
type PreferenceProfile struct {
	UserID primitive.ObjectID `bson:"_id,omitempty" json:"userId"`

	// DefaultDurations maps workout type -> learned session length in
	// minutes (exponential moving average of confirmed saves).
	DefaultDurations map[WorkoutType]int `bson:"defaultDurations,omitempty" json:"defaultDurations,omitempty"`

	// DefaultIntensities maps workout type -> learned intensity. A value is
	// only promoted here after repeated confirmation (see learner rules).
	DefaultIntensities map[WorkoutType]Intensity `bson:"defaultIntensities,omitempty" json:"defaultIntensities,omitempty"`

	// PreferredTimes records the usual start time per (weekday, type) pair.
	PreferredTimes []PreferredTime `bson:"preferredTimes,omitempty" json:"preferredTimes,omitempty"`

	// PreferredEquipment is capped at MaxPreferredEquipment entries.
	PreferredEquipment []string `bson:"preferredEquipment,omitempty" json:"preferredEquipment,omitempty"`

	// RecentTeams and RecentWorkoutTypes are most-recent-first, de-duplicated,
	// capped at MaxRecentEntries.
	RecentTeams        []string      `bson:"recentTeams,omitempty" json:"recentTeams,omitempty"`
	RecentWorkoutTypes []WorkoutType `bson:"recentWorkoutTypes,omitempty" json:"recentWorkoutTypes,omitempty"`

	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PreferredTime is a learned (weekday, type) -> start time entry.
type PreferredTime struct {
	DayOfWeek time.Weekday `bson:"dayOfWeek" json:"dayOfWeek"`
	Type      WorkoutType  `bson:"type" json:"type"`
	StartTime string       `bson:"startTime" json:"startTime"` // "15:04"
}

// NewPreferenceProfile returns the documented static default profile for a
// coach who has never saved a session: empty learned state across the board.
func NewPreferenceProfile(userID primitive.ObjectID) *PreferenceProfile {
	return &PreferenceProfile{
		UserID:             userID,
		DefaultDurations:   map[WorkoutType]int{},
		DefaultIntensities: map[WorkoutType]Intensity{},
	}
}

// Clone returns a deep copy. Resolvers always receive a clone taken at
// context-assembly time so a concurrent learner write can never be observed
// mid-cycle.
func (p *PreferenceProfile) Clone() *PreferenceProfile {
	if p == nil {
		return nil
	}
	out := &PreferenceProfile{
		UserID:    p.UserID,
		UpdatedAt: p.UpdatedAt,
	}
	out.DefaultDurations = make(map[WorkoutType]int, len(p.DefaultDurations))
	for k, v := range p.DefaultDurations {
		out.DefaultDurations[k] = v
	}
	out.DefaultIntensities = make(map[WorkoutType]Intensity, len(p.DefaultIntensities))
	for k, v := range p.DefaultIntensities {
		out.DefaultIntensities[k] = v
	}
	out.PreferredTimes = append([]PreferredTime(nil), p.PreferredTimes...)
	out.PreferredEquipment = append([]string(nil), p.PreferredEquipment...)
	out.RecentTeams = append([]string(nil), p.RecentTeams...)
	out.RecentWorkoutTypes = append([]WorkoutType(nil), p.RecentWorkoutTypes...)
	return out
}

// PreferredTimeFor looks up the learned start time for a (weekday, type)
// pair. Returns "" when nothing has been learned yet.
func (p *PreferenceProfile) PreferredTimeFor(day time.Weekday, t WorkoutType) string {
	if p == nil {
		return ""
	}
	for _, pt := range p.PreferredTimes {
		if pt.DayOfWeek == day && pt.Type == t {
			return pt.StartTime
		}
	}
	return ""
}
