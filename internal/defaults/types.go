// Package defaults implements the context-aware default-inference engine
// ("Smart Defaults") for the session builder. Given whatever signals happen
// to be available for one planning cycle (calendar state, historical usage,
// the coach's learned preference profile, facility availability, roster data),
// it synthesizes a complete session configuration with a confidence score and
// a justification trail for every inferred field.
//
// The engine is deliberately total: every field always resolves to some
// value, falling back to static baselines when no signal applies. Missing or
// malformed signals are absorbed, never propagated as errors.
package defaults

import (
	"time"

	"vlosev/teamops-app/internal/domain"
)

// Source tags identify which signal produced a reasoning entry.
type Source string

const (
	SourceCalendar     Source = "calendar"
	SourceHistory      Source = "history"
	SourcePreferences  Source = "preferences"
	SourcePattern      Source = "pattern"
	SourceAvailability Source = "availability"
)

// Field names used in reasoning entries.
const (
	FieldType      = "type"
	FieldTime      = "time"
	FieldDuration  = "duration"
	FieldTeam      = "team"
	FieldPlayers   = "players"
	FieldIntensity = "intensity"
	FieldEquipment = "equipment"
)

// Reasoning is one human-auditable justification: which field, why, how
// confident (0-100, heuristic trust, not a probability), and from which
// signal source. A resolver produces at most one entry per field per cycle;
// silent baseline fallbacks produce none.
type Reasoning struct {
	Field      string `json:"field"`
	Reason     string `json:"reason"`
	Confidence int    `json:"confidence"`
	Source     Source `json:"source"`
}

// TimeSlot is an explicitly selected calendar slot.
type TimeSlot struct {
	Start       string `json:"start"` // "15:04"
	DurationMin int    `json:"durationMin"`
}

// CalendarContext carries the calendar-derived portion of a cycle's signals.
type CalendarContext struct {
	SelectedDate *time.Time     // day the coach is planning for, nil if none
	Slot         *TimeSlot      // explicitly chosen slot, nil if none
	Events       []domain.Event // schedule entries near the selected date
}

// Context is the immutable snapshot of every available signal for one
// resolution cycle. It is constructed fresh per cycle and discarded after
// use; resolvers never mutate it. Any field may be zero: absent sub-objects
// mean "no signal", not an error.
type Context struct {
	// ExplicitType is a workout type the coach already picked, "" if none.
	ExplicitType domain.WorkoutType

	// CurrentTeamID is the team the coach is working in. The sentinel values
	// TeamAll and TeamPersonal mean no concrete team is selected.
	CurrentTeamID string
	// ViewingTeamID is the team whose calendar is on screen, "" if none.
	ViewingTeamID string

	// TeamNames maps team id -> display name, for name synthesis.
	TeamNames map[string]string
	// Rosters maps team id -> roster, for the candidate assignment teams.
	Rosters map[string][]domain.Player

	Calendar *CalendarContext
	History  []domain.TypeFrequency
	Facility []domain.FacilityDay
	Profile  *domain.PreferenceProfile

	// Now is the clock reading taken at context-assembly time. Resolvers
	// read this snapshot, never the wall clock.
	Now time.Time
}

// Sentinel team ids that mean "no concrete team selected".
const (
	TeamAll      = "all"
	TeamPersonal = "personal"
)

// SmartDefaults is the fully-populated result of one resolution cycle. It is
// a value object: the caller owns merging it with explicit form input.
type SmartDefaults struct {
	Name        string             `json:"name"`
	Type        domain.WorkoutType `json:"type"`
	Date        time.Time          `json:"date"`
	StartTime   string             `json:"startTime"` // "15:04"
	DurationMin int                `json:"durationMin"`
	TeamIDs     []string           `json:"assignedTeamIds"`
	PlayerIDs   []string           `json:"assignedPlayerIds"`
	Intensity   domain.Intensity   `json:"intensity"`
	Equipment   []string           `json:"equipment"`
	Tags        []string           `json:"tags"`
	Confidence  int                `json:"confidence"`
	Reasoning   []Reasoning        `json:"reasoning"`
}
