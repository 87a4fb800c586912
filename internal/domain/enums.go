package domain

// WorkoutType classifies a training session.
type WorkoutType string

const (
	TypeStrength     WorkoutType = "strength"
	TypeConditioning WorkoutType = "conditioning"
	TypeSkills       WorkoutType = "skills"
	TypeTactical     WorkoutType = "tactical"
	TypeRecovery     WorkoutType = "recovery"
)

// KnownWorkoutTypes lists every valid workout type. Used for validation
// (e.g. preference profile import) and for static lookup tables.
var KnownWorkoutTypes = []WorkoutType{
	TypeStrength,
	TypeConditioning,
	TypeSkills,
	TypeTactical,
	TypeRecovery,
}

// IsValidWorkoutType reports whether t is one of the known workout types.
func IsValidWorkoutType(t WorkoutType) bool {
	for _, k := range KnownWorkoutTypes {
		if t == k {
			return true
		}
	}
	return false
}

// Intensity is the planned effort level of a session.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// IsValidIntensity reports whether i is a known intensity level.
func IsValidIntensity(i Intensity) bool {
	return i == IntensityLow || i == IntensityMedium || i == IntensityHigh
}

// EventKind distinguishes schedule entries on the team calendar.
type EventKind string

const (
	EventGame     EventKind = "game"
	EventPractice EventKind = "practice"
)
