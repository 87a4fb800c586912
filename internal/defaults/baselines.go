package defaults

import (
	"time"

	"vlosev/teamops-app/internal/domain"
)

// Static fallback tables. These are the values the engine lands on when no
// signal applies; they never produce reasoning entries.

// DefaultWorkoutType is the fixed fallback when neither an explicit choice
// nor historical data yields a type.
const DefaultWorkoutType = domain.TypeSkills

// baselineDurations holds per-type session lengths in minutes.
var baselineDurations = map[domain.WorkoutType]int{
	domain.TypeStrength:     60,
	domain.TypeConditioning: 45,
	domain.TypeSkills:       60,
	domain.TypeTactical:     75,
	domain.TypeRecovery:     30,
}

// fallbackDuration covers unknown types so the pipeline stays total.
const fallbackDuration = 60

func baselineDuration(t domain.WorkoutType) int {
	if d, ok := baselineDurations[t]; ok {
		return d
	}
	return fallbackDuration
}

// baselineEquipment maps workout type -> the standard kit for that session.
var baselineEquipment = map[domain.WorkoutType][]string{
	domain.TypeStrength:     {"barbell", "dumbbells", "squat rack", "bench"},
	domain.TypeConditioning: {"cones", "agility ladder", "jump rope"},
	domain.TypeSkills:       {"balls", "cones", "goals"},
	domain.TypeTactical:     {"whiteboard", "cones", "bibs"},
	domain.TypeRecovery:     {"foam roller", "yoga mats", "resistance bands"},
}

func baselineEquipmentFor(t domain.WorkoutType) []string {
	// Copy: resolvers must not mutate the table.
	return append([]string(nil), baselineEquipment[t]...)
}

// baselineIntensity maps weekday -> default effort: easy weekends, hard
// Tuesdays/Thursdays, medium otherwise.
func baselineIntensity(day time.Weekday) domain.Intensity {
	switch day {
	case time.Saturday, time.Sunday:
		return domain.IntensityLow
	case time.Tuesday, time.Thursday:
		return domain.IntensityHigh
	default:
		return domain.IntensityMedium
	}
}

// typeDisplayNames maps workout type -> the label used in synthesized
// session names.
var typeDisplayNames = map[domain.WorkoutType]string{
	domain.TypeStrength:     "Strength Training",
	domain.TypeConditioning: "Conditioning",
	domain.TypeSkills:       "Skills Practice",
	domain.TypeTactical:     "Tactical Session",
	domain.TypeRecovery:     "Recovery Session",
}

func typeDisplayName(t domain.WorkoutType) string {
	if n, ok := typeDisplayNames[t]; ok {
		return n
	}
	return "Training"
}

// MaxAssignedPlayers caps how many roster players are pre-assigned.
const MaxAssignedPlayers = 15
