package defaults

import (
	"fmt"
	"sort"
	"time"

	"vlosev/teamops-app/internal/domain"
)

// resolveType picks the workout type. Precedence: explicit coach choice,
// then the historically most common type for the planning day's weekday,
// then the static default (silent, confidence 50 implied).
func resolveType(ctx Context, acc *SmartDefaults) []Reasoning {
	if ctx.ExplicitType != "" {
		acc.Type = ctx.ExplicitType
		return []Reasoning{{
			Field:      FieldType,
			Reason:     "Using your selected workout type",
			Confidence: 100,
			Source:     SourcePattern,
		}}
	}

	day := planningDay(ctx).Weekday()
	sums := map[domain.WorkoutType]int{}
	for _, rec := range ctx.History {
		if rec.DayOfWeek == day {
			sums[rec.Type] += rec.Frequency
		}
	}
	if len(sums) > 0 {
		best, total := argmaxType(sums)
		acc.Type = best
		conf := 50 + 5*total
		if conf > 80 {
			conf = 80
		}
		return []Reasoning{{
			Field:      FieldType,
			Reason:     fmt.Sprintf("Most common workout type on %ss", day),
			Confidence: conf,
			Source:     SourceHistory,
		}}
	}

	acc.Type = DefaultWorkoutType
	return nil
}

// planningDay is the calendar day being planned: the selected date when the
// coach picked one, otherwise today.
func planningDay(ctx Context) time.Time {
	if ctx.Calendar != nil && ctx.Calendar.SelectedDate != nil {
		return *ctx.Calendar.SelectedDate
	}
	return ctx.Now
}

// argmaxType returns the type with the highest summed frequency and that
// sum. Ties break toward the lexicographically smallest type so resolution
// stays deterministic regardless of map iteration order.
func argmaxType(sums map[domain.WorkoutType]int) (domain.WorkoutType, int) {
	keys := make([]domain.WorkoutType, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	best, bestSum := keys[0], sums[keys[0]]
	for _, k := range keys[1:] {
		if sums[k] > bestSum {
			best, bestSum = k, sums[k]
		}
	}
	return best, bestSum
}
