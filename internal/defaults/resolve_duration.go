package defaults

import "fmt"

// resolveDuration fills in the session length. The calendar slot length is a
// hard external constraint and outranks the learned per-type
// duration even when both are present (90 vs 85): the room is only booked
// for so long. The static per-type table is the silent fallback.
func resolveDuration(ctx Context, acc *SmartDefaults) []Reasoning {
	if ctx.Calendar != nil && ctx.Calendar.Slot != nil && ctx.Calendar.Slot.DurationMin > 0 {
		acc.DurationMin = ctx.Calendar.Slot.DurationMin
		return []Reasoning{{
			Field:      FieldDuration,
			Reason:     "Length of your selected calendar slot",
			Confidence: 90,
			Source:     SourceCalendar,
		}}
	}

	if ctx.Profile != nil {
		if d, ok := ctx.Profile.DefaultDurations[acc.Type]; ok && d > 0 {
			acc.DurationMin = d
			return []Reasoning{{
				Field:      FieldDuration,
				Reason:     fmt.Sprintf("Your usual %s session length", acc.Type),
				Confidence: 85,
				Source:     SourcePreferences,
			}}
		}
	}

	acc.DurationMin = baselineDuration(acc.Type)
	return nil
}
