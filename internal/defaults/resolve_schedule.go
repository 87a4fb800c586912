package defaults

import (
	"fmt"
	"time"
)

// resolveSchedule fills in date and start time. Precedence, highest first:
// an explicitly selected calendar slot (95), the learned preferred time for
// this weekday and type (75), and finally the wall-clock snapshot, a silent
// baseline that always exists, so the field can never be empty.
func resolveSchedule(ctx Context, acc *SmartDefaults) []Reasoning {
	acc.Date = dateOnly(planningDay(ctx))

	if ctx.Calendar != nil && ctx.Calendar.Slot != nil && ctx.Calendar.Slot.Start != "" {
		acc.StartTime = ctx.Calendar.Slot.Start
		return []Reasoning{{
			Field:      FieldTime,
			Reason:     "Matched your selected calendar slot",
			Confidence: 95,
			Source:     SourceCalendar,
		}}
	}

	if t := ctx.Profile.PreferredTimeFor(acc.Date.Weekday(), acc.Type); t != "" {
		acc.StartTime = t
		return []Reasoning{{
			Field:      FieldTime,
			Reason:     fmt.Sprintf("You usually run %s sessions at %s on %ss", acc.Type, t, acc.Date.Weekday()),
			Confidence: 75,
			Source:     SourcePreferences,
		}}
	}

	acc.StartTime = ctx.Now.Format("15:04")
	return nil
}

// dateOnly truncates t to midnight UTC.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
