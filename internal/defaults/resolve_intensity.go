package defaults

import (
	"fmt"

	"vlosev/teamops-app/internal/domain"
)

// resolveIntensity fills in the planned effort level. It starts from the
// weekday baseline (silent), drops to low when a game is scheduled the day
// after the session, and finally applies the learned per-type intensity.
//
// The learned preference is applied last and therefore overwrites the
// game-day recovery override when both apply. Coaches who consistently save
// a different intensity have told us more than the generic game-day rule.
func resolveIntensity(ctx Context, acc *SmartDefaults) []Reasoning {
	acc.Intensity = baselineIntensity(acc.Date.Weekday())
	var reason *Reasoning

	if gameOnDayAfter(ctx, acc) {
		acc.Intensity = domain.IntensityLow
		reason = &Reasoning{
			Field:      FieldIntensity,
			Reason:     "Game tomorrow - recovery focus",
			Confidence: 85,
			Source:     SourceCalendar,
		}
	}

	if ctx.Profile != nil {
		if i, ok := ctx.Profile.DefaultIntensities[acc.Type]; ok && i != "" {
			acc.Intensity = i
			reason = &Reasoning{
				Field:      FieldIntensity,
				Reason:     fmt.Sprintf("Your usual intensity for %s sessions", acc.Type),
				Confidence: 80,
				Source:     SourcePreferences,
			}
		}
	}

	if reason == nil {
		return nil
	}
	return []Reasoning{*reason}
}

// gameOnDayAfter reports whether any calendar event of kind game falls on
// the day immediately following the resolved date.
func gameOnDayAfter(ctx Context, acc *SmartDefaults) bool {
	if ctx.Calendar == nil {
		return false
	}
	next := acc.Date.AddDate(0, 0, 1)
	for _, ev := range ctx.Calendar.Events {
		if ev.Kind == domain.EventGame && dateOnly(ev.StartsAt).Equal(next) {
			return true
		}
	}
	return false
}
