package service

import (
	"time"

	"vlosev/teamops-app/internal/defaults"
	"vlosev/teamops-app/internal/domain"
)

// SessionForm is the caller-supplied session input. Zero values mean "not
// set": the merge contract backfills them from the inferred defaults, and an
// explicitly empty field is indistinguishable from an absent one by design.
type SessionForm struct {
	Name        string             `json:"name"`
	Type        domain.WorkoutType `json:"type"`
	Date        *time.Time         `json:"date"`
	StartTime   string             `json:"startTime"`
	DurationMin int                `json:"durationMin"`
	TeamIDs     []string           `json:"teamIds"`
	PlayerIDs   []string           `json:"playerIds"`
	Intensity   domain.Intensity   `json:"intensity"`
	Equipment   []string           `json:"equipment"`
	Tags        []string           `json:"tags"`
	Notes       string             `json:"notes"`
}

// MergeWithDefaults applies the merge contract field-by-field: any explicit,
// non-empty caller value wins; everything else comes from the inferred
// defaults. Pure; neither input is mutated.
func MergeWithDefaults(form SessionForm, sd defaults.SmartDefaults) SessionForm {
	out := form
	if out.Name == "" {
		out.Name = sd.Name
	}
	if out.Type == "" {
		out.Type = sd.Type
	}
	if out.Date == nil {
		date := sd.Date
		out.Date = &date
	}
	if out.StartTime == "" {
		out.StartTime = sd.StartTime
	}
	if out.DurationMin == 0 {
		out.DurationMin = sd.DurationMin
	}
	if len(out.TeamIDs) == 0 {
		out.TeamIDs = append([]string(nil), sd.TeamIDs...)
	}
	if len(out.PlayerIDs) == 0 {
		out.PlayerIDs = append([]string(nil), sd.PlayerIDs...)
	}
	if out.Intensity == "" {
		out.Intensity = sd.Intensity
	}
	if len(out.Equipment) == 0 {
		out.Equipment = append([]string(nil), sd.Equipment...)
	}
	if len(out.Tags) == 0 {
		out.Tags = append([]string(nil), sd.Tags...)
	}
	return out
}
