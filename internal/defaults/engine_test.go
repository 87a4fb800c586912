package defaults

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"vlosev/teamops-app/internal/domain"
)

func TestResolve_EmptyContextIsTotal(t *testing.T) {
	sd := Resolve(Context{Now: time.Date(2026, 3, 17, 9, 30, 0, 0, time.UTC)})

	// Every field has a value even with zero signals.
	assert.Equal(t, DefaultWorkoutType, sd.Type)
	assert.False(t, sd.Date.IsZero())
	assert.NotEmpty(t, sd.StartTime)
	assert.Greater(t, sd.DurationMin, 0)
	assert.NotEmpty(t, sd.Intensity)
	assert.NotEmpty(t, sd.Equipment)
	assert.NotEmpty(t, sd.Name)
	assert.NotNil(t, sd.TeamIDs)
	assert.NotNil(t, sd.PlayerIDs)

	// No reasoning entries were produced, so confidence defaults to 50.
	assert.Empty(t, sd.Reasoning)
	assert.Equal(t, 50, sd.Confidence)
}

func TestResolve_ConfidenceAlwaysInRange(t *testing.T) {
	contexts := []Context{
		{Now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{
			Now:          time.Date(2026, 3, 17, 9, 30, 0, 0, time.UTC),
			ExplicitType: domain.TypeStrength,
			Calendar: &CalendarContext{
				SelectedDate: &testDay,
				Slot:         &TimeSlot{Start: "14:00", DurationMin: 60},
			},
			CurrentTeamID: "team-1",
		},
	}
	for _, ctx := range contexts {
		sd := Resolve(ctx)
		assert.GreaterOrEqual(t, sd.Confidence, 0)
		assert.LessOrEqual(t, sd.Confidence, 100)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	ctx := Context{
		Now:          time.Date(2026, 3, 17, 9, 30, 0, 0, time.UTC),
		ExplicitType: domain.TypeTactical,
		Calendar: &CalendarContext{
			SelectedDate: &testDay,
			Slot:         &TimeSlot{Start: "16:00", DurationMin: 75},
		},
		CurrentTeamID: "team-1",
		TeamNames:     map[string]string{"team-1": "U16 Falcons"},
		History: []domain.TypeFrequency{
			{Type: domain.TypeSkills, DayOfWeek: time.Tuesday, Frequency: 3},
		},
		Profile: &domain.PreferenceProfile{
			PreferredEquipment: []string{"cones"},
		},
	}

	first := Resolve(ctx)
	second := Resolve(ctx)

	assert.Equal(t, first, second)
}

func TestResolve_OverallConfidenceIsMean(t *testing.T) {
	ctx := Context{
		Now:          time.Date(2026, 3, 17, 9, 30, 0, 0, time.UTC),
		ExplicitType: domain.TypeStrength, // type @ 100
		Calendar: &CalendarContext{
			SelectedDate: &testDay,
			Slot:         &TimeSlot{Start: "14:00", DurationMin: 60}, // time @ 95, duration @ 90
		},
	}

	sd := Resolve(ctx)

	assert.Len(t, sd.Reasoning, 3)
	assert.Equal(t, 95, sd.Confidence, "round((100+95+90)/3)")
}

func TestResolve_TagsAndName(t *testing.T) {
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC) // Sunday
	ctx := Context{
		Now:           time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC),
		ExplicitType:  domain.TypeStrength,
		Calendar:      &CalendarContext{SelectedDate: &date},
		CurrentTeamID: "team-1",
		TeamNames:     map[string]string{"team-1": "U16 Falcons"},
	}

	sd := Resolve(ctx)

	assert.Equal(t, []string{"strength", "low", "sunday"}, sd.Tags)
	assert.Equal(t, "U16 Falcons Strength Training - Mar 15", sd.Name)
}

func TestResolve_NameFallsBackToGenericTeam(t *testing.T) {
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	ctx := Context{
		Now:          date,
		ExplicitType: domain.TypeRecovery,
		Calendar:     &CalendarContext{SelectedDate: &date},
	}

	sd := Resolve(ctx)

	assert.Equal(t, "Team Recovery Session - Mar 15", sd.Name)
}
