package defaults

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vlosev/teamops-app/internal/domain"
)

// Tuesday, March 17 2026.
var testDay = time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)

func testContext() Context {
	return Context{
		Now: time.Date(2026, 3, 17, 9, 30, 0, 0, time.UTC),
	}
}

func findReason(reasons []Reasoning, field string) *Reasoning {
	for i := range reasons {
		if reasons[i].Field == field {
			return &reasons[i]
		}
	}
	return nil
}

func TestResolveType_ExplicitTypeWins(t *testing.T) {
	ctx := testContext()
	ctx.ExplicitType = domain.TypeRecovery
	ctx.History = []domain.TypeFrequency{
		{Type: domain.TypeStrength, DayOfWeek: time.Tuesday, Frequency: 9},
	}

	sd := Resolve(ctx)

	assert.Equal(t, domain.TypeRecovery, sd.Type)
	r := findReason(sd.Reasoning, FieldType)
	require.NotNil(t, r)
	assert.Equal(t, 100, r.Confidence)
}

func TestResolveType_HistoryArgmaxOnWeekday(t *testing.T) {
	ctx := testContext()
	ctx.Calendar = &CalendarContext{SelectedDate: &testDay}
	ctx.History = []domain.TypeFrequency{
		{Type: domain.TypeStrength, DayOfWeek: time.Tuesday, Frequency: 5},
		{Type: domain.TypeConditioning, DayOfWeek: time.Tuesday, Frequency: 1},
		{Type: domain.TypeTactical, DayOfWeek: time.Friday, Frequency: 40}, // wrong weekday, ignored
	}

	sd := Resolve(ctx)

	assert.Equal(t, domain.TypeStrength, sd.Type)
	r := findReason(sd.Reasoning, FieldType)
	require.NotNil(t, r)
	assert.Equal(t, 75, r.Confidence, "50 + 5*5, under the 80 cap")
	assert.Equal(t, SourceHistory, r.Source)
}

func TestResolveType_HistoryConfidenceCapped(t *testing.T) {
	ctx := testContext()
	ctx.Calendar = &CalendarContext{SelectedDate: &testDay}
	ctx.History = []domain.TypeFrequency{
		{Type: domain.TypeSkills, DayOfWeek: time.Tuesday, Frequency: 50},
	}

	sd := Resolve(ctx)

	r := findReason(sd.Reasoning, FieldType)
	require.NotNil(t, r)
	assert.Equal(t, 80, r.Confidence)
}

func TestResolveType_NoSignalFallsBackSilently(t *testing.T) {
	sd := Resolve(testContext())

	assert.Equal(t, DefaultWorkoutType, sd.Type)
	assert.Nil(t, findReason(sd.Reasoning, FieldType), "baseline fallback must not emit a reasoning entry")
}

func TestResolveSchedule_CalendarSlot(t *testing.T) {
	ctx := testContext()
	ctx.Calendar = &CalendarContext{
		SelectedDate: &testDay,
		Slot:         &TimeSlot{Start: "14:00", DurationMin: 60},
	}

	sd := Resolve(ctx)

	assert.Equal(t, "14:00", sd.StartTime)
	assert.Equal(t, 60, sd.DurationMin)

	tr := findReason(sd.Reasoning, FieldTime)
	require.NotNil(t, tr)
	assert.Equal(t, 95, tr.Confidence)
	assert.Equal(t, SourceCalendar, tr.Source)

	dr := findReason(sd.Reasoning, FieldDuration)
	require.NotNil(t, dr)
	assert.Equal(t, 90, dr.Confidence)
}

func TestResolveSchedule_PreferredTime(t *testing.T) {
	ctx := testContext()
	ctx.ExplicitType = domain.TypeStrength
	ctx.Calendar = &CalendarContext{SelectedDate: &testDay}
	ctx.Profile = &domain.PreferenceProfile{
		PreferredTimes: []domain.PreferredTime{
			{DayOfWeek: time.Tuesday, Type: domain.TypeStrength, StartTime: "18:30"},
		},
	}

	sd := Resolve(ctx)

	assert.Equal(t, "18:30", sd.StartTime)
	r := findReason(sd.Reasoning, FieldTime)
	require.NotNil(t, r)
	assert.Equal(t, 75, r.Confidence)
	assert.Equal(t, SourcePreferences, r.Source)
}

func TestResolveSchedule_ClockFallbackIsSilent(t *testing.T) {
	sd := Resolve(testContext())

	assert.Equal(t, "09:30", sd.StartTime)
	assert.Nil(t, findReason(sd.Reasoning, FieldTime))
}

func TestResolveDuration_SlotBeatsLearnedPreference(t *testing.T) {
	// The calendar slot is a hard external constraint; it wins even when a
	// learned per-type duration is also present.
	ctx := testContext()
	ctx.ExplicitType = domain.TypeStrength
	ctx.Calendar = &CalendarContext{
		SelectedDate: &testDay,
		Slot:         &TimeSlot{Start: "14:00", DurationMin: 45},
	}
	ctx.Profile = &domain.PreferenceProfile{
		DefaultDurations: map[domain.WorkoutType]int{domain.TypeStrength: 90},
	}

	sd := Resolve(ctx)

	assert.Equal(t, 45, sd.DurationMin)
	r := findReason(sd.Reasoning, FieldDuration)
	require.NotNil(t, r)
	assert.Equal(t, SourceCalendar, r.Source)
}

func TestResolveDuration_ProfileDefault(t *testing.T) {
	ctx := testContext()
	ctx.ExplicitType = domain.TypeConditioning
	ctx.Profile = &domain.PreferenceProfile{
		DefaultDurations: map[domain.WorkoutType]int{domain.TypeConditioning: 40},
	}

	sd := Resolve(ctx)

	assert.Equal(t, 40, sd.DurationMin)
	r := findReason(sd.Reasoning, FieldDuration)
	require.NotNil(t, r)
	assert.Equal(t, 85, r.Confidence)
}

func TestResolveDuration_BaselineIsSilent(t *testing.T) {
	ctx := testContext()
	ctx.ExplicitType = domain.TypeRecovery

	sd := Resolve(ctx)

	assert.Equal(t, 30, sd.DurationMin)
	assert.Nil(t, findReason(sd.Reasoning, FieldDuration))
}

func TestResolveIntensity_WeekdayBaseline(t *testing.T) {
	ctx := testContext()
	ctx.Calendar = &CalendarContext{SelectedDate: &testDay} // Tuesday

	sd := Resolve(ctx)

	assert.Equal(t, domain.IntensityHigh, sd.Intensity)
	assert.Nil(t, findReason(sd.Reasoning, FieldIntensity), "weekday baseline is silent")
}

func TestResolveIntensity_GameTomorrowForcesRecovery(t *testing.T) {
	ctx := testContext()
	ctx.Calendar = &CalendarContext{
		SelectedDate: &testDay,
		Events: []domain.Event{
			{Kind: domain.EventGame, StartsAt: testDay.AddDate(0, 0, 1).Add(19 * time.Hour)},
		},
	}

	sd := Resolve(ctx)

	assert.Equal(t, domain.IntensityLow, sd.Intensity)
	r := findReason(sd.Reasoning, FieldIntensity)
	require.NotNil(t, r)
	assert.Equal(t, 85, r.Confidence)
	assert.Equal(t, SourceCalendar, r.Source)
}

func TestResolveIntensity_ProfileOverridesGameDay(t *testing.T) {
	// The learned preference is applied last and overwrites the game-day
	// recovery override.
	ctx := testContext()
	ctx.ExplicitType = domain.TypeStrength
	ctx.Calendar = &CalendarContext{
		SelectedDate: &testDay,
		Events: []domain.Event{
			{Kind: domain.EventGame, StartsAt: testDay.AddDate(0, 0, 1)},
		},
	}
	ctx.Profile = &domain.PreferenceProfile{
		DefaultIntensities: map[domain.WorkoutType]domain.Intensity{domain.TypeStrength: domain.IntensityHigh},
	}

	sd := Resolve(ctx)

	assert.Equal(t, domain.IntensityHigh, sd.Intensity)
	r := findReason(sd.Reasoning, FieldIntensity)
	require.NotNil(t, r)
	assert.Equal(t, 80, r.Confidence)
	assert.Equal(t, SourcePreferences, r.Source)
}

func TestResolveEquipment_FacilityIntersection(t *testing.T) {
	ctx := testContext()
	ctx.ExplicitType = domain.TypeStrength
	ctx.Calendar = &CalendarContext{
		SelectedDate: &testDay,
		Slot:         &TimeSlot{Start: "14:00", DurationMin: 60},
	}
	ctx.Facility = []domain.FacilityDay{{
		Date:      testDay,
		Equipment: []string{"dumbbells"},
		Slots:     []domain.FacilitySlot{{Start: "13:00", End: "16:00", Available: true}},
	}}
	// Preferred equipment has an empty intersection with the facility
	// result, so the preference narrowing must be skipped.
	ctx.Profile = &domain.PreferenceProfile{PreferredEquipment: []string{"barbell"}}

	sd := Resolve(ctx)

	assert.Equal(t, []string{"dumbbells"}, sd.Equipment)
	r := findReason(sd.Reasoning, FieldEquipment)
	require.NotNil(t, r)
	assert.Equal(t, 80, r.Confidence)
	assert.Equal(t, SourceAvailability, r.Source)
}

func TestResolveEquipment_PreferenceNarrowsLast(t *testing.T) {
	ctx := testContext()
	ctx.ExplicitType = domain.TypeStrength
	ctx.Profile = &domain.PreferenceProfile{PreferredEquipment: []string{"dumbbells", "bench"}}

	sd := Resolve(ctx)

	assert.Equal(t, []string{"dumbbells", "bench"}, sd.Equipment)
	r := findReason(sd.Reasoning, FieldEquipment)
	require.NotNil(t, r)
	assert.Equal(t, 85, r.Confidence)
	assert.Equal(t, SourcePreferences, r.Source)
}

func TestResolveEquipment_EmptyFacilityIntersectionKeepsBaseline(t *testing.T) {
	ctx := testContext()
	ctx.ExplicitType = domain.TypeStrength
	ctx.Calendar = &CalendarContext{
		SelectedDate: &testDay,
		Slot:         &TimeSlot{Start: "14:00", DurationMin: 60},
	}
	ctx.Facility = []domain.FacilityDay{{
		Date:      testDay,
		Equipment: []string{"pool noodles"},
		Slots:     []domain.FacilitySlot{{Start: "13:00", End: "16:00", Available: true}},
	}}

	sd := Resolve(ctx)

	assert.Equal(t, []string{"barbell", "dumbbells", "squat rack", "bench"}, sd.Equipment)
	assert.Nil(t, findReason(sd.Reasoning, FieldEquipment))
}

func TestResolveAssignment_CurrentTeamAndRoster(t *testing.T) {
	team := primitive.NewObjectID()
	fit := domain.Player{ID: primitive.NewObjectID(), Name: "A", Available: true}
	injured := domain.Player{ID: primitive.NewObjectID(), Name: "B", Available: true, Injured: true}
	away := domain.Player{ID: primitive.NewObjectID(), Name: "C", Available: false}

	ctx := testContext()
	ctx.CurrentTeamID = team.Hex()
	ctx.Rosters = map[string][]domain.Player{
		team.Hex(): {fit, injured, away},
	}

	sd := Resolve(ctx)

	assert.Equal(t, []string{team.Hex()}, sd.TeamIDs)
	assert.Equal(t, []string{fit.ID.Hex()}, sd.PlayerIDs)

	tr := findReason(sd.Reasoning, FieldTeam)
	require.NotNil(t, tr)
	assert.Equal(t, 90, tr.Confidence)

	pr := findReason(sd.Reasoning, FieldPlayers)
	require.NotNil(t, pr)
	assert.Equal(t, 75, pr.Confidence)
	assert.Equal(t, SourcePattern, pr.Source)
}

func TestResolveAssignment_SentinelTeamsExcluded(t *testing.T) {
	ctx := testContext()
	ctx.CurrentTeamID = TeamAll

	sd := Resolve(ctx)

	assert.Empty(t, sd.TeamIDs)
	assert.Empty(t, sd.PlayerIDs)
	assert.Nil(t, findReason(sd.Reasoning, FieldTeam))
}

func TestResolveAssignment_ViewingTeamThenRecent(t *testing.T) {
	ctx := testContext()
	ctx.ViewingTeamID = "viewing-team"

	sd := Resolve(ctx)
	r := findReason(sd.Reasoning, FieldTeam)
	require.NotNil(t, r)
	assert.Equal(t, 85, r.Confidence)
	assert.Equal(t, []string{"viewing-team"}, sd.TeamIDs)

	ctx = testContext()
	ctx.Profile = &domain.PreferenceProfile{RecentTeams: []string{"recent-team", "older-team"}}

	sd = Resolve(ctx)
	r = findReason(sd.Reasoning, FieldTeam)
	require.NotNil(t, r)
	assert.Equal(t, 70, r.Confidence)
	assert.Equal(t, []string{"recent-team"}, sd.TeamIDs)
}

func TestResolveAssignment_RosterCap(t *testing.T) {
	team := primitive.NewObjectID()
	roster := make([]domain.Player, 0, 20)
	for i := 0; i < 20; i++ {
		roster = append(roster, domain.Player{ID: primitive.NewObjectID(), Available: true})
	}

	ctx := testContext()
	ctx.CurrentTeamID = team.Hex()
	ctx.Rosters = map[string][]domain.Player{team.Hex(): roster}

	sd := Resolve(ctx)

	assert.Len(t, sd.PlayerIDs, MaxAssignedPlayers)
	assert.Equal(t, roster[0].ID.Hex(), sd.PlayerIDs[0], "roster order preserved")
}

func TestResolveAssignment_EmptyRosterNoReason(t *testing.T) {
	ctx := testContext()
	ctx.CurrentTeamID = "team-1"

	sd := Resolve(ctx)

	assert.Equal(t, []string{"team-1"}, sd.TeamIDs)
	assert.Empty(t, sd.PlayerIDs)
	assert.Nil(t, findReason(sd.Reasoning, FieldPlayers))
}
