package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vlosev/teamops-app/internal/domain"
	"vlosev/teamops-app/internal/repository"
)

// fakePreferenceRepo is an in-memory PreferenceRepository.
type fakePreferenceRepo struct {
	profiles map[primitive.ObjectID]*domain.PreferenceProfile
	counters map[string]int
	getErr   error
	setErr   error
}

func newFakePreferenceRepo() *fakePreferenceRepo {
	return &fakePreferenceRepo{
		profiles: map[primitive.ObjectID]*domain.PreferenceProfile{},
		counters: map[string]int{},
	}
}

func (f *fakePreferenceRepo) Get(_ context.Context, userID primitive.ObjectID) (*domain.PreferenceProfile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p.Clone(), nil
}

func (f *fakePreferenceRepo) Set(_ context.Context, profile *domain.PreferenceProfile) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.profiles[profile.UserID] = profile.Clone()
	return nil
}

func (f *fakePreferenceRepo) Delete(_ context.Context, userID primitive.ObjectID) error {
	if _, ok := f.profiles[userID]; !ok {
		return repository.ErrNotFound
	}
	delete(f.profiles, userID)
	for k := range f.counters {
		delete(f.counters, k)
	}
	return nil
}

func counterKey(userID primitive.ObjectID, t domain.WorkoutType, i domain.Intensity) string {
	return fmt.Sprintf("%s/%s/%s", userID.Hex(), t, i)
}

func (f *fakePreferenceRepo) GetIntensityCounter(_ context.Context, userID primitive.ObjectID, t domain.WorkoutType, i domain.Intensity) (int, error) {
	return f.counters[counterKey(userID, t, i)], nil
}

func (f *fakePreferenceRepo) SetIntensityCounter(_ context.Context, userID primitive.ObjectID, t domain.WorkoutType, i domain.Intensity, count int) error {
	f.counters[counterKey(userID, t, i)] = count
	return nil
}

// tuesday is a fixed reference day so preferred-time assertions are stable.
var tuesday = time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)

func confirmedSession(t domain.WorkoutType) *domain.Session {
	return &domain.Session{
		CoachID:     primitive.NewObjectID(),
		Name:        "Test Session",
		Type:        t,
		Date:        tuesday,
		StartTime:   "17:30",
		DurationMin: 60,
		Intensity:   domain.IntensityMedium,
		Confirmed:   true,
	}
}

func TestLearnerFirstSaveCreatesProfile(t *testing.T) {
	repo := newFakePreferenceRepo()
	learner := NewLearnerService(repo)
	userID := primitive.NewObjectID()
	teamID := primitive.NewObjectID()

	session := confirmedSession(domain.TypeSkills)
	session.TeamIDs = []primitive.ObjectID{teamID}
	session.DurationMin = 45
	session.Intensity = domain.IntensityHigh
	session.Equipment = []string{"cones", "balls"}

	require.NoError(t, learner.LearnFromSave(context.Background(), userID, session))

	profile := repo.profiles[userID]
	require.NotNil(t, profile)
	assert.Equal(t, 45, profile.DefaultDurations[domain.TypeSkills])
	assert.Equal(t, domain.IntensityHigh, profile.DefaultIntensities[domain.TypeSkills])
	assert.Equal(t, []domain.WorkoutType{domain.TypeSkills}, profile.RecentWorkoutTypes)
	assert.Equal(t, []string{teamID.Hex()}, profile.RecentTeams)
	assert.Equal(t, []string{"cones", "balls"}, profile.PreferredEquipment)
	assert.Equal(t, "17:30", profile.PreferredTimeFor(time.Tuesday, domain.TypeSkills))
}

func TestLearnerDurationEMA(t *testing.T) {
	repo := newFakePreferenceRepo()
	learner := NewLearnerService(repo)
	userID := primitive.NewObjectID()

	repo.profiles[userID] = &domain.PreferenceProfile{
		UserID:           userID,
		DefaultDurations: map[domain.WorkoutType]int{domain.TypeStrength: 60},
	}

	session := confirmedSession(domain.TypeStrength)
	session.DurationMin = 90
	require.NoError(t, learner.LearnFromSave(context.Background(), userID, session))

	// 60*0.7 + 90*0.3 = 69
	assert.Equal(t, 69, repo.profiles[userID].DefaultDurations[domain.TypeStrength])
}

func TestLearnerIntensityPromotionAfterThreeMismatches(t *testing.T) {
	repo := newFakePreferenceRepo()
	learner := NewLearnerService(repo)
	userID := primitive.NewObjectID()

	repo.profiles[userID] = &domain.PreferenceProfile{
		UserID:             userID,
		DefaultIntensities: map[domain.WorkoutType]domain.Intensity{domain.TypeConditioning: domain.IntensityMedium},
	}

	save := func() {
		session := confirmedSession(domain.TypeConditioning)
		session.Intensity = domain.IntensityHigh
		require.NoError(t, learner.LearnFromSave(context.Background(), userID, session))
	}

	save()
	assert.Equal(t, domain.IntensityMedium, repo.profiles[userID].DefaultIntensities[domain.TypeConditioning])
	save()
	assert.Equal(t, domain.IntensityMedium, repo.profiles[userID].DefaultIntensities[domain.TypeConditioning])
	assert.Equal(t, 2, repo.counters[counterKey(userID, domain.TypeConditioning, domain.IntensityHigh)])

	// Third consecutive mismatch flips the default and resets the counter.
	save()
	assert.Equal(t, domain.IntensityHigh, repo.profiles[userID].DefaultIntensities[domain.TypeConditioning])
	assert.Equal(t, 0, repo.counters[counterKey(userID, domain.TypeConditioning, domain.IntensityHigh)])
}

func TestLearnerMatchingIntensityLeavesCounterAlone(t *testing.T) {
	repo := newFakePreferenceRepo()
	learner := NewLearnerService(repo)
	userID := primitive.NewObjectID()

	repo.profiles[userID] = &domain.PreferenceProfile{
		UserID:             userID,
		DefaultIntensities: map[domain.WorkoutType]domain.Intensity{domain.TypeRecovery: domain.IntensityLow},
	}

	session := confirmedSession(domain.TypeRecovery)
	session.Intensity = domain.IntensityLow
	require.NoError(t, learner.LearnFromSave(context.Background(), userID, session))

	assert.Empty(t, repo.counters)
	assert.Equal(t, domain.IntensityLow, repo.profiles[userID].DefaultIntensities[domain.TypeRecovery])
}

func TestLearnerRecentListsDedupAndCap(t *testing.T) {
	repo := newFakePreferenceRepo()
	learner := NewLearnerService(repo)
	userID := primitive.NewObjectID()

	repo.profiles[userID] = &domain.PreferenceProfile{
		UserID: userID,
		RecentWorkoutTypes: []domain.WorkoutType{
			domain.TypeStrength, domain.TypeConditioning, domain.TypeSkills,
			domain.TypeTactical, domain.TypeRecovery,
		},
	}

	// Re-saving an already listed type moves it to the front without growing
	// the list.
	require.NoError(t, learner.LearnFromSave(context.Background(), userID, confirmedSession(domain.TypeSkills)))
	assert.Equal(t,
		[]domain.WorkoutType{domain.TypeSkills, domain.TypeStrength, domain.TypeConditioning, domain.TypeTactical, domain.TypeRecovery},
		repo.profiles[userID].RecentWorkoutTypes)
	assert.Len(t, repo.profiles[userID].RecentWorkoutTypes, domain.MaxRecentEntries)
}

func TestLearnerEquipmentKeepsMostRecentTen(t *testing.T) {
	repo := newFakePreferenceRepo()
	learner := NewLearnerService(repo)
	userID := primitive.NewObjectID()

	seeded := make([]string, 0, domain.MaxPreferredEquipment)
	for i := 0; i < domain.MaxPreferredEquipment; i++ {
		seeded = append(seeded, fmt.Sprintf("item-%d", i))
	}
	repo.profiles[userID] = &domain.PreferenceProfile{
		UserID:             userID,
		PreferredEquipment: append([]string(nil), seeded...),
	}

	session := confirmedSession(domain.TypeStrength)
	session.Equipment = []string{"item-3", "medicine ball"} // one known, one new
	require.NoError(t, learner.LearnFromSave(context.Background(), userID, session))

	got := repo.profiles[userID].PreferredEquipment
	require.Len(t, got, domain.MaxPreferredEquipment)
	// The oldest entry drops off the front; the new one lands at the end.
	assert.Equal(t, "item-1", got[0])
	assert.Equal(t, "medicine ball", got[len(got)-1])
	assert.NotContains(t, got, "item-0")
	// The already-known item was not duplicated.
	assert.Equal(t, 1, countOf(got, "item-3"))
}

func countOf(list []string, v string) int {
	n := 0
	for _, item := range list {
		if item == v {
			n++
		}
	}
	return n
}

func TestLearnerPreferredTimeUpsert(t *testing.T) {
	repo := newFakePreferenceRepo()
	learner := NewLearnerService(repo)
	userID := primitive.NewObjectID()

	repo.profiles[userID] = &domain.PreferenceProfile{
		UserID: userID,
		PreferredTimes: []domain.PreferredTime{
			{DayOfWeek: time.Tuesday, Type: domain.TypeStrength, StartTime: "06:00"},
		},
	}

	session := confirmedSession(domain.TypeStrength)
	session.StartTime = "18:00"
	require.NoError(t, learner.LearnFromSave(context.Background(), userID, session))

	profile := repo.profiles[userID]
	require.Len(t, profile.PreferredTimes, 1)
	assert.Equal(t, "18:00", profile.PreferredTimes[0].StartTime)

	// A different type on the same day gets its own entry.
	other := confirmedSession(domain.TypeRecovery)
	other.StartTime = "08:00"
	require.NoError(t, learner.LearnFromSave(context.Background(), userID, other))
	assert.Len(t, repo.profiles[userID].PreferredTimes, 2)
}

func TestLearnerMissingProfileIsCreatedLazily(t *testing.T) {
	repo := newFakePreferenceRepo()
	learner := NewLearnerService(repo)
	userID := primitive.NewObjectID()

	require.NoError(t, learner.LearnFromSave(context.Background(), userID, confirmedSession(domain.TypeTactical)))
	assert.Contains(t, repo.profiles, userID)
}
