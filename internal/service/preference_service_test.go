package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vlosev/teamops-app/internal/domain"
)

func learnedProfile(userID primitive.ObjectID) *domain.PreferenceProfile {
	return &domain.PreferenceProfile{
		UserID: userID,
		DefaultDurations: map[domain.WorkoutType]int{
			domain.TypeStrength: 75,
			domain.TypeRecovery: 30,
		},
		DefaultIntensities: map[domain.WorkoutType]domain.Intensity{
			domain.TypeStrength: domain.IntensityHigh,
		},
		PreferredTimes: []domain.PreferredTime{
			{DayOfWeek: time.Tuesday, Type: domain.TypeStrength, StartTime: "18:00"},
		},
		PreferredEquipment: []string{"barbell", "bench"},
		RecentTeams:        []string{primitive.NewObjectID().Hex()},
		RecentWorkoutTypes: []domain.WorkoutType{domain.TypeStrength},
		UpdatedAt:          time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestGetProfileReturnsDefaultWhenMissing(t *testing.T) {
	repo := newFakePreferenceRepo()
	svc := NewPreferenceService(repo, nil)
	userID := primitive.NewObjectID()

	profile, err := svc.GetProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, profile.UserID)
	assert.Empty(t, profile.DefaultDurations)
	assert.Empty(t, profile.PreferredEquipment)
}

func TestExportImportRoundTrip(t *testing.T) {
	repo := newFakePreferenceRepo()
	svc := NewPreferenceService(repo, nil)
	source := primitive.NewObjectID()
	want := learnedProfile(source)
	repo.profiles[source] = want

	result, err := svc.Export(context.Background(), source)
	require.NoError(t, err)
	assert.Empty(t, result.DownloadURL) // no object storage wired

	target := primitive.NewObjectID()
	require.NoError(t, svc.Import(context.Background(), target, result.Data))

	got := repo.profiles[target]
	require.NotNil(t, got)
	assert.Equal(t, target, got.UserID)
	assert.Equal(t, want.DefaultDurations, got.DefaultDurations)
	assert.Equal(t, want.DefaultIntensities, got.DefaultIntensities)
	assert.Equal(t, want.PreferredTimes, got.PreferredTimes)
	assert.Equal(t, want.PreferredEquipment, got.PreferredEquipment)
	assert.Equal(t, want.RecentTeams, got.RecentTeams)
	assert.Equal(t, want.RecentWorkoutTypes, got.RecentWorkoutTypes)
}

func TestImportRejectionLeavesProfileUntouched(t *testing.T) {
	repo := newFakePreferenceRepo()
	svc := NewPreferenceService(repo, nil)
	userID := primitive.NewObjectID()
	seeded := learnedProfile(userID)
	repo.profiles[userID] = seeded

	bad := PreferenceExport{
		Version: exportFormatVersion,
		Profile: &domain.PreferenceProfile{
			DefaultDurations: map[domain.WorkoutType]int{"yoga": 60},
		},
	}
	data, err := json.Marshal(bad)
	require.NoError(t, err)

	err = svc.Import(context.Background(), userID, data)
	require.ErrorIs(t, err, ErrInvalidImport)
	assert.Equal(t, seeded, repo.profiles[userID])
}

func TestImportRejectsMalformedStartTime(t *testing.T) {
	svc := NewPreferenceService(newFakePreferenceRepo(), nil)

	bad := PreferenceExport{
		Version: exportFormatVersion,
		Profile: &domain.PreferenceProfile{
			PreferredTimes: []domain.PreferredTime{
				{DayOfWeek: time.Monday, Type: domain.TypeSkills, StartTime: "6pm"},
			},
		},
	}
	data, err := json.Marshal(bad)
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Import(context.Background(), primitive.NewObjectID(), data), ErrInvalidImport)
}

func TestImportRejectsOversizedLists(t *testing.T) {
	svc := NewPreferenceService(newFakePreferenceRepo(), nil)

	equipment := make([]string, domain.MaxPreferredEquipment+1)
	for i := range equipment {
		equipment[i] = "item"
	}
	bad := PreferenceExport{
		Version: exportFormatVersion,
		Profile: &domain.PreferenceProfile{PreferredEquipment: equipment},
	}
	data, err := json.Marshal(bad)
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Import(context.Background(), primitive.NewObjectID(), data), ErrInvalidImport)
}

func TestImportRejectsGarbage(t *testing.T) {
	svc := NewPreferenceService(newFakePreferenceRepo(), nil)
	assert.ErrorIs(t, svc.Import(context.Background(), primitive.NewObjectID(), []byte("not json")), ErrInvalidImport)

	// Valid JSON, wrong version.
	assert.ErrorIs(t, svc.Import(context.Background(), primitive.NewObjectID(), []byte(`{"version":99}`)), ErrInvalidImport)
}

func TestResetProfileClearsLearnedState(t *testing.T) {
	repo := newFakePreferenceRepo()
	svc := NewPreferenceService(repo, nil)
	userID := primitive.NewObjectID()
	repo.profiles[userID] = learnedProfile(userID)

	require.NoError(t, svc.ResetProfile(context.Background(), userID))
	assert.NotContains(t, repo.profiles, userID)

	// Resetting an already-empty profile is not an error.
	require.NoError(t, svc.ResetProfile(context.Background(), userID))
}
