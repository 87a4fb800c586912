package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vlosev/teamops-app/internal/domain"
	"vlosev/teamops-app/internal/repository"
	"vlosev/teamops-app/internal/storage"
)

// --- Error Definitions ---
var (
	ErrInvalidImport = errors.New("preference import rejected: payload failed validation")
)

const exportFormatVersion = 1

// PreferenceExport is the portable envelope for a coach's learned profile.
// Round-tripping through Export/Import is lossless for every learned field.
type PreferenceExport struct {
	Version    int                       `json:"version"`
	ExportedAt time.Time                 `json:"exportedAt"`
	Profile    *domain.PreferenceProfile `json:"profile"`
}

// ExportResult carries the serialized profile plus an optional archive
// download URL. DownloadURL is empty when object storage is unavailable;
// the export itself still succeeds.
type ExportResult struct {
	Data        []byte
	DownloadURL string
}

// --- Service Interface ---

type PreferenceService interface {
	// GetProfile returns the coach's stored profile, or the static default
	// profile when nothing has been learned yet.
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.PreferenceProfile, error)
	// ResetProfile deletes all learned state, including intensity counters.
	ResetProfile(ctx context.Context, userID primitive.ObjectID) error
	Export(ctx context.Context, userID primitive.ObjectID) (*ExportResult, error)
	// Import validates the payload and atomically replaces the stored
	// profile. A rejected payload leaves the stored profile untouched.
	Import(ctx context.Context, userID primitive.ObjectID, data []byte) error
}

// --- Service Implementation ---

type preferenceService struct {
	prefRepo    repository.PreferenceRepository
	fileStorage storage.FileStorage // optional, may be nil
}

// NewPreferenceService creates a new instance of preferenceService.
// fileStorage may be nil; exports then skip the archive upload.
func NewPreferenceService(prefRepo repository.PreferenceRepository, fileStorage storage.FileStorage) PreferenceService {
	return &preferenceService{
		prefRepo:    prefRepo,
		fileStorage: fileStorage,
	}
}

func (s *preferenceService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.PreferenceProfile, error) {
	profile, err := s.prefRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NewPreferenceProfile(userID), nil
		}
		return nil, err
	}
	return profile, nil
}

func (s *preferenceService) ResetProfile(ctx context.Context, userID primitive.ObjectID) error {
	err := s.prefRepo.Delete(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}

func (s *preferenceService) Export(ctx context.Context, userID primitive.ObjectID) (*ExportResult, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	envelope := PreferenceExport{
		Version:    exportFormatVersion,
		ExportedAt: time.Now().UTC(),
		Profile:    profile,
	}
	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize preference export: %w", err)
	}

	result := &ExportResult{Data: data}

	// Archive upload is best effort. The caller always gets the payload.
	if s.fileStorage != nil {
		objectKey := fmt.Sprintf("exports/%s/%s.json", userID.Hex(), uuid.NewString())
		if err := s.fileStorage.PutObject(ctx, objectKey, "application/json", data); err != nil {
			log.Printf("WARN: preference export archive upload failed for user %s: %v", userID.Hex(), err)
			return result, nil
		}
		url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
		if err != nil {
			log.Printf("WARN: presigned URL for preference export failed for user %s: %v", userID.Hex(), err)
			return result, nil
		}
		result.DownloadURL = url
	}

	return result, nil
}

func (s *preferenceService) Import(ctx context.Context, userID primitive.ObjectID, data []byte) error {
	var envelope PreferenceExport
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	if envelope.Version != exportFormatVersion {
		return fmt.Errorf("%w: unsupported format version %d", ErrInvalidImport, envelope.Version)
	}
	if envelope.Profile == nil {
		return fmt.Errorf("%w: missing profile", ErrInvalidImport)
	}

	profile := envelope.Profile.Clone()
	if err := validateProfile(profile); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}

	// Rebind ownership: an export applies to whoever imports it.
	profile.UserID = userID
	profile.UpdatedAt = time.Now().UTC()
	if profile.DefaultDurations == nil {
		profile.DefaultDurations = map[domain.WorkoutType]int{}
	}
	if profile.DefaultIntensities == nil {
		profile.DefaultIntensities = map[domain.WorkoutType]domain.Intensity{}
	}

	return s.prefRepo.Set(ctx, profile)
}

// validateProfile checks every learned field against the domain vocabulary
// and list bounds. Import is all or nothing: one bad entry rejects the whole
// payload.
func validateProfile(p *domain.PreferenceProfile) error {
	for t, d := range p.DefaultDurations {
		if !domain.IsValidWorkoutType(t) {
			return fmt.Errorf("unknown workout type %q in defaultDurations", t)
		}
		if d <= 0 {
			return fmt.Errorf("non-positive duration %d for type %q", d, t)
		}
	}
	for t, i := range p.DefaultIntensities {
		if !domain.IsValidWorkoutType(t) {
			return fmt.Errorf("unknown workout type %q in defaultIntensities", t)
		}
		if !domain.IsValidIntensity(i) {
			return fmt.Errorf("unknown intensity %q for type %q", i, t)
		}
	}
	for _, pt := range p.PreferredTimes {
		if pt.DayOfWeek < time.Sunday || pt.DayOfWeek > time.Saturday {
			return fmt.Errorf("day of week %d out of range", pt.DayOfWeek)
		}
		if !domain.IsValidWorkoutType(pt.Type) {
			return fmt.Errorf("unknown workout type %q in preferredTimes", pt.Type)
		}
		if _, err := time.Parse("15:04", pt.StartTime); err != nil {
			return fmt.Errorf("malformed start time %q", pt.StartTime)
		}
	}
	if len(p.PreferredEquipment) > domain.MaxPreferredEquipment {
		return fmt.Errorf("preferredEquipment exceeds %d entries", domain.MaxPreferredEquipment)
	}
	if len(p.RecentTeams) > domain.MaxRecentEntries {
		return fmt.Errorf("recentTeams exceeds %d entries", domain.MaxRecentEntries)
	}
	if len(p.RecentWorkoutTypes) > domain.MaxRecentEntries {
		return fmt.Errorf("recentWorkoutTypes exceeds %d entries", domain.MaxRecentEntries)
	}
	for _, t := range p.RecentWorkoutTypes {
		if !domain.IsValidWorkoutType(t) {
			return fmt.Errorf("unknown workout type %q in recentWorkoutTypes", t)
		}
	}
	return nil
}
