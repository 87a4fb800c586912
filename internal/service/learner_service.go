package service

import (
	"context"
	"errors"
	"math"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vlosev/teamops-app/internal/domain"
	"vlosev/teamops-app/internal/repository"
)

// Learner tuning. The EMA weight and promotion threshold are deliberately
// conservative: one unusual save nudges the duration a little and never
// flips a categorical default.
const (
	durationEMAWeight         = 0.3
	intensityPromoteThreshold = 3
)

// --- Service Interface ---

// LearnerService is the only writer of PreferenceProfile. It is invoked on
// explicit save confirmations and refines the coach's learned defaults from
// the final observed session values.
type LearnerService interface {
	// LearnFromSave applies every update rule in order. A returned error is
	// informational (for logging); callers must never fail the save that
	// triggered it.
	LearnFromSave(ctx context.Context, userID primitive.ObjectID, session *domain.Session) error
}

// --- Service Implementation ---

type learnerService struct {
	prefRepo repository.PreferenceRepository
}

// NewLearnerService creates a new instance of learnerService.
func NewLearnerService(prefRepo repository.PreferenceRepository) LearnerService {
	return &learnerService{prefRepo: prefRepo}
}

func (s *learnerService) LearnFromSave(ctx context.Context, userID primitive.ObjectID, session *domain.Session) error {
	if session == nil || session.Type == "" {
		return errors.New("learner requires a session with a workout type")
	}

	profile, err := s.prefRepo.Get(ctx, userID)
	if err != nil {
		// Lazy creation: first confirmed save materializes the profile.
		profile = domain.NewPreferenceProfile(userID)
	}
	if profile.DefaultDurations == nil {
		profile.DefaultDurations = map[domain.WorkoutType]int{}
	}
	if profile.DefaultIntensities == nil {
		profile.DefaultIntensities = map[domain.WorkoutType]domain.Intensity{}
	}

	s.updateRecents(profile, session)
	s.updateDuration(profile, session)
	s.updateIntensity(ctx, profile, userID, session)
	s.updatePreferredTime(profile, session)
	s.updateEquipment(profile, session)

	return s.prefRepo.Set(ctx, profile)
}

// updateRecents pushes the observed type and team onto the MRU lists:
// front, de-duplicated, capped.
func (s *learnerService) updateRecents(profile *domain.PreferenceProfile, session *domain.Session) {
	profile.RecentWorkoutTypes = pushRecentType(profile.RecentWorkoutTypes, session.Type)
	if len(session.TeamIDs) > 0 {
		profile.RecentTeams = pushRecent(profile.RecentTeams, session.TeamIDs[0].Hex())
	}
}

// updateDuration folds the observed length into the per-type EMA. The first
// observation seeds the average directly.
func (s *learnerService) updateDuration(profile *domain.PreferenceProfile, session *domain.Session) {
	if session.DurationMin <= 0 {
		return
	}
	old, ok := profile.DefaultDurations[session.Type]
	if !ok || old <= 0 {
		profile.DefaultDurations[session.Type] = session.DurationMin
		return
	}
	ema := float64(old)*(1-durationEMAWeight) + float64(session.DurationMin)*durationEMAWeight
	profile.DefaultDurations[session.Type] = int(math.Round(ema))
}

// updateIntensity maintains the promotion counter: the learned default only
// flips after intensityPromoteThreshold consecutive-key mismatches. Counter
// failures are swallowed; a lost increment just delays promotion.
func (s *learnerService) updateIntensity(ctx context.Context, profile *domain.PreferenceProfile, userID primitive.ObjectID, session *domain.Session) {
	observed := session.Intensity
	if observed == "" {
		return
	}
	current, ok := profile.DefaultIntensities[session.Type]
	if !ok || current == "" {
		// Nothing learned yet: the first observation becomes the default.
		profile.DefaultIntensities[session.Type] = observed
		return
	}
	if current == observed {
		return
	}

	count, err := s.prefRepo.GetIntensityCounter(ctx, userID, session.Type, observed)
	if err != nil {
		return
	}
	count++
	if count >= intensityPromoteThreshold {
		profile.DefaultIntensities[session.Type] = observed
		_ = s.prefRepo.SetIntensityCounter(ctx, userID, session.Type, observed, 0)
		return
	}
	_ = s.prefRepo.SetIntensityCounter(ctx, userID, session.Type, observed, count)
}

// updatePreferredTime upserts the (weekday, type) -> start time entry.
func (s *learnerService) updatePreferredTime(profile *domain.PreferenceProfile, session *domain.Session) {
	if session.StartTime == "" {
		return
	}
	day := session.Date.UTC().Weekday()
	for i := range profile.PreferredTimes {
		if profile.PreferredTimes[i].DayOfWeek == day && profile.PreferredTimes[i].Type == session.Type {
			profile.PreferredTimes[i].StartTime = session.StartTime
			return
		}
	}
	profile.PreferredTimes = append(profile.PreferredTimes, domain.PreferredTime{
		DayOfWeek: day,
		Type:      session.Type,
		StartTime: session.StartTime,
	})
}

// updateEquipment unions the observed equipment into the preferred list.
// Survivorship is purely positional: new items append at the end and the
// oldest entries drop off the front once the cap is exceeded. A rarely-used
// but recent item can therefore displace a frequently-used older one.
func (s *learnerService) updateEquipment(profile *domain.PreferenceProfile, session *domain.Session) {
	existing := map[string]bool{}
	for _, e := range profile.PreferredEquipment {
		existing[e] = true
	}
	for _, e := range session.Equipment {
		if e == "" || existing[e] {
			continue
		}
		existing[e] = true
		profile.PreferredEquipment = append(profile.PreferredEquipment, e)
	}
	if n := len(profile.PreferredEquipment); n > domain.MaxPreferredEquipment {
		profile.PreferredEquipment = profile.PreferredEquipment[n-domain.MaxPreferredEquipment:]
	}
}

// pushRecent prepends v, de-duplicates and caps the list.
func pushRecent(list []string, v string) []string {
	out := []string{v}
	for _, item := range list {
		if item != v {
			out = append(out, item)
		}
		if len(out) == domain.MaxRecentEntries {
			break
		}
	}
	return out
}

func pushRecentType(list []domain.WorkoutType, v domain.WorkoutType) []domain.WorkoutType {
	out := []domain.WorkoutType{v}
	for _, item := range list {
		if item != v {
			out = append(out, item)
		}
		if len(out) == domain.MaxRecentEntries {
			break
		}
	}
	return out
}
