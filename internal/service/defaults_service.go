package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vlosev/teamops-app/internal/defaults"
	"vlosev/teamops-app/internal/domain"
	"vlosev/teamops-app/internal/repository"
)

// DefaultsRequest carries the caller-side signals for one resolution cycle:
// what the coach has on screen right now. Everything else (history, profile,
// facility, rosters) is fetched during context assembly.
type DefaultsRequest struct {
	UserID        primitive.ObjectID
	ExplicitType  domain.WorkoutType
	CurrentTeamID string // may be the "all"/"personal" sentinel
	ViewingTeamID string
	SelectedDate  *time.Time
	Slot          *defaults.TimeSlot
}

// --- Service Interface ---

type DefaultsService interface {
	// Compute assembles a fresh context snapshot and runs the inference
	// pipeline. It only fails on context cancellation; every missing or
	// broken collaborator is absorbed as "no signal".
	Compute(ctx context.Context, req DefaultsRequest) (defaults.SmartDefaults, error)

	// NewController binds a reactive controller to one editing session. The
	// provider is called at the start of each cycle so the controller always
	// computes against the coach's latest on-screen state.
	NewController(provider func() DefaultsRequest) *defaults.Controller
}

// --- Service Implementation ---

type defaultsService struct {
	prefRepo     repository.PreferenceRepository
	sessionRepo  repository.SessionRepository
	teamRepo     repository.TeamRepository
	eventRepo    repository.EventRepository
	facilityRepo repository.FacilityRepository
	clock        defaults.Clock
	debounce     time.Duration
}

// NewDefaultsService creates a new instance of defaultsService.
func NewDefaultsService(
	prefRepo repository.PreferenceRepository,
	sessionRepo repository.SessionRepository,
	teamRepo repository.TeamRepository,
	eventRepo repository.EventRepository,
	facilityRepo repository.FacilityRepository,
	clock defaults.Clock,
	debounce time.Duration,
) DefaultsService {
	if clock == nil {
		clock = defaults.SystemClock()
	}
	return &defaultsService{
		prefRepo:     prefRepo,
		sessionRepo:  sessionRepo,
		teamRepo:     teamRepo,
		eventRepo:    eventRepo,
		facilityRepo: facilityRepo,
		clock:        clock,
		debounce:     debounce,
	}
}

func (s *defaultsService) Compute(ctx context.Context, req DefaultsRequest) (defaults.SmartDefaults, error) {
	snapshot := s.assemble(ctx, req)
	if err := ctx.Err(); err != nil {
		// The cycle was superseded while we were gathering signals; don't
		// hand back a half-assembled resolution.
		return defaults.SmartDefaults{}, err
	}
	return defaults.Resolve(snapshot), nil
}

func (s *defaultsService) NewController(provider func() DefaultsRequest) *defaults.Controller {
	return defaults.NewController(func(ctx context.Context) (defaults.SmartDefaults, error) {
		return s.Compute(ctx, provider())
	}, s.debounce)
}

// assemble builds the immutable context snapshot for one cycle. Every
// collaborator call that fails simply leaves its signal absent. The engine
// treats that as "no signal", and the only user-visible effect is lower
// confidence with fewer reasoning entries.
func (s *defaultsService) assemble(ctx context.Context, req DefaultsRequest) defaults.Context {
	now := s.clock.Now()
	planningDate := now
	if req.SelectedDate != nil {
		planningDate = *req.SelectedDate
	}

	snapshot := defaults.Context{
		ExplicitType:  req.ExplicitType,
		CurrentTeamID: req.CurrentTeamID,
		ViewingTeamID: req.ViewingTeamID,
		TeamNames:     map[string]string{},
		Rosters:       map[string][]domain.Player{},
		Now:           now,
	}

	calendar := &defaults.CalendarContext{
		SelectedDate: req.SelectedDate,
		Slot:         req.Slot,
	}

	if profile, err := s.prefRepo.Get(ctx, req.UserID); err == nil {
		// Snapshot semantics: resolvers read a clone, never the live doc.
		snapshot.Profile = profile.Clone()
	}

	if history, err := s.sessionRepo.TypeFrequencies(ctx, req.UserID); err == nil {
		snapshot.History = history
	}

	if facility, err := s.facilityRepo.GetByDate(ctx, planningDate); err == nil {
		snapshot.Facility = facility
	}

	// Load rosters and names for every candidate assignment team, and pull
	// nearby schedule events for the primary one (two days out covers the
	// game-tomorrow heuristic).
	primary := true
	for _, teamID := range candidateTeams(req, snapshot.Profile) {
		oid, err := primitive.ObjectIDFromHex(teamID)
		if err != nil {
			primary = false
			continue
		}
		if team, err := s.teamRepo.GetByID(ctx, oid); err == nil {
			snapshot.TeamNames[teamID] = team.Name
			snapshot.Rosters[teamID] = team.Roster
		}
		if primary {
			from := dateOnly(planningDate)
			if events, err := s.eventRepo.ListBetween(ctx, oid, from, from.AddDate(0, 0, 2)); err == nil {
				calendar.Events = events
			}
		}
		primary = false
	}

	snapshot.Calendar = calendar
	return snapshot
}

// candidateTeams lists the team ids the assignment resolver may pick, in
// precedence order and de-duplicated.
func candidateTeams(req DefaultsRequest, profile *domain.PreferenceProfile) []string {
	var ids []string
	seen := map[string]bool{}
	add := func(id string) {
		if id != "" && id != defaults.TeamAll && id != defaults.TeamPersonal && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	add(req.CurrentTeamID)
	add(req.ViewingTeamID)
	if profile != nil && len(profile.RecentTeams) > 0 {
		add(profile.RecentTeams[0])
	}
	return ids
}

// dateOnly truncates t to midnight UTC.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
