package service

import (
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vlosev/teamops-app/internal/domain"
	"vlosev/teamops-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamAccessDenied = errors.New("access denied to this team")
	ErrTeamNameRequired = errors.New("team name is required")
)

// --- Service Interface ---

type TeamService interface {
	CreateTeam(ctx context.Context, coachID primitive.ObjectID, name, sport string, roster []domain.Player) (*domain.Team, error)
	GetTeamByID(ctx context.Context, teamID primitive.ObjectID) (*domain.Team, error)
	GetTeamsByCoach(ctx context.Context, coachID primitive.ObjectID) ([]domain.Team, error)
	// UpdateRoster replaces the team's roster, ensuring the caller coaches
	// the team. Roster changes feed straight into player assignment defaults.
	UpdateRoster(ctx context.Context, coachID, teamID primitive.ObjectID, roster []domain.Player) (*domain.Team, error)
}

// --- Service Implementation ---

type teamService struct {
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
}

// NewTeamService creates a new instance of teamService.
func NewTeamService(teamRepo repository.TeamRepository, userRepo repository.UserRepository) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, coachID primitive.ObjectID, name, sport string, roster []domain.Player) (*domain.Team, error) {
	if coachID == primitive.NilObjectID {
		return nil, errors.New("coach ID is required")
	}
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	team := &domain.Team{
		Name:     name,
		Sport:    sport,
		CoachIDs: []primitive.ObjectID{coachID},
		Roster:   assignPlayerIDs(roster),
	}

	teamID, err := s.teamRepo.Create(ctx, team)
	if err != nil {
		return nil, err
	}
	team.ID = teamID

	// Keep the coach's team list in sync. The team itself is the source of
	// truth, so a failure here is logged rather than rolled back.
	if err := s.userRepo.AddTeamToCoach(ctx, coachID, teamID); err != nil {
		log.Printf("WARN: failed to link team %s to coach %s: %v", teamID.Hex(), coachID.Hex(), err)
	}

	return team, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, teamID primitive.ObjectID) (*domain.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (s *teamService) GetTeamsByCoach(ctx context.Context, coachID primitive.ObjectID) ([]domain.Team, error) {
	if coachID == primitive.NilObjectID {
		return nil, errors.New("coach ID cannot be nil")
	}
	return s.teamRepo.GetByCoachID(ctx, coachID)
}

func (s *teamService) UpdateRoster(ctx context.Context, coachID, teamID primitive.ObjectID, roster []domain.Player) (*domain.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if !coachesTeam(team, coachID) {
		return nil, ErrTeamAccessDenied
	}

	team.Roster = assignPlayerIDs(roster)
	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func coachesTeam(team *domain.Team, coachID primitive.ObjectID) bool {
	for _, id := range team.CoachIDs {
		if id == coachID {
			return true
		}
	}
	return false
}

// assignPlayerIDs gives embedded players stable IDs so roster entries can be
// referenced from session assignments.
func assignPlayerIDs(roster []domain.Player) []domain.Player {
	out := make([]domain.Player, len(roster))
	copy(out, roster)
	for i := range out {
		if out[i].ID == primitive.NilObjectID {
			out[i].ID = primitive.NewObjectID()
		}
	}
	return out
}
