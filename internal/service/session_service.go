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
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionAccessDenied = errors.New("access denied to modify or delete this session")
	ErrSessionValidation   = errors.New("session validation failed")
)

// --- Service Interface ---

type SessionService interface {
	CreateSession(ctx context.Context, coachID primitive.ObjectID, form SessionForm, confirmed bool) (*domain.Session, error)
	GetSessionByID(ctx context.Context, sessionID primitive.ObjectID) (*domain.Session, error)
	GetSessionsByCoach(ctx context.Context, coachID primitive.ObjectID) ([]domain.Session, error)
	UpdateSession(ctx context.Context, coachID, sessionID primitive.ObjectID, form SessionForm, confirmed bool) (*domain.Session, error)
	DeleteSession(ctx context.Context, coachID, sessionID primitive.ObjectID) error
}

// --- Service Implementation ---

type sessionService struct {
	sessionRepo repository.SessionRepository
	learner     LearnerService
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(sessionRepo repository.SessionRepository, learner LearnerService) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		learner:     learner,
	}
}

// CreateSession persists a session built from the (already merged) form. A
// confirmed save additionally feeds the preference learner; learner failures
// are logged and never fail the save.
func (s *sessionService) CreateSession(ctx context.Context, coachID primitive.ObjectID, form SessionForm, confirmed bool) (*domain.Session, error) {
	session, err := sessionFromForm(coachID, form)
	if err != nil {
		return nil, err
	}
	session.Confirmed = confirmed

	sessionID, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		return nil, err
	}
	session.ID = sessionID

	s.feedLearner(ctx, coachID, session)
	return session, nil
}

func (s *sessionService) GetSessionByID(ctx context.Context, sessionID primitive.ObjectID) (*domain.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *sessionService) GetSessionsByCoach(ctx context.Context, coachID primitive.ObjectID) ([]domain.Session, error) {
	if coachID == primitive.NilObjectID {
		return nil, errors.New("coach ID cannot be nil")
	}
	return s.sessionRepo.GetByCoachID(ctx, coachID)
}

// UpdateSession replaces a session's fields, ensuring ownership. Confirming
// a previously unconfirmed session feeds the learner.
func (s *sessionService) UpdateSession(ctx context.Context, coachID, sessionID primitive.ObjectID, form SessionForm, confirmed bool) (*domain.Session, error) {
	existing, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if existing.CoachID != coachID {
		return nil, ErrSessionAccessDenied
	}

	updated, err := sessionFromForm(coachID, form)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	wasConfirmed := existing.Confirmed
	updated.Confirmed = wasConfirmed || confirmed

	if err := s.sessionRepo.Update(ctx, updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if confirmed && !wasConfirmed {
		s.feedLearner(ctx, coachID, updated)
	}
	return updated, nil
}

func (s *sessionService) DeleteSession(ctx context.Context, coachID, sessionID primitive.ObjectID) error {
	if coachID == primitive.NilObjectID || sessionID == primitive.NilObjectID {
		return errors.New("coach ID and session ID are required")
	}
	err := s.sessionRepo.Delete(ctx, sessionID, coachID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	return nil
}

func (s *sessionService) feedLearner(ctx context.Context, coachID primitive.ObjectID, session *domain.Session) {
	if s.learner == nil || !session.Confirmed {
		return
	}
	if err := s.learner.LearnFromSave(ctx, coachID, session); err != nil {
		// Preference learning must never fail a save.
		log.Printf("WARN: preference learner failed for coach %s: %v", coachID.Hex(), err)
	}
}

// sessionFromForm validates and converts the merged form into a domain
// session.
func sessionFromForm(coachID primitive.ObjectID, form SessionForm) (*domain.Session, error) {
	if coachID == primitive.NilObjectID {
		return nil, errors.New("coach ID is required")
	}
	if form.Name == "" || form.Type == "" || form.Date == nil {
		return nil, ErrSessionValidation
	}
	if !domain.IsValidWorkoutType(form.Type) {
		return nil, ErrSessionValidation
	}
	if form.Intensity != "" && !domain.IsValidIntensity(form.Intensity) {
		return nil, ErrSessionValidation
	}

	teamIDs, err := parseObjectIDs(form.TeamIDs)
	if err != nil {
		return nil, ErrSessionValidation
	}
	playerIDs, err := parseObjectIDs(form.PlayerIDs)
	if err != nil {
		return nil, ErrSessionValidation
	}

	return &domain.Session{
		CoachID:     coachID,
		Name:        form.Name,
		Type:        form.Type,
		Date:        dateOnly(*form.Date),
		StartTime:   form.StartTime,
		DurationMin: form.DurationMin,
		TeamIDs:     teamIDs,
		PlayerIDs:   playerIDs,
		Intensity:   form.Intensity,
		Equipment:   form.Equipment,
		Tags:        form.Tags,
		Notes:       form.Notes,
	}, nil
}

func parseObjectIDs(hexes []string) ([]primitive.ObjectID, error) {
	var ids []primitive.ObjectID
	for _, h := range hexes {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
