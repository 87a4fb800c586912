package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vlosev/teamops-app/internal/domain"
	"vlosev/teamops-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrEventValidation = errors.New("event validation failed")
)

// --- Service Interface ---

// ScheduleService maintains the calendar signals the defaults engine reads:
// team events (games, practices) and per-day facility availability.
type ScheduleService interface {
	CreateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error)
	ListEvents(ctx context.Context, teamID primitive.ObjectID, from, to time.Time) ([]domain.Event, error)
	SetFacilityDay(ctx context.Context, day *domain.FacilityDay) error
	GetFacilitiesByDate(ctx context.Context, date time.Time) ([]domain.FacilityDay, error)
}

// --- Service Implementation ---

type scheduleService struct {
	eventRepo    repository.EventRepository
	facilityRepo repository.FacilityRepository
}

// NewScheduleService creates a new instance of scheduleService.
func NewScheduleService(eventRepo repository.EventRepository, facilityRepo repository.FacilityRepository) ScheduleService {
	return &scheduleService{
		eventRepo:    eventRepo,
		facilityRepo: facilityRepo,
	}
}

func (s *scheduleService) CreateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	if event == nil || event.TeamID == primitive.NilObjectID || event.Title == "" {
		return nil, ErrEventValidation
	}
	if event.Kind != domain.EventGame && event.Kind != domain.EventPractice {
		return nil, ErrEventValidation
	}
	if event.EndsAt.Before(event.StartsAt) {
		return nil, ErrEventValidation
	}

	id, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, err
	}
	event.ID = id
	return event, nil
}

func (s *scheduleService) ListEvents(ctx context.Context, teamID primitive.ObjectID, from, to time.Time) ([]domain.Event, error) {
	if teamID == primitive.NilObjectID {
		return nil, errors.New("team ID is required")
	}
	return s.eventRepo.ListBetween(ctx, teamID, from, to)
}

func (s *scheduleService) SetFacilityDay(ctx context.Context, day *domain.FacilityDay) error {
	if day == nil || day.Facility == "" || day.Date.IsZero() {
		return errors.New("facility name and date are required")
	}
	day.Date = dateOnly(day.Date)
	return s.facilityRepo.Upsert(ctx, day)
}

func (s *scheduleService) GetFacilitiesByDate(ctx context.Context, date time.Time) ([]domain.FacilityDay, error) {
	return s.facilityRepo.GetByDate(ctx, dateOnly(date))
}
