package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vlosev/teamops-app/internal/domain"
	"vlosev/teamops-app/internal/repository"
)

// fakeSessionRepo is an in-memory SessionRepository.
type fakeSessionRepo struct {
	sessions map[primitive.ObjectID]*domain.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[primitive.ObjectID]*domain.Session{}}
}

func (f *fakeSessionRepo) Create(_ context.Context, session *domain.Session) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *session
	stored.ID = id
	f.sessions[id] = &stored
	return id, nil
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSessionRepo) GetByCoachID(_ context.Context, coachID primitive.ObjectID) ([]domain.Session, error) {
	var out []domain.Session
	for _, s := range f.sessions {
		if s.CoachID == coachID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) Update(_ context.Context, session *domain.Session) error {
	if _, ok := f.sessions[session.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *session
	f.sessions[session.ID] = &stored
	return nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, id, coachID primitive.ObjectID) error {
	s, ok := f.sessions[id]
	if !ok || s.CoachID != coachID {
		return repository.ErrNotFound
	}
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionRepo) TypeFrequencies(_ context.Context, _ primitive.ObjectID) ([]domain.TypeFrequency, error) {
	return nil, nil
}

// recordingLearner records LearnFromSave invocations.
type recordingLearner struct {
	calls []primitive.ObjectID
	err   error
}

func (l *recordingLearner) LearnFromSave(_ context.Context, userID primitive.ObjectID, _ *domain.Session) error {
	l.calls = append(l.calls, userID)
	return l.err
}

func validForm() SessionForm {
	date := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)
	return SessionForm{
		Name:        "Evening Strength",
		Type:        domain.TypeStrength,
		Date:        &date,
		StartTime:   "18:00",
		DurationMin: 60,
		Intensity:   domain.IntensityHigh,
	}
}

func TestCreateConfirmedSessionFeedsLearner(t *testing.T) {
	repo := newFakeSessionRepo()
	learner := &recordingLearner{}
	svc := NewSessionService(repo, learner)
	coachID := primitive.NewObjectID()

	session, err := svc.CreateSession(context.Background(), coachID, validForm(), true)
	require.NoError(t, err)
	assert.True(t, session.Confirmed)
	assert.Equal(t, []primitive.ObjectID{coachID}, learner.calls)
}

func TestCreateUnconfirmedSessionSkipsLearner(t *testing.T) {
	repo := newFakeSessionRepo()
	learner := &recordingLearner{}
	svc := NewSessionService(repo, learner)

	_, err := svc.CreateSession(context.Background(), primitive.NewObjectID(), validForm(), false)
	require.NoError(t, err)
	assert.Empty(t, learner.calls)
}

func TestLearnerFailureNeverFailsTheSave(t *testing.T) {
	repo := newFakeSessionRepo()
	learner := &recordingLearner{err: errors.New("preference store down")}
	svc := NewSessionService(repo, learner)

	session, err := svc.CreateSession(context.Background(), primitive.NewObjectID(), validForm(), true)
	require.NoError(t, err)
	assert.Contains(t, repo.sessions, session.ID)
}

func TestCreateSessionValidatesInput(t *testing.T) {
	svc := NewSessionService(newFakeSessionRepo(), nil)
	coachID := primitive.NewObjectID()

	form := validForm()
	form.Type = "crossfit"
	_, err := svc.CreateSession(context.Background(), coachID, form, false)
	assert.ErrorIs(t, err, ErrSessionValidation)

	form = validForm()
	form.Date = nil
	_, err = svc.CreateSession(context.Background(), coachID, form, false)
	assert.ErrorIs(t, err, ErrSessionValidation)

	form = validForm()
	form.TeamIDs = []string{"not-an-object-id"}
	_, err = svc.CreateSession(context.Background(), coachID, form, false)
	assert.ErrorIs(t, err, ErrSessionValidation)
}

func TestUpdateSessionEnforcesOwnership(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(repo, nil)
	owner := primitive.NewObjectID()

	created, err := svc.CreateSession(context.Background(), owner, validForm(), false)
	require.NoError(t, err)

	_, err = svc.UpdateSession(context.Background(), primitive.NewObjectID(), created.ID, validForm(), false)
	assert.ErrorIs(t, err, ErrSessionAccessDenied)
}

func TestUpdateConfirmingSessionFeedsLearnerOnce(t *testing.T) {
	repo := newFakeSessionRepo()
	learner := &recordingLearner{}
	svc := NewSessionService(repo, learner)
	coachID := primitive.NewObjectID()

	created, err := svc.CreateSession(context.Background(), coachID, validForm(), false)
	require.NoError(t, err)
	require.Empty(t, learner.calls)

	// Confirming the draft feeds the learner.
	_, err = svc.UpdateSession(context.Background(), coachID, created.ID, validForm(), true)
	require.NoError(t, err)
	assert.Len(t, learner.calls, 1)

	// Editing an already confirmed session does not re-feed it.
	_, err = svc.UpdateSession(context.Background(), coachID, created.ID, validForm(), true)
	require.NoError(t, err)
	assert.Len(t, learner.calls, 1)
}

func TestDeleteSessionMapsNotFound(t *testing.T) {
	svc := NewSessionService(newFakeSessionRepo(), nil)
	err := svc.DeleteSession(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
