package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vlosev/teamops-app/internal/domain"
	"vlosev/teamops-app/internal/service"
)

// SessionHandler holds the session service dependency.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// --- Request/Response Structs ---

type SaveSessionRequest struct {
	Form service.SessionForm `json:"form" binding:"required"`
	// Confirmed marks an explicit coach save, which feeds the preference
	// learner. Drafts and auto-saves leave it false.
	Confirmed bool `json:"confirmed"`
}

type SessionResponse struct {
	ID          string             `json:"id"`
	CoachID     string             `json:"coachId"`
	Name        string             `json:"name"`
	Type        domain.WorkoutType `json:"type"`
	Date        time.Time          `json:"date"`
	StartTime   string             `json:"startTime"`
	DurationMin int                `json:"durationMin"`
	TeamIDs     []string           `json:"teamIds,omitempty"`
	PlayerIDs   []string           `json:"playerIds,omitempty"`
	Intensity   domain.Intensity   `json:"intensity,omitempty"`
	Equipment   []string           `json:"equipment,omitempty"`
	Tags        []string           `json:"tags,omitempty"`
	Notes       string             `json:"notes,omitempty"`
	Confirmed   bool               `json:"confirmed"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// --- Handler Methods ---

// CreateSession persists a new training session for the authenticated coach.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	coachID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req SaveSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	session, err := h.sessionService.CreateSession(c.Request.Context(), coachID, req.Form, req.Confirmed)
	if err != nil {
		if errors.Is(err, service.ErrSessionValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create session")
		}
		return
	}

	c.JSON(http.StatusCreated, MapSessionToResponse(session))
}

// GetMySessions lists the authenticated coach's sessions.
func (h *SessionHandler) GetMySessions(c *gin.Context) {
	coachID, ok := currentUserID(c)
	if !ok {
		return
	}

	sessions, err := h.sessionService.GetSessionsByCoach(c.Request.Context(), coachID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve sessions")
		return
	}

	responses := make([]SessionResponse, len(sessions))
	for i := range sessions {
		responses[i] = MapSessionToResponse(&sessions[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetSession returns one session by id.
func (h *SessionHandler) GetSession(c *gin.Context) {
	sessionID, err := primitive.ObjectIDFromHex(c.Param("sessionId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	session, err := h.sessionService.GetSessionByID(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve session")
		}
		return
	}

	c.JSON(http.StatusOK, MapSessionToResponse(session))
}

// UpdateSession replaces a session owned by the authenticated coach.
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	coachID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, err := primitive.ObjectIDFromHex(c.Param("sessionId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	var req SaveSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	session, err := h.sessionService.UpdateSession(c.Request.Context(), coachID, sessionID, req.Form, req.Confirmed)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrSessionAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrSessionValidation):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update session")
		}
		return
	}

	c.JSON(http.StatusOK, MapSessionToResponse(session))
}

// DeleteSession removes a session owned by the authenticated coach.
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	coachID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, err := primitive.ObjectIDFromHex(c.Param("sessionId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	if err := h.sessionService.DeleteSession(c.Request.Context(), coachID, sessionID); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete session")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// MapSessionToResponse converts a domain Session to its DTO.
func MapSessionToResponse(session *domain.Session) SessionResponse {
	if session == nil {
		return SessionResponse{}
	}
	return SessionResponse{
		ID:          session.ID.Hex(),
		CoachID:     session.CoachID.Hex(),
		Name:        session.Name,
		Type:        session.Type,
		Date:        session.Date,
		StartTime:   session.StartTime,
		DurationMin: session.DurationMin,
		TeamIDs:     hexIDs(session.TeamIDs),
		PlayerIDs:   hexIDs(session.PlayerIDs),
		Intensity:   session.Intensity,
		Equipment:   session.Equipment,
		Tags:        session.Tags,
		Notes:       session.Notes,
		Confirmed:   session.Confirmed,
		CreatedAt:   session.CreatedAt,
	}
}

func hexIDs(ids []primitive.ObjectID) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Hex()
	}
	return out
}
