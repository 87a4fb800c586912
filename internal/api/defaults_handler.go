package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vlosev/teamops-app/internal/defaults"
	"vlosev/teamops-app/internal/domain"
	"vlosev/teamops-app/internal/service"
)

// DefaultsHandler exposes the smart-defaults engine: compute a full set of
// inferred session values for the current planning context, and preview the
// merge of those values with a partially filled form.
type DefaultsHandler struct {
	defaultsService service.DefaultsService
}

// NewDefaultsHandler creates a new DefaultsHandler.
func NewDefaultsHandler(defaultsService service.DefaultsService) *DefaultsHandler {
	return &DefaultsHandler{defaultsService: defaultsService}
}

// --- Request/Response Structs ---

type TimeSlotRequest struct {
	Start       string `json:"start" binding:"required"`
	DurationMin int    `json:"durationMin" binding:"required,min=1"`
}

type ComputeDefaultsRequest struct {
	ExplicitType  domain.WorkoutType `json:"explicitType" binding:"omitempty,oneof=strength conditioning skills tactical recovery"`
	CurrentTeamID string             `json:"currentTeamId"`
	ViewingTeamID string             `json:"viewingTeamId"`
	SelectedDate  *time.Time         `json:"selectedDate"`
	Slot          *TimeSlotRequest   `json:"slot"`
}

type MergeDefaultsRequest struct {
	Context ComputeDefaultsRequest `json:"context"`
	Form    service.SessionForm    `json:"form"`
}

type MergeDefaultsResponse struct {
	Form     service.SessionForm    `json:"form"`
	Defaults defaults.SmartDefaults `json:"defaults"`
}

// --- Handler Methods ---

// ComputeDefaults runs one resolution cycle for the caller's planning
// context and returns the fully populated defaults with the reasoning trail.
func (h *DefaultsHandler) ComputeDefaults(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ComputeDefaultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	result, err := h.defaultsService.Compute(c.Request.Context(), toDefaultsRequest(userID, req))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute defaults")
		return
	}

	c.JSON(http.StatusOK, result)
}

// MergeDefaults computes defaults for the given context and backfills the
// caller's partially filled form. Explicit non-empty form fields win.
func (h *DefaultsHandler) MergeDefaults(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req MergeDefaultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	result, err := h.defaultsService.Compute(c.Request.Context(), toDefaultsRequest(userID, req.Context))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute defaults")
		return
	}

	c.JSON(http.StatusOK, MergeDefaultsResponse{
		Form:     service.MergeWithDefaults(req.Form, result),
		Defaults: result,
	})
}

func toDefaultsRequest(userID primitive.ObjectID, req ComputeDefaultsRequest) service.DefaultsRequest {
	out := service.DefaultsRequest{
		UserID:        userID,
		ExplicitType:  req.ExplicitType,
		CurrentTeamID: req.CurrentTeamID,
		ViewingTeamID: req.ViewingTeamID,
		SelectedDate:  req.SelectedDate,
	}
	if req.Slot != nil {
		out.Slot = &defaults.TimeSlot{
			Start:       req.Slot.Start,
			DurationMin: req.Slot.DurationMin,
		}
	}
	return out
}

// currentUserID pulls the authenticated user's ObjectID out of the gin
// context, aborting the request if it is missing or malformed.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	idStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Malformed user ID in token")
		return primitive.NilObjectID, false
	}
	return id, true
}
