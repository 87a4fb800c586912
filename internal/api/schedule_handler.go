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

// ScheduleHandler maintains the calendar signals the defaults engine reads.
type ScheduleHandler struct {
	scheduleService service.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleService service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// --- Request/Response Structs ---

type CreateEventRequest struct {
	TeamID   string           `json:"teamId" binding:"required"`
	Kind     domain.EventKind `json:"kind" binding:"required,oneof=game practice"`
	Title    string           `json:"title" binding:"required"`
	StartsAt time.Time        `json:"startsAt" binding:"required"`
	EndsAt   time.Time        `json:"endsAt" binding:"required"`
}

type FacilitySlotRequest struct {
	Start     string `json:"start" binding:"required"`
	End       string `json:"end" binding:"required"`
	Available bool   `json:"available"`
}

type SetFacilityDayRequest struct {
	Facility  string                `json:"facility" binding:"required"`
	Date      time.Time             `json:"date" binding:"required"`
	Equipment []string              `json:"equipment"`
	Slots     []FacilitySlotRequest `json:"slots"`
}

// --- Handler Methods ---

// CreateEvent records a game or practice on a team's schedule.
func (h *ScheduleHandler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	teamID, err := primitive.ObjectIDFromHex(req.TeamID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid team ID format")
		return
	}

	event, err := h.scheduleService.CreateEvent(c.Request.Context(), &domain.Event{
		TeamID:   teamID,
		Kind:     req.Kind,
		Title:    req.Title,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	})
	if err != nil {
		if errors.Is(err, service.ErrEventValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create event")
		}
		return
	}

	c.JSON(http.StatusCreated, event)
}

// ListEvents returns a team's schedule entries inside a date window.
func (h *ScheduleHandler) ListEvents(c *gin.Context) {
	teamID, err := primitive.ObjectIDFromHex(c.Param("teamId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid team ID format")
		return
	}

	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Query parameter 'from' must be RFC3339")
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Query parameter 'to' must be RFC3339")
		return
	}

	events, err := h.scheduleService.ListEvents(c.Request.Context(), teamID, from, to)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list events")
		return
	}

	c.JSON(http.StatusOK, events)
}

// SetFacilityDay upserts the availability record for one facility and day.
func (h *ScheduleHandler) SetFacilityDay(c *gin.Context) {
	var req SetFacilityDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	slots := make([]domain.FacilitySlot, len(req.Slots))
	for i, s := range req.Slots {
		slots[i] = domain.FacilitySlot{Start: s.Start, End: s.End, Available: s.Available}
	}

	err := h.scheduleService.SetFacilityDay(c.Request.Context(), &domain.FacilityDay{
		Facility:  req.Facility,
		Date:      req.Date,
		Equipment: req.Equipment,
		Slots:     slots,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to store facility availability")
		return
	}

	c.Status(http.StatusNoContent)
}

// GetFacilities lists facility availability for one day.
func (h *ScheduleHandler) GetFacilities(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Query parameter 'date' must be YYYY-MM-DD")
		return
	}

	days, err := h.scheduleService.GetFacilitiesByDate(c.Request.Context(), date)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list facilities")
		return
	}

	c.JSON(http.StatusOK, days)
}
