package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vlosev/teamops-app/internal/domain"
	"vlosev/teamops-app/internal/service"
)

// TeamHandler holds the team service dependency.
type TeamHandler struct {
	teamService service.TeamService
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teamService service.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// --- Request/Response Structs ---

type PlayerRequest struct {
	Name      string `json:"name" binding:"required"`
	Position  string `json:"position"`
	Available *bool  `json:"available"` // defaults to true when omitted
	Injured   bool   `json:"injured"`
}

type CreateTeamRequest struct {
	Name   string          `json:"name" binding:"required"`
	Sport  string          `json:"sport"`
	Roster []PlayerRequest `json:"roster"`
}

type UpdateRosterRequest struct {
	Roster []PlayerRequest `json:"roster" binding:"required"`
}

type PlayerResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Position  string `json:"position,omitempty"`
	Available bool   `json:"available"`
	Injured   bool   `json:"injured"`
}

type TeamResponse struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Sport  string           `json:"sport,omitempty"`
	Roster []PlayerResponse `json:"roster"`
}

// --- Handler Methods ---

// CreateTeam creates a team owned by the authenticated coach.
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	coachID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	team, err := h.teamService.CreateTeam(c.Request.Context(), coachID, req.Name, req.Sport, mapPlayers(req.Roster))
	if err != nil {
		if errors.Is(err, service.ErrTeamNameRequired) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create team")
		}
		return
	}

	c.JSON(http.StatusCreated, MapTeamToResponse(team))
}

// GetMyTeams lists the authenticated coach's teams.
func (h *TeamHandler) GetMyTeams(c *gin.Context) {
	coachID, ok := currentUserID(c)
	if !ok {
		return
	}

	teams, err := h.teamService.GetTeamsByCoach(c.Request.Context(), coachID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve teams")
		return
	}

	responses := make([]TeamResponse, len(teams))
	for i := range teams {
		responses[i] = MapTeamToResponse(&teams[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetTeam returns one team by id.
func (h *TeamHandler) GetTeam(c *gin.Context) {
	teamID, err := primitive.ObjectIDFromHex(c.Param("teamId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid team ID format")
		return
	}

	team, err := h.teamService.GetTeamByID(c.Request.Context(), teamID)
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve team")
		}
		return
	}

	c.JSON(http.StatusOK, MapTeamToResponse(team))
}

// UpdateRoster replaces a team's roster.
func (h *TeamHandler) UpdateRoster(c *gin.Context) {
	coachID, ok := currentUserID(c)
	if !ok {
		return
	}
	teamID, err := primitive.ObjectIDFromHex(c.Param("teamId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid team ID format")
		return
	}

	var req UpdateRosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	team, err := h.teamService.UpdateRoster(c.Request.Context(), coachID, teamID, mapPlayers(req.Roster))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrTeamAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update roster")
		}
		return
	}

	c.JSON(http.StatusOK, MapTeamToResponse(team))
}

func mapPlayers(reqs []PlayerRequest) []domain.Player {
	players := make([]domain.Player, len(reqs))
	for i, r := range reqs {
		available := true
		if r.Available != nil {
			available = *r.Available
		}
		players[i] = domain.Player{
			Name:      r.Name,
			Position:  r.Position,
			Available: available,
			Injured:   r.Injured,
		}
	}
	return players
}

// MapTeamToResponse converts a domain Team to its DTO.
func MapTeamToResponse(team *domain.Team) TeamResponse {
	if team == nil {
		return TeamResponse{}
	}
	roster := make([]PlayerResponse, len(team.Roster))
	for i, p := range team.Roster {
		roster[i] = PlayerResponse{
			ID:        p.ID.Hex(),
			Name:      p.Name,
			Position:  p.Position,
			Available: p.Available,
			Injured:   p.Injured,
		}
	}
	return TeamResponse{
		ID:     team.ID.Hex(),
		Name:   team.Name,
		Sport:  team.Sport,
		Roster: roster,
	}
}
