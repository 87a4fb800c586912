package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vlosev/teamops-app/internal/domain"
	"vlosev/teamops-app/internal/service"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	defaultsService service.DefaultsService,
	sessionService service.SessionService,
	teamService service.TeamService,
	preferenceService service.PreferenceService,
	scheduleService service.ScheduleService,
) {
	authHandler := NewAuthHandler(authService)
	defaultsHandler := NewDefaultsHandler(defaultsService)
	sessionHandler := NewSessionHandler(sessionService)
	teamHandler := NewTeamHandler(teamService)
	preferenceHandler := NewPreferenceHandler(preferenceService)
	scheduleHandler := NewScheduleHandler(scheduleService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// --- Smart Defaults ---
		defaultsGroup := protected.Group("/defaults")
		defaultsGroup.Use(RoleMiddleware(domain.RoleCoach, domain.RoleAdmin))
		{
			// POST /api/v1/defaults/compute
			defaultsGroup.POST("/compute", defaultsHandler.ComputeDefaults)
			// POST /api/v1/defaults/merge - preview a partially filled form
			// backfilled with the inferred values
			defaultsGroup.POST("/merge", defaultsHandler.MergeDefaults)
		}

		// --- Training Sessions ---
		sessionGroup := protected.Group("/sessions")
		sessionGroup.Use(RoleMiddleware(domain.RoleCoach, domain.RoleAdmin))
		{
			sessionGroup.POST("", sessionHandler.CreateSession)
			sessionGroup.GET("", sessionHandler.GetMySessions)
			sessionGroup.GET("/:sessionId", sessionHandler.GetSession)
			sessionGroup.PUT("/:sessionId", sessionHandler.UpdateSession)
			sessionGroup.DELETE("/:sessionId", sessionHandler.DeleteSession)
		}

		// --- Teams & Rosters ---
		teamGroup := protected.Group("/teams")
		teamGroup.Use(RoleMiddleware(domain.RoleCoach, domain.RoleAdmin))
		{
			teamGroup.POST("", teamHandler.CreateTeam)
			teamGroup.GET("", teamHandler.GetMyTeams)
			teamGroup.GET("/:teamId", teamHandler.GetTeam)
			teamGroup.PUT("/:teamId/roster", teamHandler.UpdateRoster)
			teamGroup.GET("/:teamId/events", scheduleHandler.ListEvents)
		}

		// --- Schedule Signals (events, facility availability) ---
		scheduleGroup := protected.Group("/schedule")
		scheduleGroup.Use(RoleMiddleware(domain.RoleCoach, domain.RoleAdmin))
		{
			scheduleGroup.POST("/events", scheduleHandler.CreateEvent)
			scheduleGroup.GET("/facilities", scheduleHandler.GetFacilities)
			// Facility availability comes from an admin-maintained feed.
			scheduleGroup.PUT("/facilities", RoleMiddleware(domain.RoleAdmin), scheduleHandler.SetFacilityDay)
		}

		// --- Preference Profile ---
		preferenceGroup := protected.Group("/preferences")
		preferenceGroup.Use(RoleMiddleware(domain.RoleCoach, domain.RoleAdmin))
		{
			preferenceGroup.GET("", preferenceHandler.GetProfile)
			preferenceGroup.DELETE("", preferenceHandler.ResetProfile)
			preferenceGroup.GET("/export", preferenceHandler.ExportProfile)
			preferenceGroup.POST("/import", preferenceHandler.ImportProfile)
		}
	}
}
