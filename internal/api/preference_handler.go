package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"vlosev/teamops-app/internal/service"
)

// Import payloads are small JSON documents; anything bigger is abuse.
const maxImportBytes = 1 << 20

// PreferenceHandler holds the preference service dependency.
type PreferenceHandler struct {
	preferenceService service.PreferenceService
}

// NewPreferenceHandler creates a new PreferenceHandler.
func NewPreferenceHandler(preferenceService service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{preferenceService: preferenceService}
}

// --- Handler Methods ---

// GetProfile returns the caller's learned preference profile. A coach with
// no saved sessions gets the empty default profile, not a 404.
func (h *PreferenceHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.preferenceService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve preference profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ResetProfile deletes all learned state for the caller.
func (h *PreferenceHandler) ResetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.preferenceService.ResetProfile(c.Request.Context(), userID); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to reset preference profile")
		return
	}

	c.Status(http.StatusNoContent)
}

// ExportProfile returns the portable profile document. When an archive copy
// was stored, its presigned download URL is included in a response header.
func (h *PreferenceHandler) ExportProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.preferenceService.Export(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to export preference profile")
		return
	}

	if result.DownloadURL != "" {
		c.Header("X-Archive-Url", result.DownloadURL)
	}
	c.Data(http.StatusOK, "application/json", result.Data)
}

// ImportProfile validates the uploaded document and atomically replaces the
// caller's profile. A rejected payload changes nothing.
func (h *PreferenceHandler) ImportProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Failed to read import payload")
		return
	}

	if err := h.preferenceService.Import(c.Request.Context(), userID, data); err != nil {
		if errors.Is(err, service.ErrInvalidImport) {
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to import preference profile")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
