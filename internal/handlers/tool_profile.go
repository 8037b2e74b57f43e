package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/verdantmarket/verdant-backend/internal/services"
)

// ToolProfileHandler exposes the password-gated tool directory.
type ToolProfileHandler struct {
	toolProfileService services.ToolProfileService
}

func NewToolProfileHandler(toolProfileService services.ToolProfileService) *ToolProfileHandler {
	return &ToolProfileHandler{toolProfileService: toolProfileService}
}

func (th *ToolProfileHandler) List(c *gin.Context) {
	profileType := c.Query("type")
	profiles, err := th.toolProfileService.List(c.Request.Context(), profileType)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "tool_profiles_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"profiles": profiles})
}

type unlockRequest struct {
	Password string `json:"password"`
}

func (th *ToolProfileHandler) Unlock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_profile_id", err)
		return
	}
	var req unlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	profile, err := th.toolProfileService.Unlock(c.Request.Context(), id, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPassword) {
			RespondError(c, http.StatusForbidden, "invalid_password", err)
			return
		}
		RespondError(c, http.StatusNotFound, "tool_profile_not_found", err)
		return
	}
	RespondOK(c, gin.H{"profile": profile})
}

type createToolProfileRequest struct {
	Name     string         `json:"name"`
	Type     string         `json:"type"`
	Data     datatypes.JSON `json:"data"`
	Password string         `json:"password"`
}

// Create is admin-only.
func (th *ToolProfileHandler) Create(c *gin.Context) {
	var req createToolProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	profile, err := th.toolProfileService.Create(c.Request.Context(), req.Name, req.Type, req.Data, req.Password)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "tool_profile_create_failed", err)
		return
	}
	RespondOK(c, gin.H{"profile": profile})
}
