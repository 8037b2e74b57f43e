package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/verdantmarket/verdant-backend/internal/requestdata"
	"github.com/verdantmarket/verdant-backend/internal/services"
)

// ProfileHandler serves the respondent record, intake upserts, and
// the merged aggregate view.
type ProfileHandler struct {
	profileService services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (ph *ProfileHandler) GetMe(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	profile, err := ph.profileService.GetProfile(c.Request.Context(), rd.UserID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			RespondError(c, http.StatusNotFound, "profile_not_found", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "profile_load_failed", err)
		return
	}
	RespondOK(c, gin.H{"profile": profile})
}

type createProfileRequest struct {
	Role  string `json:"role"`
	Email string `json:"email"`
}

func (ph *ProfileHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	var req createProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	profile, err := ph.profileService.CreateProfile(c.Request.Context(), rd.UserID, req.Role, req.Email)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "profile_create_failed", err)
		return
	}
	RespondOK(c, gin.H{"profile": profile})
}

type intakeRequest struct {
	Data datatypes.JSON `json:"data"`
}

func (ph *ProfileHandler) SaveSellerIntake(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	var req intakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := ph.profileService.SaveSellerIntake(c.Request.Context(), rd.UserID, req.Data); err != nil {
		RespondError(c, http.StatusInternalServerError, "intake_save_failed", err)
		return
	}
	RespondOK(c, gin.H{"saved": true})
}

func (ph *ProfileHandler) SaveRealEstateIntake(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	var req intakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := ph.profileService.SaveRealEstateIntake(c.Request.Context(), rd.UserID, req.Data); err != nil {
		RespondError(c, http.StatusInternalServerError, "intake_save_failed", err)
		return
	}
	RespondOK(c, gin.H{"saved": true})
}

func (ph *ProfileHandler) GetAggregate(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	view, err := ph.profileService.AggregateView(c.Request.Context(), rd.UserID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			RespondError(c, http.StatusNotFound, "profile_not_found", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "aggregate_failed", err)
		return
	}
	RespondOK(c, gin.H{"aggregate": view})
}
