package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/verdantmarket/verdant-backend/internal/requestdata"
	"github.com/verdantmarket/verdant-backend/internal/services"
)

// OnboardingHandler exposes the stage machine: catalog, progress,
// stage entry, contract acceptance, completion, and the payment link.
type OnboardingHandler struct {
	onboardingService services.OnboardingService
}

func NewOnboardingHandler(onboardingService services.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboardingService: onboardingService}
}

func stageIDParam(c *gin.Context) (int, error) {
	return strconv.Atoi(c.Param("id"))
}

func (oh *OnboardingHandler) ListStages(c *gin.Context) {
	stages, err := oh.onboardingService.ListStages(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "stages_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"stages": stages})
}

func (oh *OnboardingHandler) GetProgress(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	progress, err := oh.onboardingService.GetProgress(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "progress_load_failed", err)
		return
	}
	RespondOK(c, gin.H{"progress": progress})
}

func (oh *OnboardingHandler) EnterStage(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	stageID, err := stageIDParam(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_stage_id", err)
		return
	}
	entry, err := oh.onboardingService.EnterStage(c.Request.Context(), rd.UserID, rd.Role, rd.DebugAccess, stageID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStageNotFound):
			RespondError(c, http.StatusNotFound, "stage_not_found", err)
		case errors.Is(err, services.ErrStageLocked):
			RespondError(c, http.StatusForbidden, "stage_locked", err)
		default:
			RespondError(c, http.StatusInternalServerError, "stage_enter_failed", err)
		}
		return
	}
	RespondOK(c, entry)
}

type acceptContractRequest struct {
	SignedName string `json:"signedName"`
}

func (oh *OnboardingHandler) AcceptContract(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	stageID, err := stageIDParam(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_stage_id", err)
		return
	}
	var req acceptContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := oh.onboardingService.AcceptContract(c.Request.Context(), rd.UserID, rd.Role, rd.DebugAccess, stageID, req.SignedName); err != nil {
		switch {
		case errors.Is(err, services.ErrStageNotFound):
			RespondError(c, http.StatusNotFound, "stage_not_found", err)
		case errors.Is(err, services.ErrStageLocked):
			RespondError(c, http.StatusForbidden, "stage_locked", err)
		default:
			RespondError(c, http.StatusInternalServerError, "contract_accept_failed", err)
		}
		return
	}
	RespondOK(c, gin.H{"accepted": true})
}

func (oh *OnboardingHandler) CompleteStage(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	stageID, err := stageIDParam(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_stage_id", err)
		return
	}
	if err := oh.onboardingService.CompleteStage(c.Request.Context(), rd.UserID, rd.Role, rd.DebugAccess, stageID); err != nil {
		switch {
		case errors.Is(err, services.ErrStageNotFound):
			RespondError(c, http.StatusNotFound, "stage_not_found", err)
		case errors.Is(err, services.ErrStageLocked):
			RespondError(c, http.StatusForbidden, "stage_locked", err)
		default:
			RespondError(c, http.StatusInternalServerError, "stage_complete_failed", err)
		}
		return
	}
	RespondOK(c, gin.H{"completed": true})
}

func (oh *OnboardingHandler) GetPaymentLink(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	link, err := oh.onboardingService.PaymentLink(c.Request.Context(), rd.UserID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			RespondError(c, http.StatusNotFound, "profile_not_found", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "payment_link_failed", err)
		return
	}
	RespondOK(c, gin.H{"link": link})
}

type setStageStatusRequest struct {
	UserID  string `json:"userId"`
	StageID int    `json:"stageId"`
	Status  string `json:"status"`
}

// SetStageStatus is the admin override endpoint.
func (oh *OnboardingHandler) SetStageStatus(c *gin.Context) {
	var req setStageStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}
	if err := oh.onboardingService.SetStageStatus(c.Request.Context(), userID, req.StageID, req.Status); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			RespondError(c, http.StatusBadRequest, "invalid_status", err)
		case errors.Is(err, services.ErrStageNotFound):
			RespondError(c, http.StatusNotFound, "stage_not_found", err)
		default:
			RespondError(c, http.StatusInternalServerError, "status_update_failed", err)
		}
		return
	}
	RespondOK(c, gin.H{"updated": true})
}
