package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/verdantmarket/verdant-backend/internal/forms"
	"github.com/verdantmarket/verdant-backend/internal/requestdata"
	"github.com/verdantmarket/verdant-backend/internal/services"
)

// AnswersHandler serves rendered forms and applies answer saves.
type AnswersHandler struct {
	answerService services.AnswerService
}

func NewAnswersHandler(answerService services.AnswerService) *AnswersHandler {
	return &AnswersHandler{answerService: answerService}
}

func (ah *AnswersHandler) GetForm(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	flowName := c.Param("flow")
	form, err := ah.answerService.GetForm(c.Request.Context(), rd.UserID, flowName)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFlowNotFound):
			RespondError(c, http.StatusNotFound, "flow_not_found", err)
		case errors.Is(err, services.ErrProfileNotFound):
			RespondError(c, http.StatusNotFound, "profile_not_found", err)
		default:
			RespondError(c, http.StatusInternalServerError, "form_load_failed", err)
		}
		return
	}
	RespondOK(c, form)
}

type saveAnswersRequest struct {
	FlowName string         `json:"flowName"`
	Answers  map[string]any `json:"answers"`
}

func (ah *AnswersHandler) SaveAnswers(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	var req saveAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if req.FlowName == "" || len(req.Answers) == 0 {
		RespondError(c, http.StatusBadRequest, "missing_fields", errors.New("flowName and answers are required"))
		return
	}
	err := ah.answerService.SaveAnswers(c.Request.Context(), rd.UserID, req.FlowName, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotEditable):
			RespondError(c, http.StatusForbidden, "not_editable", err)
		case errors.Is(err, forms.ErrTooManySelections), errors.Is(err, forms.ErrTooFewSelections):
			RespondError(c, http.StatusBadRequest, "invalid_selection", err)
		case errors.Is(err, services.ErrFlowNotFound):
			RespondError(c, http.StatusNotFound, "flow_not_found", err)
		default:
			RespondError(c, http.StatusInternalServerError, "answers_save_failed", err)
		}
		return
	}
	RespondOK(c, gin.H{"saved": true})
}
