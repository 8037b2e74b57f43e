package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/verdantmarket/verdant-backend/internal/forms"
	"github.com/verdantmarket/verdant-backend/internal/services"
)

// SectionsHandler is the admin schema editor surface.
type SectionsHandler struct {
	schemaService services.SchemaService
}

func NewSectionsHandler(schemaService services.SchemaService) *SectionsHandler {
	return &SectionsHandler{schemaService: schemaService}
}

func (sh *SectionsHandler) ListFlows(c *gin.Context) {
	flows, err := sh.schemaService.ListFlows(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "flows_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"flows": flows})
}

func (sh *SectionsHandler) GetSections(c *gin.Context) {
	flowName := c.Query("flow")
	if flowName == "" {
		RespondError(c, http.StatusBadRequest, "missing_flow", errors.New("flow query parameter is required"))
		return
	}
	sections, err := sh.schemaService.LoadSections(c.Request.Context(), flowName)
	if err != nil {
		if errors.Is(err, services.ErrFlowNotFound) {
			RespondError(c, http.StatusNotFound, "flow_not_found", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "sections_load_failed", err)
		return
	}
	RespondOK(c, gin.H{"sections": sections})
}

type saveSectionsRequest struct {
	FlowName   string          `json:"flowName"`
	Modified   []forms.Section `json:"modified"`
	DeletedIDs []int64         `json:"deletedIds"`
}

func (sh *SectionsHandler) SaveSections(c *gin.Context) {
	var req saveSectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if req.FlowName == "" {
		RespondError(c, http.StatusBadRequest, "missing_flow", errors.New("flowName is required"))
		return
	}
	diff := forms.SectionsDiff{Modified: req.Modified, DeletedIDs: req.DeletedIDs}
	sections, err := sh.schemaService.SaveSections(c.Request.Context(), req.FlowName, diff)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "sections_save_failed", err)
		return
	}
	RespondOK(c, gin.H{"sections": sections})
}
