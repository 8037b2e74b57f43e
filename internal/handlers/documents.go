package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/verdantmarket/verdant-backend/internal/requestdata"
	"github.com/verdantmarket/verdant-backend/internal/services"
)

// DocumentsHandler handles per-stage file uploads, listing, deletion
// and the bundled zip download.
type DocumentsHandler struct {
	documentService services.DocumentService
}

func NewDocumentsHandler(documentService services.DocumentService) *DocumentsHandler {
	return &DocumentsHandler{documentService: documentService}
}

func (dh *DocumentsHandler) Upload(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	stageID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_stage_id", err)
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_multipart", err)
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		RespondError(c, http.StatusBadRequest, "no_files", errors.New("no files in request"))
		return
	}
	results, err := dh.documentService.UploadDocuments(c.Request.Context(), rd.UserID, stageID, files)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "upload_failed", err)
		return
	}
	RespondOK(c, gin.H{"results": results})
}

func (dh *DocumentsHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	stageID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_stage_id", err)
		return
	}
	docs, err := dh.documentService.ListDocuments(c.Request.Context(), rd.UserID, stageID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "documents_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"documents": docs})
}

func (dh *DocumentsHandler) Delete(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	docID, err := uuid.Parse(c.Param("docId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_document_id", err)
		return
	}
	if err := dh.documentService.DeleteDocument(c.Request.Context(), rd.UserID, docID); err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			RespondError(c, http.StatusNotFound, "document_not_found", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "document_delete_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

// DownloadZip streams the archive directly; errors after the first
// byte can only surface as a truncated download.
func (dh *DocumentsHandler) DownloadZip(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	stageID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_stage_id", err)
		return
	}
	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=stage-%d-documents.zip", stageID))
	if err := dh.documentService.DownloadAllZip(c.Request.Context(), rd.UserID, stageID, c.Writer); err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			RespondError(c, http.StatusNotFound, "documents_not_found", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "zip_download_failed", err)
		return
	}
}
