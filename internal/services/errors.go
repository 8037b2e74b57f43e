package services

import "errors"

var (
	ErrFlowNotFound      = errors.New("flow not found")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrStageNotFound     = errors.New("stage not found")
	ErrStageLocked       = errors.New("stage not accessible yet")
	ErrNotEditable       = errors.New("question is not editable")
	ErrInvalidStatus     = errors.New("invalid stage status")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrDocumentNotFound  = errors.New("document not found")
	ErrDocTooLarge       = errors.New("document exceeds size limit")
	ErrDocTypeNotAllowed = errors.New("document type not allowed")
)
