package services

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/verdantmarket/verdant-backend/internal/clients/gcs"
	"github.com/verdantmarket/verdant-backend/internal/logger"
	"github.com/verdantmarket/verdant-backend/internal/onboarding"
	"github.com/verdantmarket/verdant-backend/internal/repos"
	"github.com/verdantmarket/verdant-backend/internal/types"
)

// MaxDocumentSize caps a single uploaded file.
const MaxDocumentSize = 10 << 20

// allowedDocumentTypes maps permitted extensions to the content type
// recorded on the stored object.
var allowedDocumentTypes = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".csv":  "text/csv",
}

// UploadResult reports one file's outcome inside a batch; failures
// carry the reason instead of aborting the other files.
type UploadResult struct {
	Filename string               `json:"filename"`
	Document *types.StageDocument `json:"document,omitempty"`
	Error    string               `json:"error,omitempty"`
}

// DocumentService manages per-stage file uploads backed by the
// documents bucket.
type DocumentService interface {
	UploadDocuments(ctx context.Context, userID uuid.UUID, stageID int, files []*multipart.FileHeader) ([]UploadResult, error)
	ListDocuments(ctx context.Context, userID uuid.UUID, stageID int) ([]*types.StageDocument, error)
	DeleteDocument(ctx context.Context, userID uuid.UUID, docID uuid.UUID) error
	DownloadAllZip(ctx context.Context, userID uuid.UUID, stageID int, w io.Writer) error
}

type documentService struct {
	db           *gorm.DB
	log          *logger.Logger
	docRepo      repos.StageDocumentRepo
	progressRepo repos.ProgressRepo
	bucket       gcs.BucketService
}

func NewDocumentService(db *gorm.DB, baseLog *logger.Logger, docRepo repos.StageDocumentRepo, progressRepo repos.ProgressRepo, bucket gcs.BucketService) DocumentService {
	return &documentService{
		db:           db,
		log:          baseLog.With("service", "DocumentService"),
		docRepo:      docRepo,
		progressRepo: progressRepo,
		bucket:       bucket,
	}
}

// sanitizeFilename reduces a client-supplied name to alphanumerics and
// hyphens, keeping the extension.
func sanitizeFilename(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	cleaned := strings.Trim(b.String(), "-")
	if cleaned == "" {
		cleaned = "file"
	}
	return cleaned + ext
}

func (ds *documentService) uploadOne(ctx context.Context, userID uuid.UUID, stageID int, fh *multipart.FileHeader) (*types.StageDocument, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	contentType, ok := allowedDocumentTypes[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDocTypeNotAllowed, ext)
	}
	if fh.Size > MaxDocumentSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrDocTooLarge, fh.Size)
	}

	name := sanitizeFilename(fh.Filename)
	key := fmt.Sprintf("%s/%d-%s", userID, time.Now().Unix(), name)

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	if err := ds.bucket.UploadFile(ctx, key, src, contentType); err != nil {
		return nil, fmt.Errorf("store %q: %w", name, err)
	}

	docs, err := ds.docRepo.Create(ctx, nil, []*types.StageDocument{{
		UUID:         userID,
		StageID:      stageID,
		OriginalName: fh.Filename,
		StorageKey:   key,
		MimeType:     contentType,
		SizeBytes:    fh.Size,
		FileURL:      ds.bucket.GetPublicURL(key),
		Status:       "uploaded",
	}})
	if err != nil {
		return nil, fmt.Errorf("record %q: %w", name, err)
	}
	return docs[0], nil
}

// UploadDocuments stores each file independently; a bad file reports
// its error in the result row and the rest of the batch proceeds.
// Any successful upload moves a not_started stage to in_progress,
// while a completed stage keeps its status (edit mode).
func (ds *documentService) UploadDocuments(ctx context.Context, userID uuid.UUID, stageID int, files []*multipart.FileHeader) ([]UploadResult, error) {
	results := make([]UploadResult, 0, len(files))
	uploaded := 0
	for _, fh := range files {
		res := UploadResult{Filename: fh.Filename}
		doc, err := ds.uploadOne(ctx, userID, stageID, fh)
		if err != nil {
			ds.log.Warn("document upload failed", "error", err, "user_id", userID, "stage_id", stageID, "filename", fh.Filename)
			res.Error = err.Error()
		} else {
			res.Document = doc
			uploaded++
		}
		results = append(results, res)
	}

	if uploaded > 0 {
		row, err := ds.progressRepo.GetByUserAndStage(ctx, nil, userID, stageID)
		if err != nil {
			return results, err
		}
		if row == nil || row.Status == string(onboarding.StatusNotStarted) {
			if err := ds.progressRepo.UpsertStatus(ctx, nil, userID, stageID, string(onboarding.StatusInProgress)); err != nil {
				return results, err
			}
		}
	}
	return results, nil
}

func (ds *documentService) ListDocuments(ctx context.Context, userID uuid.UUID, stageID int) ([]*types.StageDocument, error) {
	return ds.docRepo.ListByUserAndStage(ctx, nil, userID, stageID)
}

// DeleteDocument soft-deletes the record and removes the object.
// Stage status is untouched, so removing files from a completed stage
// does not reopen it.
func (ds *documentService) DeleteDocument(ctx context.Context, userID uuid.UUID, docID uuid.UUID) error {
	docs, err := ds.docRepo.GetByIDs(ctx, nil, []uuid.UUID{docID})
	if err != nil {
		return err
	}
	if len(docs) == 0 || docs[0].UUID != userID {
		return fmt.Errorf("%w: %s", ErrDocumentNotFound, docID)
	}
	if err := ds.docRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{docID}); err != nil {
		return err
	}
	if err := ds.bucket.DeleteFile(ctx, docs[0].StorageKey); err != nil {
		ds.log.Warn("bucket delete failed after record removal", "error", err, "key", docs[0].StorageKey)
	}
	return nil
}

// DownloadAllZip streams every document of the stage as one zip
// archive. Object fetches run concurrently and the whole download
// fails if any single fetch does; a partial archive is worse than a
// retried one.
func (ds *documentService) DownloadAllZip(ctx context.Context, userID uuid.UUID, stageID int, w io.Writer) error {
	docs, err := ds.docRepo.ListByUserAndStage(ctx, nil, userID, stageID)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("%w: no documents for stage %d", ErrDocumentNotFound, stageID)
	}

	buffers := make([][]byte, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, doc := range docs {
		g.Go(func() error {
			rc, err := ds.bucket.DownloadFile(gctx, doc.StorageKey)
			if err != nil {
				return fmt.Errorf("fetch %q: %w", doc.OriginalName, err)
			}
			defer rc.Close()
			data, err := io.ReadAll(rc)
			if err != nil {
				return fmt.Errorf("read %q: %w", doc.OriginalName, err)
			}
			buffers[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	zw := zip.NewWriter(w)
	seen := make(map[string]int, len(docs))
	for i, doc := range docs {
		name := sanitizeFilename(doc.OriginalName)
		if n := seen[name]; n > 0 {
			ext := filepath.Ext(name)
			name = fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), n, ext)
		}
		seen[sanitizeFilename(doc.OriginalName)]++
		f, err := zw.Create(name)
		if err != nil {
			return err
		}
		if _, err := io.Copy(f, bytes.NewReader(buffers[i])); err != nil {
			return err
		}
	}
	return zw.Close()
}
