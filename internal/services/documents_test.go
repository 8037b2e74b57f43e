package services

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/verdantmarket/verdant-backend/internal/onboarding"
	"github.com/verdantmarket/verdant-backend/internal/repos"
	"github.com/verdantmarket/verdant-backend/internal/repos/testutil"
	"github.com/verdantmarket/verdant-backend/internal/types"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"deck.pdf", "deck.pdf"},
		{"Q3 Report (final).pdf", "Q3-Report--final.pdf"},
		{"../../etc/passwd.csv", "passwd.csv"},
		{"résumé.docx", "r-sum.docx"},
		{"____.png", "file.png"},
		{"Photo.JPG", "Photo.jpg"},
	}
	for _, tc := range cases {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Errorf("sanitizeFilename(%q): want=%q got=%q", tc.in, tc.want, got)
		}
	}
}

// memBucket is an in-memory stand-in for the documents bucket.
type memBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	failOn  string
}

func newMemBucket() *memBucket {
	return &memBucket{objects: map[string][]byte{}}
}

func (m *memBucket) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) error {
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *memBucket) DownloadFile(ctx context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn != "" && key == m.failOn {
		return nil, errors.New("object fetch failed")
	}
	data, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("no such object %q", key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memBucket) DeleteFile(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memBucket) GetPublicURL(key string) string {
	return "https://storage.example.com/" + key
}

func TestDownloadAllZipBundlesEveryDocument(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	profile := testutil.SeedProfile(t, ctx, tx, types.RoleSeller)
	docA := testutil.SeedStageDocument(t, ctx, tx, profile.UUID, onboarding.StageDocuments)
	docB := testutil.SeedStageDocument(t, ctx, tx, profile.UUID, onboarding.StageDocuments)

	bucket := newMemBucket()
	bucket.objects[docA.StorageKey] = []byte("first file")
	bucket.objects[docB.StorageKey] = []byte("second file")

	svc := NewDocumentService(tx, log, repos.NewStageDocumentRepo(tx, log), repos.NewProgressRepo(tx, log), bucket)

	var buf bytes.Buffer
	if err := svc.DownloadAllZip(ctx, profile.UUID, onboarding.StageDocuments, &buf); err != nil {
		t.Fatalf("DownloadAllZip: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("zip entries: want=2 got=%d", len(zr.File))
	}
	// Both records carry the same original name; the archive must
	// still hold distinct entries.
	if zr.File[0].Name == zr.File[1].Name {
		t.Fatalf("duplicate entry name %q in archive", zr.File[0].Name)
	}
}

func TestDownloadAllZipFailsWhole(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	profile := testutil.SeedProfile(t, ctx, tx, types.RoleSeller)
	docA := testutil.SeedStageDocument(t, ctx, tx, profile.UUID, onboarding.StageDocuments)
	docB := testutil.SeedStageDocument(t, ctx, tx, profile.UUID, onboarding.StageDocuments)

	bucket := newMemBucket()
	bucket.objects[docA.StorageKey] = []byte("present")
	bucket.failOn = docB.StorageKey

	svc := NewDocumentService(tx, log, repos.NewStageDocumentRepo(tx, log), repos.NewProgressRepo(tx, log), bucket)

	var buf bytes.Buffer
	if err := svc.DownloadAllZip(ctx, profile.UUID, onboarding.StageDocuments, &buf); err == nil {
		t.Fatal("expected error when one object fetch fails")
	}
}

func TestDeleteDocumentChecksOwnership(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	owner := testutil.SeedProfile(t, ctx, tx, types.RoleSeller)
	intruder := testutil.SeedProfile(t, ctx, tx, types.RoleSeller)
	doc := testutil.SeedStageDocument(t, ctx, tx, owner.UUID, onboarding.StageDocuments)

	bucket := newMemBucket()
	bucket.objects[doc.StorageKey] = []byte("data")

	docRepo := repos.NewStageDocumentRepo(tx, log)
	svc := NewDocumentService(tx, log, docRepo, repos.NewProgressRepo(tx, log), bucket)

	if err := svc.DeleteDocument(ctx, intruder.UUID, doc.ID); !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("want ErrDocumentNotFound for foreign document, got %v", err)
	}
	if err := svc.DeleteDocument(ctx, owner.UUID, doc.ID); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
	remaining, err := docRepo.ListByUserAndStage(ctx, nil, owner.UUID, onboarding.StageDocuments)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("documents after delete: want=0 got=%d", len(remaining))
	}
}
