package personnelhandler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"simpeg/internal/domain/auth"
	"simpeg/internal/domain/personnel"
	"simpeg/internal/domain/registry"
	"simpeg/internal/domain/roster"
	"simpeg/internal/platform/storage"
	"simpeg/internal/transport/http/middleware"
)

type stubStore struct{}

func (stubStore) LoadAll(ctx context.Context) (roster.Snapshot, error) {
	return roster.Snapshot{
		Employees: []personnel.Employee{
			{ID: "emp-1", FullName: "Budi Santoso", NIK: "1", BirthPlace: "Pacet", Phone: "0811", Email: "budi@x.id"},
		},
		Definitions: []registry.DocumentDefinition{
			{ID: "d1", Name: "KTP", Group: "Data Pribadi", IsRequired: true},
		},
	}, nil
}

func (stubStore) SaveEmployee(ctx context.Context, emp personnel.Employee) error { return nil }
func (stubStore) DeleteEmployee(ctx context.Context, id string) error            { return nil }
func (stubStore) ReplaceDefinitions(ctx context.Context, defs []registry.DocumentDefinition) error {
	return nil
}

type handlerEnv struct {
	roster *roster.Service
	files  *storage.FileStore
	router http.Handler
	token  string
	dir    string
}

func newHandlerEnv(t *testing.T) handlerEnv {
	t.Helper()

	svc := roster.New(stubStore{}, "SMPN 3 PACET")
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	dir := t.TempDir()
	files := storage.NewFileStore(dir)

	router := chi.NewRouter()
	router.Use(middleware.Auth("test-secret"))
	NewHandler(svc, files).RegisterRoutes(router)

	token, err := auth.GenerateToken("test-secret", auth.Claims{UserID: "u-1", Role: auth.RoleAdmin, Name: "Admin"}, time.Hour)
	if err != nil {
		t.Fatalf("token failed: %v", err)
	}

	return handlerEnv{roster: svc, files: files, router: router, token: token, dir: dir}
}

func uploadRequest(t *testing.T, token string, payload []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("definitionId", "d1"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	part, err := mw.CreateFormFile("file", "ktp.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("write payload: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/employees/emp-1/documents", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestUploadRejectsOversizedDocument(t *testing.T) {
	env := newHandlerEnv(t)

	payload := bytes.Repeat([]byte("a"), maxDocumentBytes+1)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, uploadRequest(t, env.token, payload))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 for oversized upload, got %d", rec.Code)
	}
	emp, _ := env.roster.EmployeeByID("emp-1")
	if len(emp.Documents) != 0 {
		t.Fatalf("expected no document attached, got %d", len(emp.Documents))
	}
	if _, err := os.Stat(filepath.Join(env.dir, "emp-1")); !os.IsNotExist(err) {
		t.Fatal("expected no stored file for rejected upload")
	}
}

func TestUploadStoresDocumentIntact(t *testing.T) {
	env := newHandlerEnv(t)

	payload := bytes.Repeat([]byte("b"), 1024)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, uploadRequest(t, env.token, payload))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	entries, err := os.ReadDir(filepath.Join(env.dir, "emp-1"))
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one stored file, got %v (%v)", entries, err)
	}
	info, err := entries[0].Info()
	if err != nil {
		t.Fatalf("stat stored file: %v", err)
	}
	if info.Size() != int64(len(payload)) {
		t.Fatalf("stored file holds %d of %d bytes", info.Size(), len(payload))
	}
}

func TestDeleteEmployeeRemovesStoredFiles(t *testing.T) {
	env := newHandlerEnv(t)

	if _, err := env.files.Save("emp-1", "doc-1", "ktp.pdf", strings.NewReader("x")); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/employees/emp-1", nil)
	req.Header.Set("Authorization", "Bearer "+env.token)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if _, err := os.Stat(filepath.Join(env.dir, "emp-1")); !os.IsNotExist(err) {
		t.Fatal("expected stored files removed with the record")
	}
}
