package personnelhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"simpeg/internal/domain/auth"
	"simpeg/internal/domain/personnel"
	"simpeg/internal/domain/roster"
	"simpeg/internal/platform/storage"
	"simpeg/internal/transport/http/api"
	"simpeg/internal/transport/http/middleware"
)

const maxDocumentBytes = 5 * 1024 * 1024

type Handler struct {
	Roster *roster.Service
	Files  *storage.FileStore
}

func NewHandler(rosterSvc *roster.Service, files *storage.FileStore) *Handler {
	return &Handler{Roster: rosterSvc, Files: files}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequireAdmin).Get("/", h.handleList)
		r.With(middleware.RequireAdmin).Post("/", h.handleCreate)
		r.With(middleware.RequireAuth).Get("/{employeeID}", h.handleGet)
		r.With(middleware.RequireAuth).Put("/{employeeID}", h.handleUpdate)
		r.With(middleware.RequireAdmin).Delete("/{employeeID}", h.handleDelete)
		r.With(middleware.RequireAdmin).Put("/{employeeID}/verification", h.handleVerification)
		r.With(middleware.RequireAuth).Get("/{employeeID}/checklist", h.handleChecklist)
		r.With(middleware.RequireAuth).Get("/{employeeID}/sections", h.handleSections)
		r.With(middleware.RequireAuth).Post("/{employeeID}/documents", h.handleUploadDocument)
		r.With(middleware.RequireAuth).Delete("/{employeeID}/documents/{documentKey}", h.handleDeleteDocument)
	})
	r.With(middleware.RequireAuth).Get("/files/{employeeID}/{documentID}", h.handleDownload)
}

// canAccess reports whether the caller may read or edit the record:
// admins always, employees only their own.
func canAccess(user middleware.UserContext, employeeID string) bool {
	if user.Role == auth.RoleAdmin {
		return true
	}
	return user.EmployeeID != "" && user.EmployeeID == employeeID
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Roster.Employees(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var emp personnel.Employee
	if err := json.NewDecoder(r.Body).Decode(&emp); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if emp.FullName == "" {
		api.Fail(w, http.StatusBadRequest, "missing_name", "fullName is required", middleware.GetRequestID(r.Context()))
		return
	}
	if emp.VerificationStatus == "" {
		emp.VerificationStatus = personnel.VerificationPending
	}

	saved, err := h.Roster.SaveEmployee(r.Context(), emp)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "save_failed", "failed to save employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, saved, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	user, _ := middleware.GetUser(r.Context())
	if !canAccess(user, employeeID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not your record", middleware.GetRequestID(r.Context()))
		return
	}

	emp, ok := h.Roster.EmployeeByID(employeeID)
	if !ok {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	user, _ := middleware.GetUser(r.Context())
	if !canAccess(user, employeeID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not your record", middleware.GetRequestID(r.Context()))
		return
	}

	existing, ok := h.Roster.EmployeeByID(employeeID)
	if !ok {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}

	var emp personnel.Employee
	if err := json.NewDecoder(r.Body).Decode(&emp); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	emp.ID = employeeID

	// Review state and employment classification only change through the
	// admin endpoints; self-service edits carry the stored values.
	if user.Role != auth.RoleAdmin {
		emp.VerificationStatus = existing.VerificationStatus
		emp.AdminNotes = existing.AdminNotes
		emp.EmpStatus = existing.EmpStatus
		emp.EmpType = existing.EmpType
		emp.Unit = existing.Unit
	}

	saved, err := h.Roster.SaveEmployee(r.Context(), emp)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "save_failed", "failed to save employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, saved, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if err := h.Roster.DeleteEmployee(r.Context(), employeeID); err != nil {
		if errors.Is(err, roster.ErrEmployeeNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "delete_failed", "failed to delete employee", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Files.RemoveAll(employeeID); err != nil {
		slog.Warn("stored file cleanup failed", "employeeId", employeeID, "err", err)
	}
	api.Success(w, map[string]string{"id": employeeID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleVerification(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	var payload struct {
		Status     string `json:"status"`
		AdminNotes string `json:"adminNotes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Roster.SetVerification(r.Context(), employeeID, payload.Status, payload.AdminNotes)
	if err != nil {
		switch {
		case errors.Is(err, roster.ErrInvalidStatus):
			api.Fail(w, http.StatusBadRequest, "invalid_status", "unknown verification status", middleware.GetRequestID(r.Context()))
		case errors.Is(err, roster.ErrEmployeeNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "save_failed", "failed to save verification", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleChecklist(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	user, _ := middleware.GetUser(r.Context())
	if !canAccess(user, employeeID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not your record", middleware.GetRequestID(r.Context()))
		return
	}

	groups, orphans, err := h.Roster.Checklist(employeeID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"groups": groups, "orphans": orphans}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSections(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	user, _ := middleware.GetUser(r.Context())
	if !canAccess(user, employeeID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not your record", middleware.GetRequestID(r.Context()))
		return
	}

	emp, ok := h.Roster.EmployeeByID(employeeID)
	if !ok {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, personnel.ApplicableSections(emp.EmpStatus), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	user, _ := middleware.GetUser(r.Context())
	if !canAccess(user, employeeID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not your record", middleware.GetRequestID(r.Context()))
		return
	}

	if err := r.ParseMultipartForm(maxDocumentBytes); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_upload", "invalid multipart payload", middleware.GetRequestID(r.Context()))
		return
	}
	definitionID := r.FormValue("definitionId")
	if definitionID == "" {
		api.Fail(w, http.StatusBadRequest, "missing_definition", "definitionId is required", middleware.GetRequestID(r.Context()))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "missing_file", "file is required", middleware.GetRequestID(r.Context()))
		return
	}
	defer file.Close()

	// Reject rather than truncate: a cut-off PDF is worse than no upload.
	if header.Size > maxDocumentBytes {
		api.Fail(w, http.StatusRequestEntityTooLarge, "file_too_large", "document exceeds the 5 MiB limit", middleware.GetRequestID(r.Context()))
		return
	}

	// Attach first so the document id exists before the payload lands on
	// disk; a failed write rolls the attachment back.
	today := time.Now()
	saved, doc, err := h.Roster.AttachDocument(r.Context(), employeeID, definitionID, header.Filename, "", today)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "attach_failed", "failed to attach document", middleware.GetRequestID(r.Context()))
		return
	}

	if _, err := h.Files.Save(employeeID, doc.ID, header.Filename, file); err != nil {
		slog.Warn("document write failed", "employeeId", employeeID, "documentId", doc.ID, "err", err)
		if _, rmErr := h.Roster.RemoveDocument(r.Context(), employeeID, doc.ID); rmErr != nil {
			slog.Warn("document rollback failed", "employeeId", employeeID, "documentId", doc.ID, "err", rmErr)
		}
		api.Fail(w, http.StatusInternalServerError, "store_failed", "failed to store document", middleware.GetRequestID(r.Context()))
		return
	}

	doc.URL = fmt.Sprintf("/api/v1/files/%s/%s", employeeID, doc.ID)
	for i := range saved.Documents {
		if saved.Documents[i].ID == doc.ID {
			saved.Documents[i].URL = doc.URL
		}
	}
	if saved, err = h.Roster.SaveEmployee(r.Context(), saved); err != nil {
		api.Fail(w, http.StatusInternalServerError, "save_failed", "failed to save employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]any{"employee": saved, "document": doc}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	documentKey := chi.URLParam(r, "documentKey")
	user, _ := middleware.GetUser(r.Context())
	if !canAccess(user, employeeID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not your record", middleware.GetRequestID(r.Context()))
		return
	}

	saved, err := h.Roster.RemoveDocument(r.Context(), employeeID, documentKey)
	if err != nil {
		if errors.Is(err, roster.ErrDocumentNotFound) || errors.Is(err, roster.ErrEmployeeNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "document not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "delete_failed", "failed to delete document", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Files.Remove(employeeID, documentKey); err != nil {
		slog.Warn("stored file cleanup failed", "employeeId", employeeID, "documentKey", documentKey, "err", err)
	}
	api.Success(w, saved, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	documentID := chi.URLParam(r, "documentID")
	user, _ := middleware.GetUser(r.Context())
	if !canAccess(user, employeeID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not your record", middleware.GetRequestID(r.Context()))
		return
	}

	f, fileName, err := h.Files.Open(employeeID, documentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "file not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "read_failed", "failed to read file", middleware.GetRequestID(r.Context()))
		return
	}
	defer f.Close()

	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", fileName))
	if _, err := io.Copy(w, f); err != nil {
		slog.Warn("file stream failed", "employeeId", employeeID, "documentId", documentID, "err", err)
	}
}
