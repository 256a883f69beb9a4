package registryhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"simpeg/internal/domain/registry"
	"simpeg/internal/domain/roster"
	"simpeg/internal/transport/http/api"
	"simpeg/internal/transport/http/middleware"
)

type Handler struct {
	Roster *roster.Service
}

func NewHandler(rosterSvc *roster.Service) *Handler {
	return &Handler{Roster: rosterSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/definitions", func(r chi.Router) {
		r.With(middleware.RequireAuth).Get("/", h.handleList)
		r.With(middleware.RequireAdmin).Post("/", h.handleAdd)
		r.With(middleware.RequireAdmin).Post("/{definitionID}/rename", h.handleRename)
		r.With(middleware.RequireAdmin).Post("/{definitionID}/toggle-required", h.handleToggleRequired)
		r.With(middleware.RequireAdmin).Delete("/{definitionID}", h.handleDelete)
		r.With(middleware.RequireAuth).Get("/categories", h.handleCategories)
		r.With(middleware.RequireAdmin).Post("/categories/rename", h.handleRenameCategory)
		r.With(middleware.RequireAdmin).Delete("/categories/{category}", h.handleDeleteCategory)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Roster.Definitions(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Roster.Categories(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name  string `json:"name"`
		Group string `json:"group"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	def, err := h.Roster.AddDefinition(r.Context(), payload.Name, payload.Group)
	if err != nil {
		h.writeRegistryError(w, r, err, "add")
		return
	}
	api.Created(w, def, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRename(w http.ResponseWriter, r *http.Request) {
	definitionID := chi.URLParam(r, "definitionID")

	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	result, err := h.Roster.RenameDefinition(r.Context(), definitionID, payload.Name)
	if err != nil {
		h.writeRegistryError(w, r, err, "rename")
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleToggleRequired(w http.ResponseWriter, r *http.Request) {
	definitionID := chi.URLParam(r, "definitionID")

	def, err := h.Roster.ToggleDefinitionRequired(r.Context(), definitionID)
	if err != nil {
		h.writeRegistryError(w, r, err, "toggle")
		return
	}
	api.Success(w, def, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	definitionID := chi.URLParam(r, "definitionID")

	result, err := h.Roster.DeleteDefinition(r.Context(), definitionID)
	if err != nil {
		h.writeRegistryError(w, r, err, "delete")
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRenameCategory(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		OldName string `json:"oldName"`
		NewName string `json:"newName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	result, err := h.Roster.RenameCategory(r.Context(), payload.OldName, payload.NewName)
	if err != nil {
		h.writeRegistryError(w, r, err, "rename_category")
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	result, err := h.Roster.DeleteCategory(r.Context(), category)
	if err != nil {
		h.writeRegistryError(w, r, err, "delete_category")
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) writeRegistryError(w http.ResponseWriter, r *http.Request, err error, op string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, registry.ErrDuplicateName):
		api.Fail(w, http.StatusConflict, "duplicate_name", "a definition with that name already exists", requestID)
	case errors.Is(err, registry.ErrEmptyName):
		api.Fail(w, http.StatusBadRequest, "empty_name", "name must not be empty", requestID)
	case errors.Is(err, registry.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "definition not found", requestID)
	case errors.Is(err, registry.ErrCategoryNotFound):
		api.Fail(w, http.StatusNotFound, "category_not_found", "category not found", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "registry_"+op+"_failed", "registry operation failed", requestID)
	}
}
