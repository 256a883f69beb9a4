package dashboardhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

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
	r.With(middleware.RequireAdmin).Get("/dashboard/stats", h.handleStats)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Roster.Stats(), middleware.GetRequestID(r.Context()))
}
