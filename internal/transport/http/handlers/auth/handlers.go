package authhandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"simpeg/internal/domain/auth"
	"simpeg/internal/domain/roster"
	"simpeg/internal/transport/http/api"
	"simpeg/internal/transport/http/middleware"
)

const tokenTTL = 24 * time.Hour

type Handler struct {
	Roster *roster.Service
	Secret string
}

func NewHandler(rosterSvc *roster.Service, secret string) *Handler {
	return &Handler{Roster: rosterSvc, Secret: secret}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
	r.Post("/auth/employee-login", h.handleEmployeeLogin)
	r.With(middleware.RequireAuth).Get("/me", h.handleMe)
}

type loginResponse struct {
	Token string           `json:"token"`
	User  auth.UserAccount `json:"user"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	user, ok := h.Roster.UserByUsername(payload.Username)
	if !ok || auth.CheckPassword(user.PasswordHash, payload.Password) != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password", middleware.GetRequestID(r.Context()))
		return
	}

	h.issueToken(w, r, user)
}

// handleEmployeeLogin resolves the account linked to an employee record,
// the self-service entry point.
func (h *Handler) handleEmployeeLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		EmployeeID string `json:"employeeId"`
		Password   string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	user, ok := h.Roster.UserByEmployeeID(payload.EmployeeID)
	if !ok || auth.CheckPassword(user.PasswordHash, payload.Password) != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid employee id or password", middleware.GetRequestID(r.Context()))
		return
	}

	h.issueToken(w, r, user)
}

func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request, user auth.UserAccount) {
	token, err := auth.GenerateToken(h.Secret, auth.Claims{
		UserID:     user.ID,
		Role:       user.Role,
		Name:       user.Name,
		EmployeeID: user.EmployeeID,
	}, tokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_failed", "failed to issue token", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, loginResponse{Token: token, User: user}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	resp := map[string]any{
		"id":         user.UserID,
		"role":       user.Role,
		"name":       user.Name,
		"employeeId": user.EmployeeID,
	}
	if user.EmployeeID != "" {
		if emp, ok := h.Roster.EmployeeByID(user.EmployeeID); ok {
			resp["employee"] = emp
		}
	}
	api.Success(w, resp, middleware.GetRequestID(r.Context()))
}
