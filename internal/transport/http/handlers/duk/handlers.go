package dukhandler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jung-kurt/gofpdf"

	"simpeg/internal/domain/personnel"
	"simpeg/internal/domain/roster"
	"simpeg/internal/transport/http/api"
	"simpeg/internal/transport/http/middleware"
)

type Handler struct {
	Roster     *roster.Service
	SchoolName string
}

func NewHandler(rosterSvc *roster.Service, schoolName string) *Handler {
	return &Handler{Roster: rosterSvc, SchoolName: schoolName}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/duk", func(r chi.Router) {
		r.With(middleware.RequireAuth).Get("/", h.handleRows)
		r.With(middleware.RequireAdmin).Put("/rows", h.handleUpsertRow)
		r.With(middleware.RequireAuth).Get("/export.pdf", h.handleExportPDF)
	})
}

func (h *Handler) handleRows(w http.ResponseWriter, r *http.Request) {
	rows := h.Roster.RosterRows(time.Now(), r.URL.Query().Get("q"))
	api.Success(w, rows, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpsertRow(w http.ResponseWriter, r *http.Request) {
	var row personnel.RosterRow
	if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if row.Name == "" {
		api.Fail(w, http.StatusBadRequest, "missing_name", "name is required", middleware.GetRequestID(r.Context()))
		return
	}

	saved, err := h.Roster.UpsertRosterRow(r.Context(), row, time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "save_failed", "failed to save roster row", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, saved, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	rows := h.Roster.RosterRows(time.Now(), r.URL.Query().Get("q"))

	pdf := gofpdf.New("L", "mm", "A3", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Daftar Urut Kepangkatan (DUK)")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, h.SchoolName)
	pdf.Ln(10)

	type column struct {
		header string
		width  float64
		value  func(personnel.RosterRow) string
	}
	columns := []column{
		{"NAMA", 55, func(row personnel.RosterRow) string { return row.Name }},
		{"NIP", 40, func(row personnel.RosterRow) string { return row.NIP }},
		{"L/P", 10, func(row personnel.RosterRow) string { return row.Sex }},
		{"PANGKAT", 42, func(row personnel.RosterRow) string { return row.RankName }},
		{"JABATAN", 42, func(row personnel.RosterRow) string { return row.PositionName }},
		{"MK GOL", 18, func(row personnel.RosterRow) string { return row.GradeYears + "/" + row.GradeMonths }},
		{"MK SEL", 18, func(row personnel.RosterRow) string { return row.TotalYears + "/" + row.TotalMonths }},
		{"PENDIDIKAN", 40, func(row personnel.RosterRow) string { return row.EduLevel + " " + row.EduMajor }},
		{"TGL LAHIR", 24, func(row personnel.RosterRow) string { return row.BirthDate }},
		{"SK BERKALA", 24, func(row personnel.RosterRow) string { return row.LastIncrementDate }},
		{"BERKALA +2TH", 26, func(row personnel.RosterRow) string { return row.NextIncrementDate }},
		{"KET", 45, func(row personnel.RosterRow) string { return row.Remark }},
	}

	pdf.SetFont("Helvetica", "B", 8)
	for _, col := range columns {
		pdf.CellFormat(col.width, 7, col.header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 7)
	for _, row := range rows {
		for _, col := range columns {
			pdf.CellFormat(col.width, 6, col.value(row), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "duk.pdf"))
	if err := pdf.Output(w); err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to render roster export", middleware.GetRequestID(r.Context()))
	}
}
