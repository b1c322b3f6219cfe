package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"household/internal/log"
)

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	report, err := s.reports.Balances(r.Context(), chi.URLParam(r, "groupId"))
	if err != nil {
		writeError(w, r, err, "Failed to calculate balances")
		return
	}
	NewResponse().JSON(report).Write(w)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	month := strings.TrimSpace(r.URL.Query().Get("month"))
	if month == "" {
		BadRequestError(`Month parameter is required (YYYY-MM or "all")`).Write(w)
		return
	}
	report, err := s.reports.Summary(r.Context(), chi.URLParam(r, "groupId"), month)
	if err != nil {
		writeError(w, r, err, "Failed to generate summary")
		return
	}
	NewResponse().JSON(report).Write(w)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	month := strings.TrimSpace(r.URL.Query().Get("month"))
	groupID := chi.URLParam(r, "groupId")
	result, err := s.reports.Export(r.Context(), groupID, month)
	if err != nil {
		writeError(w, r, err, "Failed to export expenses")
		return
	}
	log.FromContext(r.Context()).ForGroup(groupID).InfoContext(r.Context(), "Expenses exported",
		log.FieldOperation, log.OpExport, "rows", result.Rows)
	NewResponse().CSV(result.Filename, result.Content).Write(w)
}
