package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"household/internal/log"
)

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, "Failed to create expense")
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, r, err, "Failed to create expense")
		return
	}
	e, err := s.expenses.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err, "Failed to create expense")
		return
	}
	log.FromContext(r.Context()).ForGroup(e.GroupID).InfoContext(r.Context(), "Expense created",
		log.FieldExpenseID, e.ID)
	NewResponse().JSON(e).Write(w)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	month := strings.TrimSpace(r.URL.Query().Get("month"))
	expenses, err := s.expenses.List(r.Context(), chi.URLParam(r, "groupId"), month)
	if err != nil {
		writeError(w, r, err, "Failed to fetch expenses")
		return
	}
	NewResponse().JSON(expenses).Write(w)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	u, err := parseExpenseUpdate(r)
	if err != nil {
		writeError(w, r, err, "Failed to update expense")
		return
	}
	e, err := s.expenses.Update(r.Context(), chi.URLParam(r, "id"), u)
	if err != nil {
		writeError(w, r, err, "Failed to update expense")
		return
	}
	NewResponse().JSON(e).Write(w)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err, "Failed to delete expense")
		return
	}
	NewResponse().JSON(successBody{Success: true}).Write(w)
}
