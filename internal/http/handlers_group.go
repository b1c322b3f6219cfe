package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"household/internal/log"
)

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.List(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to fetch groups")
		return
	}
	NewResponse().JSON(groups).Write(w)
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, "Failed to create group")
		return
	}
	g, err := s.groups.Create(r.Context(), req.toInput())
	if err != nil {
		writeError(w, r, err, "Failed to create group")
		return
	}
	log.FromContext(r.Context()).InfoContext(r.Context(), "Group created",
		log.FieldGroupID, g.ID, log.FieldOperation, log.OpCreate)
	NewResponse().JSON(g).Write(w)
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	g, err := s.groups.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "Failed to fetch group")
		return
	}
	NewResponse().JSON(g).Write(w)
}

func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := s.groups.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err, "Failed to delete group")
		return
	}
	NewResponse().JSON(successBody{Success: true, Message: "Group deleted successfully"}).Write(w)
}

func (s *Server) handleMainCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.groups.MainCategories(r.Context(), chi.URLParam(r, "groupId"))
	if err != nil {
		writeError(w, r, err, "Failed to fetch main categories")
		return
	}
	NewResponse().JSON(cats).Write(w)
}

func (s *Server) handleSubCategories(w http.ResponseWriter, r *http.Request) {
	subs, err := s.groups.SubCategories(r.Context(), chi.URLParam(r, "groupId"))
	if err != nil {
		writeError(w, r, err, "Failed to fetch subcategories")
		return
	}
	NewResponse().JSON(subs).Write(w)
}

func (s *Server) handleSeedCategories(w http.ResponseWriter, r *http.Request) {
	force := false
	if v := r.URL.Query().Get("force"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			BadRequestError("force must be a boolean").Write(w)
			return
		}
		force = b
	}
	groupID := chi.URLParam(r, "groupId")
	seeded, err := s.groups.SeedCategories(r.Context(), groupID, force)
	if err != nil {
		writeError(w, r, err, "Failed to seed categories")
		return
	}
	NewResponse().JSON(map[string]any{"success": true, "seeded": seeded}).Write(w)
}
