package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := s.service.ListPages(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pages)
}

func (s *Server) handleReadPage(w http.ResponseWriter, r *http.Request) {
	includeChildren, _ := strconv.ParseBool(r.URL.Query().Get("include_children"))
	page, err := s.service.GetPageSummary(r.Context(), chi.URLParam(r, "pageID"), includeChildren)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleCreatePage(w http.ResponseWriter, r *http.Request) {
	var payload PageCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeValidationError(w, err)
		return
	}
	if err := payload.Validate(); err != nil {
		s.writeValidationError(w, err)
		return
	}
	created, err := s.service.CreatePage(r.Context(), payload.Title, payload.Content, payload.ParentID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleUpdatePage(w http.ResponseWriter, r *http.Request) {
	var payload PageUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeValidationError(w, err)
		return
	}
	if err := payload.Validate(); err != nil {
		s.writeValidationError(w, err)
		return
	}
	updated, err := s.service.UpdatePage(r.Context(), chi.URLParam(r, "pageID"), payload.Title, payload.Content)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeletePage(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeletePage(r.Context(), chi.URLParam(r, "pageID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, DeleteResponse{Status: "deleted"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	cql := r.URL.Query().Get("cql")
	if cql == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "cql query parameter is required"})
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "limit must be a positive integer"})
			return
		}
		limit = parsed
	}
	result, err := s.service.Search(r.Context(), cql, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleInlineComments(w http.ResponseWriter, r *http.Request) {
	comments, err := s.service.InlineComments(r.Context(), chi.URLParam(r, "pageID"), bodyFormat(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, comments)
}

func (s *Server) handleFooterComments(w http.ResponseWriter, r *http.Request) {
	comments, err := s.service.FooterComments(r.Context(), chi.URLParam(r, "pageID"), bodyFormat(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, comments)
}

func (s *Server) handleReplyInlineComment(w http.ResponseWriter, r *http.Request) {
	var payload CommentCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeValidationError(w, err)
		return
	}
	if err := payload.Validate(); err != nil {
		s.writeValidationError(w, err)
		return
	}
	comment, err := s.service.ReplyInlineComment(r.Context(), chi.URLParam(r, "commentID"), payload.Body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, comment)
}

func (s *Server) handleAddFooterComment(w http.ResponseWriter, r *http.Request) {
	var payload CommentCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeValidationError(w, err)
		return
	}
	if err := payload.Validate(); err != nil {
		s.writeValidationError(w, err)
		return
	}
	comment, err := s.service.AddFooterComment(r.Context(), chi.URLParam(r, "pageID"), payload.Body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, comment)
}

func bodyFormat(r *http.Request) string {
	if v := r.URL.Query().Get("body_format"); v != "" {
		return v
	}
	return "storage"
}
