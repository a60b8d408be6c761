// Package server exposes persisted pipeline results over a small JSON API.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/beeleads/replysift/internal/store"
)

const defaultContactLimit = 100

// Server serves lead data from the store.
type Server struct {
	store *store.Store
	log   *zap.Logger
}

// New creates a server backed by the given store.
func New(st *store.Store, logger *zap.Logger) *Server {
	return &Server{store: st, log: logger}
}

// Router builds the HTTP router.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/runs/latest", s.LatestRun)
	r.Get("/api/contacts", s.ListContacts)
	r.Get("/api/contacts/{email}", s.GetContact)
	r.Get("/api/categories", s.Categories)

	return r
}

// LatestRun returns the most recent pipeline run.
func (s *Server) LatestRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.LatestRun()
	if err != nil {
		s.serverError(w, "failed to load latest run", err)
		return
	}
	if run == nil {
		s.respondError(w, http.StatusNotFound, "no runs recorded")
		return
	}
	s.respondJSON(w, http.StatusOK, run)
}

// ListContacts returns contacts from the latest run. Query parameters
// min_score and limit narrow the result.
func (s *Server) ListContacts(w http.ResponseWriter, r *http.Request) {
	minScore := 0
	if v := r.URL.Query().Get("min_score"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.respondError(w, http.StatusBadRequest, "invalid min_score")
			return
		}
		minScore = n
	}

	limit := defaultContactLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	contacts, err := s.store.ListContacts(minScore, limit)
	if err != nil {
		s.serverError(w, "failed to list contacts", err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"count":    len(contacts),
		"contacts": contacts,
	})
}

// GetContact returns a single contact by primary email.
func (s *Server) GetContact(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	contact, err := s.store.GetContact(email)
	if err != nil {
		s.serverError(w, "failed to load contact", err)
		return
	}
	if contact == nil {
		s.respondError(w, http.StatusNotFound, "contact not found")
		return
	}
	s.respondJSON(w, http.StatusOK, contact)
}

// Categories returns per-category message counts for the latest run.
func (s *Server) Categories(w http.ResponseWriter, r *http.Request) {
	summary, err := s.store.CategorySummary()
	if err != nil {
		s.serverError(w, "failed to load category summary", err)
		return
	}
	s.respondJSON(w, http.StatusOK, summary)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) serverError(w http.ResponseWriter, msg string, err error) {
	s.log.Error(msg, zap.Error(err))
	s.respondError(w, http.StatusInternalServerError, msg)
}
