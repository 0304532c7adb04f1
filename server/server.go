package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/foomo/confluence-gateway/confluence"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const Version = "0.0.1"

type Server struct {
	service confluence.Service
	logger  *zap.Logger
}

func New(service confluence.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		service: service,
		logger:  logger,
	}
}

// Router wires the gateway's HTTP surface.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealthz)

	r.Get("/pages", s.handleListPages)
	r.Post("/pages", s.handleCreatePage)
	r.Get("/pages/{pageID}", s.handleReadPage)
	r.Put("/pages/{pageID}", s.handleUpdatePage)
	r.Delete("/pages/{pageID}", s.handleDeletePage)

	r.Get("/search", s.handleSearch)

	r.Get("/pages/{pageID}/inline-comments", s.handleInlineComments)
	r.Post("/inline-comments/{commentID}/reply", s.handleReplyInlineComment)
	r.Get("/pages/{pageID}/footer-comments", s.handleFooterComments)
	r.Post("/pages/{pageID}/footer-comments", s.handleAddFooterComment)

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("requestID", middleware.GetReqID(r.Context())),
		)
	})
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to write response", zap.Error(err))
	}
}

// writeError maps adapter failures onto the response taxonomy: scope
// violations become a fixed 403, upstream errors keep their status and body,
// everything else is a 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var upstream *confluence.APIError
	switch {
	case errors.Is(err, confluence.ErrScopeViolation):
		s.logger.Warn("scope violation", zap.String("path", r.URL.Path))
		s.writeJSON(w, http.StatusForbidden, errorResponse{Detail: confluence.ErrScopeViolation.Error()})
	case errors.As(err, &upstream):
		s.writeJSON(w, upstream.StatusCode, errorResponse{Detail: upstream.Body})
	default:
		s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: err.Error()})
	}
}

func (s *Server) writeValidationError(w http.ResponseWriter, err error) {
	s.writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": Version})
}
