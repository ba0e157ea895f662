// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the pipeline over HTTP. The boundary is thin:
// decode, validate, run, encode; every pipeline failure maps to a 500.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/langnerd/internal/pipeline"
	"github.com/pdiddy/langnerd/pkg/types"
)

// Pipeline is the orchestration surface the handlers consume.
type Pipeline interface {
	RunQA(ctx context.Context, in pipeline.QAInput) (*pipeline.QAResult, error)
	RunGuide(ctx context.Context, in pipeline.GuideInput) (*pipeline.GuideResult, error)
}

// Server wires routes, CORS and request logging around the pipeline.
type Server struct {
	pipe      Pipeline
	exportDir string
	log       *zap.Logger
}

// New creates the HTTP boundary. exportDir is served read-only under
// /generated/ so guide documents are downloadable.
func New(pipe Pipeline, exportDir string, log *zap.Logger) *Server {
	return &Server{pipe: pipe, exportDir: exportDir, log: log}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/qa", s.handleQA)
	mux.HandleFunc("POST /api/guide", s.handleGuide)
	mux.Handle("GET /generated/", http.StripPrefix("/generated/",
		http.FileServer(http.Dir(s.exportDir))))
	return s.withCORS(s.withLogging(mux))
}

// ListenAndServe blocks serving requests on addr.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info("listening", zap.String("addr", addr))
	return srv.ListenAndServe()
}

type qaRequest struct {
	Question string `json:"question"`
	Game     string `json:"game"`
	Focus    string `json:"focus"`
	Language string `json:"language"`
}

type qaResponse struct {
	Answer  string               `json:"answer"`
	Sources []types.SearchResult `json:"sources"`
	Mode    string               `json:"mode"`
}

type guideRequest struct {
	Game     string `json:"game"`
	Focus    string `json:"focus"`
	Extra    string `json:"extra"`
	Language string `json:"language"`
}

type guideResponse struct {
	DocumentPath string                 `json:"document_path"`
	DocumentURL  string                 `json:"document_url"`
	Guide        *types.StructuredGuide `json:"guide"`
	Sources      []types.SearchResult   `json:"sources"`
	Mode         string                 `json:"mode"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleQA(w http.ResponseWriter, r *http.Request) {
	var req qaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusUnprocessableEntity, "question is required")
		return
	}

	result, err := s.pipe.RunQA(r.Context(), pipeline.QAInput{
		Question: req.Question,
		Game:     req.Game,
		Focus:    req.Focus,
		Language: req.Language,
	})
	if err != nil {
		s.log.Error("qa run failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "answer generation failed")
		return
	}

	writeJSON(w, http.StatusOK, qaResponse{
		Answer:  result.Answer,
		Sources: result.Sources,
		Mode:    string(types.ModeQA),
	})
}

func (s *Server) handleGuide(w http.ResponseWriter, r *http.Request) {
	var req guideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Game == "" {
		writeError(w, http.StatusUnprocessableEntity, "game is required")
		return
	}

	result, err := s.pipe.RunGuide(r.Context(), pipeline.GuideInput{
		Game:     req.Game,
		Focus:    req.Focus,
		Extra:    req.Extra,
		Language: req.Language,
	})
	if err != nil {
		s.log.Error("guide run failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "guide generation failed")
		return
	}
	if result.ExportPath == "" {
		writeError(w, http.StatusInternalServerError, "HTML generation failed")
		return
	}

	writeJSON(w, http.StatusOK, guideResponse{
		DocumentPath: result.ExportPath,
		DocumentURL:  "/generated/" + filepath.Base(result.ExportPath),
		Guide:        result.Guide,
		Sources:      result.Sources,
		Mode:         string(types.ModeGuide),
	})
}

// withLogging tags each request with an id and logs its outcome.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		reqID := uuid.NewString()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			zap.String("request_id", reqID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(started)))
	})
}

// withCORS applies the permissive policy the frontend expects.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
