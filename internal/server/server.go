package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ppiankov/veridex/internal/judge"
	"github.com/ppiankov/veridex/internal/model"
	"github.com/ppiankov/veridex/internal/pipeline"
	"github.com/ppiankov/veridex/internal/rank"
)

// Analyzer runs one fact-checking cycle for a claim
type Analyzer interface {
	Analyze(ctx context.Context, claim string) (*model.Analysis, error)
}

// Server exposes the fact-checking pipeline over HTTP
type Server struct {
	analyzer   Analyzer
	judgeModel string
	router     *chi.Mux
}

// New creates a server around the analyzer. judgeModel is reported on the
// health route so operators can see which model verdicts come from.
func New(analyzer Analyzer, judgeModel string) *Server {
	s := &Server{
		analyzer:   analyzer,
		judgeModel: judgeModel,
		router:     chi.NewRouter(),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/analyze", s.handleAnalyze)

	return s
}

// Handler returns the HTTP handler for mounting or testing
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}

type analyzeRequest struct {
	Claim string `json:"claim"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Veridex fact-checking service is running.",
		"model":   s.judgeModel,
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "invalid JSON body"})
		return
	}

	analysis, err := s.analyzer.Analyze(r.Context(), req.Claim)
	if err != nil {
		status, detail := classifyError(err)
		writeJSON(w, status, errorResponse{Detail: detail})
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

// classifyError maps pipeline faults to HTTP statuses: bad input 400, judge
// connectivity 503, everything else 500.
func classifyError(err error) (int, string) {
	var respErr *judge.ResponseError
	var dimErr *rank.DimensionMismatchError

	switch {
	case errors.Is(err, pipeline.ErrEmptyClaim):
		return http.StatusBadRequest, "Claim must not be empty."
	case errors.Is(err, judge.ErrUnavailable):
		return http.StatusServiceUnavailable, fmt.Sprintf("Judge connection failed: %v", err)
	case errors.As(err, &respErr):
		return http.StatusInternalServerError, fmt.Sprintf("Judge error: %s", respErr.Body)
	case errors.Is(err, judge.ErrEmptyResponse):
		return http.StatusInternalServerError, "Empty response from judge"
	case errors.As(err, &dimErr):
		return http.StatusInternalServerError, dimErr.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
