package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
	"github.com/DylanNgo1808/AI-Helpdesk/chat"
	"github.com/google/uuid"
)

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8080" help:"Listen address"`
}

// Run executes the serve command. The index is built once at startup;
// restart the server after re-ingesting to pick up new records.
func (s *ServeCmd) Run(deps *Dependencies) error {
	engine, err := buildEngine(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", helpdesk.ErrorMessage(err))
		return err
	}

	api := &apiServer{deps: deps, engine: engine}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/ask", api.handleAsk)
	mux.HandleFunc("GET /api/healthz", api.handleHealthz)
	mux.HandleFunc("GET /api/stats", api.handleStats)

	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           api.withRequestID(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Shut down when the command context is canceled.
	go func() {
		<-deps.Ctx.Done()
		srv.Close()
	}()

	fmt.Fprintf(deps.Stdout, "Listening on %s\n", s.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type apiServer struct {
	deps   *Dependencies
	engine *chat.Engine
}

// withRequestID tags each request with a uuid and logs its outcome.
func (s *apiServer) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		w.Header().Set("X-Request-ID", requestID)

		begin := time.Now()
		next.ServeHTTP(w, r)

		s.deps.Logger.Info("http request",
			"id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(begin),
		)
	})
}

type askRequest struct {
	Question string `json:"question"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *apiServer) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	resp, err := s.engine.Ask(r.Context(), req.Question)
	if err != nil {
		status := http.StatusInternalServerError
		switch helpdesk.ErrorCode(err) {
		case helpdesk.EINVALID:
			status = http.StatusBadRequest
		case helpdesk.EPROVIDER:
			status = http.StatusBadGateway
		}
		writeJSON(w, status, errorResponse{Error: helpdesk.ErrorMessage(err)})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *apiServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *apiServer) handleStats(w http.ResponseWriter, r *http.Request) {
	records, err := s.deps.Store.LoadAll(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: helpdesk.ErrorMessage(err)})
		return
	}
	dim, err := s.deps.Store.Dimension(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: helpdesk.ErrorMessage(err)})
		return
	}
	docs, err := s.deps.Catalog.FindDocuments(r.Context(), helpdesk.DocumentFilter{})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: helpdesk.ErrorMessage(err)})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"records":   len(records),
		"documents": len(docs),
		"dimension": dim,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
