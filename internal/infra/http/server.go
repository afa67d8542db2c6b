package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Spok95/smartcounter/internal/domain/meter"
	"github.com/Spok95/smartcounter/internal/domain/payments"
)

type Snapshotter interface {
	Snapshot() meter.View
}

type Server struct {
	srv *http.Server
}

func New(addr string, exposeMetrics bool, ledger Snapshotter, journal payments.Store, log *slog.Logger) *Server {
	return &Server{srv: &http.Server{
		Addr:              addr,
		Handler:           NewRouter(exposeMetrics, ledger, journal, log),
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

func NewRouter(exposeMetrics bool, ledger Snapshotter, journal payments.Store, log *slog.Logger) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	if exposeMetrics {
		r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/snapshot", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, ledger.Snapshot())
	}).Methods(http.MethodGet)

	api.HandleFunc("/payments", func(w http.ResponseWriter, req *http.Request) {
		limit := payments.DefaultLimit
		if s := req.URL.Query().Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit parameter"})
				return
			}
			limit = n
		}
		list, err := journal.Recent(req.Context(), limit)
		if err != nil {
			log.Error("list payments failed", "err", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load payments"})
			return
		}
		writeJSON(w, http.StatusOK, list)
	}).Methods(http.MethodGet)

	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(false))(r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
