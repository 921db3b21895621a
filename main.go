package main

import (
	"bufio"
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"energy-dashboard/internal/audit"
	"energy-dashboard/internal/auth"
	"energy-dashboard/internal/config"
	datasetapp "energy-dashboard/internal/dataset/application"
	"energy-dashboard/internal/dataset/infrastructure/feeds"
	"energy-dashboard/internal/observability/metrics"
	queryapp "energy-dashboard/internal/query/application"
	queryhttp "energy-dashboard/internal/query/interfaces/http"
	queryws "energy-dashboard/internal/query/interfaces/ws"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, err := config.Load("")
	if err != nil {
		logger.Fatalf("config error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := feeds.LoadStore(ctx, cfg.Feeds, logger)
	if err != nil {
		logger.Fatalf("dataset load error: %v", err)
	}
	metrics.Init(store, logger)
	recordFeedRows(store.Reports())

	engine, err := queryapp.NewEngine(store)
	if err != nil {
		logger.Fatalf("query engine init error: %v", err)
	}
	queryHandler, err := queryhttp.NewHandler(engine, store, audit.NewLogSink(logger), logger)
	if err != nil {
		logger.Fatalf("query handler init error: %v", err)
	}
	hub := queryws.NewHub(logger)
	wsHandler, err := queryws.NewHandler(hub, engine, logger)
	if err != nil {
		logger.Fatalf("ws handler init error: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/v1/views", queryHandler)
	mux.Handle("/api/v1/options", queryHandler)
	mux.Handle("/api/v1/dataset/report", queryHandler)
	mux.Handle("/api/v1/exports/", queryHandler)
	mux.Handle("/ws/views", wsHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var handler http.Handler = mux
	if cfg.AuthEnabled() {
		policy := auth.NewDefaultPolicy([]string{"/metrics", "/healthz"}, nil)
		handler = auth.NewMiddleware([]byte(cfg.Auth.JWTSecret), policy).Wrap(mux)
	} else {
		logger.Printf("auth disabled: AUTH_JWT_SECRET not set")
	}

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(handler, logger)}
	server.RegisterOnShutdown(hub.CloseAll)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Printf("shutdown error: %v", err)
		}
	}()

	logger.Printf("dashboard listening on %s (feeds=%s, per-state=%d, national=%d, consumption=%d)",
		cfg.HTTPAddr, cfg.Feeds.Source, store.PerStateCount(), store.NationalCount(), store.ConsumptionCount())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal(err)
	}
}

func recordFeedRows(reports []datasetapp.LoadReport) {
	for _, report := range reports {
		metrics.AddFeedRows(report.Feed, "accepted", report.Accepted)
		metrics.AddFeedRows(report.Feed, "national", report.National)
		metrics.AddFeedRows(report.Feed, "excluded", report.Excluded)
		metrics.AddFeedRows(report.Feed, "rejected", report.Rejected)
	}
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Hijack lets websocket upgrades pass through the logging wrapper.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("http: response writer does not support hijacking")
	}
	w.status = http.StatusSwitchingProtocols
	return hijacker.Hijack()
}
