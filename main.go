package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"time"

	"github.com/matst80/slask-catalog/pkg/common"
	"github.com/matst80/slask-catalog/pkg/config"
	"github.com/matst80/slask-catalog/pkg/logging"
	"github.com/matst80/slask-catalog/pkg/server"
	"github.com/matst80/slask-catalog/pkg/tracking"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var enableProfiling = flag.Bool("profiling", true, "enable profiling endpoints")
var configPath = flag.String("config", "", "path to a YAML config file")

func debugHandler(ws *server.WebServer, profiling bool) *http.ServeMux {
	debugMux := http.NewServeMux()
	debugMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, "ok %d sessions", ws.SessionCount())
	})
	debugMux.Handle("/metrics", promhttp.Handler())
	if profiling {
		debugMux.HandleFunc("/debug/pprof/", pprof.Index)
		debugMux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		debugMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		debugMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		debugMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	return debugMux
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	if cfg.NodeName != "" {
		logger = logger.With(zap.String("node", cfg.NodeName))
	}

	var trk tracking.Tracking
	if cfg.HasRabbit() {
		rabbit, err := tracking.NewRabbitTracking(cfg.RabbitUrl, cfg.Country(), logger)
		if err != nil {
			logger.Error("failed to connect tracking, continuing without", zap.Error(err))
		} else {
			defer rabbit.Close()
			trk = rabbit
			logger.Info("search tracking enabled")
		}
	}

	ws, err := server.NewWebServer(cfg, trk, logger)
	if err != nil {
		return err
	}

	timeouts := common.LoadTimeoutConfig(common.TimeoutConfig{
		ReadHeader: 5 * time.Second,
		Read:       15 * time.Second,
		Write:      15 * time.Second,
		Idle:       60 * time.Second,
		Shutdown:   15 * time.Second,
		Hook:       5 * time.Second,
	})
	apiServer := common.NewServerWithTimeouts(&http.Server{
		Addr:    cfg.ListenAddress,
		Handler: ws.Handler(),
	}, timeouts)
	debugServer := &http.Server{
		Addr:              cfg.DebugAddress,
		Handler:           debugHandler(ws, *enableProfiling),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		defer debugServer.Close()
		return common.RunServerWithShutdownContext(ctx, apiServer, "catalog api", logger, timeouts.Shutdown, timeouts.Hook, ws.CloseAll)
	})
	g.Go(func() error {
		logger.Info("starting debug server", zap.String("addr", cfg.DebugAddress), zap.Bool("profiling", *enableProfiling))
		if err := debugServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return ws.RunJanitor(ctx, time.Minute, server.DefaultSessionIdle)
	})
	return g.Wait()
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
