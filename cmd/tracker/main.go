package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/matst80/slask-catalog/pkg/common"
	"github.com/matst80/slask-catalog/pkg/config"
	"github.com/matst80/slask-catalog/pkg/logging"
	"github.com/matst80/slask-catalog/pkg/messaging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
)

var configPath = flag.String("config", "", "path to a YAML config file")

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if !cfg.HasRabbit() {
		return errors.New("RABBIT_URL must be set")
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	conn, err := amqp.DialConfig(cfg.RabbitUrl, amqp.Config{
		Properties: amqp.NewConnectionProperties(),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	defer conn.Close()
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open a channel: %w", err)
	}
	if err := messaging.DefineTopic(ch, messaging.GlobalPrefix, messaging.SearchTopic); err != nil {
		return err
	}

	a := &app{logger: logger}
	if err := messaging.ListenToTopic(ch, messaging.GlobalPrefix, messaging.SearchTopic, logger, a.handleSearchEvent); err != nil {
		return err
	}
	logger.Info("listening for search events")

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if conn.IsClosed() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	server := &http.Server{
		Addr:              cfg.DebugAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	closeConn := func(ctx context.Context) error {
		return conn.Close()
	}
	return common.RunServerWithShutdown(server, "tracker", logger, 10*time.Second, 5*time.Second, closeConn)
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
