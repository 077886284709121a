package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cafeteria/internal/api"
	"cafeteria/internal/config"
	"cafeteria/internal/kv"
	"cafeteria/internal/monitoring"
	"cafeteria/internal/payment"
	"cafeteria/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort != 0 {
		cfg.Metrics.Port = *metricsPort
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	sess := session.New(store, "")
	if cfg.Seed {
		if err := sess.Init(ctx); err != nil {
			log.Fatalf("Failed to seed stores: %v", err)
		}
	}

	monitor := monitoring.NewMonitor()
	feed := api.NewFeed(sess.Orders, cfg.PollInterval(), monitor)
	feed.Start(ctx)
	defer feed.Stop()

	payments := payment.NewSimulator(cfg.PaymentDelay())
	server := api.NewServer(sess, payments, feed, cfg.Auth.SigningKey)

	if cfg.Metrics.Enabled {
		go startMetricsServer(cfg.Metrics.Port, cfg.Metrics.Path)
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: server.Router(),
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}

		cancel()
	}()

	log.Printf("Starting API server on port %d (storage backend: %s)", cfg.Server.Port, cfg.Storage.Backend)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

func openStore(cfg *config.Config) (kv.Store, error) {
	switch cfg.Storage.Backend {
	case "memory":
		return kv.NewMemoryStore(), nil
	case "file":
		return kv.NewFileStore(cfg.Storage.DataDir)
	case "sqlite":
		return kv.NewSQLiteStore(cfg.Storage.SQLitePath)
	case "redis":
		return kv.NewRedisStore(cfg.Storage.RedisURL, cfg.Storage.RedisNamespace)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func startMetricsServer(port int, path string) {
	if path == "" {
		path = "/metrics"
	}
	metricsRouter := gin.Default()
	metricsRouter.GET(path, gin.WrapH(promhttp.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
