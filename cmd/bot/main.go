package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"BreakoutSentinel/internal/alertlog"
	"BreakoutSentinel/internal/collector"
	"BreakoutSentinel/internal/config"
	"BreakoutSentinel/internal/metrics"
	"BreakoutSentinel/internal/notifier"
	"BreakoutSentinel/internal/recorder"
	"BreakoutSentinel/internal/scheduler"
	"BreakoutSentinel/internal/server"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] BreakoutSentinel starting...")

	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env file")
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init collector
	fetcher := collector.NewBinanceFetcher(cfg.Exchange.BaseURL)
	log.Printf("[INFO] data source: %s (%s, %s x%d)",
		fetcher.Name(), cfg.Exchange.BaseURL, cfg.Exchange.KlineInterval, cfg.Exchange.KlineLimit)
	col := collector.NewCollector(fetcher, cfg.Exchange.KlineInterval, cfg.Exchange.KlineLimit)

	// Init dedup store
	store := alertlog.NewStore(cfg.AlertLog.Path)
	if err := store.Load(); err != nil {
		log.Printf("[WARN] load alert log, starting empty: %v", err)
	} else {
		log.Printf("[INFO] alert log loaded: %d symbols", store.Len())
	}

	// Init notifier
	var n notifier.Notifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		n = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	} else {
		log.Println("[WARN] telegram not configured, alerts will be logged only")
		n = notifier.NewLogNotifier()
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Metrics registry shared by the scan loop and the liveness server
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Liveness + metrics server
	srv := server.New(cfg.Server.ListenAddr, registry)
	srv.Start()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, store, n, rec, m)
	sched.PairDelay = time.Duration(cfg.Scan.PairDelayMs) * time.Millisecond
	if err := sched.Register(cfg.Scan.Cron); err != nil {
		log.Fatalf("[FATAL] register scan task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	log.Println("[INFO] BreakoutSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Printf("[WARN] liveness server shutdown: %v", err)
	}
	log.Println("[INFO] BreakoutSentinel stopped")
}
