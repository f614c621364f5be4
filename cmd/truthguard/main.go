package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/truthguard-ai/truthguard/internal/cache"
	"github.com/truthguard-ai/truthguard/internal/classifier"
	"github.com/truthguard-ai/truthguard/internal/config"
	"github.com/truthguard-ai/truthguard/internal/detector"
	"github.com/truthguard-ai/truthguard/internal/logger"
	"github.com/truthguard-ai/truthguard/internal/metrics"
	"github.com/truthguard-ai/truthguard/internal/salience"
	"github.com/truthguard-ai/truthguard/internal/server"
	"github.com/truthguard-ai/truthguard/internal/sources"
	"github.com/truthguard-ai/truthguard/internal/textstats"
)

func main() {
	addrFlag := flag.String("addr", "", "HTTP listen address (overrides config)")
	configPath := flag.String("config", "truthguard.yaml", "Path to TruthGuard config file")
	flag.Parse()

	logger.Init()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Log.Fatalf("failed to load config: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		logger.Log.Fatalf("invalid config: %v", err)
	}

	addr := cfg.Server.Addr
	if *addrFlag != "" {
		addr = *addrFlag
	}

	// The process stays up without a model so /health can report
	// model_loaded:false; detection endpoints refuse to serve.
	var model *classifier.Model
	model, err = classifier.Load(cfg.Model.BundleDir, cfg.Model.SeqLen)
	if err != nil {
		logger.Log.Errorf("failed to load classifier model: %v", err)
		model = nil
	} else {
		defer model.Close()
		logger.Log.Info("Model loaded successfully")
	}

	detectionCache := buildCache(cfg)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := detectionCache.Close(ctx); err != nil {
			logger.Log.Warnf("cache close: %v", err)
		}
	}()

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	providers := []sources.Provider{sources.NewCatalogProvider()}
	if cfg.Sources.ScrapeEnabled {
		providers = append(providers, sources.NewScrapeProvider(
			"snopes",
			"https://www.snopes.com/search/?q=%s",
			"article a",
			88,
			&http.Client{Timeout: time.Duration(cfg.Sources.TimeoutSeconds) * time.Second},
		))
	}

	det := detector.New(
		model,
		salience.HashScorer{},
		textstats.NewAnalyzer(cfg.Lexicon.Sensational, cfg.Lexicon.Emotional),
		sources.NewAggregator(providers...),
		detectionCache,
		m,
		time.Duration(cfg.Sources.TimeoutSeconds)*time.Second,
	)

	srv := server.New(det, m, registry, model != nil)

	go func() {
		logger.Log.Infof("Starting TruthGuard on %s...", addr)
		if err := srv.Start(addr); err != nil {
			logger.Log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Log.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Errorf("shutdown error: %v", err)
	}
}

// buildCache returns the configured Mongo cache, degrading to no-op
// caching when the backend is absent or unreachable. Detection never
// fails because caching is down.
func buildCache(cfg *config.Config) cache.Cache {
	if cfg.Cache.URI == "" {
		logger.Log.Warn("No cache configured, caching disabled")
		return cache.Noop{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := cache.NewMongo(ctx, cfg.Cache.URI, cfg.Cache.Database, cfg.Cache.Collection,
		time.Duration(cfg.Cache.TTLHours)*time.Hour)
	if err != nil {
		logger.Log.Warnf("Cache not available, caching disabled: %v", err)
		return cache.Noop{}
	}
	return c
}
