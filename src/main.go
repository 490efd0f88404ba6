package main

import (
	"context"
	"log"
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"go.uber.org/zap"

	"github.com/gateway3b/aoc2023/internal/config"
	"github.com/gateway3b/aoc2023/internal/days"
	"github.com/gateway3b/aoc2023/internal/httpfn"
	"github.com/gateway3b/aoc2023/internal/logging"
	"github.com/gateway3b/aoc2023/internal/results"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(os.Getenv("AOC_CONFIG"))
	if err != nil {
		log.Fatalf("config.Load: %v\n", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v\n", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("logging.New: %v\n", err)
	}
	defer logger.Sync()

	recorder, err := results.Open(ctx, cfg.Results)
	if err != nil {
		logger.Fatal("failed to open results store", zap.String("backend", cfg.Results.Backend), zap.Error(err))
	}
	defer recorder.Close()

	handler := httpfn.NewHandler(httpfn.HandlerParams{
		Registry:     days.Default(logger, cfg.Workers),
		Recorder:     recorder,
		Logger:       logger,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	})
	funcframework.RegisterHTTPFunction("/solve", handler.ServeHTTP)

	hostname := ""
	if cfg.Server.LocalOnly {
		hostname = "127.0.0.1"
	}
	logger.Info("listening", zap.String("host", hostname), zap.String("port", cfg.Server.Port))
	if err := funcframework.StartHostPort(hostname, cfg.Server.Port); err != nil {
		logger.Fatal("funcframework.StartHostPort", zap.Error(err))
	}
}
