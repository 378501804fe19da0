package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/garyjia/invoice-reconciler/internal/config"
	apihttp "github.com/garyjia/invoice-reconciler/internal/interfaces/http"
	"github.com/garyjia/invoice-reconciler/internal/ledger"
	"github.com/garyjia/invoice-reconciler/internal/reconcile"
	"github.com/garyjia/invoice-reconciler/internal/report"
	"github.com/garyjia/invoice-reconciler/internal/statement"
	"github.com/garyjia/invoice-reconciler/pkg/utils"
)

func main() {
	// Optional .env for local development.
	_ = gotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting invoice reconciliation service",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	extractor := statement.NewPDFExtractor(logger)
	parser := statement.NewRegexParser(logger)
	normalizer := ledger.NewNormalizer(cfg.Reconcile.LedgerHeaderRows, logger)
	reconciler := reconcile.NewReconciler(cfg.Reconcile.AmountTolerance)
	service := reconcile.NewService(extractor, parser, normalizer, reconciler, logger)

	server := apihttp.NewServer(apihttp.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
	}, service, report.NewWriter(), logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("server exited")
}
