package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/ojuto/zendesk-user-reports/config"
	"github.com/ojuto/zendesk-user-reports/internal/application"
	"github.com/ojuto/zendesk-user-reports/internal/infrastructure/zendesk"
	"github.com/ojuto/zendesk-user-reports/pkg/helpers"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)

	primary := zendesk.NewClient(cfg.VI, logger)
	secondary := zendesk.NewClient(cfg.VDE, logger)

	svc := application.NewReportService(primary, secondary, logger)
	if err := svc.Run(context.Background(), cfg.OutputFile); err != nil {
		logger.Fatalf("report generation failed: %v", err)
	}
}
