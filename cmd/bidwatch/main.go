package main

import (
	"fmt"
	"os"

	"github.com/provtrack/bidwatch/internal/auth"
	"github.com/provtrack/bidwatch/internal/config"
	"github.com/provtrack/bidwatch/internal/db"
	"github.com/provtrack/bidwatch/internal/excel"
	httphandler "github.com/provtrack/bidwatch/internal/http"
	"github.com/provtrack/bidwatch/internal/http/middleware"
	"github.com/provtrack/bidwatch/internal/logger"
	"github.com/provtrack/bidwatch/internal/pdf"
	"github.com/provtrack/bidwatch/internal/repository"
	"github.com/provtrack/bidwatch/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	contractRepo := repository.NewContractRepository(database)
	engineerRepo := repository.NewEngineerRepository(database)
	statusRepo := repository.NewStatusRepository(database)

	contractService := service.NewContractService(contractRepo, engineerRepo, statusRepo)
	engineerService := service.NewEngineerService(engineerRepo)
	statusService := service.NewStatusService(statusRepo)

	excelGenerator := excel.NewGenerator()
	pdfGenerator, err := pdf.NewGenerator()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init pdf generator")
	}

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(contractService, engineerService, statusService, excelGenerator, pdfGenerator, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, middleware.RequireAdmin(), cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting bidwatch service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
