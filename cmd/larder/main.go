package main

import (
	"context"
	"log"
	"log/slog"

	"larder/internal/ai"
	"larder/internal/ai/anthropic"
	"larder/internal/ai/ollama"
	"larder/internal/config"
	"larder/internal/db"
	"larder/internal/logging"
	"larder/internal/ocr"
	"larder/internal/ocr/ocrspace"
	"larder/internal/recipes/mealdb"
	"larder/internal/service"
	"larder/internal/store"
	"larder/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	areaStore := store.NewAreaStore(database)
	itemStore := store.NewItemStore(database)
	dislikeStore := store.NewDislikeStore(database)

	areaService := service.NewAreaService(areaStore, logger)
	if err := areaService.EnsureDefaults(context.Background()); err != nil {
		logger.Error("failed to seed default areas", "error", err)
		return
	}

	generator := newGenerator(cfg, logger)
	extractor := newExtractor(cfg, logger)
	directory := mealdb.New(cfg.MealDBBaseURL)

	itemService := service.NewItemService(itemStore, areaStore, logger)
	scanService := service.NewScanService(extractor, generator, logger)
	recipeService := service.NewRecipeService(itemStore, dislikeStore, generator, directory, logger)

	server := web.NewServer(itemService, areaService, scanService, recipeService, logger)
	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}

func newGenerator(cfg *config.Config, logger *slog.Logger) ai.Generator {
	switch cfg.AIBackend {
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			logger.Warn("CLAUDE_API_KEY is empty, text generation disabled")
			return ai.Disabled{}
		}
		logger.Info("using Claude text backend", "model", cfg.ClaudeModel)
		return anthropic.New(cfg.ClaudeAPIKey, cfg.ClaudeModel)
	case "ollama":
		logger.Info("using Ollama text backend", "model", cfg.OllamaModel)
		return ollama.New(cfg.OllamaHost, cfg.OllamaModel)
	default:
		logger.Info("no text generation backend configured")
		return ai.Disabled{}
	}
}

func newExtractor(cfg *config.Config, logger *slog.Logger) ocr.TextExtractor {
	if cfg.OCRAPIKey == "" {
		logger.Info("no OCR backend configured, receipt scanning disabled")
		return ocr.Disabled{}
	}
	logger.Info("using OCR.space text extraction")
	return ocrspace.NewWithURL(cfg.OCRAPIKey, cfg.OCRBaseURL)
}
