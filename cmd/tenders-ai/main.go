package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tenders-ai/internal/app"
	"tenders-ai/internal/catalog"
	"tenders-ai/internal/repository"
	"tenders-ai/internal/service"
	"tenders-ai/internal/storage"
	"tenders-ai/pkg/config"
	"tenders-ai/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	searchID := flag.String("search-id", "", "saved-search id to load at startup (deep link)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Tenders.AI session")

	ctx := context.Background()

	// Open the local key-value store
	store, err := storage.Open(ctx, &cfg.Storage, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open store", zap.Error(err))
	}
	defer store.Close()

	// Load the tender catalog once; a failed load is fatal to the session.
	loader := catalog.NewLoader(&cfg.Catalog, appLogger)
	tenders, err := loader.Load(ctx)
	if err != nil {
		appLogger.Error(catalog.LoadErrorMessage, zap.Error(err))
		os.Exit(1)
	}

	// Initialize repositories
	ledgerRepo := repository.NewLedgerRepository(store, appLogger)
	savedSearchRepo := repository.NewSavedSearchRepository(store, appLogger)
	conversationRepo := repository.NewConversationRepository(store, appLogger)
	profileRepo := repository.NewProfileRepository(store, appLogger)
	uiRepo := repository.NewUIStateRepository(store, appLogger)

	// Initialize services
	ledgerService, err := service.NewLedgerService(ctx, ledgerRepo, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize ledgers", zap.Error(err))
	}

	searchService, err := service.NewSearchService(ctx, tenders, ledgerService, uiRepo, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize search", zap.Error(err))
	}

	savedSearchService, err := service.NewSavedSearchService(ctx, savedSearchRepo, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize saved searches", zap.Error(err))
	}

	llmService := service.NewLLMService(&cfg.Gemini, appLogger)

	chatService, err := service.NewChatService(ctx, conversationRepo, profileRepo, ledgerService, llmService, tenders, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize chat", zap.Error(err))
	}

	session, err := app.NewSession(ctx, tenders, searchService, ledgerService, savedSearchService, chatService, uiRepo, profileRepo, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize session", zap.Error(err))
	}

	if _, err := session.ConsumeDeepLink(ctx, *searchID); err != nil {
		appLogger.Error("Failed to apply deep link", zap.Error(err))
	}

	results := session.Search.Results()
	appLogger.Info("Session ready",
		zap.String("view", string(session.CurrentView())),
		zap.String("theme", string(session.Theme())),
		zap.Int("tenders", len(tenders)),
		zap.Int("results", results.Summary.Count),
	)

	// The UI shell binds to the session from here on; keep it alive until
	// interrupted.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down session")
}
