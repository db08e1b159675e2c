package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"ailurus/internal/config"
	"ailurus/internal/handler"
	"ailurus/internal/middleware"
	"ailurus/internal/repository/postgres"
	serviceDocs "ailurus/internal/service/docs"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	docRepo := postgres.NewDocumentRepository(repoConfig)
	categoryRepo := postgres.NewCategoryRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Create services
	pathResolver := serviceDocs.NewPathResolver(folderRepo, txManager, logger)
	treeService := serviceDocs.NewTreeService(folderRepo, logger)
	folderService := serviceDocs.NewFolderService(folderRepo, txManager, logger)
	docService := serviceDocs.NewDocumentService(docRepo, categoryRepo, folderRepo, pathResolver, logger)
	categoryService := serviceDocs.NewCategoryService(categoryRepo, docRepo, logger)

	// Create handlers
	treeHandler := handler.NewTreeHandler(treeService, logger)
	folderHandler := handler.NewFolderHandler(folderService, logger)
	docHandler := handler.NewDocumentHandler(docService, logger)
	categoryHandler := handler.NewCategoryHandler(categoryService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", docHandler.HealthCheck)

	// Folder tree routes. Specific literal segments take precedence over the
	// trailing {path...} wildcard.
	mux.HandleFunc("GET /folders", treeHandler.GetTree)
	mux.HandleFunc("GET /folders/{path...}", treeHandler.GetSubtree)
	mux.HandleFunc("GET /folders/{id}/delete-preview", folderHandler.PreviewDelete)
	mux.HandleFunc("POST /folders", folderHandler.CreateFolder)
	mux.HandleFunc("PUT /folders/{id}", folderHandler.UpdateFolder)
	mux.HandleFunc("DELETE /folders/{id}", folderHandler.DeleteFolder)
	mux.HandleFunc("DELETE /folders/{id}/recursive", folderHandler.DeleteRecursive)

	// Document routes
	mux.HandleFunc("POST /docs", docHandler.CreateDocument)
	mux.HandleFunc("GET /docs", docHandler.ListDocuments)
	mux.HandleFunc("GET /docs/orphans/list", docHandler.ListOrphans) // Must come before {slug} route
	mux.HandleFunc("GET /docs/{slug}", docHandler.GetDocument)
	mux.HandleFunc("PUT /docs/{id}/draft", docHandler.UpdateDraft)
	mux.HandleFunc("PUT /docs/{id}/publish", docHandler.Publish)
	mux.HandleFunc("DELETE /docs/{id}", docHandler.Archive)
	mux.HandleFunc("POST /docs/{id}/folders/{folderId}", docHandler.AddToFolder)
	mux.HandleFunc("DELETE /docs/{id}/folders/{folderId}", docHandler.RemoveFromFolder)

	// Category routes
	mux.HandleFunc("GET /categories", categoryHandler.ListCategories)
	mux.HandleFunc("GET /categories/{id}", categoryHandler.GetCategory)
	mux.HandleFunc("POST /categories", categoryHandler.CreateCategory)
	mux.HandleFunc("PUT /categories/{id}", categoryHandler.UpdateCategory)
	mux.HandleFunc("DELETE /categories/{id}", categoryHandler.DeleteCategory)

	// Search
	mux.HandleFunc("GET /search", docHandler.Search)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → RequestID → Routes
	root = middleware.RequestID(logger)(root)
	root = middleware.Recovery(logger)(root)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
