package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"ailurus/internal/config"
	"ailurus/internal/repository/postgres"
	"ailurus/internal/seed"
	serviceDocs "ailurus/internal/service/docs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed data")
	clearData := flag.Bool("clear-data", false, "Clear all rows (keep schema)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("BLOCKED: cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log.Printf("Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")

	if *schemaOnly {
		log.Println("Schema setup complete (schema-only mode)")
		return
	}

	if *clearData {
		log.Println("Clearing existing data...")
		if err := clearAllData(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("Data cleared")
		return
	}

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
	docService := serviceDocs.NewDocumentService(docRepo, categoryRepo, folderRepo, pathResolver, logger)
	categoryService := serviceDocs.NewCategoryService(categoryRepo, docRepo, logger)

	fixture, err := seed.LoadFixture()
	if err != nil {
		log.Fatalf("Failed to load fixture: %v", err)
	}

	seeder := seed.NewSeeder(docService, categoryService, logger)
	if err := seeder.Run(ctx, fixture); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	createCategories := `
		CREATE TABLE IF NOT EXISTS ` + tables.Categories + ` (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			icon TEXT NOT NULL,
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createCategories); err != nil {
		return err
	}

	createFolders := `
		CREATE TABLE IF NOT EXISTS ` + tables.Folders + ` (
			id BIGSERIAL PRIMARY KEY,
			parent_id BIGINT REFERENCES ` + tables.Folders + `(id),
			name TEXT NOT NULL,
			type TEXT NOT NULL CHECK (type IN ('FOLDER', 'FILE')),
			path TEXT NOT NULL UNIQUE,
			sort_order INTEGER NOT NULL DEFAULT 0,
			icon TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createFolders); err != nil {
		return err
	}

	createDocuments := `
		CREATE TABLE IF NOT EXISTS ` + tables.Documents + ` (
			id BIGSERIAL PRIMARY KEY,
			slug TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			excerpt TEXT,
			content TEXT NOT NULL,
			status TEXT NOT NULL CHECK (status IN ('DRAFT', 'PUBLISHED', 'ARCHIVED')),
			category_id TEXT NOT NULL REFERENCES ` + tables.Categories + `(id),
			subcategory TEXT,
			path TEXT NOT NULL,
			created_by TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createDocuments); err != nil {
		return err
	}

	createFolderDocuments := `
		CREATE TABLE IF NOT EXISTS ` + tables.FolderDocuments + ` (
			folder_id BIGINT NOT NULL REFERENCES ` + tables.Folders + `(id),
			document_id BIGINT NOT NULL REFERENCES ` + tables.Documents + `(id),
			sort_order INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (folder_id, document_id)
		)
	`
	if _, err := pool.Exec(ctx, createFolderDocuments); err != nil {
		return err
	}

	createFolderCategories := `
		CREATE TABLE IF NOT EXISTS ` + tables.FolderCategories + ` (
			folder_id BIGINT NOT NULL REFERENCES ` + tables.Folders + `(id),
			category_id TEXT NOT NULL REFERENCES ` + tables.Categories + `(id),
			PRIMARY KEY (folder_id, category_id)
		)
	`
	if _, err := pool.Exec(ctx, createFolderCategories); err != nil {
		return err
	}

	// Create indexes
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `folders_parent ON ` + tables.Folders + `(parent_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `documents_category ON ` + tables.Documents + `(category_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `documents_status ON ` + tables.Documents + `(status)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `documents_fts ON ` + tables.Documents +
			` USING GIN (to_tsvector('simple', title || ' ' || content))`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse order (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.FolderDocuments,
		tables.FolderCategories,
		tables.Documents,
		tables.Folders,
		tables.Categories,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  dropped %s", table)
	}

	return nil
}

// clearAllData clears rows in dependency order, keeping the schema
func clearAllData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.FolderDocuments,
		tables.FolderCategories,
		tables.Documents,
		tables.Folders,
		tables.Categories,
	}

	for _, table := range tableNames {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
