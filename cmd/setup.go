package cmd

import (
	"fmt"

	"craftdex/core/config"
	"craftdex/core/database"
	"craftdex/core/logger"
	"craftdex/core/storage"
	"craftdex/feature/catalog"
	"craftdex/feature/transfer"

	"go.uber.org/zap"
)

// buildTransferService wires config, logger, database, and storage into a
// ready transfer service for the CLI commands.
func buildTransferService() (*transfer.Service, *config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if missing := database.MissingTables(db, catalog.Tables()); len(missing) > 0 {
		l.Info("Migrating schema", zap.Strings("missing_tables", missing))
		if err := catalog.Migrate(db); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	svc := transfer.NewService(catalog.NewStore(db), cfg.Transfer, l)

	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		svc.EnableBackups(client, cfg.Storage.Bucket)
	}

	return svc, cfg, l, nil
}
