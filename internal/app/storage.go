package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abgdnv/product-api/internal/store"
	"github.com/abgdnv/product-api/internal/store/migrations"
	"github.com/abgdnv/product-api/pkg/bootstrap"
	"github.com/abgdnv/product-api/pkg/config"
)

// SetupStore opens the store selected by the storage driver.
// The returned close function releases the underlying connections.
func SetupStore(ctx context.Context, storageCfg config.StorageConfig, dbCfg config.DatabaseConfig, logger *slog.Logger) (store.ProductStore, func(), error) {
	switch storageCfg.Driver {
	case config.StorageDriverPostgres:
		dbPool, err := bootstrap.NewDbPool(ctx, dbCfg.URL, dbCfg.Timeout)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Successfully connected to the database!")
		if storageCfg.Migrate {
			if err := bootstrap.Migrate(migrations.FS, dbCfg.URL); err != nil {
				dbPool.Close()
				return nil, nil, err
			}
			logger.Info("Database migrations applied")
		}
		return store.NewPgStore(dbPool), dbPool.Close, nil

	case config.StorageDriverSQLite:
		db, err := bootstrap.NewSQLiteDB(storageCfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to access sqlite connection: %w", err)
		}
		closeFn := func() { _ = sqlDB.Close() }
		gormStore := store.NewGormStore(db)
		if storageCfg.Migrate {
			if err := gormStore.Migrate(ctx); err != nil {
				closeFn()
				return nil, nil, err
			}
			logger.Info("SQLite schema migrated", slog.String("path", storageCfg.SQLite.Path))
		}
		return gormStore, closeFn, nil

	case config.StorageDriverMemory:
		logger.Warn("Using in-memory storage, data is lost on restart")
		return store.NewInMemoryStore(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported storage driver: %q", storageCfg.Driver)
	}
}
