package bootstrap

import (
	"context"
	"fmt"

	"recruitment-tracker/internal/config"
	"recruitment-tracker/internal/logger"
	"recruitment-tracker/internal/repository"
	"recruitment-tracker/internal/repository/memory"
	"recruitment-tracker/internal/repository/mongo"
	"recruitment-tracker/internal/repository/postgres"
)

// OpenStore opens the backend named by cfg.Store.Type. The caller owns the
// returned Store and must Close it.
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.Store.Type {
	case config.StoreMongo:
		logger.Info("Connecting to MongoDB...", "database", cfg.Mongo.Database, "collection", cfg.Mongo.Collection)
		store, err := mongo.Open(ctx, mongo.Options{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
			Timeout:    cfg.MongoTimeout(),
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.StorePostgres:
		logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)
		store, err := postgres.Open(ctx, cfg.GetDatabaseConnectionString())
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.StoreMemory:
		logger.Warn("Using in-memory store; records are lost on restart")
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown store type %q", cfg.Store.Type)
	}
}
