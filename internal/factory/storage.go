package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/MohammedPathariya/NoteNest/internal/config"
	storepkg "github.com/MohammedPathariya/NoteNest/internal/store"
	storemongo "github.com/MohammedPathariya/NoteNest/internal/store/mongo"
	storepg "github.com/MohammedPathariya/NoteNest/internal/store/postgres"
	storesqlite "github.com/MohammedPathariya/NoteNest/internal/store/sqlite"
)

// NewStore opens the store selected by cfg.DBDriver and applies its schema.
// Bootstrap is bounded by BootstrapTimeoutSeconds; the unique and
// referential constraints it creates must exist before the first request.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	bootstrapTimeout := time.Duration(cfg.BootstrapTimeoutSeconds) * time.Second
	if bootstrapTimeout <= 0 {
		bootstrapTimeout = 5 * time.Second
	}
	bctx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
	defer cancel()

	switch cfg.DBDriver {
	case "", "sqlite":
		db, err := storesqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		log.Debug().Str("driver", "sqlite").Str("path", cfg.SQLitePath).Msg("store ready")
		return storesqlite.NewWithDB(db), nil

	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("NOTENEST_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
		db, err := storepg.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := storepg.Bootstrap(bctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("postgres bootstrap: %w", err)
		}
		log.Debug().Str("driver", "postgres").Msg("store bootstrap completed")
		return storepg.NewWithDB(db), nil

	case "mongo":
		db, err := storemongo.Open(bctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("mongo connect: %w", err)
		}
		if err := storemongo.Bootstrap(bctx, db); err != nil {
			_ = db.Client().Disconnect(context.Background())
			return nil, fmt.Errorf("mongo bootstrap: %w", err)
		}
		log.Debug().Str("driver", "mongo").Str("database", cfg.MongoDatabase).Msg("store bootstrap completed")
		return storemongo.NewWithDatabase(db), nil

	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
