package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/billflow-cli/internal/store"
)

// initStore opens the run-history store named by config. Driver "off" returns
// a nil store; callers must treat nil as "no history recording".
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "off":
		return nil, nil
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "billflow.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}
