package catalog

import (
	"context"
	"database/sql"

	"fanclub/internal/common/config"
	"fanclub/internal/common/errors"
)

// Load builds the seed snapshot from the configured source and validates it.
// db is only consulted for the postgres source.
func Load(ctx context.Context, cfg config.CatalogConfig, db *sql.DB, maxTiersPerArtist int) (*Snapshot, error) {
	var (
		snap *Snapshot
		err  error
	)
	switch cfg.Source {
	case "postgres":
		if db == nil {
			return nil, errors.NewCatalogLoadFailedError(cfg.Source, sql.ErrConnDone)
		}
		if cfg.Migrate {
			if err := Migrate(db); err != nil {
				return nil, errors.NewCatalogLoadFailedError(cfg.Source, err)
			}
		}
		snap, err = NewPostgresLoader(db).Load(ctx)
	default:
		snap, err = LoadFixtures(cfg.FixturesPath)
	}
	if err != nil {
		return nil, errors.NewCatalogLoadFailedError(cfg.Source, err)
	}

	if err := snap.Validate(maxTiersPerArtist); err != nil {
		return nil, errors.NewCatalogLoadFailedError(cfg.Source, err)
	}
	return snap, nil
}
