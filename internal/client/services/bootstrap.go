package services

import (
	"context"

	"github.com/dmitrijs2005/moviedeck/internal/client/repositories/prefs"
	"github.com/dmitrijs2005/moviedeck/internal/logging"
)

// Bootstrap runs the one-time work of a fresh install.
type Bootstrap struct {
	prefs   prefs.Repository
	catalog CatalogService
	log     logging.Logger
}

func NewBootstrap(p prefs.Repository, c CatalogService, log logging.Logger) *Bootstrap {
	return &Bootstrap{prefs: p, catalog: c, log: log.With("module", "bootstrap")}
}

// SeedIfFirstRun seeds the default catalog when the first-run flag is unset
// or true. The flag is cleared only after a successful seed, so a failed
// attempt is retried on the next start.
func (b *Bootstrap) SeedIfFirstRun(ctx context.Context) (bool, error) {
	first, ok, err := b.prefs.GetBool(ctx, prefs.KeyFirstRun)
	if err != nil {
		return false, err
	}
	if ok && !first {
		return false, nil
	}

	seeded, err := b.catalog.SeedDefaultCatalog(ctx)
	if err != nil {
		b.log.Warn(ctx, "default catalog not seeded", "error", err)
		return false, err
	}

	if err := b.prefs.SetBool(ctx, prefs.KeyFirstRun, false); err != nil {
		return seeded, err
	}
	b.log.Info(ctx, "default catalog seeded")
	return seeded, nil
}
