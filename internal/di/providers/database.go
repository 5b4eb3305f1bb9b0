package providers

import (
	"context"
	"os"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/stakemetrics/stakemetrics-server/internal/catalog"
	"github.com/stakemetrics/stakemetrics-server/internal/config"
	"github.com/stakemetrics/stakemetrics-server/internal/logger"
	"github.com/stakemetrics/stakemetrics-server/internal/service"
	"github.com/stakemetrics/stakemetrics-server/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the SQLite store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if err := os.MkdirAll(cfg.Data.BasePath, 0o755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(cfg.Data.BasePath, "stakemetrics.db")
	db, err := sqlite.Open(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// ProvideCatalogHolder provides the live normalization catalog, primed with
// the built-in aliases and every alias persisted by earlier runs.
func ProvideCatalogHolder(i do.Injector) (*catalog.Holder, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	holder := catalog.NewHolder(catalog.Default())

	// Replay persisted aliases before any import can run.
	replay := service.NewCatalogService(storeHandle.Store, storeHandle.Store, holder, log)
	if err := replay.ReplayAliases(context.Background()); err != nil {
		return nil, err
	}

	return holder, nil
}
