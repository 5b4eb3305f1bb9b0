package providers

import (
	"github.com/samber/do/v2"

	"github.com/stakemetrics/stakemetrics-server/internal/catalog"
	"github.com/stakemetrics/stakemetrics-server/internal/config"
	"github.com/stakemetrics/stakemetrics-server/internal/importer"
	"github.com/stakemetrics/stakemetrics-server/internal/indicator"
	"github.com/stakemetrics/stakemetrics-server/internal/logger"
	"github.com/stakemetrics/stakemetrics-server/internal/portal"
	"github.com/stakemetrics/stakemetrics-server/internal/service"
)

// ProvideImportService provides the roster import pipeline.
func ProvideImportService(i do.Injector) (*service.ImportService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	holder := do.MustInvoke[*catalog.Holder](i)

	return service.NewImportService(storeHandle.Store, importer.New(log.Logger), holder, log), nil
}

// ProvidePersonService provides person reads and enrichment.
func ProvidePersonService(i do.Injector) (*service.PersonService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	return service.NewPersonService(storeHandle.Store, log), nil
}

// ProvidePeriodService provides reporting period management.
func ProvidePeriodService(i do.Injector) (*service.PeriodService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	return service.NewPeriodService(storeHandle.Store, log), nil
}

// ProvideCatalogService provides alias management.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	holder := do.MustInvoke[*catalog.Holder](i)

	return service.NewCatalogService(storeHandle.Store, storeHandle.Store, holder, log), nil
}

// ProvideKPIService provides the indicator engine.
func ProvideKPIService(i do.Injector) (*service.KPIService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	registry := indicator.NewRegistry(float64(cfg.Indicator.BaptismAnnualTarget))
	calc := indicator.NewCalculator(storeHandle.Store, registry)
	resolver := indicator.NewResolver(storeHandle.Store)

	return service.NewKPIService(calc, resolver, storeHandle.Store, log), nil
}

// ProvidePortalService provides the membership portal integration. The client
// stays nil when no portal URL is configured.
func ProvidePortalService(i do.Injector) (*service.PortalService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	imports := do.MustInvoke[*service.ImportService](i)

	var client *portal.Client
	if cfg.PortalEnabled() {
		client = portal.New(portal.Config{
			BaseURL: cfg.Portal.BaseURL,
			Token:   cfg.Portal.Token,
			Timeout: cfg.Portal.Timeout,
			RPS:     cfg.Portal.RPS,
		}, log.Logger)
		log.Info("Portal client configured", "base_url", cfg.Portal.BaseURL)
	} else {
		log.Info("Portal integration disabled")
	}

	return service.NewPortalService(client, imports, log), nil
}
