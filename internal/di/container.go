// Package di provides dependency injection configuration for the StakeMetrics server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/stakemetrics/stakemetrics-server/internal/catalog"
	"github.com/stakemetrics/stakemetrics-server/internal/config"
	"github.com/stakemetrics/stakemetrics-server/internal/di/providers"
	"github.com/stakemetrics/stakemetrics-server/internal/logger"
	"github.com/stakemetrics/stakemetrics-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideCatalogHolder)

	// Business services
	do.Provide(injector, providers.ProvideImportService)
	do.Provide(injector, providers.ProvidePersonService)
	do.Provide(injector, providers.ProvidePeriodService)
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideKPIService)
	do.Provide(injector, providers.ProvidePortalService)

	// Workers
	do.Provide(injector, providers.ProvideDropWatcher)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once the server is running.
// This triggers lazy initialization of every provider.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*catalog.Holder](injector)

	// Business services
	_ = do.MustInvoke[*service.ImportService](injector)
	_ = do.MustInvoke[*service.PersonService](injector)
	_ = do.MustInvoke[*service.PeriodService](injector)
	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*service.KPIService](injector)
	_ = do.MustInvoke[*service.PortalService](injector)

	// Workers
	_ = do.MustInvoke[*providers.DropWatcherHandle](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
