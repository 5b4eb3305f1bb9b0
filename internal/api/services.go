package api

import "github.com/stakemetrics/stakemetrics-server/internal/service"

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Import  *service.ImportService
	KPI     *service.KPIService
	Person  *service.PersonService
	Period  *service.PeriodService
	Catalog *service.CatalogService
	Portal  *service.PortalService
}
