package store

import (
	"context"
	"time"

	"github.com/stakemetrics/stakemetrics-server/internal/domain"
)

// PersonStore handles person records. Read methods see only the active
// import generation.
type PersonStore interface {
	// StagePersons inserts person rows under a not-yet-active generation.
	StagePersons(ctx context.Context, generation string, persons []*domain.Person) error

	GetPerson(ctx context.Context, id string) (*domain.Person, error)
	ListPersons(ctx context.Context) ([]*domain.Person, error)

	// ListPersonsByConfirmationRange returns active persons whose
	// confirmation date falls in [from, to], optionally filtered by unit.
	ListPersonsByConfirmationRange(ctx context.Context, from, to time.Time, unit string) ([]*domain.Person, error)

	// UpdatePersonEnrichment persists operator-supplied corrections along
	// with the recomputed normalized fields.
	UpdatePersonEnrichment(ctx context.Context, p *domain.Person) error
}

// ImportStore manages import generations.
type ImportStore interface {
	CreateImport(ctx context.Context, imp *domain.Import) error

	// ActivateImport makes the generation the single active one and purges
	// person rows of superseded generations, all in one transaction.
	ActivateImport(ctx context.Context, generation string) error

	// DiscardImport drops a staged generation and its person rows.
	DiscardImport(ctx context.Context, generation string) error

	GetActiveImport(ctx context.Context) (*domain.Import, error)
}

// PeriodStore handles reporting periods.
type PeriodStore interface {
	CreatePeriod(ctx context.Context, p *domain.Period) error
	GetPeriod(ctx context.Context, id string) (*domain.Period, error)
	GetPeriodByName(ctx context.Context, name string) (*domain.Period, error)
	ListPeriods(ctx context.Context) ([]*domain.Period, error)
}

// DocumentStore records uploaded source files.
type DocumentStore interface {
	CreateDocument(ctx context.Context, d *domain.Document) error
	GetDocument(ctx context.Context, id string) (*domain.Document, error)
	ListDocuments(ctx context.Context) ([]*domain.Document, error)
	UpdateDocumentStatus(ctx context.Context, id string, status domain.DocumentStatus, rowCount int) error
}

// AliasStore persists registered normalization aliases.
type AliasStore interface {
	CreateAlias(ctx context.Context, a *domain.CatalogAlias) error
	ListAliases(ctx context.Context) ([]*domain.CatalogAlias, error)
}

// Store is the full persistence interface.
type Store interface {
	PersonStore
	ImportStore
	PeriodStore
	DocumentStore
	AliasStore

	Close() error
}
