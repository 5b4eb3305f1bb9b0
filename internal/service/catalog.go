package service

import (
	"context"
	"fmt"
	"time"

	"github.com/stakemetrics/stakemetrics-server/internal/catalog"
	"github.com/stakemetrics/stakemetrics-server/internal/domain"
	"github.com/stakemetrics/stakemetrics-server/internal/errors"
	"github.com/stakemetrics/stakemetrics-server/internal/id"
	"github.com/stakemetrics/stakemetrics-server/internal/logger"
	"github.com/stakemetrics/stakemetrics-server/internal/store"
)

// CatalogService manages the normalization alias tables. Aliases are
// persisted and also registered on the live catalog, so new imports pick
// them up immediately while a restart replays them from storage.
type CatalogService struct {
	aliases store.AliasStore
	persons store.PersonStore
	holder  *catalog.Holder
	logger  *logger.Logger
}

// NewCatalogService creates a catalog service.
func NewCatalogService(aliases store.AliasStore, persons store.PersonStore, holder *catalog.Holder, log *logger.Logger) *CatalogService {
	return &CatalogService{
		aliases: aliases,
		persons: persons,
		holder:  holder,
		logger:  log.WithComponent("catalog-service"),
	}
}

// RegisterAlias validates the alias against the live catalog, persists it
// and publishes the updated catalog. Validation runs first so an invalid
// category never reaches storage.
func (s *CatalogService) RegisterAlias(ctx context.Context, field catalog.Field, raw, category string) (*domain.CatalogAlias, error) {
	if _, err := s.holder.Current().WithAlias(field, raw, category); err != nil {
		return nil, errors.Validation(err.Error())
	}

	a := &domain.CatalogAlias{
		ID:        id.MustGenerate(id.PrefixAlias),
		Field:     string(field),
		Raw:       catalog.Clean(raw),
		Category:  category,
		CreatedAt: time.Now(),
	}
	if err := s.aliases.CreateAlias(ctx, a); err != nil {
		return nil, err
	}

	if _, err := s.holder.Register(field, raw, category); err != nil {
		return nil, fmt.Errorf("publish alias: %w", err)
	}

	s.logger.Info("alias registered", "field", field, "raw", a.Raw, "category", category)
	return a, nil
}

// ListAliases returns the persisted aliases in registration order.
func (s *CatalogService) ListAliases(ctx context.Context) ([]*domain.CatalogAlias, error) {
	return s.aliases.ListAliases(ctx)
}

// ReplayAliases registers every persisted alias on the live catalog. Called
// once at boot, before the first import runs.
func (s *CatalogService) ReplayAliases(ctx context.Context) error {
	stored, err := s.aliases.ListAliases(ctx)
	if err != nil {
		return fmt.Errorf("list aliases: %w", err)
	}

	for _, a := range stored {
		if _, err := s.holder.Register(catalog.Field(a.Field), a.Raw, a.Category); err != nil {
			return fmt.Errorf("replay alias %q: %w", a.Raw, err)
		}
	}

	if len(stored) > 0 {
		s.logger.Info("replayed aliases", "count", len(stored))
	}
	return nil
}

// UnrecognizedReport counts raw values in the active data set that no alias
// resolves, so an operator can see what to register next.
type UnrecognizedReport struct {
	Recommendation map[string]int `json:"recommendation"`
	Priesthood     map[string]int `json:"priesthood"`
}

// UnrecognizedValues scans the active persons for raw recommendation and
// priesthood values that fail catalog lookup, with occurrence counts.
func (s *CatalogService) UnrecognizedValues(ctx context.Context) (*UnrecognizedReport, error) {
	persons, err := s.persons.ListPersons(ctx)
	if err != nil {
		return nil, err
	}

	cat := s.holder.Current()
	report := &UnrecognizedReport{
		Recommendation: map[string]int{},
		Priesthood:     map[string]int{},
	}
	for _, p := range persons {
		if p.RecommendationRaw != "" && !cat.IsPlaceholder(p.RecommendationRaw) {
			if _, ok := cat.RecommendationFor(p.RecommendationRaw); !ok {
				report.Recommendation[p.RecommendationRaw]++
			}
		}
		if p.PriesthoodRaw != "" && !cat.IsPlaceholder(p.PriesthoodRaw) {
			if _, ok := cat.PriesthoodFor(p.PriesthoodRaw); !ok {
				report.Priesthood[p.PriesthoodRaw]++
			}
		}
	}
	return report, nil
}
