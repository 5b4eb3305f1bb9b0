package service

import (
	"context"
	"fmt"
	"time"

	"github.com/stakemetrics/stakemetrics-server/internal/domain"
	"github.com/stakemetrics/stakemetrics-server/internal/logger"
	"github.com/stakemetrics/stakemetrics-server/internal/normalize"
	"github.com/stakemetrics/stakemetrics-server/internal/store"
)

// PersonService reads and enriches imported person records.
type PersonService struct {
	store  store.PersonStore
	logger *logger.Logger
}

// NewPersonService creates a person service.
func NewPersonService(st store.PersonStore, log *logger.Logger) *PersonService {
	return &PersonService{
		store:  st,
		logger: log.WithComponent("person-service"),
	}
}

// EnrichmentRequest carries operator corrections for one record. Nil fields
// are left untouched.
type EnrichmentRequest struct {
	BirthDate  *time.Time
	Sex        *domain.Sex
	Notes      *string
	EnrichedBy string
}

// ListPersons returns every person in the active import generation.
func (s *PersonService) ListPersons(ctx context.Context) ([]*domain.Person, error) {
	return s.store.ListPersons(ctx)
}

// GetPerson returns one person by ID.
func (s *PersonService) GetPerson(ctx context.Context, personID string) (*domain.Person, error) {
	return s.store.GetPerson(ctx, personID)
}

// EnrichPerson applies operator corrections and recomputes the derived
// fields they affect: a corrected birth date updates the age at
// confirmation, and an explicit sex always overrides the inferred one.
func (s *PersonService) EnrichPerson(ctx context.Context, personID string, req EnrichmentRequest) (*domain.Person, error) {
	p, err := s.store.GetPerson(ctx, personID)
	if err != nil {
		return nil, err
	}

	if req.BirthDate != nil {
		p.BirthDate = req.BirthDate
		if age, ok := normalize.Age(*req.BirthDate, p.ConfirmationDate); ok {
			p.AgeAtConfirmation = age
		}
	}
	if req.Sex != nil {
		p.Sex = *req.Sex
	}
	if req.Notes != nil {
		p.Notes = *req.Notes
	}

	now := time.Now()
	p.Enriched = true
	p.EnrichedBy = req.EnrichedBy
	p.EnrichedAt = &now

	if err := s.store.UpdatePersonEnrichment(ctx, p); err != nil {
		return nil, fmt.Errorf("update person: %w", err)
	}

	s.logger.Info("person enriched", "person_id", personID, "by", req.EnrichedBy)
	return p, nil
}
