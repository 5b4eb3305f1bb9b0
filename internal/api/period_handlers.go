package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/stakemetrics/stakemetrics-server/internal/domain"
	"github.com/stakemetrics/stakemetrics-server/internal/service"
)

func (s *Server) registerPeriodRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listPeriods",
		Method:      http.MethodGet,
		Path:        "/api/v1/periods",
		Summary:     "List periods",
		Description: "Returns stored reporting periods, optionally filtered by year and type",
		Tags:        []string{"Periods"},
	}, s.handleListPeriods)

	huma.Register(s.api, huma.Operation{
		OperationID: "createPeriod",
		Method:      http.MethodPost,
		Path:        "/api/v1/periods",
		Summary:     "Create period",
		Description: "Stores a custom reporting period",
		Tags:        []string{"Periods"},
	}, s.handleCreatePeriod)

	huma.Register(s.api, huma.Operation{
		OperationID: "seedPeriods",
		Method:      http.MethodPost,
		Path:        "/api/v1/periods/seed",
		Summary:     "Seed year",
		Description: "Creates the standard month, quarter and year periods for one year",
		Tags:        []string{"Periods"},
	}, s.handleSeedPeriods)
}

// === DTOs ===

// PeriodResponse is one reporting period in API responses.
type PeriodResponse struct {
	ID        string    `json:"id" doc:"Period ID"`
	Name      string    `json:"name" doc:"Period name, e.g. 'Enero 2026'"`
	Type      string    `json:"type" doc:"Period type: month, quarter, or year"`
	StartDate time.Time `json:"start_date" doc:"Inclusive start"`
	EndDate   time.Time `json:"end_date" doc:"Inclusive end"`
	Year      int       `json:"year" doc:"Calendar year"`
}

// ListPeriodsInput filters the period list.
type ListPeriodsInput struct {
	Year int    `query:"year" doc:"Restrict to one calendar year"`
	Type string `query:"type" doc:"Restrict to one period type: month, quarter, or year"`
}

// ListPeriodsResponse contains the period list.
type ListPeriodsResponse struct {
	Periods []PeriodResponse `json:"periods" doc:"Stored periods"`
}

// ListPeriodsOutput wraps the period list for Huma.
type ListPeriodsOutput struct {
	Body ListPeriodsResponse
}

// CreatePeriodRequest describes a custom period.
type CreatePeriodRequest struct {
	Name      string    `json:"name" minLength:"1" doc:"Period name"`
	Type      string    `json:"type" enum:"month,quarter,year" doc:"Period type"`
	StartDate time.Time `json:"start_date" doc:"Inclusive start"`
	EndDate   time.Time `json:"end_date" doc:"Inclusive end"`
}

// CreatePeriodInput is the request to store a custom period.
type CreatePeriodInput struct {
	Body CreatePeriodRequest
}

// PeriodOutput wraps one period for Huma.
type PeriodOutput struct {
	Body PeriodResponse
}

// SeedPeriodsRequest names the year to seed.
type SeedPeriodsRequest struct {
	Year int `json:"year" minimum:"2000" maximum:"2200" doc:"Calendar year to seed"`
}

// SeedPeriodsInput is the request to seed a year's periods.
type SeedPeriodsInput struct {
	Body SeedPeriodsRequest
}

// SeedPeriodsResponse reports the seeded periods.
type SeedPeriodsResponse struct {
	Year    int              `json:"year" doc:"Seeded year"`
	Periods []PeriodResponse `json:"periods" doc:"Created periods"`
}

// SeedPeriodsOutput wraps the seed result for Huma.
type SeedPeriodsOutput struct {
	Body SeedPeriodsResponse
}

func mapPeriodResponse(p *domain.Period) PeriodResponse {
	return PeriodResponse{
		ID:        p.ID,
		Name:      p.Name,
		Type:      string(p.Type),
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Year:      p.Year,
	}
}

func mapPeriodResponses(periods []*domain.Period) []PeriodResponse {
	out := make([]PeriodResponse, 0, len(periods))
	for _, p := range periods {
		out = append(out, mapPeriodResponse(p))
	}
	return out
}

func (s *Server) handleListPeriods(ctx context.Context, input *ListPeriodsInput) (*ListPeriodsOutput, error) {
	periods, err := s.services.Period.ListPeriods(ctx, input.Year, domain.PeriodType(input.Type))
	if err != nil {
		return nil, err
	}

	out := &ListPeriodsOutput{}
	out.Body.Periods = mapPeriodResponses(periods)
	return out, nil
}

func (s *Server) handleCreatePeriod(ctx context.Context, input *CreatePeriodInput) (*PeriodOutput, error) {
	p, err := s.services.Period.CreatePeriod(ctx, service.CreatePeriodRequest{
		Name:      input.Body.Name,
		Type:      domain.PeriodType(input.Body.Type),
		StartDate: input.Body.StartDate,
		EndDate:   input.Body.EndDate,
	})
	if err != nil {
		return nil, err
	}
	return &PeriodOutput{Body: mapPeriodResponse(p)}, nil
}

func (s *Server) handleSeedPeriods(ctx context.Context, input *SeedPeriodsInput) (*SeedPeriodsOutput, error) {
	created, err := s.services.Period.SeedYear(ctx, input.Body.Year)
	if err != nil {
		return nil, err
	}

	out := &SeedPeriodsOutput{}
	out.Body.Year = input.Body.Year
	out.Body.Periods = mapPeriodResponses(created)
	return out, nil
}
