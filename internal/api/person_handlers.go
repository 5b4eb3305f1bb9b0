package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/stakemetrics/stakemetrics-server/internal/domain"
	"github.com/stakemetrics/stakemetrics-server/internal/service"
)

func (s *Server) registerPersonRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listPersons",
		Method:      http.MethodGet,
		Path:        "/api/v1/persons",
		Summary:     "List persons",
		Description: "Returns every person in the active roster import",
		Tags:        []string{"Persons"},
	}, s.handleListPersons)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPerson",
		Method:      http.MethodGet,
		Path:        "/api/v1/persons/{id}",
		Summary:     "Get person",
		Description: "Returns one person by ID",
		Tags:        []string{"Persons"},
	}, s.handleGetPerson)

	huma.Register(s.api, huma.Operation{
		OperationID: "enrichPerson",
		Method:      http.MethodPatch,
		Path:        "/api/v1/persons/{id}",
		Summary:     "Enrich person",
		Description: "Applies operator corrections to one person record",
		Tags:        []string{"Persons"},
	}, s.handleEnrichPerson)
}

// === DTOs ===

// PersonResponse is one person record in API responses.
type PersonResponse struct {
	ID                string     `json:"id" doc:"Person ID"`
	PreferredName     string     `json:"preferred_name" doc:"Name as it appears on the roster"`
	Unit              string     `json:"unit,omitempty" doc:"Ward or branch name"`
	Callings          string     `json:"callings,omitempty" doc:"Callings text from the roster"`
	ConfirmationDate  time.Time  `json:"confirmation_date" doc:"Confirmation date"`
	BirthDate         *time.Time `json:"birth_date,omitempty" doc:"Birth date, if known"`
	Priesthood        string     `json:"priesthood,omitempty" doc:"Normalized priesthood: aaronic, melchizedek, or not_ordained"`
	PriesthoodRaw     string     `json:"priesthood_raw,omitempty" doc:"Priesthood text from the roster"`
	HasRecommendation *bool      `json:"has_recommendation" doc:"Whether the person holds an active recommendation, null when unknown"`
	RecommendationRaw string     `json:"recommendation_raw,omitempty" doc:"Recommendation text from the roster"`
	IsOrdained        bool       `json:"is_ordained" doc:"Whether the person holds the Melchizedek priesthood"`
	Sex               string     `json:"sex,omitempty" doc:"Normalized sex: M or F"`
	AgeAtConfirmation int        `json:"age_at_confirmation" doc:"Age in whole years at confirmation, 0 when unknown"`
	Enriched          bool       `json:"enriched" doc:"Whether an operator has corrected this record"`
	EnrichedBy        string     `json:"enriched_by,omitempty" doc:"Operator who applied the last correction"`
	EnrichedAt        *time.Time `json:"enriched_at,omitempty" doc:"Time of the last correction"`
	Notes             string     `json:"notes,omitempty" doc:"Operator notes"`
}

// ListPersonsResponse contains the person list.
type ListPersonsResponse struct {
	Persons []PersonResponse `json:"persons" doc:"Persons in the active import"`
	Total   int              `json:"total" doc:"Number of persons"`
}

// ListPersonsOutput wraps the person list for Huma.
type ListPersonsOutput struct {
	Body ListPersonsResponse
}

// GetPersonInput identifies one person.
type GetPersonInput struct {
	ID string `path:"id" doc:"Person ID"`
}

// PersonOutput wraps one person for Huma.
type PersonOutput struct {
	Body PersonResponse
}

// EnrichPersonRequest carries operator corrections. Omitted fields are left
// untouched.
type EnrichPersonRequest struct {
	BirthDate  *time.Time `json:"birth_date,omitempty" doc:"Corrected birth date"`
	Sex        *string    `json:"sex,omitempty" enum:"M,F" doc:"Corrected sex marker"`
	Notes      *string    `json:"notes,omitempty" doc:"Operator notes"`
	EnrichedBy string     `json:"enriched_by" minLength:"1" doc:"Operator applying the correction"`
}

// EnrichPersonInput is the request to correct one person.
type EnrichPersonInput struct {
	ID   string `path:"id" doc:"Person ID"`
	Body EnrichPersonRequest
}

func mapPersonResponse(p *domain.Person) PersonResponse {
	return PersonResponse{
		ID:                p.ID,
		PreferredName:     p.PreferredName,
		Unit:              p.Unit,
		Callings:          p.Callings,
		ConfirmationDate:  p.ConfirmationDate,
		BirthDate:         p.BirthDate,
		Priesthood:        string(p.Priesthood),
		PriesthoodRaw:     p.PriesthoodRaw,
		HasRecommendation: p.HasRecommendation,
		RecommendationRaw: p.RecommendationRaw,
		IsOrdained:        p.IsOrdained,
		Sex:               string(p.Sex),
		AgeAtConfirmation: p.AgeAtConfirmation,
		Enriched:          p.Enriched,
		EnrichedBy:        p.EnrichedBy,
		EnrichedAt:        p.EnrichedAt,
		Notes:             p.Notes,
	}
}

func (s *Server) handleListPersons(ctx context.Context, _ *struct{}) (*ListPersonsOutput, error) {
	persons, err := s.services.Person.ListPersons(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListPersonsOutput{}
	out.Body.Persons = make([]PersonResponse, 0, len(persons))
	for _, p := range persons {
		out.Body.Persons = append(out.Body.Persons, mapPersonResponse(p))
	}
	out.Body.Total = len(persons)
	return out, nil
}

func (s *Server) handleGetPerson(ctx context.Context, input *GetPersonInput) (*PersonOutput, error) {
	p, err := s.services.Person.GetPerson(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &PersonOutput{Body: mapPersonResponse(p)}, nil
}

func (s *Server) handleEnrichPerson(ctx context.Context, input *EnrichPersonInput) (*PersonOutput, error) {
	req := service.EnrichmentRequest{
		BirthDate:  input.Body.BirthDate,
		Notes:      input.Body.Notes,
		EnrichedBy: input.Body.EnrichedBy,
	}
	if input.Body.Sex != nil {
		sex := domain.Sex(*input.Body.Sex)
		req.Sex = &sex
	}

	p, err := s.services.Person.EnrichPerson(ctx, input.ID, req)
	if err != nil {
		return nil, err
	}
	return &PersonOutput{Body: mapPersonResponse(p)}, nil
}
