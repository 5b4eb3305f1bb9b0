package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/stakemetrics/stakemetrics-server/internal/catalog"
	"github.com/stakemetrics/stakemetrics-server/internal/domain"
	"github.com/stakemetrics/stakemetrics-server/internal/service"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listAliases",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/aliases",
		Summary:     "List aliases",
		Description: "Returns registered normalization aliases in registration order",
		Tags:        []string{"Catalog"},
	}, s.handleListAliases)

	huma.Register(s.api, huma.Operation{
		OperationID: "registerAlias",
		Method:      http.MethodPost,
		Path:        "/api/v1/catalog/aliases",
		Summary:     "Register alias",
		Description: "Maps a raw roster value onto a canonical category for future imports",
		Tags:        []string{"Catalog"},
	}, s.handleRegisterAlias)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUnrecognizedValues",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/unrecognized",
		Summary:     "Unrecognized values",
		Description: "Counts raw values in the active roster that no alias resolves",
		Tags:        []string{"Catalog"},
	}, s.handleUnrecognizedValues)
}

// === DTOs ===

// AliasResponse is one registered alias in API responses.
type AliasResponse struct {
	ID        string    `json:"id" doc:"Alias ID"`
	Field     string    `json:"field" doc:"Normalized field: recommendation or priesthood"`
	Raw       string    `json:"raw" doc:"Raw roster text the alias matches"`
	Category  string    `json:"category" doc:"Canonical category the alias maps to"`
	CreatedAt time.Time `json:"created_at" doc:"Registration time"`
}

// ListAliasesResponse contains the alias list.
type ListAliasesResponse struct {
	Aliases []AliasResponse `json:"aliases" doc:"Registered aliases, oldest first"`
}

// ListAliasesOutput wraps the alias list for Huma.
type ListAliasesOutput struct {
	Body ListAliasesResponse
}

// RegisterAliasRequest maps one raw value onto a category.
type RegisterAliasRequest struct {
	Field    string `json:"field" enum:"recommendation,priesthood" doc:"Field the alias applies to"`
	Raw      string `json:"raw" minLength:"1" doc:"Raw roster text"`
	Category string `json:"category" minLength:"1" doc:"Canonical category, e.g. active, melchizedek"`
}

// RegisterAliasInput is the request to register an alias.
type RegisterAliasInput struct {
	Body RegisterAliasRequest
}

// AliasOutput wraps one alias for Huma.
type AliasOutput struct {
	Body AliasResponse
}

// UnrecognizedOutput wraps the unrecognized-value report for Huma.
type UnrecognizedOutput struct {
	Body service.UnrecognizedReport
}

func mapAliasResponse(a *domain.CatalogAlias) AliasResponse {
	return AliasResponse{
		ID:        a.ID,
		Field:     a.Field,
		Raw:       a.Raw,
		Category:  a.Category,
		CreatedAt: a.CreatedAt,
	}
}

func (s *Server) handleListAliases(ctx context.Context, _ *struct{}) (*ListAliasesOutput, error) {
	aliases, err := s.services.Catalog.ListAliases(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListAliasesOutput{}
	out.Body.Aliases = make([]AliasResponse, 0, len(aliases))
	for _, a := range aliases {
		out.Body.Aliases = append(out.Body.Aliases, mapAliasResponse(a))
	}
	return out, nil
}

func (s *Server) handleRegisterAlias(ctx context.Context, input *RegisterAliasInput) (*AliasOutput, error) {
	a, err := s.services.Catalog.RegisterAlias(ctx, catalog.Field(input.Body.Field), input.Body.Raw, input.Body.Category)
	if err != nil {
		return nil, err
	}
	return &AliasOutput{Body: mapAliasResponse(a)}, nil
}

func (s *Server) handleUnrecognizedValues(ctx context.Context, _ *struct{}) (*UnrecognizedOutput, error) {
	report, err := s.services.Catalog.UnrecognizedValues(ctx)
	if err != nil {
		return nil, err
	}
	return &UnrecognizedOutput{Body: *report}, nil
}
