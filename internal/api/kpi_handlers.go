package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/stakemetrics/stakemetrics-server/internal/domain"
	"github.com/stakemetrics/stakemetrics-server/internal/service"
)

func (s *Server) registerKPIRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getDashboard",
		Method:      http.MethodGet,
		Path:        "/api/v1/kpis",
		Summary:     "KPI dashboard",
		Description: "Returns the headline numbers of every indicator for one period",
		Tags:        []string{"KPIs"},
	}, s.handleDashboard)

	huma.Register(s.api, huma.Operation{
		OperationID: "getIndicator",
		Method:      http.MethodGet,
		Path:        "/api/v1/kpis/{indicator}",
		Summary:     "Indicator detail",
		Description: "Returns one indicator in full, with a per-unit breakdown for stake-wide queries",
		Tags:        []string{"KPIs"},
	}, s.handleIndicatorDetail)

	huma.Register(s.api, huma.Operation{
		OperationID: "getIndicatorTrend",
		Method:      http.MethodGet,
		Path:        "/api/v1/kpis/{indicator}/trend",
		Summary:     "Indicator trend",
		Description: "Runs one indicator across the stored months of the period's year",
		Tags:        []string{"KPIs"},
	}, s.handleIndicatorTrend)

	huma.Register(s.api, huma.Operation{
		OperationID: "getIndicatorBreakdown",
		Method:      http.MethodGet,
		Path:        "/api/v1/kpis/{indicator}/breakdown",
		Summary:     "Unit breakdown",
		Description: "Ranks units by one indicator for the named period",
		Tags:        []string{"KPIs"},
	}, s.handleIndicatorBreakdown)

	huma.Register(s.api, huma.Operation{
		OperationID: "getIndicatorMissing",
		Method:      http.MethodGet,
		Path:        "/api/v1/kpis/{indicator}/missing",
		Summary:     "Missing records",
		Description: "Lists eligible records that do not yet meet the indicator, for follow-up",
		Tags:        []string{"KPIs"},
	}, s.handleIndicatorMissing)
}

// === DTOs ===

// DashboardInput selects the dashboard period and optional unit scope.
type DashboardInput struct {
	Period string `query:"period" required:"true" doc:"Period name, e.g. 'Enero 2026', 'Q1 2026', or '2026'"`
	Unit   string `query:"unit" doc:"Restrict to one ward or branch"`
}

// DashboardOutput wraps the dashboard for Huma.
type DashboardOutput struct {
	Body service.Dashboard
}

// IndicatorInput selects one indicator, a period, and an optional unit scope.
type IndicatorInput struct {
	Indicator string `path:"indicator" doc:"Indicator key, e.g. convert_baptisms"`
	Period    string `query:"period" required:"true" doc:"Period name"`
	Unit      string `query:"unit" doc:"Restrict to one ward or branch"`
}

// IndicatorDetailResponse is one indicator in full, with the per-unit
// breakdown for stake-wide queries.
type IndicatorDetailResponse struct {
	domain.IndicatorResult
	ByUnit []domain.UnitBreakdown `json:"by_unit" doc:"Per-unit breakdown, empty for unit-scoped queries"`
}

// IndicatorDetailOutput wraps the indicator detail for Huma.
type IndicatorDetailOutput struct {
	Body IndicatorDetailResponse
}

// TrendResponse is the trend series of one indicator.
type TrendResponse struct {
	Indicator string              `json:"indicator" doc:"Indicator key"`
	Points    []domain.TrendPoint `json:"points" doc:"One point per stored month, in date order"`
}

// TrendOutput wraps the trend series for Huma.
type TrendOutput struct {
	Body TrendResponse
}

// BreakdownInput selects one indicator and a period for the unit ranking.
type BreakdownInput struct {
	Indicator string `path:"indicator" doc:"Indicator key"`
	Period    string `query:"period" required:"true" doc:"Period name"`
}

// BreakdownResponse ranks units by one indicator.
type BreakdownResponse struct {
	Indicator string                 `json:"indicator" doc:"Indicator key"`
	ByUnit    []domain.UnitBreakdown `json:"by_unit" doc:"Units ranked by real count"`
}

// BreakdownOutput wraps the unit ranking for Huma.
type BreakdownOutput struct {
	Body BreakdownResponse
}

// MissingResponse lists records needing follow-up for one indicator.
type MissingResponse struct {
	Indicator string                 `json:"indicator" doc:"Indicator key"`
	Missing   []domain.MissingRecord `json:"missing" doc:"Eligible records not yet meeting the indicator"`
}

// MissingOutput wraps the missing list for Huma.
type MissingOutput struct {
	Body MissingResponse
}

func (s *Server) handleDashboard(ctx context.Context, input *DashboardInput) (*DashboardOutput, error) {
	dashboard, err := s.services.KPI.GetDashboard(ctx, input.Period, input.Unit)
	if err != nil {
		return nil, err
	}
	return &DashboardOutput{Body: *dashboard}, nil
}

func (s *Server) handleIndicatorDetail(ctx context.Context, input *IndicatorInput) (*IndicatorDetailOutput, error) {
	detail, err := s.services.KPI.GetDetail(ctx, input.Indicator, input.Period, input.Unit)
	if err != nil {
		return nil, err
	}
	return &IndicatorDetailOutput{Body: IndicatorDetailResponse{
		IndicatorResult: *detail.IndicatorResult,
		ByUnit:          detail.ByUnit,
	}}, nil
}

func (s *Server) handleIndicatorTrend(ctx context.Context, input *IndicatorInput) (*TrendOutput, error) {
	points, err := s.services.KPI.GetTrend(ctx, input.Indicator, input.Period, input.Unit)
	if err != nil {
		return nil, err
	}

	out := &TrendOutput{}
	out.Body.Indicator = input.Indicator
	out.Body.Points = points
	return out, nil
}

func (s *Server) handleIndicatorBreakdown(ctx context.Context, input *BreakdownInput) (*BreakdownOutput, error) {
	byUnit, err := s.services.KPI.GetUnitBreakdown(ctx, input.Indicator, input.Period)
	if err != nil {
		return nil, err
	}

	out := &BreakdownOutput{}
	out.Body.Indicator = input.Indicator
	out.Body.ByUnit = byUnit
	return out, nil
}

func (s *Server) handleIndicatorMissing(ctx context.Context, input *IndicatorInput) (*MissingOutput, error) {
	missing, err := s.services.KPI.GetMissing(ctx, input.Indicator, input.Period, input.Unit)
	if err != nil {
		return nil, err
	}

	out := &MissingOutput{}
	out.Body.Indicator = input.Indicator
	out.Body.Missing = missing
	return out, nil
}
