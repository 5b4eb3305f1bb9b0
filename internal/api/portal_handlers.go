package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/stakemetrics/stakemetrics-server/internal/domain"
	"github.com/stakemetrics/stakemetrics-server/internal/portal"
)

func (s *Server) registerPortalRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "syncPortalRecommendations",
		Method:      http.MethodPost,
		Path:        "/api/v1/portal/sync",
		Summary:     "Sync recommendations",
		Description: "Pulls the portal's recommendation-list export and imports it, replacing the active data set",
		Tags:        []string{"Portal"},
	}, s.handlePortalSync)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPortalAttendance",
		Method:      http.MethodGet,
		Path:        "/api/v1/portal/attendance",
		Summary:     "Unit attendance",
		Description: "Fetches one unit's sacrament attendance figures for a month",
		Tags:        []string{"Portal"},
	}, s.handlePortalAttendance)
}

// === DTOs ===

// PortalSyncRequest optionally scopes the sync to one unit.
type PortalSyncRequest struct {
	Unit string `json:"unit,omitempty" doc:"Restrict the export to one ward or branch"`
}

// PortalSyncInput is the request to sync from the portal.
type PortalSyncInput struct {
	Body PortalSyncRequest
}

// PortalSyncOutput wraps the import result for Huma.
type PortalSyncOutput struct {
	Body domain.ImportResult
}

// AttendanceInput selects one unit and month.
type AttendanceInput struct {
	Unit  string `query:"unit" required:"true" doc:"Ward or branch name"`
	Year  int    `query:"year" required:"true" minimum:"2000" maximum:"2200" doc:"Calendar year"`
	Month int    `query:"month" required:"true" minimum:"1" maximum:"12" doc:"Calendar month"`
}

// AttendanceOutput wraps the attendance report for Huma.
type AttendanceOutput struct {
	Body portal.AttendanceReport
}

func (s *Server) handlePortalSync(ctx context.Context, input *PortalSyncInput) (*PortalSyncOutput, error) {
	result, err := s.services.Portal.SyncRecommendations(ctx, input.Body.Unit)
	if err != nil {
		return nil, err
	}
	return &PortalSyncOutput{Body: *result}, nil
}

func (s *Server) handlePortalAttendance(ctx context.Context, input *AttendanceInput) (*AttendanceOutput, error) {
	report, err := s.services.Portal.GetAttendance(ctx, input.Unit, input.Year, time.Month(input.Month))
	if err != nil {
		return nil, err
	}
	return &AttendanceOutput{Body: *report}, nil
}
