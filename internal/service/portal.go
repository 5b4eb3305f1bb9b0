package service

import (
	"bytes"
	"context"
	"time"

	"github.com/stakemetrics/stakemetrics-server/internal/domain"
	"github.com/stakemetrics/stakemetrics-server/internal/errors"
	"github.com/stakemetrics/stakemetrics-server/internal/logger"
	"github.com/stakemetrics/stakemetrics-server/internal/portal"
)

// PortalService pulls data from the membership portal. The client is nil
// when no portal base URL is configured; every operation then reports the
// integration as unavailable instead of failing obscurely.
type PortalService struct {
	client  *portal.Client
	imports *ImportService
	logger  *logger.Logger
}

// NewPortalService creates a portal service. client may be nil.
func NewPortalService(client *portal.Client, imports *ImportService, log *logger.Logger) *PortalService {
	return &PortalService{
		client:  client,
		imports: imports,
		logger:  log.WithComponent("portal-service"),
	}
}

// Enabled reports whether a portal client is configured.
func (s *PortalService) Enabled() bool { return s.client != nil }

// SyncRecommendations pulls the current recommendation-list export and runs
// it through the import pipeline, replacing the active data set.
func (s *PortalService) SyncRecommendations(ctx context.Context, unit string) (*domain.ImportResult, error) {
	if s.client == nil {
		return nil, errors.Validation("portal integration is not configured")
	}

	export, err := s.client.RecommendationList(ctx, unit)
	if err != nil {
		return nil, err
	}

	result, err := s.imports.ImportDocument(ctx, export.Filename, int64(len(export.Data)), bytes.NewReader(export.Data))
	if err != nil {
		return nil, err
	}

	s.logger.Info("portal sync complete", "unit", unit, "imported", result.Imported)
	return result, nil
}

// GetAttendance fetches one unit's attendance figures for a month.
func (s *PortalService) GetAttendance(ctx context.Context, unit string, year int, month time.Month) (*portal.AttendanceReport, error) {
	if s.client == nil {
		return nil, errors.Validation("portal integration is not configured")
	}
	return s.client.Attendance(ctx, unit, year, month)
}
