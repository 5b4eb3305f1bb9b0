// Package service implements the application operations on top of the store,
// the importer and the indicator engine.
package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/stakemetrics/stakemetrics-server/internal/catalog"
	"github.com/stakemetrics/stakemetrics-server/internal/domain"
	"github.com/stakemetrics/stakemetrics-server/internal/errors"
	"github.com/stakemetrics/stakemetrics-server/internal/id"
	"github.com/stakemetrics/stakemetrics-server/internal/importer"
	"github.com/stakemetrics/stakemetrics-server/internal/logger"
	"github.com/stakemetrics/stakemetrics-server/internal/store"
)

// ImportService runs roster imports as atomic generation swaps: rows are
// staged under a fresh generation and only become visible when the whole
// document imported cleanly. A failed import leaves the live data untouched.
type ImportService struct {
	store    store.Store
	importer *importer.Importer
	catalogs *catalog.Holder
	logger   *logger.Logger
}

// NewImportService creates an import service.
func NewImportService(st store.Store, imp *importer.Importer, catalogs *catalog.Holder, log *logger.Logger) *ImportService {
	return &ImportService{
		store:    st,
		importer: imp,
		catalogs: catalogs,
		logger:   log.WithComponent("import-service"),
	}
}

// ImportDocument reads, parses and activates one roster document. The
// returned result carries the imported count plus row-level warnings for
// operator review.
func (s *ImportService) ImportDocument(ctx context.Context, filename string, size int64, r io.Reader) (*domain.ImportResult, error) {
	rows, kind, err := importer.ReadDocument(filename, r)
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		ID:         id.MustGenerate(id.PrefixDocument),
		Filename:   filename,
		Kind:       kind,
		SizeBytes:  size,
		Status:     domain.DocumentStatusProcessing,
		UploadedAt: time.Now(),
	}
	if err := s.store.CreateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	result, err := s.runImport(ctx, doc, rows)
	if err != nil {
		if statusErr := s.store.UpdateDocumentStatus(ctx, doc.ID, domain.DocumentStatusFailed, 0); statusErr != nil {
			s.logger.WithError(statusErr).Error("marking document failed", "document_id", doc.ID)
		}
		return nil, err
	}

	if err := s.store.UpdateDocumentStatus(ctx, doc.ID, domain.DocumentStatusProcessed, len(result.Persons)); err != nil {
		return nil, fmt.Errorf("update document status: %w", err)
	}

	s.logger.Info("import complete",
		"document_id", doc.ID,
		"filename", filename,
		"imported", len(result.Persons),
		"warnings", len(result.Warnings))

	return &domain.ImportResult{
		DocumentID: doc.ID,
		Imported:   len(result.Persons),
		Warnings:   result.Warnings,
		Errors:     []string{},
	}, nil
}

// runImport stages the parsed records under a new generation and flips it
// active. Any failure discards the staged generation.
func (s *ImportService) runImport(ctx context.Context, doc *domain.Document, rows [][]string) (*importer.Result, error) {
	if len(rows) == 0 {
		return nil, errors.Unprocessablef("document %s contains no extractable rows", doc.Filename)
	}

	result := s.importer.Parse(s.catalogs.Current(), rows, nil, doc.ID)

	generation := uuid.NewString()
	imp := &domain.Import{
		ID:         id.MustGenerate(id.PrefixImport),
		DocumentID: doc.ID,
		Generation: generation,
		CreatedAt:  time.Now(),
	}
	if err := s.store.CreateImport(ctx, imp); err != nil {
		return nil, fmt.Errorf("create import generation: %w", err)
	}

	if err := s.store.StagePersons(ctx, generation, result.Persons); err != nil {
		s.discard(ctx, generation)
		return nil, fmt.Errorf("stage persons: %w", err)
	}

	if err := s.store.ActivateImport(ctx, generation); err != nil {
		s.discard(ctx, generation)
		return nil, fmt.Errorf("activate import: %w", err)
	}
	return result, nil
}

func (s *ImportService) discard(ctx context.Context, generation string) {
	if err := s.store.DiscardImport(ctx, generation); err != nil {
		s.logger.WithError(err).Error("discarding staged generation", "generation", generation)
	}
}

// ListDocuments returns all uploaded documents, newest first.
func (s *ImportService) ListDocuments(ctx context.Context) ([]*domain.Document, error) {
	return s.store.ListDocuments(ctx)
}

// GetDocument returns one document by ID.
func (s *ImportService) GetDocument(ctx context.Context, docID string) (*domain.Document, error) {
	return s.store.GetDocument(ctx, docID)
}
