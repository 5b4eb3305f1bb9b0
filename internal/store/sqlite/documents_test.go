package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakemetrics/stakemetrics-server/internal/domain"
	"github.com/stakemetrics/stakemetrics-server/internal/id"
	"github.com/stakemetrics/stakemetrics-server/internal/store"
)

func TestDocumentLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	d := &domain.Document{
		ID:         id.MustGenerate(id.PrefixDocument),
		Filename:   "conversos_agosto.csv",
		Kind:       domain.DocumentCSV,
		SizeBytes:  2048,
		Status:     domain.DocumentStatusProcessing,
		UploadedAt: time.Now(),
	}
	require.NoError(t, s.CreateDocument(ctx, d))

	got, err := s.GetDocument(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "conversos_agosto.csv", got.Filename)
	assert.Equal(t, domain.DocumentCSV, got.Kind)
	assert.Equal(t, domain.DocumentStatusProcessing, got.Status)
	assert.Equal(t, int64(2048), got.SizeBytes)

	require.NoError(t, s.UpdateDocumentStatus(ctx, d.ID, domain.DocumentStatusProcessed, 42))

	got, err = s.GetDocument(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentStatusProcessed, got.Status)
	assert.Equal(t, 42, got.RowCount)
}

func TestGetDocument_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetDocument(context.Background(), "doc-missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = s.UpdateDocumentStatus(context.Background(), "doc-missing", domain.DocumentStatusFailed, 0)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListDocuments_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	older := &domain.Document{
		ID:         id.MustGenerate(id.PrefixDocument),
		Filename:   "julio.xlsx",
		Kind:       domain.DocumentXLSX,
		Status:     domain.DocumentStatusProcessed,
		UploadedAt: time.Now().Add(-time.Hour),
	}
	newer := &domain.Document{
		ID:         id.MustGenerate(id.PrefixDocument),
		Filename:   "agosto.xlsx",
		Kind:       domain.DocumentXLSX,
		Status:     domain.DocumentStatusProcessing,
		UploadedAt: time.Now(),
	}
	require.NoError(t, s.CreateDocument(ctx, older))
	require.NoError(t, s.CreateDocument(ctx, newer))

	got, err := s.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "agosto.xlsx", got[0].Filename)
	assert.Equal(t, "julio.xlsx", got[1].Filename)
}
