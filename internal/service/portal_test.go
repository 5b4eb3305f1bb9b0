package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakemetrics/stakemetrics-server/internal/errors"
	"github.com/stakemetrics/stakemetrics-server/internal/importer"
	"github.com/stakemetrics/stakemetrics-server/internal/portal"
)

func TestSyncRecommendations_ImportsExport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/recommendations/export", r.URL.Path)
		_, _ = w.Write([]byte(rosterCSV))
	}))
	t.Cleanup(srv.Close)

	st := newTestStore(t)
	log := newTestLogger()
	imports := NewImportService(st, importer.New(log.Logger), newTestCatalogHolder(), log)
	client := portal.New(portal.Config{BaseURL: srv.URL, RPS: 100}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc := NewPortalService(client, imports, log)

	require.True(t, svc.Enabled())

	result, err := svc.SyncRecommendations(context.Background(), "Barrio Centro")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)

	persons, err := st.ListPersons(context.Background())
	require.NoError(t, err)
	assert.Len(t, persons, 2)

	docs, err := imports.ListDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "recommendations-barrio-centro.csv", docs[0].Filename)
}

func TestPortalService_Unconfigured(t *testing.T) {
	st := newTestStore(t)
	log := newTestLogger()
	imports := NewImportService(st, importer.New(log.Logger), newTestCatalogHolder(), log)
	svc := NewPortalService(nil, imports, log)

	assert.False(t, svc.Enabled())

	_, err := svc.SyncRecommendations(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}
