package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/stakemetrics/stakemetrics-server/internal/catalog"
	"github.com/stakemetrics/stakemetrics-server/internal/domain"
	"github.com/stakemetrics/stakemetrics-server/internal/id"
	"github.com/stakemetrics/stakemetrics-server/internal/logger"
	"github.com/stakemetrics/stakemetrics-server/internal/store/sqlite"
)

func newTestLogger() *logger.Logger {
	return logger.New(logger.Config{Writer: io.Discard, Format: "json"})
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, st.Close())
	})
	return st
}

// activatePersons stages the given persons under a fresh generation and makes
// it the active one, the same way a completed import would.
func activatePersons(t *testing.T, st *sqlite.Store, persons ...*domain.Person) {
	t.Helper()

	ctx := context.Background()
	generation := uuid.NewString()
	require.NoError(t, st.CreateImport(ctx, &domain.Import{
		ID:         id.MustGenerate(id.PrefixImport),
		DocumentID: "doc-test",
		Generation: generation,
		CreatedAt:  time.Now(),
	}))
	require.NoError(t, st.StagePersons(ctx, generation, persons))
	require.NoError(t, st.ActivateImport(ctx, generation))
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func confirmedPerson(name, unit string, confirmed time.Time) *domain.Person {
	return &domain.Person{
		ID:                id.MustGenerate(id.PrefixPerson),
		PreferredName:     name,
		Unit:              unit,
		ConfirmationDate:  confirmed,
		AgeAtConfirmation: 25,
		DocumentID:        "doc-test",
		RowNumber:         1,
		CreatedAt:         time.Now(),
	}
}

func newTestCatalogHolder() *catalog.Holder {
	return catalog.NewHolder(catalog.Default())
}
