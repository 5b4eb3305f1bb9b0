package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/stakemetrics/stakemetrics-server/internal/domain"
	"github.com/stakemetrics/stakemetrics-server/internal/store"
)

// CreateImport records a new staging generation.
func (s *Store) CreateImport(ctx context.Context, imp *domain.Import) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO imports (id, document_id, generation, active, created_at, activated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		imp.ID,
		imp.DocumentID,
		imp.Generation,
		boolToInt(imp.Active),
		formatTime(imp.CreatedAt),
		nullTimeString(imp.ActivatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// ActivateImport flips the active pointer to the given generation and purges
// person rows of every other generation, in one transaction. Readers see
// either the old data set or the new one, never a mix.
func (s *Store) ActivateImport(ctx context.Context, generation string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin activate tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE imports SET active = 1, activated_at = ? WHERE generation = ?`,
		formatTime(time.Now()), generation)
	if err != nil {
		return fmt.Errorf("activate generation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE imports SET active = 0 WHERE generation != ?`, generation); err != nil {
		return fmt.Errorf("deactivate superseded imports: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM persons WHERE generation != ?`, generation); err != nil {
		return fmt.Errorf("purge superseded persons: %w", err)
	}

	return tx.Commit()
}

// DiscardImport drops a staged generation and its person rows. Discarding
// the active generation is refused.
func (s *Store) DiscardImport(ctx context.Context, generation string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin discard tx: %w", err)
	}
	defer tx.Rollback()

	var active int
	err = tx.QueryRowContext(ctx, `
		SELECT active FROM imports WHERE generation = ?`, generation).Scan(&active)
	if err == sql.ErrNoRows {
		return store.ErrNotFound
	}
	if err != nil {
		return err
	}
	if active != 0 {
		return store.ErrInvalidInput.WithMessage("cannot discard the active import")
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM persons WHERE generation = ?`, generation); err != nil {
		return fmt.Errorf("delete staged persons: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM imports WHERE generation = ?`, generation); err != nil {
		return fmt.Errorf("delete import row: %w", err)
	}

	return tx.Commit()
}

// GetActiveImport returns the single active import, or store.ErrNotFound
// when nothing has been imported yet.
func (s *Store) GetActiveImport(ctx context.Context) (*domain.Import, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, document_id, generation, active, created_at, activated_at
		FROM imports WHERE active = 1`)

	var (
		imp         domain.Import
		active      int
		createdAt   string
		activatedAt sql.NullString
	)
	err := row.Scan(&imp.ID, &imp.DocumentID, &imp.Generation, &active, &createdAt, &activatedAt)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	imp.Active = active != 0
	imp.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	imp.ActivatedAt, err = parseNullableTime(activatedAt)
	if err != nil {
		return nil, err
	}
	return &imp, nil
}
