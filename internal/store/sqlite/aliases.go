package sqlite

import (
	"context"
	"strings"

	"github.com/stakemetrics/stakemetrics-server/internal/domain"
	"github.com/stakemetrics/stakemetrics-server/internal/store"
)

// CreateAlias persists a registered normalization alias.
// Returns store.ErrAlreadyExists when the field/value pair is registered.
func (s *Store) CreateAlias(ctx context.Context, a *domain.CatalogAlias) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO catalog_aliases (id, field, raw_value, category, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		a.ID,
		a.Field,
		a.Raw,
		a.Category,
		formatTime(a.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// ListAliases returns all registered aliases in registration order, the
// order they are replayed onto the built-in catalog at boot.
func (s *Store) ListAliases(ctx context.Context) ([]*domain.CatalogAlias, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, field, raw_value, category, created_at
		FROM catalog_aliases ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var aliases []*domain.CatalogAlias
	for rows.Next() {
		var (
			a         domain.CatalogAlias
			createdAt string
		)
		if err := rows.Scan(&a.ID, &a.Field, &a.Raw, &a.Category, &createdAt); err != nil {
			return nil, err
		}
		a.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		aliases = append(aliases, &a)
	}
	return aliases, rows.Err()
}
