package sqlite

import (
	"context"
	"database/sql"

	"github.com/stakemetrics/stakemetrics-server/internal/domain"
	"github.com/stakemetrics/stakemetrics-server/internal/store"
)

const documentColumns = `id, filename, kind, size_bytes, status, row_count, uploaded_at`

func scanDocument(scanner interface{ Scan(dest ...any) error }) (*domain.Document, error) {
	var (
		d          domain.Document
		uploadedAt string
	)

	err := scanner.Scan(&d.ID, &d.Filename, (*string)(&d.Kind), &d.SizeBytes,
		(*string)(&d.Status), &d.RowCount, &uploadedAt)
	if err != nil {
		return nil, err
	}

	d.UploadedAt, err = parseTime(uploadedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateDocument records an uploaded source file.
func (s *Store) CreateDocument(ctx context.Context, d *domain.Document) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, filename, kind, size_bytes, status, row_count, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID,
		d.Filename,
		string(d.Kind),
		d.SizeBytes,
		string(d.Status),
		d.RowCount,
		formatTime(d.UploadedAt),
	)
	return err
}

// GetDocument returns one document by ID.
func (s *Store) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)

	d, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// ListDocuments returns all documents, newest first.
func (s *Store) ListDocuments(ctx context.Context) ([]*domain.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+documentColumns+` FROM documents ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*domain.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// UpdateDocumentStatus sets the processing outcome of a document.
func (s *Store) UpdateDocumentStatus(ctx context.Context, id string, status domain.DocumentStatus, rowCount int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE documents SET status = ?, row_count = ? WHERE id = ?`,
		string(status), rowCount, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
