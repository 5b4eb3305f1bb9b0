package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/stakemetrics/stakemetrics-server/internal/domain"
	"github.com/stakemetrics/stakemetrics-server/internal/store"
)

const periodColumns = `id, name, type, start_date, end_date, year, created_at`

func scanPeriod(scanner interface{ Scan(dest ...any) error }) (*domain.Period, error) {
	var (
		p         domain.Period
		startDate string
		endDate   string
		createdAt string
	)

	err := scanner.Scan(&p.ID, &p.Name, (*string)(&p.Type), &startDate, &endDate, &p.Year, &createdAt)
	if err != nil {
		return nil, err
	}

	p.StartDate, err = parseTime(startDate)
	if err != nil {
		return nil, err
	}
	p.EndDate, err = parseTime(endDate)
	if err != nil {
		return nil, err
	}
	p.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePeriod inserts a new reporting period.
// Returns store.ErrAlreadyExists when the name is taken.
func (s *Store) CreatePeriod(ctx context.Context, p *domain.Period) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO periods (id, name, type, start_date, end_date, year, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID,
		p.Name,
		string(p.Type),
		formatTime(p.StartDate),
		formatTime(p.EndDate),
		p.Year,
		formatTime(p.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetPeriod returns one period by ID.
func (s *Store) GetPeriod(ctx context.Context, id string) (*domain.Period, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+periodColumns+` FROM periods WHERE id = ?`, id)

	p, err := scanPeriod(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetPeriodByName returns one period by name, case-insensitively.
func (s *Store) GetPeriodByName(ctx context.Context, name string) (*domain.Period, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+periodColumns+` FROM periods WHERE name = ? COLLATE NOCASE`, name)

	p, err := scanPeriod(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListPeriods returns all periods ordered by start date.
func (s *Store) ListPeriods(ctx context.Context) ([]*domain.Period, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+periodColumns+` FROM periods ORDER BY start_date, type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []*domain.Period
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}
