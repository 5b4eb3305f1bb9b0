package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/stakemetrics/stakemetrics-server/internal/domain"
	"github.com/stakemetrics/stakemetrics-server/internal/store"
)

// personColumns is the ordered list of columns selected in person queries.
// Must match the scan order in scanPerson.
const personColumns = `id, preferred_name, priesthood_raw, recommendation_raw, callings, unit,
	confirmation_date, birth_date, priesthood, has_recommendation, is_ordained, sex,
	age_at_confirmation, enriched, enriched_by, enriched_at, notes,
	document_id, row_number, created_at`

// activeGeneration is the subquery scoping person reads to the live import.
const activeGeneration = `(SELECT generation FROM imports WHERE active = 1)`

// scanPerson scans a sql.Row (or sql.Rows via its Scan method) into a domain.Person.
func scanPerson(scanner interface{ Scan(dest ...any) error }) (*domain.Person, error) {
	var p domain.Person

	var (
		priesthoodRaw     sql.NullString
		recommendationRaw sql.NullString
		callings          sql.NullString
		unit              sql.NullString
		confirmationDate  string
		birthDate         sql.NullString
		priesthood        sql.NullString
		hasRecommendation sql.NullInt64
		isOrdained        int
		sex               sql.NullString
		enriched          int
		enrichedBy        sql.NullString
		enrichedAt        sql.NullString
		notes             sql.NullString
		createdAt         string
	)

	err := scanner.Scan(
		&p.ID,
		&p.PreferredName,
		&priesthoodRaw,
		&recommendationRaw,
		&callings,
		&unit,
		&confirmationDate,
		&birthDate,
		&priesthood,
		&hasRecommendation,
		&isOrdained,
		&sex,
		&p.AgeAtConfirmation,
		&enriched,
		&enrichedBy,
		&enrichedAt,
		&notes,
		&p.DocumentID,
		&p.RowNumber,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	p.ConfirmationDate, err = parseTime(confirmationDate)
	if err != nil {
		return nil, err
	}
	p.BirthDate, err = parseNullableTime(birthDate)
	if err != nil {
		return nil, err
	}
	p.EnrichedAt, err = parseNullableTime(enrichedAt)
	if err != nil {
		return nil, err
	}
	p.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	p.PriesthoodRaw = priesthoodRaw.String
	p.RecommendationRaw = recommendationRaw.String
	p.Callings = callings.String
	p.Unit = unit.String
	p.Priesthood = domain.PriesthoodCategory(priesthood.String)
	p.Sex = domain.Sex(sex.String)
	p.EnrichedBy = enrichedBy.String
	p.Notes = notes.String

	if hasRecommendation.Valid {
		v := hasRecommendation.Int64 != 0
		p.HasRecommendation = &v
	}
	p.IsOrdained = isOrdained != 0
	p.Enriched = enriched != 0

	return &p, nil
}

// StagePersons inserts person rows under a not-yet-active generation.
// The whole batch succeeds or fails together.
func (s *Store) StagePersons(ctx context.Context, generation string, persons []*domain.Person) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin stage tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO persons (
			id, generation, preferred_name, priesthood_raw, recommendation_raw, callings, unit,
			confirmation_date, birth_date, priesthood, has_recommendation, is_ordained, sex,
			age_at_confirmation, enriched, enriched_by, enriched_at, notes,
			document_id, row_number, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare stage insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range persons {
		_, err := stmt.ExecContext(ctx,
			p.ID,
			generation,
			p.PreferredName,
			nullString(p.PriesthoodRaw),
			nullString(p.RecommendationRaw),
			nullString(p.Callings),
			nullString(p.Unit),
			formatTime(p.ConfirmationDate),
			nullTimeString(p.BirthDate),
			nullString(string(p.Priesthood)),
			nullBoolInt(p.HasRecommendation),
			boolToInt(p.IsOrdained),
			nullString(string(p.Sex)),
			p.AgeAtConfirmation,
			boolToInt(p.Enriched),
			nullString(p.EnrichedBy),
			nullTimeString(p.EnrichedAt),
			nullString(p.Notes),
			p.DocumentID,
			p.RowNumber,
			formatTime(p.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("stage person %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// GetPerson returns one active-generation person by ID.
func (s *Store) GetPerson(ctx context.Context, id string) (*domain.Person, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+personColumns+` FROM persons
		WHERE id = ? AND generation = `+activeGeneration,
		id)

	p, err := scanPerson(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListPersons returns every active-generation person ordered by row number.
func (s *Store) ListPersons(ctx context.Context) ([]*domain.Person, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+personColumns+` FROM persons
		WHERE generation = `+activeGeneration+`
		ORDER BY row_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPersons(rows)
}

// ListPersonsByConfirmationRange returns active persons confirmed within
// [from, to], optionally filtered by unit.
func (s *Store) ListPersonsByConfirmationRange(ctx context.Context, from, to time.Time, unit string) ([]*domain.Person, error) {
	query := `
		SELECT ` + personColumns + ` FROM persons
		WHERE generation = ` + activeGeneration + `
		  AND confirmation_date >= ? AND confirmation_date <= ?`
	args := []any{formatTime(from), formatTime(to)}

	if unit != "" {
		query += ` AND unit = ?`
		args = append(args, unit)
	}
	query += ` ORDER BY confirmation_date`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPersons(rows)
}

// UpdatePersonEnrichment persists operator corrections and the recomputed
// normalized fields for one active-generation person.
func (s *Store) UpdatePersonEnrichment(ctx context.Context, p *domain.Person) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE persons SET
			birth_date = ?,
			sex = ?,
			age_at_confirmation = ?,
			notes = ?,
			enriched = ?,
			enriched_by = ?,
			enriched_at = ?
		WHERE id = ? AND generation = `+activeGeneration,
		nullTimeString(p.BirthDate),
		nullString(string(p.Sex)),
		p.AgeAtConfirmation,
		nullString(p.Notes),
		boolToInt(p.Enriched),
		nullString(p.EnrichedBy),
		nullTimeString(p.EnrichedAt),
		p.ID,
	)
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

func collectPersons(rows *sql.Rows) ([]*domain.Person, error) {
	var persons []*domain.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}
	return persons, rows.Err()
}
