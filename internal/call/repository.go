package call

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RecordRepository is the persistence interface for call records.
type RecordRepository interface {
	Insert(ctx context.Context, rec *Record) error
	List(ctx context.Context) ([]*Record, error)
}

// SQLiteRecordRepository implements RecordRepository using SQLite.
type SQLiteRecordRepository struct {
	db *sql.DB
}

// NewSQLiteRecordRepository creates a record repository backed by the
// given database handle.
func NewSQLiteRecordRepository(db *sql.DB) *SQLiteRecordRepository {
	return &SQLiteRecordRepository{db: db}
}

// Insert appends a call record. A missing ID is generated; a missing
// RecordedAt timestamp defaults to now.
func (r *SQLiteRecordRepository) Insert(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.RecordedAt == "" {
		rec.RecordedAt = time.Now().UTC().Format(time.RFC3339)
	}

	query := `
		INSERT INTO call_records (id, responsavel, criticidade, inicio, termino, cpf_paciente, nfc_enfermeiro, data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.Responsible,
		rec.Criticality,
		rec.StartedAt,
		rec.EndedAt,
		rec.PatientCPF,
		rec.NurseBadge,
		rec.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert call record: %w", err)
	}
	return nil
}

// List returns all call records, newest first.
func (r *SQLiteRecordRepository) List(ctx context.Context) ([]*Record, error) {
	query := `
		SELECT id, responsavel, criticidade, inicio, termino, cpf_paciente, nfc_enfermeiro, data
		FROM call_records
		ORDER BY data DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query call records: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec := &Record{}
		err := rows.Scan(
			&rec.ID,
			&rec.Responsible,
			&rec.Criticality,
			&rec.StartedAt,
			&rec.EndedAt,
			&rec.PatientCPF,
			&rec.NurseBadge,
			&rec.RecordedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan call record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating call records: %w", err)
	}
	return records, nil
}
