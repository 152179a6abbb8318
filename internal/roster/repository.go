package roster

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Repository is the persistence interface for nurse records.
type Repository interface {
	Create(ctx context.Context, nurse *Nurse) error
	List(ctx context.Context) ([]*NurseSummary, error)
	GetByBadge(ctx context.Context, nfc string) (*Nurse, error)
	FindEnabledByBadge(ctx context.Context, nfc string) (*Nurse, error)
	UpdateBadgeState(ctx context.Context, nfc string, state BadgeState) error
	IncrementAttendances(ctx context.Context, nfc string) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a roster repository backed by the given
// database handle.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create registers a nurse. The badge state defaults to desabilitado
// when unset; an existing badge returns ErrNurseExists.
func (r *SQLiteRepository) Create(ctx context.Context, nurse *Nurse) error {
	if err := ValidateNurse(nurse); err != nil {
		return err
	}
	if nurse.BadgeState == "" {
		nurse.BadgeState = BadgeDisabled
	}
	if err := ValidateBadgeState(nurse.BadgeState); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	query := `
		INSERT INTO nurses (nfc, nome, cargo, cpf, senha, telefone1, telefone2,
			data_nasc, endereco, ala, estado_cracha, qtd_atend, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		nurse.NFC,
		nurse.Name,
		nurse.Role,
		nurse.CPF,
		nurse.Password,
		nurse.Phone1,
		nurse.Phone2,
		nurse.BirthDate,
		nurse.Address,
		nurse.Ward,
		string(nurse.BadgeState),
		nurse.Attendances,
		now,
		now,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: nfc %s", ErrNurseExists, nurse.NFC)
		}
		return fmt.Errorf("failed to create nurse: %w", err)
	}
	return nil
}

// List returns the roster listing projection for every nurse, ordered
// by name.
func (r *SQLiteRepository) List(ctx context.Context) ([]*NurseSummary, error) {
	query := `
		SELECT nfc, nome, cargo, estado_cracha
		FROM nurses
		ORDER BY nome
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query nurses: %w", err)
	}
	defer rows.Close()

	var nurses []*NurseSummary
	for rows.Next() {
		n := &NurseSummary{}
		if err := rows.Scan(&n.NFC, &n.Name, &n.Role, &n.BadgeState); err != nil {
			return nil, fmt.Errorf("failed to scan nurse: %w", err)
		}
		nurses = append(nurses, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating nurses: %w", err)
	}
	return nurses, nil
}

// GetByBadge returns the full record for a badge, or ErrNurseNotFound.
func (r *SQLiteRepository) GetByBadge(ctx context.Context, nfc string) (*Nurse, error) {
	nurse, err := r.scanNurse(ctx, `SELECT `+nurseColumns+` FROM nurses WHERE nfc = ?`, nfc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: nfc %s", ErrNurseNotFound, nfc)
		}
		return nil, err
	}
	return nurse, nil
}

// FindEnabledByBadge returns the nurse for a badge only when the badge
// is enabled. No match is (nil, nil): an unknown or disabled badge is a
// negative lookup, not a failure.
func (r *SQLiteRepository) FindEnabledByBadge(ctx context.Context, nfc string) (*Nurse, error) {
	nurse, err := r.scanNurse(ctx,
		`SELECT `+nurseColumns+` FROM nurses WHERE nfc = ? AND estado_cracha = ?`,
		nfc, string(BadgeEnabled))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return nurse, nil
}

// UpdateBadgeState sets the badge state for a nurse.
func (r *SQLiteRepository) UpdateBadgeState(ctx context.Context, nfc string, state BadgeState) error {
	if err := ValidateBadgeState(state); err != nil {
		return err
	}

	query := `
		UPDATE nurses
		SET estado_cracha = ?, updated_at = ?
		WHERE nfc = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		string(state), time.Now().UTC().Format(time.RFC3339), nfc)
	if err != nil {
		return fmt.Errorf("failed to update badge state: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: nfc %s", ErrNurseNotFound, nfc)
	}
	return nil
}

// IncrementAttendances bumps the attendance counter for a nurse.
func (r *SQLiteRepository) IncrementAttendances(ctx context.Context, nfc string) error {
	query := `
		UPDATE nurses
		SET qtd_atend = qtd_atend + 1, updated_at = ?
		WHERE nfc = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		time.Now().UTC().Format(time.RFC3339), nfc)
	if err != nil {
		return fmt.Errorf("failed to increment attendances: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: nfc %s", ErrNurseNotFound, nfc)
	}
	return nil
}

const nurseColumns = `nfc, nome, cargo, cpf, senha, telefone1, telefone2,
	data_nasc, endereco, ala, estado_cracha, qtd_atend`

func (r *SQLiteRepository) scanNurse(ctx context.Context, query string, args ...any) (*Nurse, error) {
	n := &Nurse{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&n.NFC,
		&n.Name,
		&n.Role,
		&n.CPF,
		&n.Password,
		&n.Phone1,
		&n.Phone2,
		&n.BirthDate,
		&n.Address,
		&n.Ward,
		&n.BadgeState,
		&n.Attendances,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("failed to query nurse: %w", err)
	}
	return n, nil
}
