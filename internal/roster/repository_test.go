package roster

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func openRosterTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `
		CREATE TABLE nurses (
			nfc TEXT PRIMARY KEY,
			nome TEXT NOT NULL,
			cargo TEXT NOT NULL DEFAULT '',
			cpf TEXT NOT NULL,
			senha TEXT NOT NULL,
			telefone1 TEXT NOT NULL DEFAULT '',
			telefone2 TEXT NOT NULL DEFAULT '',
			data_nasc TEXT NOT NULL DEFAULT '',
			endereco TEXT NOT NULL DEFAULT '',
			ala TEXT NOT NULL DEFAULT '',
			estado_cracha TEXT NOT NULL DEFAULT 'desabilitado'
				CHECK (estado_cracha IN ('habilitado', 'desabilitado')),
			qtd_atend INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return db
}

func testNurse() *Nurse {
	return &Nurse{
		NFC:      "ABC123",
		Name:     "Maria Silva",
		Role:     "Enfermeira",
		CPF:      "123.456.789-00",
		Password: "secret",
		Ward:     "A",
	}
}

func TestRepositoryCreateAndGet(t *testing.T) {
	repo := NewSQLiteRepository(openRosterTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, testNurse()); err != nil {
		t.Fatalf("failed to create nurse: %v", err)
	}

	nurse, err := repo.GetByBadge(ctx, "ABC123")
	if err != nil {
		t.Fatalf("failed to get nurse: %v", err)
	}
	if nurse.Name != "Maria Silva" {
		t.Errorf("expected nome 'Maria Silva', got %q", nurse.Name)
	}
	if nurse.BadgeState != BadgeDisabled {
		t.Errorf("expected default badge state %q, got %q", BadgeDisabled, nurse.BadgeState)
	}
	if nurse.Attendances != 0 {
		t.Errorf("expected 0 attendances, got %d", nurse.Attendances)
	}
}

func TestRepositoryCreateDuplicate(t *testing.T) {
	repo := NewSQLiteRepository(openRosterTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, testNurse()); err != nil {
		t.Fatalf("failed to create nurse: %v", err)
	}
	err := repo.Create(ctx, testNurse())
	if !errors.Is(err, ErrNurseExists) {
		t.Errorf("expected ErrNurseExists, got %v", err)
	}
}

func TestRepositoryCreateValidation(t *testing.T) {
	repo := NewSQLiteRepository(openRosterTestDB(t))
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*Nurse)
	}{
		{"missing nfc", func(n *Nurse) { n.NFC = "" }},
		{"missing nome", func(n *Nurse) { n.Name = "" }},
		{"missing cpf", func(n *Nurse) { n.CPF = "" }},
		{"missing senha", func(n *Nurse) { n.Password = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nurse := testNurse()
			tt.mutate(nurse)
			err := repo.Create(ctx, nurse)
			if !errors.Is(err, ErrInvalidNurse) {
				t.Errorf("expected ErrInvalidNurse, got %v", err)
			}
		})
	}
}

func TestRepositoryGetNotFound(t *testing.T) {
	repo := NewSQLiteRepository(openRosterTestDB(t))

	_, err := repo.GetByBadge(context.Background(), "MISSING")
	if !errors.Is(err, ErrNurseNotFound) {
		t.Errorf("expected ErrNurseNotFound, got %v", err)
	}
}

func TestRepositoryList(t *testing.T) {
	repo := NewSQLiteRepository(openRosterTestDB(t))
	ctx := context.Background()

	first := testNurse()
	second := testNurse()
	second.NFC = "DEF456"
	second.Name = "Ana Costa"
	for _, n := range []*Nurse{first, second} {
		if err := repo.Create(ctx, n); err != nil {
			t.Fatalf("failed to create nurse: %v", err)
		}
	}

	nurses, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("failed to list nurses: %v", err)
	}
	if len(nurses) != 2 {
		t.Fatalf("expected 2 nurses, got %d", len(nurses))
	}
	if nurses[0].Name != "Ana Costa" {
		t.Errorf("expected name ordering, got %q first", nurses[0].Name)
	}
	if nurses[0].BadgeState != BadgeDisabled {
		t.Errorf("expected badge state in summary, got %q", nurses[0].BadgeState)
	}
}

func TestRepositoryUpdateBadgeState(t *testing.T) {
	repo := NewSQLiteRepository(openRosterTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, testNurse()); err != nil {
		t.Fatalf("failed to create nurse: %v", err)
	}

	if err := repo.UpdateBadgeState(ctx, "ABC123", BadgeEnabled); err != nil {
		t.Fatalf("failed to enable badge: %v", err)
	}
	nurse, err := repo.GetByBadge(ctx, "ABC123")
	if err != nil {
		t.Fatalf("failed to get nurse: %v", err)
	}
	if nurse.BadgeState != BadgeEnabled {
		t.Errorf("expected %q, got %q", BadgeEnabled, nurse.BadgeState)
	}
}

func TestRepositoryUpdateBadgeStateErrors(t *testing.T) {
	repo := NewSQLiteRepository(openRosterTestDB(t))
	ctx := context.Background()

	err := repo.UpdateBadgeState(ctx, "MISSING", BadgeEnabled)
	if !errors.Is(err, ErrNurseNotFound) {
		t.Errorf("expected ErrNurseNotFound, got %v", err)
	}

	if err := repo.Create(ctx, testNurse()); err != nil {
		t.Fatalf("failed to create nurse: %v", err)
	}
	err = repo.UpdateBadgeState(ctx, "ABC123", BadgeState("ativo"))
	if !errors.Is(err, ErrInvalidBadgeState) {
		t.Errorf("expected ErrInvalidBadgeState, got %v", err)
	}
}

func TestRepositoryFindEnabledByBadge(t *testing.T) {
	repo := NewSQLiteRepository(openRosterTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, testNurse()); err != nil {
		t.Fatalf("failed to create nurse: %v", err)
	}

	// Disabled badge is a negative lookup, not an error.
	nurse, err := repo.FindEnabledByBadge(ctx, "ABC123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nurse != nil {
		t.Error("expected nil for disabled badge")
	}

	// Unknown badge likewise.
	nurse, err = repo.FindEnabledByBadge(ctx, "MISSING")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nurse != nil {
		t.Error("expected nil for unknown badge")
	}

	if err := repo.UpdateBadgeState(ctx, "ABC123", BadgeEnabled); err != nil {
		t.Fatalf("failed to enable badge: %v", err)
	}
	nurse, err = repo.FindEnabledByBadge(ctx, "ABC123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nurse == nil {
		t.Fatal("expected nurse for enabled badge")
	}
	if nurse.Name != "Maria Silva" {
		t.Errorf("expected nome 'Maria Silva', got %q", nurse.Name)
	}
}

func TestRepositoryIncrementAttendances(t *testing.T) {
	repo := NewSQLiteRepository(openRosterTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, testNurse()); err != nil {
		t.Fatalf("failed to create nurse: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := repo.IncrementAttendances(ctx, "ABC123"); err != nil {
			t.Fatalf("failed to increment attendances: %v", err)
		}
	}

	nurse, err := repo.GetByBadge(ctx, "ABC123")
	if err != nil {
		t.Fatalf("failed to get nurse: %v", err)
	}
	if nurse.Attendances != 3 {
		t.Errorf("expected 3 attendances, got %d", nurse.Attendances)
	}

	err = repo.IncrementAttendances(ctx, "MISSING")
	if !errors.Is(err, ErrNurseNotFound) {
		t.Errorf("expected ErrNurseNotFound, got %v", err)
	}
}
