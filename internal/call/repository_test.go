package call

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func openRecordTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `
		CREATE TABLE call_records (
			id TEXT PRIMARY KEY,
			responsavel TEXT NOT NULL DEFAULT '',
			criticidade TEXT NOT NULL DEFAULT '',
			inicio TEXT NOT NULL DEFAULT '',
			termino TEXT NOT NULL DEFAULT '',
			cpf_paciente TEXT NOT NULL DEFAULT '',
			nfc_enfermeiro TEXT NOT NULL DEFAULT '',
			data TEXT NOT NULL DEFAULT ''
		);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return db
}

func TestRecordRepositoryInsertAndList(t *testing.T) {
	repo := NewSQLiteRecordRepository(openRecordTestDB(t))
	ctx := context.Background()

	rec := &Record{
		Responsible: "Maria Silva",
		Criticality: "Emergencia",
		StartedAt:   "2026-08-30T10:00:00Z",
		EndedAt:     "2026-08-30T10:05:00Z",
		NurseBadge:  "ABC123",
	}
	if err := repo.Insert(ctx, rec); err != nil {
		t.Fatalf("failed to insert record: %v", err)
	}
	if rec.ID == "" {
		t.Error("expected generated ID")
	}
	if rec.RecordedAt == "" {
		t.Error("expected generated RecordedAt")
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("failed to list records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	got := records[0]
	if got.Responsible != "Maria Silva" {
		t.Errorf("expected responsavel 'Maria Silva', got %q", got.Responsible)
	}
	if got.NurseBadge != "ABC123" {
		t.Errorf("expected nfc 'ABC123', got %q", got.NurseBadge)
	}
}

func TestRecordRepositoryListOrdering(t *testing.T) {
	repo := NewSQLiteRecordRepository(openRecordTestDB(t))
	ctx := context.Background()

	older := &Record{Responsible: "A", RecordedAt: "2026-08-29T10:00:00Z"}
	newer := &Record{Responsible: "B", RecordedAt: "2026-08-30T10:00:00Z"}
	for _, rec := range []*Record{older, newer} {
		if err := repo.Insert(ctx, rec); err != nil {
			t.Fatalf("failed to insert record: %v", err)
		}
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("failed to list records: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Responsible != "B" {
		t.Errorf("expected newest record first, got %q", records[0].Responsible)
	}
}

func TestRecordRepositoryListEmpty(t *testing.T) {
	repo := NewSQLiteRecordRepository(openRecordTestDB(t))

	records, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("failed to list records: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestRecordRepositoryKeepsExplicitFields(t *testing.T) {
	repo := NewSQLiteRecordRepository(openRecordTestDB(t))
	ctx := context.Background()

	rec := &Record{
		ID:         "fixed-id",
		RecordedAt: "2026-08-30T12:00:00Z",
		PatientCPF: "123.456.789-00",
	}
	if err := repo.Insert(ctx, rec); err != nil {
		t.Fatalf("failed to insert record: %v", err)
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("failed to list records: %v", err)
	}
	if records[0].ID != "fixed-id" {
		t.Errorf("expected caller-supplied ID to survive, got %q", records[0].ID)
	}
	if records[0].PatientCPF != "123.456.789-00" {
		t.Errorf("expected patient CPF to survive, got %q", records[0].PatientCPF)
	}
}
