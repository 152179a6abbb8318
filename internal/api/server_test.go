package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/wardlink/wardcall-core/internal/call"
	"github.com/wardlink/wardcall-core/internal/infrastructure/config"
	"github.com/wardlink/wardcall-core/internal/infrastructure/logging"
	"github.com/wardlink/wardcall-core/internal/roster"
)

// testServer creates a Server with real repositories backed by
// in-memory SQLite and a live hub registered as the broadcaster.
func testServer(t *testing.T) (*Server, *call.Service, roster.Repository) {
	t.Helper()

	db := setupTestDB(t)
	rosterRepo := roster.NewSQLiteRepository(db)
	recordRepo := call.NewSQLiteRecordRepository(db)

	svc := call.NewService(call.NewTracker(), &rosterDirectory{repo: rosterRepo}, recordRepo)

	log := logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stdout"}, "test")

	srv, err := New(Deps{
		Config: config.APIConfig{
			Host: "127.0.0.1",
			Port: 0,
			Timeouts: config.APITimeoutConfig{
				Read:  5,
				Write: 5,
				Idle:  5,
			},
		},
		WS: config.WebSocketConfig{
			MaxMessageSize: 8192,
			PingInterval:   30,
			PongTimeout:    10,
		},
		Logger:  log,
		Calls:   svc,
		Roster:  rosterRepo,
		Records: recordRepo,
		Version: "test",
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	srv.hub = NewHub(srv.wsCfg, log)
	svc.AddBroadcaster(srv.hub)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go srv.hub.Run(ctx)

	return srv, svc, rosterRepo
}

// rosterDirectory adapts the roster repository to the call service's
// badge directory, mirroring the adapter in cmd/wardcall.
type rosterDirectory struct {
	repo roster.Repository
}

func (d *rosterDirectory) FindEnabledByBadge(ctx context.Context, badge string) (*call.NurseRef, error) {
	nurse, err := d.repo.FindEnabledByBadge(ctx, badge)
	if err != nil {
		return nil, err
	}
	if nurse == nil {
		return nil, nil
	}
	return &call.NurseRef{Badge: nurse.NFC, Name: nurse.Name}, nil
}

func (d *rosterDirectory) RecordAttendance(ctx context.Context, badge string) error {
	return d.repo.IncrementAttendances(ctx, badge)
}

// setupTestDB creates an in-memory SQLite database with the schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
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
	if _, execErr := db.Exec(schema); execErr != nil {
		t.Fatalf("failed to create test schema: %v", execErr)
	}
	return db
}

// doRequest runs a request through the full router and returns the response.
func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.buildRouter().ServeHTTP(rec, req)
	return rec
}

// decodeInto unmarshals JSON into the given value.
func decodeInto(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// decodeBody unmarshals a JSON response body into a map.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestNewRequiresDependencies(t *testing.T) {
	log := logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stdout"}, "test")

	if _, err := New(Deps{}); err == nil {
		t.Error("expected error for missing logger")
	}
	if _, err := New(Deps{Logger: log}); err == nil {
		t.Error("expected error for missing call service")
	}
}

func TestHandleHealth(t *testing.T) {
	srv, _, _ := testServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %v", body["status"])
	}
	if body["version"] != "test" {
		t.Errorf("expected version test, got %v", body["version"])
	}
}
