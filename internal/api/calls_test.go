package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/wardlink/wardcall-core/internal/call"
	"github.com/wardlink/wardcall-core/internal/roster"
)

func enabledNurse(t *testing.T, repo roster.Repository) {
	t.Helper()

	nurse := &roster.Nurse{
		NFC:      "ABC123",
		Name:     "Maria Silva",
		CPF:      "123.456.789-00",
		Password: "secret",
	}
	if err := repo.Create(context.Background(), nurse); err != nil {
		t.Fatalf("failed to create nurse: %v", err)
	}
	if err := repo.UpdateBadgeState(context.Background(), "ABC123", roster.BadgeEnabled); err != nil {
		t.Fatalf("failed to enable badge: %v", err)
	}
}

func TestIntake(t *testing.T) {
	srv, svc, _ := testServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/chamada",
		`{"leito":"Leito 01","andar":"2","quarto":"203","ala":"B","criticidade":"Emergencia"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Errorf("expected success true, got %v", body["success"])
	}

	calls := svc.OpenCalls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 open call, got %d", len(calls))
	}
	if calls[0].Leito != "Leito 01" || calls[0].Criticality != call.CriticalityEmergency {
		t.Errorf("unexpected tracked call: %+v", calls[0])
	}
}

func TestIntakeValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid criticality", `{"leito":"Leito 01","criticidade":"Urgente"}`},
		{"missing criticality", `{"leito":"Leito 01"}`},
		{"missing leito", `{"criticidade":"Emergencia"}`},
		{"malformed JSON", `{"leito":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, svc, _ := testServer(t)

			rec := doRequest(t, srv, http.MethodPost, "/chamada", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			if len(svc.OpenCalls()) != 0 {
				t.Error("expected no open calls after rejected intake")
			}
		})
	}
}

func TestIntakeReplacesSameBed(t *testing.T) {
	srv, svc, _ := testServer(t)

	doRequest(t, srv, http.MethodPost, "/chamada", `{"leito":"Leito 01","criticidade":"Auxilio"}`)
	doRequest(t, srv, http.MethodPost, "/chamada", `{"leito":"Leito 01","criticidade":"Emergencia"}`)

	calls := svc.OpenCalls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 open call, got %d", len(calls))
	}
	if calls[0].Criticality != call.CriticalityEmergency {
		t.Errorf("expected replacement criticality, got %q", calls[0].Criticality)
	}
}

func TestCloseDirect(t *testing.T) {
	srv, svc, _ := testServer(t)

	doRequest(t, srv, http.MethodPost, "/chamada", `{"leito":"Leito 01","criticidade":"Emergencia"}`)

	rec := doRequest(t, srv, http.MethodGet, "/finalizar-chamada?leito=Leito+01", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(svc.OpenCalls()) != 0 {
		t.Error("expected no open calls after closure")
	}
}

func TestCloseDirectMissingLeito(t *testing.T) {
	srv, _, _ := testServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/finalizar-chamada", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["success"] != false {
		t.Errorf("expected legacy success:false body, got %v", body)
	}
	if body["error"] != "Leito não fornecido" {
		t.Errorf("expected legacy error message, got %v", body["error"])
	}
}

func TestCloseDirectUnknownBedIsIdempotent(t *testing.T) {
	srv, _, _ := testServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/finalizar-chamada?leito=Leito+99", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for unknown bed, got %d", rec.Code)
	}
}

func TestVerifyBadge(t *testing.T) {
	srv, svc, rosterRepo := testServer(t)
	enabledNurse(t, rosterRepo)

	doRequest(t, srv, http.MethodPost, "/chamada", `{"leito":"Leito 01","criticidade":"Emergencia"}`)

	rec := doRequest(t, srv, http.MethodGet, "/verificar-nfc/ABC123?leito=Leito+01", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["valid"] != true {
		t.Errorf("expected valid true, got %v", body)
	}
	if body["nome"] != "Maria Silva" {
		t.Errorf("expected nome 'Maria Silva', got %v", body["nome"])
	}
	if len(svc.OpenCalls()) != 0 {
		t.Error("expected call closed after badge verification")
	}

	// Attendance counter bumped.
	nurse, err := rosterRepo.GetByBadge(context.Background(), "ABC123")
	if err != nil {
		t.Fatalf("failed to get nurse: %v", err)
	}
	if nurse.Attendances != 1 {
		t.Errorf("expected 1 attendance, got %d", nurse.Attendances)
	}
}

func TestVerifyBadgeWritesRecord(t *testing.T) {
	srv, _, rosterRepo := testServer(t)
	enabledNurse(t, rosterRepo)

	doRequest(t, srv, http.MethodPost, "/chamada", `{"leito":"Leito 01","criticidade":"Emergencia"}`)
	doRequest(t, srv, http.MethodGet, "/verificar-nfc/ABC123?leito=Leito+01", "")

	records, err := srv.records.List(context.Background())
	if err != nil {
		t.Fatalf("failed to list records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 call record, got %d", len(records))
	}
	if records[0].Responsible != "Maria Silva" {
		t.Errorf("expected responsavel 'Maria Silva', got %q", records[0].Responsible)
	}
	if records[0].Criticality != "Emergencia" {
		t.Errorf("expected criticidade 'Emergencia', got %q", records[0].Criticality)
	}
}

func TestVerifyBadgeRejectsDisabled(t *testing.T) {
	srv, svc, rosterRepo := testServer(t)

	nurse := &roster.Nurse{
		NFC:      "DEF456",
		Name:     "Ana Costa",
		CPF:      "987.654.321-00",
		Password: "secret",
	}
	if err := rosterRepo.Create(context.Background(), nurse); err != nil {
		t.Fatalf("failed to create nurse: %v", err)
	}

	doRequest(t, srv, http.MethodPost, "/chamada", `{"leito":"Leito 01","criticidade":"Auxilio"}`)

	rec := doRequest(t, srv, http.MethodGet, "/verificar-nfc/DEF456?leito=Leito+01", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["valid"] != false {
		t.Errorf("expected valid false for disabled badge, got %v", body)
	}
	if len(svc.OpenCalls()) != 1 {
		t.Error("expected call to remain open after rejected badge")
	}
}

func TestVerifyBadgeUnknownBadge(t *testing.T) {
	srv, _, _ := testServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/verificar-nfc/UNKNOWN?leito=Leito+01", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["valid"] != false {
		t.Errorf("expected valid false for unknown badge, got %v", body)
	}
}

func TestVerifyBadgeRequiresLeito(t *testing.T) {
	srv, _, rosterRepo := testServer(t)
	enabledNurse(t, rosterRepo)

	rec := doRequest(t, srv, http.MethodGet, "/verificar-nfc/ABC123", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without leito, got %d", rec.Code)
	}
}

func TestListOpenCalls(t *testing.T) {
	srv, _, _ := testServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/chamadas", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("expected empty array, got %q", body)
	}

	doRequest(t, srv, http.MethodPost, "/chamada", `{"leito":"Leito 01","criticidade":"Emergencia"}`)
	doRequest(t, srv, http.MethodPost, "/chamada", `{"leito":"Leito 02","criticidade":"Auxilio"}`)

	rec = doRequest(t, srv, http.MethodGet, "/chamadas", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var calls []call.OpenCall
	if err := decodeInto(rec.Body.Bytes(), &calls); err != nil {
		t.Fatalf("failed to decode calls: %v", err)
	}
	if len(calls) != 2 {
		t.Fatalf("expected 2 open calls, got %d", len(calls))
	}
	if calls[0].Leito != "Leito 01" {
		t.Errorf("expected oldest call first, got %q", calls[0].Leito)
	}
}

func TestRegisterCallRecord(t *testing.T) {
	srv, _, _ := testServer(t)

	rec := doRequest(t, srv, http.MethodGet,
		"/registrar-chamada?responsavel=Maria&criticidade=Auxilio&inicio=10:00&termino=10:05&nfc_enfermeiro=ABC123", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Errorf("expected success true, got %v", body)
	}

	list := doRequest(t, srv, http.MethodGet, "/registros", "")
	var records []call.Record
	if err := decodeInto(list.Body.Bytes(), &records); err != nil {
		t.Fatalf("failed to decode records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Responsible != "Maria" {
		t.Errorf("expected responsavel 'Maria', got %q", records[0].Responsible)
	}
}
