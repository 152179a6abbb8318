package api

import (
	"net/http"

	"github.com/wardlink/wardcall-core/internal/call"
)

// handleRegisterCallRecord inserts a call record directly.
//
// GET /registrar-chamada?responsavel=&criticidade=&inicio=&termino=&cpf_paciente=&nfc_enfermeiro=
//
// Legacy device-facing route: badge readers that track the attendance
// window themselves report it via query parameters. Fields are stored
// as given; the device owns their formats.
func (s *Server) handleRegisterCallRecord(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rec := &call.Record{
		Responsible: q.Get("responsavel"),
		Criticality: q.Get("criticidade"),
		StartedAt:   q.Get("inicio"),
		EndedAt:     q.Get("termino"),
		PatientCPF:  q.Get("cpf_paciente"),
		NurseBadge:  q.Get("nfc_enfermeiro"),
	}

	if err := s.records.Insert(r.Context(), rec); err != nil {
		s.logger.Error("failed to register call record", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "failed to register call record",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"chamada": rec,
	})
}

// handleListCallRecords returns the call record audit list, newest first.
//
// GET /registros
func (s *Server) handleListCallRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.records.List(r.Context())
	if err != nil {
		s.logger.Error("failed to list call records", "error", err)
		writeInternalError(w, "failed to list call records")
		return
	}
	if records == nil {
		records = []*call.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}
