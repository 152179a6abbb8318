package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wardlink/wardcall-core/internal/call"
)

// intakeRequest is the JSON body bedside devices send on POST /chamada.
type intakeRequest struct {
	Leito       string `json:"leito"`
	Andar       string `json:"andar"`
	Quarto      string `json:"quarto"`
	Ala         string `json:"ala"`
	Criticidade string `json:"criticidade"`
}

// handleIntake receives a new call from a bedside device.
//
// POST /chamada
//
// The call is tracked and broadcast to all dashboards before the
// response is written. Invalid input is rejected with 400 and leaves
// no trace.
func (s *Server) handleIntake(w http.ResponseWriter, r *http.Request) {
	var req intakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	bed := call.Bed{
		Leito:  req.Leito,
		Andar:  req.Andar,
		Quarto: req.Quarto,
		Ala:    req.Ala,
	}

	_, err := s.calls.Open(r.Context(), bed, call.Criticality(req.Criticidade))
	if err != nil {
		switch {
		case errors.Is(err, call.ErrInvalidCriticality):
			writeValidationError(w, `criticidade must be "Emergencia" or "Auxilio"`)
		case errors.Is(err, call.ErrMissingBed):
			writeValidationError(w, "leito is required")
		default:
			s.logger.Error("call intake failed", "error", err)
			writeInternalError(w, "failed to process call")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Chamada %s recebida e notificada", req.Criticidade),
	})
}

// handleCloseDirect closes the call for a bed without badge
// verification (wall cancel buttons, dashboard actions).
//
// GET /finalizar-chamada?leito=
//
// The error body keeps the legacy {success, error} shape the deployed
// cancel buttons parse.
func (s *Server) handleCloseDirect(w http.ResponseWriter, r *http.Request) {
	leito := r.URL.Query().Get("leito")
	if err := s.calls.CloseDirect(r.Context(), leito); err != nil {
		if errors.Is(err, call.ErrMissingBed) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"success": false,
				"error":   "Leito não fornecido",
			})
			return
		}
		s.logger.Error("call closure failed", "leito", leito, "error", err)
		writeInternalError(w, "failed to close call")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Chamada do leito %s finalizada com sucesso", leito),
	})
}

// handleVerifyBadge closes a call after verifying the scanned badge.
//
// GET /verificar-nfc/{nfc}?leito=
//
// The bed comes from the scanning device, so the closure targets that
// device's bed. An unknown or disabled badge answers {valid:false}
// with no state change; the badge reader shows the rejection to the
// nurse.
func (s *Server) handleVerifyBadge(w http.ResponseWriter, r *http.Request) {
	nfc := chi.URLParam(r, "nfc")
	leito := r.URL.Query().Get("leito")

	nurse, err := s.calls.CloseWithBadge(r.Context(), nfc, leito)
	if err != nil {
		switch {
		case errors.Is(err, call.ErrMissingBed):
			writeValidationError(w, "leito query parameter is required")
		case errors.Is(err, call.ErrLookupFailed):
			s.logger.Error("badge lookup failed", "nfc", nfc, "error", err)
			writeInternalError(w, "failed to verify badge")
		default:
			s.logger.Error("badge closure failed", "nfc", nfc, "error", err)
			writeInternalError(w, "failed to close call")
		}
		return
	}

	if nurse == nil {
		writeJSON(w, http.StatusOK, map[string]any{"valid": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"valid": true,
		"nome":  nurse.Name,
	})
}

// handleListOpenCalls returns the snapshot of currently open calls.
//
// GET /chamadas
//
// Dashboards loading after calls opened seed their view from this
// instead of waiting for the next event.
func (s *Server) handleListOpenCalls(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.calls.OpenCalls())
}
