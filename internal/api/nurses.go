package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wardlink/wardcall-core/internal/roster"
)

// handleListNurses returns the roster listing.
//
// GET /enfermeiros
func (s *Server) handleListNurses(w http.ResponseWriter, r *http.Request) {
	nurses, err := s.roster.List(r.Context())
	if err != nil {
		s.logger.Error("failed to list nurses", "error", err)
		writeInternalError(w, "failed to list nurses")
		return
	}
	if nurses == nil {
		nurses = []*roster.NurseSummary{}
	}
	writeJSON(w, http.StatusOK, nurses)
}

// handleCreateNurse registers a nurse.
//
// POST /enfermeiro
//
// nfc, nome, cpf and senha are required; a badge already on the roster
// is a 409.
func (s *Server) handleCreateNurse(w http.ResponseWriter, r *http.Request) {
	var nurse roster.Nurse
	if err := json.NewDecoder(r.Body).Decode(&nurse); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if err := s.roster.Create(r.Context(), &nurse); err != nil {
		switch {
		case errors.Is(err, roster.ErrInvalidNurse):
			writeValidationError(w, "Campos obrigatórios não preenchidos")
		case errors.Is(err, roster.ErrInvalidBadgeState):
			writeValidationError(w, `estado_cracha must be "habilitado" or "desabilitado"`)
		case errors.Is(err, roster.ErrNurseExists):
			writeConflict(w, "Já existe um enfermeiro cadastrado com este NFC")
		default:
			s.logger.Error("failed to create nurse", "error", err)
			writeInternalError(w, "failed to create nurse")
		}
		return
	}

	// The stored record echoes back minus the password.
	nurse.Password = ""
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Enfermeiro cadastrado com sucesso",
		"data":    nurse,
	})
}

// badgeStateRequest is the JSON body for badge state updates.
type badgeStateRequest struct {
	Estado string `json:"estado"`
}

// handleUpdateBadgeState enables or disables a nurse's badge.
//
// POST /atualizar-cracha/{nfc}
func (s *Server) handleUpdateBadgeState(w http.ResponseWriter, r *http.Request) {
	nfc := chi.URLParam(r, "nfc")

	var req badgeStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	err := s.roster.UpdateBadgeState(r.Context(), nfc, roster.BadgeState(req.Estado))
	if err != nil {
		switch {
		case errors.Is(err, roster.ErrInvalidBadgeState):
			writeValidationError(w, `estado must be "habilitado" or "desabilitado"`)
		case errors.Is(err, roster.ErrNurseNotFound):
			writeNotFound(w, "Enfermeiro não encontrado")
		default:
			s.logger.Error("failed to update badge state", "nfc", nfc, "error", err)
			writeInternalError(w, "failed to update badge state")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Estado atualizado com sucesso",
	})
}
