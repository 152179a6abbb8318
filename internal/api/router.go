package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
//
// The device-facing routes keep the paths and verbs the deployed ESP32
// firmware already calls; changing them would strand devices in the
// field. New surfaces (snapshot, audit list, health) follow the same
// flat naming.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// Call lifecycle (bedside devices and dashboards)
	r.Post("/chamada", s.handleIntake)
	r.Get("/finalizar-chamada", s.handleCloseDirect)
	r.Get("/verificar-nfc/{nfc}", s.handleVerifyBadge)
	r.Get("/chamadas", s.handleListOpenCalls)

	// Nurse roster
	r.Get("/enfermeiros", s.handleListNurses)
	r.Post("/enfermeiro", s.handleCreateNurse)
	r.Post("/atualizar-cracha/{nfc}", s.handleUpdateBadgeState)

	// Call record audit
	r.Get("/registrar-chamada", s.handleRegisterCallRecord)
	r.Get("/registros", s.handleListCallRecords)

	// Operational
	r.Get("/health", s.handleHealth)

	// Dashboard WebSocket
	r.Get("/ws", s.handleWebSocket)

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
