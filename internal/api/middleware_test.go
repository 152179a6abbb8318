package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// The /ws upgrade hijacks the connection through the logging
// middleware's wrapper, so the wrapper must forward the interface.
func TestStatusWriterSupportsHijack(t *testing.T) {
	var w http.ResponseWriter = &statusWriter{ResponseWriter: httptest.NewRecorder()}

	hj, ok := w.(http.Hijacker)
	if !ok {
		t.Fatal("statusWriter must implement http.Hijacker")
	}

	// httptest.ResponseRecorder cannot hijack; the error must come from
	// the delegation, not a panic.
	if _, _, err := hj.Hijack(); err == nil {
		t.Error("expected error hijacking a ResponseRecorder")
	}
}

func TestStatusWriterCapturesStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &statusWriter{ResponseWriter: rec, status: http.StatusOK}

	w.WriteHeader(http.StatusNotFound)

	if w.status != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.status, http.StatusNotFound)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("recorded code = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
