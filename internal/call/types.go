package call

import "time"

// Criticality is the severity class of a call. The wire values are the
// Portuguese terms the bedside firmware sends.
type Criticality string

// Recognised criticality values. Anything else is rejected at intake.
const (
	CriticalityEmergency  Criticality = "Emergencia"
	CriticalityAssistance Criticality = "Auxilio"
)

// Event names pushed to dashboards and mirrored to MQTT.
const (
	EventCallOpened = "nova-chamada"
	EventCallClosed = "chamada-finalizada"
)

// Bed is the composite identifier of a patient's physical location.
// Leito is the key; the remaining fields are display context carried
// through opaquely.
type Bed struct {
	Leito  string `json:"leito"`
	Andar  string `json:"andar,omitempty"`
	Quarto string `json:"quarto,omitempty"`
	Ala    string `json:"ala,omitempty"`
}

// OpenCall is one active nurse-call. It exists only in memory while the
// call is open; closure may spawn a Record for the audit log.
type OpenCall struct {
	Bed
	Criticality Criticality `json:"criticidade"`
	CreatedAt   time.Time   `json:"created_at"`
}

// ClosedEvent is the payload of a chamada-finalizada broadcast.
type ClosedEvent struct {
	Leito string `json:"leito"`
}

// Record is an append-only audit row written when a call is closed or
// registered directly by a device. Inicio and Termino stay free-form
// strings because legacy devices report them in device-local formats.
type Record struct {
	ID          string `json:"id"`
	Responsible string `json:"responsavel"`
	Criticality string `json:"criticidade"`
	StartedAt   string `json:"inicio"`
	EndedAt     string `json:"termino"`
	PatientCPF  string `json:"cpf_paciente"`
	NurseBadge  string `json:"nfc_enfermeiro"`
	RecordedAt  string `json:"data"`
}

// NurseRef is the roster projection needed to authorise a badge-verified
// closure. The full nurse record stays in the roster package; the call
// core never mutates it.
type NurseRef struct {
	Badge string
	Name  string
}
