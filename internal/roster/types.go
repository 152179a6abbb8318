package roster

// BadgeState is the enablement state of a nurse's NFC badge.
type BadgeState string

// Recognised badge states. These are the literal values stored and
// served; the bedside devices compare against them directly.
const (
	BadgeEnabled  BadgeState = "habilitado"
	BadgeDisabled BadgeState = "desabilitado"
)

// Nurse is one member of the nursing staff. NFC is the badge UID and
// the primary key. The personal fields are free-form strings because
// registration sources differ in what they collect.
type Nurse struct {
	NFC         string     `json:"nfc"`
	Name        string     `json:"nome"`
	Role        string     `json:"cargo,omitempty"`
	CPF         string     `json:"cpf,omitempty"`
	Password    string     `json:"senha,omitempty"`
	Phone1      string     `json:"telefone1,omitempty"`
	Phone2      string     `json:"telefone2,omitempty"`
	BirthDate   string     `json:"data_nasc,omitempty"`
	Address     string     `json:"endereco,omitempty"`
	Ward        string     `json:"ala,omitempty"`
	BadgeState  BadgeState `json:"estado_cracha"`
	Attendances int        `json:"qtd_atend"`
}

// NurseSummary is the roster listing projection: enough to render a
// staff table without exposing credentials or personal data.
type NurseSummary struct {
	NFC        string     `json:"nfc"`
	Name       string     `json:"nome"`
	Role       string     `json:"cargo"`
	BadgeState BadgeState `json:"estado_cracha"`
}
