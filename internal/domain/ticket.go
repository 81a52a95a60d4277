package domain

import "time"

// Ticket is the aggregate for helpdesk trouble reports ("chamados"). Wire
// field names stay in Portuguese to match the store schema and the intake
// form. A ticket is immutable after creation except for StatusID, which
// changes only through the status-update operation.
type Ticket struct {
	ID            int64      `json:"id,omitempty"`
	Nome          string     `json:"nome"`
	Setor         string     `json:"setor"`
	SetorID       int        `json:"setor_id"`
	Problema      string     `json:"problema"`
	Prioridade    string     `json:"prioridade"`
	Interferencia string     `json:"interferencia,omitempty"`
	StatusID      int        `json:"status_id"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`

	// Embedded display names joined by the store on reads.
	SetorRef  *NameRef `json:"setores,omitempty"`
	StatusRef *NameRef `json:"status_chamado,omitempty"`
}

// NameRef carries a denormalized display name from a lookup table join.
type NameRef struct {
	Nome string `json:"nome"`
}

// InterferenciaNone is the default when a submission omits the field.
const InterferenciaNone = "nenhuma"
