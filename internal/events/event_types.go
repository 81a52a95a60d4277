package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "chamado_created"
	EventTicketStatusChanged EventType = "chamado_status_changed"
)

// Event represents a ticket lifecycle event emitted by the service layer.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	TicketID    int64       `json:"chamado_id"`
	ActorUserID string      `json:"actor_user_id"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	SetorID    int    `json:"setor_id"`
	Prioridade string `json:"prioridade"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	NewStatusID int `json:"new_status_id"`
}
