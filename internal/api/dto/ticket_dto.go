package dto

import (
	"strconv"
	"strings"
)

// IntField accepts a JSON number or a numeric string, keeping the raw
// representation so validation failures can echo what was received.
type IntField struct {
	Value int
	Raw   string
	Set   bool
	Valid bool
}

// UnmarshalJSON coerces "2", 2 and 2 (float) to an int. A present but
// non-numeric value is recorded as invalid rather than failing the decode,
// so the validator can name the field.
func (f *IntField) UnmarshalJSON(b []byte) error {
	f.Set = true
	s := strings.TrimSpace(string(b))
	if s == "null" {
		f.Set = false
		return nil
	}
	s = strings.Trim(s, `"`)
	f.Raw = s
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	f.Value = n
	f.Valid = true
	return nil
}

// CreateTicketRequest is the ticket submission payload. Field names match
// the intake form and the store schema.
type CreateTicketRequest struct {
	Nome          string   `json:"nome"`
	Setor         string   `json:"setor"`
	Problema      string   `json:"problema"`
	Prioridade    string   `json:"prioridade"`
	Interferencia string   `json:"interferencia"`
	SetorID       IntField `json:"setor_id"`
	StatusID      IntField `json:"status_id"`
}

// UpdateStatusRequest is the status mutation payload.
type UpdateStatusRequest struct {
	StatusID IntField `json:"status_id"`
}
