package dto

// CadastroRequest is the signup relay payload.
type CadastroRequest struct {
	Nome    string   `json:"nome"`
	Email   string   `json:"email"`
	Senha   string   `json:"senha"`
	SetorID IntField `json:"setor_id"`
}

// LoginRequest is the login relay payload.
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}
